package main

import (
	"flag"
	"fmt"
	"github.com/dasnellings/motifTools/motif"
	"github.com/vertgenlab/gonomics/exception"
	"os"
	"strings"
	"text/tabwriter"
)

func catalogUsage(catalogFlags *flag.FlagSet) {
	fmt.Print(
		"catalog - print the curated motif catalog searched by 'motiftools motifs'\n\n" +
			"Usage:\n" +
			"  motiftools catalog [options] [name or logo ...]\n\n" +
			"Options:\n")
	catalogFlags.PrintDefaults()
}

func runCatalog(args []string) {
	catalogFlags := flag.NewFlagSet("catalog", flag.ExitOnError)
	refs := catalogFlags.Bool("refs", false, "Include literature references.")
	err := catalogFlags.Parse(args)
	exception.PanicOnErr(err)
	catalogFlags.Usage = func() { catalogUsage(catalogFlags) }

	motifs := motif.Catalog()
	if catalogFlags.NArg() > 0 {
		motifs = motifs[:0]
		for _, key := range catalogFlags.Args() {
			m, found := motif.Lookup(key)
			if !found {
				errExit(fmt.Sprintf("ERROR: no motif named %q in the catalog", key))
			}
			motifs = append(motifs, m)
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "logo\tmotif\tposition\tref\talt\tname")
	for _, m := range motifs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n", m.Logo, m.Motif, m.Position, m.Ref, m.Alt, m.Name)
		if *refs && m.References != "" {
			fmt.Fprintf(w, "\t\t\t\t\t  %s\n", strings.TrimSpace(m.References))
		}
	}
	exception.PanicOnErr(w.Flush())
}
