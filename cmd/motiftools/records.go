package main

import (
	"flag"
	"fmt"
	"github.com/dasnellings/motifTools/record"
	"github.com/dasnellings/motifTools/request"
	"github.com/vertgenlab/gonomics/exception"
	"os"
	"strings"
	"text/tabwriter"
)

func recordsUsage(recordsFlags *flag.FlagSet) {
	fmt.Print(
		"records - list the run records stored by 'motiftools motifs -db'\n\n" +
			"Usage:\n" +
			"  motiftools records -db runs.db\n\n" +
			"Options:\n")
	recordsFlags.PrintDefaults()
}

func runRecords(args []string) {
	recordsFlags := flag.NewFlagSet("records", flag.ExitOnError)
	db := recordsFlags.String("db", "", "Run record database.")
	err := recordsFlags.Parse(args)
	exception.PanicOnErr(err)
	recordsFlags.Usage = func() { recordsUsage(recordsFlags) }

	if *db == "" {
		recordsFlags.Usage()
		errExit("\nERROR: must have input for -db")
	}

	store, err := record.Open(*db)
	exception.PanicOnErr(err)
	defer store.Close()
	keys, err := store.Keys()
	exception.PanicOnErr(err)

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "key\tinputs\tgenome\tmotif\tstrand")
	var r request.Record
	var cfg request.Config
	for _, key := range keys {
		r, err = store.Load(key)
		exception.PanicOnErr(err)
		cfg = request.FromRecord(r).Normalize()
		inputs := cfg.InputFiles
		if cfg.MafFile != "" {
			inputs = append(inputs, cfg.MafFile)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", key, strings.Join(inputs, ","), cfg.Genome, cfg.CustomMotif, cfg.Strand)
	}
	exception.PanicOnErr(w.Flush())
}
