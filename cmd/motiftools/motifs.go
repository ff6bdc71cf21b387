package main

import (
	"flag"
	"fmt"
	"github.com/dasnellings/motifTools/context"
	"github.com/dasnellings/motifTools/motif"
	"github.com/dasnellings/motifTools/mutation"
	"github.com/dasnellings/motifTools/record"
	"github.com/dasnellings/motifTools/report"
	"github.com/dasnellings/motifTools/request"
	"github.com/vertgenlab/gonomics/exception"
	"os"
	"time"
)

func motifsUsage(motifsFlags *flag.FlagSet) {
	fmt.Print(
		"motifs - find mutational motifs enriched among the mutations of each sample\n" +
			"\tEach (sample, motif, strand) is tested with a one-sided Fisher exact and a chi-squared test and\n" +
			"\treported with an estimate of the number of mutations caused by the motif's mutational process.\n\n" +
			"Usage:\n" +
			"  motiftools motifs [options] -i sample.vcf [-i sample2.vcf] -r reference.fasta > motifs.tsv\n" +
			"  motiftools motifs [options] -maf mutations.maf -r reference.fasta > motifs.tsv\n\n" +
			"Options:\n")
	motifsFlags.PrintDefaults()
}

func runMotifs(args []string) {
	var err error
	motifsFlags := flag.NewFlagSet("motifs", flag.ExitOnError)
	request.RegisterFlags(request.CommandMotifs, motifsFlags)
	db := motifsFlags.String("db", "", "Save a record of this run to the given database for later replay.")
	verbose := motifsFlags.Int("v", 0, "Verbose output by setting to >0. 1 reports progress, 2 prints the contingency table of every test.")

	err = motifsFlags.Parse(args)
	exception.PanicOnErr(err)
	motifsFlags.Usage = func() { motifsUsage(motifsFlags) }
	setupLogging(*verbose)

	cfg := request.FromFlags(request.CommandMotifs, motifsFlags).Normalize()
	if (len(cfg.InputFiles) == 0 && cfg.MafFile == "") || cfg.Genome == "" {
		motifsFlags.Usage()
		errExit("\nERROR: must have inputs for -r and either -i or -maf")
	}

	rows := findMotifs(cfg, *verbose)

	if *db != "" {
		saveRecord(*db, cfg)
	}
	log.Infof("%d motif findings written to %s", len(rows), cfg.OutputFile)
}

// findMotifs loads the mutations named by cfg, runs the motif search and writes the results.
func findMotifs(cfg request.Config, verbose int) []motif.Result {
	ref, err := context.OpenReference(cfg.Genome)
	exception.PanicOnErr(err)
	samples := make(mutation.Samples)
	if len(cfg.InputFiles) > 0 {
		vcfSamples, _ := context.LoadVcf(cfg.InputFiles, ref, cfg.Pad, cfg.StrandInfo)
		merge(samples, vcfSamples)
	}
	if cfg.MafFile != "" {
		var mafSamples mutation.Samples
		mafSamples, _, err = context.LoadMaf(cfg.MafFile, ref, cfg.Pad)
		exception.PanicOnErr(err)
		merge(samples, mafSamples)
	}
	exception.PanicOnErr(ref.Close())

	if samples.Count() == 0 {
		log.Warning("no mutations could be placed on the reference, check the input files and -r")
	}

	rows, err := motif.Identify(samples, motif.Options{
		Custom:  cfg.CustomMotif,
		Strand:  cfg.Strand,
		Threads: cfg.Threads,
	})
	if err != nil {
		errExit(fmt.Sprintf("ERROR: %s", err))
	}

	report.Write(cfg.OutputFile, rows)
	if cfg.Plot != "" {
		if err = report.Plot(cfg.Plot, rows); err != nil {
			log.Warningf("no plot written to %s: %s", cfg.Plot, err)
		}
	}
	if verbose > 0 && len(rows) > 0 {
		fmt.Fprintln(os.Stderr, report.Terminal(rows))
	}
	return rows
}

func merge(dst, src mutation.Samples) {
	for name, muts := range src {
		dst[name] = append(dst[name], muts...)
	}
}

func saveRecord(db string, cfg request.Config) {
	store, err := record.Open(db)
	exception.PanicOnErr(err)
	key, err := store.Save(request.NewRecord(cfg, time.Now()))
	exception.PanicOnErr(err)
	exception.PanicOnErr(store.Close())
	fmt.Fprintf(os.Stderr, "run saved as %s\n", key)
}
