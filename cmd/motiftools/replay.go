package main

import (
	"flag"
	"fmt"
	"github.com/dasnellings/motifTools/record"
	"github.com/dasnellings/motifTools/request"
	"github.com/vertgenlab/gonomics/exception"
)

func replayUsage(replayFlags *flag.FlagSet) {
	fmt.Print(
		"replay - rerun a run stored by 'motiftools motifs -db'\n\n" +
			"Usage:\n" +
			"  motiftools replay [options] -db runs.db -key motifs-20240426_183757\n\n" +
			"Options:\n")
	replayFlags.PrintDefaults()
}

func runReplay(args []string) {
	replayFlags := flag.NewFlagSet("replay", flag.ExitOnError)
	db := replayFlags.String("db", "", "Run record database.")
	key := replayFlags.String("key", "", "Key of the run to replay, as listed by 'motiftools records'.")
	output := replayFlags.String("o", "", "Write results here instead of the recorded output file.")
	verbose := replayFlags.Int("v", 0, "Verbose output by setting to >0.")
	err := replayFlags.Parse(args)
	exception.PanicOnErr(err)
	replayFlags.Usage = func() { replayUsage(replayFlags) }
	setupLogging(*verbose)

	if *db == "" || *key == "" {
		replayFlags.Usage()
		errExit("\nERROR: must have inputs for -db and -key")
	}

	store, err := record.Open(*db)
	exception.PanicOnErr(err)
	r, err := store.Load(*key)
	exception.PanicOnErr(err)
	exception.PanicOnErr(store.Close())

	cfg := request.FromRecord(r).Normalize()
	if cfg.Command != request.CommandMotifs {
		errExit(fmt.Sprintf("ERROR: %s is a %s run, only %s runs can be replayed", *key, cfg.Command, request.CommandMotifs))
	}
	if *output != "" {
		cfg.OutputFile = *output
	}
	log.Infof("replaying %s", *key)
	findMotifs(cfg, *verbose)
}
