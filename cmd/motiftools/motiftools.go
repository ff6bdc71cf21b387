// Command motiftools finds mutational signature motifs enriched among the point mutations of each sample.
package main

import (
	"flag"
	"fmt"
	"github.com/op/go-logging"
	"os"
	"strings"
	"text/tabwriter"
)

const version string = "0.0.1"
const gonomicsVersion string = "1.0.1-0.20240426183757-e6c6ab634c20"

var log = logging.MustGetLogger("motiftools")

var formatter = logging.MustStringFormatter(`%{time:15:04:05} %{module} %{level:.4s} %{message}`)

type subcommand struct {
	name     string
	function func(args []string)
	blurb    string
}

// SubCommands contains all valid subcommands.
// New subcommands can be added to motiftools by adding a new entry to this array.
var SubCommands = []*subcommand{
	{"motifs", runMotifs, "find motifs enriched among mutations of each sample"},
	{"catalog", runCatalog, "print the curated motif catalog"},
	{"records", runRecords, "list stored run records"},
	{"replay", runReplay, "rerun a stored run record"},
}

func usage() {
	s := new(strings.Builder)
	s.WriteString(
		"Program: motiftools (mutational motif enrichment)\n" +
			"Version: " + version + " (gonomics " + gonomicsVersion + ")\n" +
			"\nUsage:\tmotiftools <command> [options]\n\n" +
			"Commands:\n")

	// add subcommand text via tabwriter so the columns align
	w := tabwriter.NewWriter(s, 0, 8, 5, '\t', tabwriter.AlignRight)
	for i := range SubCommands {
		fmt.Fprintf(w, "\t%s\t%s\n", SubCommands[i].name, SubCommands[i].blurb)
	}
	w.Flush()
	fmt.Print(s.String())
}

// commandMap builds a map of possible subcommands keyed on the name of the subcommand
func commandMap() map[string]func(args []string) {
	m := make(map[string]func(args []string))
	for i := range SubCommands {
		m[SubCommands[i].name] = SubCommands[i].function
	}
	return m
}

func main() {
	flag.Usage = usage
	flag.Parse()

	// check if first argument is a valid subcommand
	command := commandMap()[flag.Arg(0)]

	// if no command is found, print the usage and return
	if command == nil {
		flag.Usage()
		return
	}

	// if command successfully found, pass in remaining arguments and execute
	command(flag.Args()[1:])
}

// setupLogging sends logs of every package to stderr. verbose 0 shows warnings, 1 info, 2 and up debug.
func setupLogging(verbose int) {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	logging.SetBackend(logging.NewBackendFormatter(backend, formatter))
	switch {
	case verbose <= 0:
		logging.SetLevel(logging.WARNING, "")
	case verbose == 1:
		logging.SetLevel(logging.INFO, "")
	default:
		logging.SetLevel(logging.DEBUG, "")
	}
}

func errExit(err string) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
