// Package request turns the different ways a run can be started (command line flags, a stored
// run record, a direct library call) into one canonical Config.
package request

import (
	"flag"
	"fmt"
	"strings"
	"time"
)

const (
	CommandMotifs = "motifs"
	CommandRank   = "rank"
)

// default thresholds on the rank B-score separating driver, potential driver and passenger mutations.
const (
	ThresholdDriver    = 1e-5
	ThresholdPassenger = 0.05
)

// Config is the canonical configuration of a run.
type Config struct {
	Command            string
	Genome             string
	InputFiles         []string
	MafFile            string
	Cohort             string
	OutputFile         string
	CohortsFile        string
	ProfileFile        string // empty means the cohort profile is used
	NSamples           int    // 0 means the cohort size is used
	ThresholdDriver    float64
	ThresholdPassenger float64
	CustomMotif        string
	Strand             string
	StrandInfo         bool // read VCF transcript strands from the Strand= INFO key
	Pad                int
	Threads            int
	Plot               string
}

// Defaults returns the configuration every request is merged onto.
func Defaults(command string) Config {
	return Config{
		Command:            command,
		OutputFile:         "stdout",
		CohortsFile:        "cohorts.tar.gz",
		ThresholdDriver:    ThresholdDriver,
		ThresholdPassenger: ThresholdPassenger,
		Strand:             "*",
		Pad:                10,
		Threads:            1,
	}
}

// Origin tags where a Request came from.
type Origin int

const (
	FromCommandLine Origin = iota
	FromStoredRecord
	FromDirectCall
)

func (o Origin) String() string {
	switch o {
	case FromCommandLine:
		return "flags"
	case FromStoredRecord:
		return "record"
	case FromDirectCall:
		return "direct"
	default:
		return fmt.Sprintf("Origin(%d)", int(o))
	}
}

// Request is a run request from exactly one origin. Only the payload matching origin is set.
// Build one with FromFlags, FromRecord or Direct.
type Request struct {
	origin  Origin
	command string
	flags   *flag.FlagSet
	record  *Record
	direct  *Config
}

// FromFlags builds a request from a parsed flag set whose flags were declared with RegisterFlags.
// Only flags given on the command line override the defaults.
func FromFlags(command string, fs *flag.FlagSet) Request {
	return Request{origin: FromCommandLine, command: command, flags: fs}
}

// FromRecord builds a request replaying a stored run record. Fields missing from the record keep their defaults.
func FromRecord(r Record) Request {
	command := CommandMotifs
	if r.Command != nil {
		command = *r.Command
	}
	return Request{origin: FromStoredRecord, command: command, record: &r}
}

// Direct builds a request from a configuration filled in by the caller. Zero valued fields keep their defaults.
func Direct(c Config) Request {
	command := c.Command
	if command == "" {
		command = CommandMotifs
	}
	return Request{origin: FromDirectCall, command: command, direct: &c}
}

func (r Request) Origin() Origin {
	return r.origin
}

// Normalize merges the request onto the defaults of its command.
func (r Request) Normalize() Config {
	ans := Defaults(r.command)
	switch r.origin {
	case FromCommandLine:
		r.flags.Visit(func(f *flag.Flag) {
			if g, ok := f.Value.(flag.Getter); ok {
				setFlag(&ans, f.Name, g.Get())
			}
		})
	case FromStoredRecord:
		mergeRecord(&ans, r.record)
	case FromDirectCall:
		mergeConfig(&ans, r.direct)
	}
	ans.Command = r.command
	return ans
}

// flag names shared by RegisterFlags and Normalize.
const (
	flagInput       = "i"
	flagMaf         = "maf"
	flagGenome      = "r"
	flagOutput      = "o"
	flagMotif       = "m"
	flagStrand      = "s"
	flagStrandInfo  = "strandInfo"
	flagPad         = "pad"
	flagThreads     = "threads"
	flagPlot        = "plot"
	flagCohort      = "c"
	flagCohortsFile = "cohorts"
	flagProfile     = "p"
	flagNSamples    = "n"
	flagDriver      = "td"
	flagPassenger   = "tp"
)

// RegisterFlags declares the flags of command on fs with their default values and help text.
func RegisterFlags(command string, fs *flag.FlagSet) {
	d := Defaults(command)
	fs.Var(new(StringList), flagInput, "Input VCF file, may be given multiple times. The file name is used as the sample name.")
	fs.String(flagMaf, "", "Input MAF file, samples are taken from the Tumor_Sample_Barcode column.")
	fs.String(flagGenome, "", "Reference genome fasta file. Must be indexed (.fai).")
	fs.String(flagOutput, d.OutputFile, "Output file.")
	switch command {
	case CommandRank:
		fs.String(flagCohort, "", "Name of cohort with observed mutations.")
		fs.String(flagCohortsFile, d.CohortsFile, "Location of the cohorts container.")
		fs.String(flagProfile, "", "Override profile used to calculate mutability, may also describe cohort size.")
		fs.Int(flagNSamples, 0, "Override cohort size.")
		fs.Float64(flagDriver, d.ThresholdDriver, "B-score threshold between driver and potential driver mutations.")
		fs.Float64(flagPassenger, d.ThresholdPassenger, "B-score threshold between potential driver and passenger mutations.")
	default:
		fs.String(flagMotif, "", "Custom motif shorthand, e.g. 'T[C>K]W'. Replaces the motif catalog.")
		fs.String(flagStrand, d.Strand, "Strand to search: '+', '-', '*' for both, or '=' to orient each mutation by its transcript strand.")
		fs.Bool(flagStrandInfo, false, "Read the transcript strand of VCF records from the 'Strand=' INFO key. Otherwise VCF records are on the + strand.")
		fs.Int(flagPad, d.Pad, "Number of flanking bases on each side of a mutation to scan.")
		fs.Int(flagThreads, d.Threads, "Number of threads.")
		fs.String(flagPlot, "", "Write a bar chart of the mutation load estimates to this .png/.svg/.pdf file.")
	}
}

func setFlag(c *Config, name string, val interface{}) {
	switch name {
	case flagInput:
		c.InputFiles = append([]string(nil), val.([]string)...)
	case flagMaf:
		c.MafFile = val.(string)
	case flagGenome:
		c.Genome = val.(string)
	case flagOutput:
		c.OutputFile = val.(string)
	case flagMotif:
		c.CustomMotif = val.(string)
	case flagStrand:
		c.Strand = val.(string)
	case flagStrandInfo:
		c.StrandInfo = val.(bool)
	case flagPad:
		c.Pad = val.(int)
	case flagThreads:
		c.Threads = val.(int)
	case flagPlot:
		c.Plot = val.(string)
	case flagCohort:
		c.Cohort = val.(string)
	case flagCohortsFile:
		c.CohortsFile = val.(string)
	case flagProfile:
		c.ProfileFile = val.(string)
	case flagNSamples:
		c.NSamples = val.(int)
	case flagDriver:
		c.ThresholdDriver = val.(float64)
	case flagPassenger:
		c.ThresholdPassenger = val.(float64)
	}
}

func mergeConfig(dst, src *Config) {
	if src.Genome != "" {
		dst.Genome = src.Genome
	}
	if src.InputFiles != nil {
		dst.InputFiles = append([]string(nil), src.InputFiles...)
	}
	if src.MafFile != "" {
		dst.MafFile = src.MafFile
	}
	if src.Cohort != "" {
		dst.Cohort = src.Cohort
	}
	if src.OutputFile != "" {
		dst.OutputFile = src.OutputFile
	}
	if src.CohortsFile != "" {
		dst.CohortsFile = src.CohortsFile
	}
	if src.ProfileFile != "" {
		dst.ProfileFile = src.ProfileFile
	}
	if src.NSamples != 0 {
		dst.NSamples = src.NSamples
	}
	if src.ThresholdDriver != 0 {
		dst.ThresholdDriver = src.ThresholdDriver
	}
	if src.ThresholdPassenger != 0 {
		dst.ThresholdPassenger = src.ThresholdPassenger
	}
	if src.CustomMotif != "" {
		dst.CustomMotif = src.CustomMotif
	}
	if src.Strand != "" {
		dst.Strand = src.Strand
	}
	if src.StrandInfo {
		dst.StrandInfo = true
	}
	if src.Pad != 0 {
		dst.Pad = src.Pad
	}
	if src.Threads != 0 {
		dst.Threads = src.Threads
	}
	if src.Plot != "" {
		dst.Plot = src.Plot
	}
}

// StringList is a repeatable string flag.
type StringList []string

func (s *StringList) String() string {
	if s == nil {
		return ""
	}
	return strings.Join(*s, ",")
}

func (s *StringList) Set(val string) error {
	*s = append(*s, val)
	return nil
}

func (s *StringList) Get() interface{} {
	return []string(*s)
}

// keyTime is the layout of the timestamp part of record keys.
const keyTime = "20060102_150405.000000"

// Key returns the store key of a run started at t, e.g. motifs-20200612_222635.000000.
func Key(command string, t time.Time) string {
	return command + "-" + t.Format(keyTime)
}
