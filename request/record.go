package request

import "time"

// Record is the serialized form of a run kept for provenance. Absent fields are nil
// so that replaying an older record falls back to the current defaults.
type Record struct {
	Command            *string   `json:"command,omitempty"`
	Genome             *string   `json:"genome,omitempty"`
	InputFiles         []string  `json:"input_files,omitempty"`
	MafFile            *string   `json:"maf_file,omitempty"`
	Cohort             *string   `json:"cohort,omitempty"`
	OutputFile         *string   `json:"output_file,omitempty"`
	CohortsFile        *string   `json:"cohorts_file,omitempty"`
	ProfileFile        *string   `json:"profile_file,omitempty"`
	NSamples           *int      `json:"nsamples,omitempty"`
	ThresholdDriver    *float64  `json:"threshold_driver,omitempty"`
	ThresholdPassenger *float64  `json:"threshold_passenger,omitempty"`
	CustomMotif        *string   `json:"custom_motif,omitempty"`
	Strand             *string   `json:"strand,omitempty"`
	StrandInfo         *bool     `json:"strand_info,omitempty"`
	Pad                *int      `json:"pad,omitempty"`
	Threads            *int      `json:"threads,omitempty"`
	Plot               *string   `json:"plot,omitempty"`
	Datetime           time.Time `json:"datetime"`
}

// NewRecord captures every field of c. Optional fields that are unset in c are left out.
func NewRecord(c Config, t time.Time) Record {
	r := Record{
		Command:            &c.Command,
		Genome:             &c.Genome,
		OutputFile:         &c.OutputFile,
		CohortsFile:        &c.CohortsFile,
		ThresholdDriver:    &c.ThresholdDriver,
		ThresholdPassenger: &c.ThresholdPassenger,
		Strand:             &c.Strand,
		StrandInfo:         &c.StrandInfo,
		Pad:                &c.Pad,
		Threads:            &c.Threads,
		Datetime:           t,
	}
	if len(c.InputFiles) > 0 {
		r.InputFiles = append([]string(nil), c.InputFiles...)
	}
	r.MafFile = optional(c.MafFile)
	r.Cohort = optional(c.Cohort)
	r.ProfileFile = optional(c.ProfileFile)
	r.CustomMotif = optional(c.CustomMotif)
	r.Plot = optional(c.Plot)
	if c.NSamples != 0 {
		r.NSamples = &c.NSamples
	}
	return r
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Key returns the key the record is stored under.
func (r Record) Key() string {
	command := CommandMotifs
	if r.Command != nil {
		command = *r.Command
	}
	return Key(command, r.Datetime)
}

func mergeRecord(dst *Config, r *Record) {
	setString(&dst.Genome, r.Genome)
	if r.InputFiles != nil {
		dst.InputFiles = append([]string(nil), r.InputFiles...)
	}
	setString(&dst.MafFile, r.MafFile)
	setString(&dst.Cohort, r.Cohort)
	setString(&dst.OutputFile, r.OutputFile)
	setString(&dst.CohortsFile, r.CohortsFile)
	setString(&dst.ProfileFile, r.ProfileFile)
	setString(&dst.CustomMotif, r.CustomMotif)
	setString(&dst.Strand, r.Strand)
	setString(&dst.Plot, r.Plot)
	if r.NSamples != nil {
		dst.NSamples = *r.NSamples
	}
	if r.ThresholdDriver != nil {
		dst.ThresholdDriver = *r.ThresholdDriver
	}
	if r.ThresholdPassenger != nil {
		dst.ThresholdPassenger = *r.ThresholdPassenger
	}
	if r.StrandInfo != nil {
		dst.StrandInfo = *r.StrandInfo
	}
	if r.Pad != nil {
		dst.Pad = *r.Pad
	}
	if r.Threads != nil {
		dst.Threads = *r.Threads
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
