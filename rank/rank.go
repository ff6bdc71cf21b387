// Package rank validates a ranking run and feeds loaded mutations, a background cohort and its
// mutability profile to a ranking backend.
package rank

import (
	"errors"
	"fmt"
	"github.com/dasnellings/motifTools/context"
	"github.com/dasnellings/motifTools/mutation"
	"github.com/dasnellings/motifTools/request"
	"github.com/op/go-logging"
	"os"
	"strings"
	"time"
)

var log = logging.MustGetLogger("rank")

func init() {
	logging.SetLevel(logging.WARNING, "rank")
}

var (
	ErrNoGenome      = errors.New("genome assembly is required, use -r to give a fasta file")
	ErrNoCohortsFile = errors.New("cohorts file missing")
	ErrNoCohort      = errors.New("cohort required")
	ErrNoProfile     = errors.New("could not read profile")
	ErrNoMutations   = errors.New("no mutations to rank, check that the input is in MAF format")
)

// Profile is a mutability profile over the trinucleotide substitution classes.
type Profile []float64

// Cohort is a precalculated background cohort.
type Cohort struct {
	Name      string
	Profile   Profile
	Size      int
	Mutations map[string]int // observed count of each mutation in the cohort
}

// Cohorts reads precalculated cohorts from a cohorts container.
type Cohorts interface {
	Load(cohortsFile, name string) (Cohort, error)
	List(cohortsFile string) ([]string, error)
}

// Profiles reads user supplied mutability profiles.
type Profiles interface {
	Read(file string) (Profile, error)
	// CohortSize returns the cohort size described in the profile file, or 0 if it has none.
	CohortSize(file string) int
}

// Loader reads the mutations to rank.
type Loader interface {
	Load(genome string, files []string) (mutation.Samples, context.Stats, error)
}

// Params is everything the ranking statistic needs besides the mutations.
type Params struct {
	Profile            Profile
	CohortMutations    map[string]int
	CohortSize         int
	ThresholdDriver    float64
	ThresholdPassenger float64
	OutputFile         string
}

// Ranker computes the ranking statistic and writes the ranked mutations.
type Ranker interface {
	Rank(mutations mutation.Samples, p Params) error
}

// Recorder keeps a record of each run.
type Recorder interface {
	Save(r request.Record) (string, error)
}

// Env holds the collaborators of Drive. Recorder and Now may be nil.
type Env struct {
	Cohorts  Cohorts
	Profiles Profiles
	Loader   Loader
	Ranker   Ranker
	Recorder Recorder
	Now      func() time.Time
}

// Drive validates c, resolves the cohort profile and size with their overrides, loads the
// input mutations, records the run and ranks the mutations.
func Drive(c request.Config, env Env) error {
	if c.Genome == "" {
		log.Warning(ErrNoGenome)
		return ErrNoGenome
	}

	if info, err := os.Stat(c.CohortsFile); err != nil || info.IsDir() {
		log.Warningf("%s: %s", ErrNoCohortsFile, c.CohortsFile)
		return fmt.Errorf("%w: %s", ErrNoCohortsFile, c.CohortsFile)
	}

	if c.Cohort == "" {
		log.Warning(ErrNoCohort)
		names, err := env.Cohorts.List(c.CohortsFile)
		if err != nil {
			return fmt.Errorf("%w: listing %s: %v", ErrNoCohort, c.CohortsFile, err)
		}
		log.Warningf("List of available cohorts:\n%s", strings.Join(names, "\n"))
		return fmt.Errorf("%w, available cohorts: %s", ErrNoCohort, strings.Join(names, ", "))
	}

	cohort, err := env.Cohorts.Load(c.CohortsFile, c.Cohort)
	if err != nil {
		return fmt.Errorf("loading cohort %s from %s: %w", c.Cohort, c.CohortsFile, err)
	}
	profile := cohort.Profile
	size := cohort.Size
	log.Infof("Profile and cohort size loaded from precalculated cohorts N=%d", size)

	if c.ProfileFile != "" {
		profile, err = env.Profiles.Read(c.ProfileFile)
		if err != nil || len(profile) == 0 {
			return fmt.Errorf("%w: %s", ErrNoProfile, c.ProfileFile)
		}
		log.Info("Profile overridden")
		if n := env.Profiles.CohortSize(c.ProfileFile); n > 0 {
			size = n
			log.Infof("Cohort size loaded from profile N=%d", size)
		}
	}

	if c.NSamples > 0 {
		size = c.NSamples
		log.Infof("Cohort size overridden N=%d", size)
	}

	files := inputFiles(c)
	if len(files) > 1 {
		log.Info("Multiple input files provided")
	}
	samples, stats, err := env.Loader.Load(c.Genome, files)
	if err != nil {
		return err
	}
	if samples.Count() == 0 {
		log.Warning(ErrNoMutations)
		return ErrNoMutations
	}
	if stats.Skipped > 0 {
		log.Infof("Loaded %d mutations skipped %d mutations", stats.Loaded, stats.Skipped)
	} else {
		log.Infof("Loaded %d mutations", stats.Loaded)
	}

	log.Infof("THRESHOLD_DRIVER: %g", c.ThresholdDriver)
	log.Infof("THRESHOLD_PASSENGER: %g", c.ThresholdPassenger)

	if env.Recorder != nil {
		now := time.Now
		if env.Now != nil {
			now = env.Now
		}
		if _, err = env.Recorder.Save(request.NewRecord(c, now())); err != nil {
			log.Warningf("could not save run record: %s", err)
		}
	}

	return env.Ranker.Rank(samples, Params{
		Profile:            profile,
		CohortMutations:    cohort.Mutations,
		CohortSize:         size,
		ThresholdDriver:    c.ThresholdDriver,
		ThresholdPassenger: c.ThresholdPassenger,
		OutputFile:         c.OutputFile,
	})
}

func inputFiles(c request.Config) []string {
	files := append([]string(nil), c.InputFiles...)
	if c.MafFile != "" {
		files = append(files, c.MafFile)
	}
	return files
}

// MafLoader loads MAF files with flanking context from an indexed fasta reference.
type MafLoader struct {
	Pad int
}

// Load reads every file and merges the samples of all of them.
func (l MafLoader) Load(genome string, files []string) (mutation.Samples, context.Stats, error) {
	var total context.Stats
	ref, err := context.OpenReference(genome)
	if err != nil {
		return nil, total, err
	}
	defer ref.Close()

	ans := make(mutation.Samples)
	for _, file := range files {
		samples, stats, err := context.LoadMaf(file, ref, l.Pad)
		if err != nil {
			return nil, total, err
		}
		for name, muts := range samples {
			ans[name] = append(ans[name], muts...)
		}
		total.Loaded += stats.Loaded
		total.Skipped += stats.Skipped
	}
	return ans, total, nil
}
