package motif

import (
	"github.com/dasnellings/motifTools/mutation"
	"github.com/dasnellings/motifTools/strand"
	"github.com/pbenner/threadpool"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Result is one significant motif finding for a sample.
type Result struct {
	Sample           string
	Name             string
	Logo             string
	Strand           strand.Strand
	Enrichment       float64
	PValue           float64 // one-sided Fisher exact
	MutationsLowEst  int
	MutationsHighEst float64 // corrected count of mutated bases in the motif
}

// Options controls which motifs and strands Identify searches.
type Options struct {
	Custom  string // motif shorthand such as T[C>K]W, replaces the curated catalog when set
	Strand  string // "+", "-", "=" or "*"/"" for both
	Threads int    // number of worker goroutines, values < 1 run on one
}

// Motifs returns the motifs searched for opts: the parsed custom motif if one was given, otherwise the catalog.
// A custom motif that does not parse yields no motifs.
func (opts Options) Motifs() []Motif {
	if opts.Custom == "" {
		return Catalog()
	}
	ans := Scanf(opts.Custom)
	if len(ans) == 0 {
		log.Warningf("could not parse custom motif %q, no motifs will be searched", opts.Custom)
	}
	return ans
}

type job struct {
	sample string
	motif  Motif
	strand strand.Strand
	radius int
}

// Identify searches every sample for every motif on every selected strand and returns the
// findings with a non-zero mutation load estimate. Rows are ordered by sample name, then motif
// order, then strand order. Samples without mutations are skipped.
func Identify(samples mutation.Samples, opts Options) ([]Result, error) {
	strands, err := strand.ParseSelector(opts.Strand)
	if err != nil {
		return nil, err
	}
	motifs := opts.Motifs()

	names := maps.Keys(samples)
	slices.Sort(names)

	var jobs []job
	for _, name := range names {
		muts := samples[name]
		if len(muts) == 0 {
			continue
		}
		radius := muts[0].Radius()
		for _, m := range motifs {
			for _, s := range strands {
				jobs = append(jobs, job{sample: name, motif: m, strand: s, radius: radius})
			}
		}
	}

	threads := opts.Threads
	if threads < 1 {
		threads = 1
	}
	// each job writes only its own slot of found
	found := make([]*Result, len(jobs))
	pool := threadpool.New(threads, 100*threads)
	defer pool.Stop()
	err = pool.RangeJob(0, len(jobs), func(i int, pool threadpool.ThreadPool, erf func() error) error {
		found[i] = runJob(samples, jobs[i])
		return nil
	})
	if err != nil {
		return nil, err
	}

	var ans []Result
	for i := range found {
		if found[i] != nil {
			ans = append(ans, *found[i])
		}
	}
	log.Infof("%d significant motif findings from %d sample/motif/strand combinations", len(ans), len(jobs))
	return ans, nil
}

// runJob tests one sample/motif/strand combination and returns nil when it has no mutation load.
func runJob(samples mutation.Samples, j job) *Result {
	log.Debugf("sample: %s motif: %s strand: %s", j.sample, j.motif.Logo, j.strand)
	e := Enrich(samples[j.sample], j.motif, j.radius, j.strand)
	if e.MutationLoad == 0 {
		return nil
	}
	return &Result{
		Sample:           j.sample,
		Name:             j.motif.Name,
		Logo:             j.motif.Logo,
		Strand:           j.strand,
		Enrichment:       e.Enrichment,
		PValue:           e.PValueFisher,
		MutationsLowEst:  e.MutationLoad,
		MutationsHighEst: e.BasesMutatedInMotif,
	}
}
