package rank

import (
	"errors"
	"github.com/dasnellings/motifTools/context"
	"github.com/dasnellings/motifTools/mutation"
	"github.com/dasnellings/motifTools/request"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type fakeCohorts map[string]Cohort

func (f fakeCohorts) Load(_, name string) (Cohort, error) {
	c, found := f[name]
	if !found {
		return c, errors.New("no such cohort")
	}
	return c, nil
}

func (f fakeCohorts) List(string) ([]string, error) {
	return []string{"gcb_lymphomas", "pancancer"}, nil
}

type fakeProfiles struct {
	profile Profile
	size    int
}

func (f fakeProfiles) Read(string) (Profile, error) {
	if f.profile == nil {
		return nil, errors.New("unreadable profile")
	}
	return f.profile, nil
}

func (f fakeProfiles) CohortSize(string) int {
	return f.size
}

type fakeLoader struct {
	samples mutation.Samples
	files   []string
}

func (f *fakeLoader) Load(_ string, files []string) (mutation.Samples, context.Stats, error) {
	f.files = files
	return f.samples, context.Stats{Loaded: f.samples.Count(), Skipped: 1}, nil
}

type fakeRanker struct {
	called bool
	params Params
}

func (f *fakeRanker) Rank(_ mutation.Samples, p Params) error {
	f.called = true
	f.params = p
	return nil
}

type fakeRecorder []request.Record

func (f *fakeRecorder) Save(r request.Record) (string, error) {
	*f = append(*f, r)
	return r.Key(), nil
}

func testEnv(t *testing.T) (request.Config, Env, *fakeRanker, *fakeRecorder, *fakeLoader) {
	cohortsFile := filepath.Join(t.TempDir(), "cohorts.tar.gz")
	if err := os.WriteFile(cohortsFile, []byte("cohorts"), 0644); err != nil {
		t.Fatal(err)
	}
	c := request.Direct(request.Config{
		Command:     request.CommandRank,
		Genome:      "hg19.fa",
		InputFiles:  []string{"a.maf"},
		MafFile:     "b.maf",
		Cohort:      "pancancer",
		CohortsFile: cohortsFile,
	}).Normalize()

	ranker := new(fakeRanker)
	recorder := new(fakeRecorder)
	loader := &fakeLoader{samples: mutation.Samples{"s1": make([]mutation.Mutation, 3)}}
	env := Env{
		Cohorts:  fakeCohorts{"pancancer": {Name: "pancancer", Profile: Profile{0.1, 0.9}, Size: 100, Mutations: map[string]int{"TP53 R175H": 3}}},
		Profiles: fakeProfiles{profile: Profile{0.5, 0.5}, size: 40},
		Loader:   loader,
		Ranker:   ranker,
		Recorder: recorder,
		Now:      func() time.Time { return time.Date(2020, 6, 12, 22, 26, 35, 0, time.UTC) },
	}
	return c, env, ranker, recorder, loader
}

func TestDrive(t *testing.T) {
	c, env, ranker, recorder, loader := testEnv(t)
	if err := Drive(c, env); err != nil {
		t.Fatal(err)
	}
	if !ranker.called {
		t.Fatal("ranker was not called")
	}
	p := ranker.params
	if p.CohortSize != 100 || len(p.Profile) != 2 || p.Profile[0] != 0.1 || p.CohortMutations["TP53 R175H"] != 3 {
		t.Errorf("unexpected params %+v", p)
	}
	if p.ThresholdDriver != request.ThresholdDriver || p.ThresholdPassenger != request.ThresholdPassenger || p.OutputFile != "stdout" {
		t.Errorf("unexpected thresholds or output %+v", p)
	}
	if len(loader.files) != 2 || loader.files[0] != "a.maf" || loader.files[1] != "b.maf" {
		t.Errorf("unexpected input files %v", loader.files)
	}
	if len(*recorder) != 1 || (*recorder)[0].Key() != "rank-20200612_222635.000000" {
		t.Errorf("expected one run record, got %+v", *recorder)
	}
}

func TestDriveOverrides(t *testing.T) {
	c, env, ranker, _, _ := testEnv(t)
	c.ProfileFile = "custom.profile"
	if err := Drive(c, env); err != nil {
		t.Fatal(err)
	}
	if ranker.params.CohortSize != 40 || ranker.params.Profile[0] != 0.5 {
		t.Errorf("expected profile and cohort size from the profile file, got %+v", ranker.params)
	}

	c.NSamples = 7
	if err := Drive(c, env); err != nil {
		t.Fatal(err)
	}
	if ranker.params.CohortSize != 7 {
		t.Errorf("expected cohort size override 7, got %d", ranker.params.CohortSize)
	}

	// a profile file without a size keeps the cohort size
	c.NSamples = 0
	env.Profiles = fakeProfiles{profile: Profile{0.5, 0.5}}
	if err := Drive(c, env); err != nil {
		t.Fatal(err)
	}
	if ranker.params.CohortSize != 100 {
		t.Errorf("expected cohort size 100, got %d", ranker.params.CohortSize)
	}
}

func TestDriveValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*request.Config, *Env)
		err    error
	}{
		{"no genome", func(c *request.Config, _ *Env) { c.Genome = "" }, ErrNoGenome},
		{"no cohorts file", func(c *request.Config, _ *Env) { c.CohortsFile = filepath.Join(t.TempDir(), "missing.tar.gz") }, ErrNoCohortsFile},
		{"cohorts file is a directory", func(c *request.Config, _ *Env) { c.CohortsFile = t.TempDir() }, ErrNoCohortsFile},
		{"no cohort", func(c *request.Config, _ *Env) { c.Cohort = "" }, ErrNoCohort},
		{"bad profile", func(c *request.Config, e *Env) { c.ProfileFile = "x"; e.Profiles = fakeProfiles{} }, ErrNoProfile},
		{"no mutations", func(_ *request.Config, e *Env) { e.Loader = &fakeLoader{} }, ErrNoMutations},
	}
	for _, test := range tests {
		c, env, ranker, recorder, _ := testEnv(t)
		test.modify(&c, &env)
		err := Drive(c, env)
		if !errors.Is(err, test.err) {
			t.Errorf("%s: expected %v, got %v", test.name, test.err, err)
		}
		if ranker.called || len(*recorder) != 0 {
			t.Errorf("%s: failed validation must not rank or record", test.name)
		}
	}
}

func TestDriveUnknownCohort(t *testing.T) {
	c, env, ranker, _, _ := testEnv(t)
	c.Cohort = "melanoma"
	if err := Drive(c, env); err == nil || ranker.called {
		t.Errorf("expected error for unknown cohort, got %v", err)
	}
}

func TestMafLoader(t *testing.T) {
	samples, stats, err := MafLoader{Pad: 2}.Load("testdata/ref.fa", []string{"testdata/sample1.maf", "testdata/sample1.maf"})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Loaded != 4 || stats.Skipped != 2 {
		t.Errorf("expected 4 loaded and 2 skipped, got %s", stats)
	}
	if len(samples["sampleA"]) != 2 || len(samples["sampleB"]) != 2 {
		t.Errorf("unexpected samples %+v", samples)
	}
	if mutation.Bases(samples["sampleA"][0].Context) != "ATCAG" {
		t.Errorf("unexpected context %s", mutation.Bases(samples["sampleA"][0].Context))
	}
}
