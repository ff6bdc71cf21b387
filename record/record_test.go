package record

import (
	"errors"
	"github.com/dasnellings/motifTools/request"
	"path/filepath"
	"testing"
	"time"
)

func TestStore(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	keys, err := s.Keys()
	if err != nil || len(keys) != 0 {
		t.Errorf("expected empty store, got %v %v", keys, err)
	}
	if _, err = s.Load("motifs-20200612_222635.000000"); err == nil {
		t.Error("expected error loading from an empty store")
	}

	c := request.Defaults(request.CommandMotifs)
	c.InputFiles = []string{"a.vcf", "b.vcf"}
	c.Genome = "hg38.fa"
	first := request.NewRecord(c, time.Date(2020, 6, 12, 22, 26, 35, 0, time.UTC))
	second := request.NewRecord(request.Defaults(request.CommandRank), time.Date(2020, 6, 12, 22, 26, 36, 0, time.UTC))

	for _, r := range []request.Record{second, first} {
		if _, err = s.Save(r); err != nil {
			t.Fatal(err)
		}
	}

	keys, err = s.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 || keys[0] != "motifs-20200612_222635.000000" || keys[1] != "rank-20200612_222636.000000" {
		t.Errorf("unexpected keys %v", keys)
	}

	// same second, different run
	third := request.NewRecord(request.Defaults(request.CommandMotifs), time.Date(2020, 6, 12, 22, 26, 35, 500000000, time.UTC))
	if key, err := s.Save(third); err != nil || key != "motifs-20200612_222635.500000" {
		t.Errorf("expected a separate key for a run in the same second, got %s %v", key, err)
	}
	if _, err = s.Save(first); !errors.Is(err, ErrExists) {
		t.Errorf("expected ErrExists saving a key twice, got %v", err)
	}
	if r, err := s.Load(first.Key()); err != nil || r.Genome == nil || *r.Genome != "hg38.fa" {
		t.Errorf("first record changed after a refused save: %+v %v", r, err)
	}

	r, err := s.Load(first.Key())
	if err != nil {
		t.Fatal(err)
	}
	out := request.FromRecord(r).Normalize()
	if out.Genome != "hg38.fa" || len(out.InputFiles) != 2 || out.Command != request.CommandMotifs {
		t.Errorf("unexpected replayed config %+v", out)
	}
}
