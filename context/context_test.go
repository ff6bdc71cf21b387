package context

import (
	"fmt"
	"github.com/dasnellings/motifTools/maf"
	"github.com/dasnellings/motifTools/mutation"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/vcf"
	"strings"
	"testing"
)

// fakeReference serves sequences from memory.
type fakeReference map[string]string

func (f fakeReference) Seek(chrom string, start, end int) ([]dna.Base, error) {
	seq, found := f[chrom]
	if !found {
		return nil, fmt.Errorf("unknown chromosome %s", chrom)
	}
	if start < 0 || end > len(seq) || start > end {
		return nil, fmt.Errorf("%s:%d-%d out of range", chrom, start, end)
	}
	return dna.StringToBases(seq[start:end]), nil
}

//                  123456789012345
var testRef = fakeReference{"chr1": "GGCATcAGGCTTACG"}

func TestWindow(t *testing.T) {
	ctx, err := Window(testRef, "chr1", 6, 2)
	if err != nil {
		t.Fatal(err)
	}
	if mutation.Bases(ctx) != "ATCAG" {
		t.Errorf("expected ATCAG, got %s", mutation.Bases(ctx))
	}
	if ctx[0].Pos != 4 || ctx[4].Pos != 8 || ctx[2].Strand != '+' {
		t.Errorf("unexpected coordinates %+v", ctx)
	}

	if _, err = Window(testRef, "chr1", 2, 2); err == nil {
		t.Error("expected error for window before chromosome start")
	}
	if _, err = Window(testRef, "chr1", 14, 2); err == nil {
		t.Error("expected error for window past chromosome end")
	}
}

func TestNew(t *testing.T) {
	m, err := New(testRef, "chr1", 10, "c", "a", '-', 1)
	if err != nil {
		t.Fatal(err)
	}
	if m.Ref != "C" || m.Alt != "A" || m.Radius() != 1 || mutation.Bases(m.Context) != "GCT" {
		t.Errorf("unexpected mutation %+v", m)
	}
	for i := range m.Context {
		if m.Context[i].Strand != '-' {
			t.Errorf("expected transcript strand on every flank, got %c", m.Context[i].Strand)
		}
	}

	if _, err = New(testRef, "chr1", 10, "A", "G", '+', 1); err == nil {
		t.Error("expected error for reference mismatch")
	}
	if _, err = New(testRef, "chr1", 10, "CT", "C", '+', 1); err == nil {
		t.Error("expected error for indel")
	}
}

func TestFromVcf(t *testing.T) {
	v := vcf.Vcf{Chr: "chr1", Pos: 6, Ref: "C", Alt: []string{"T"}, Info: "Strand=-"}
	m, err := FromVcf(v, testRef, 1, true)
	if err != nil {
		t.Fatal(err)
	}
	if m.Strand != '-' || m.Pos != 6 {
		t.Errorf("unexpected mutation %+v", m)
	}

	m, err = FromVcf(v, testRef, 1, false)
	if err != nil || m.Strand != '+' {
		t.Errorf("expected plus strand when strand is not considered, got %+v %v", m, err)
	}

	v.Info = "."
	if _, err = FromVcf(v, testRef, 1, true); err == nil {
		t.Error("expected error for missing strand annotation")
	}
}

func TestLoadVcf(t *testing.T) {
	samples, stats := LoadVcf([]string{"testdata/sampleA.vcf"}, testRef, 2, true)
	if stats.Loaded != 2 || stats.Skipped != 4 {
		t.Errorf("expected 2 loaded and 4 skipped, got %s", stats)
	}
	muts := samples["sampleA"]
	if len(muts) != 2 {
		t.Fatalf("expected 2 mutations for sampleA, got %d", len(muts))
	}
	if muts[0].Pos != 6 || muts[0].Strand != '+' || muts[1].Pos != 10 || muts[1].Strand != '-' {
		t.Errorf("unexpected mutations %+v", muts)
	}
}

func TestLoadMaf(t *testing.T) {
	samples, stats, err := LoadMaf("../maf/testdata/small.maf", testRef, 2)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Loaded != 2 || stats.Skipped != 1 {
		t.Errorf("expected 2 loaded and 1 skipped, got %s", stats)
	}
	if len(samples["sampleA"]) != 1 || len(samples["sampleB"]) != 1 || samples["sampleB"][0].Strand != '-' {
		t.Errorf("unexpected samples %+v", samples)
	}

	if _, _, err = LoadMaf("../maf/testdata/noStart.maf", testRef, 2); err == nil {
		t.Error("expected error from malformed maf")
	}
}

func TestFromMaf(t *testing.T) {
	r := maf.Record{Sample: "s", Chrom: "chr1", Pos: 6, Strand: '+', Ref: "C", Alt: "T"}
	m, err := FromMaf(r, testRef, 0)
	if err != nil || mutation.Bases(m.Context) != "C" {
		t.Errorf("unexpected mutation %+v %v", m, err)
	}
}

func TestSampleName(t *testing.T) {
	for in, out := range map[string]string{
		"dir/sampleA.vcf":    "sampleA",
		"sampleB.vcf.gz":     "sampleB",
		"/abs/path/sample.C": "sample.C",
	} {
		if SampleName(in) != out {
			t.Errorf("%s: expected %s, got %s", in, out, SampleName(in))
		}
	}
}

func TestFastaReference(t *testing.T) {
	ref, err := OpenReference("testdata/ref.fa")
	if err != nil {
		t.Fatal(err)
	}
	defer ref.Close()

	ctx, err := Window(ref, "chr1", 6, 2)
	if err != nil {
		t.Fatal(err)
	}
	if mutation.Bases(ctx) != "ATCAG" {
		t.Errorf("expected ATCAG, got %s", mutation.Bases(ctx))
	}
	if _, err = ref.Seek("chr1", 12, 16); err == nil {
		t.Error("expected error seeking past the end of chr1")
	}
	if _, err = ref.Seek("chrX", 0, 1); err == nil || !strings.HasSuffix(err.Error(), "which has chr1") {
		t.Errorf("expected unknown chromosome error naming chr1, got %v", err)
	}
}
