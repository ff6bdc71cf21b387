package fai

import "testing"

func TestReadIndex(t *testing.T) {
	idx, err := ReadIndex("testdata/test.fa.fai")
	if err != nil {
		t.Fatal(err)
	}
	if l, found := idx.Len("chr2"); !found || l != 1000 {
		t.Errorf("expected chr2 length 1000, got %d %v", l, found)
	}
	if _, found := idx.Len("chrX"); found {
		t.Error("chrX should not be in the index")
	}
	names := idx.Names()
	if len(names) != 2 || names[0] != "chr1" || names[1] != "chr2" {
		t.Errorf("unexpected names %v", names)
	}
	if idx.String() != "chr1\t15\t6\t15\t16\nchr2\t1000\t28\t60\t61\n" {
		t.Errorf("unexpected index string %q", idx.String())
	}

	if _, err = ReadIndex("testdata/bad.fa.fai"); err == nil {
		t.Error("expected error for malformed index")
	}
}
