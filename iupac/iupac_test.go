package iupac

import (
	"github.com/vertgenlab/gonomics/dna"
	"testing"
)

func TestComplementIsInvolution(t *testing.T) {
	for i := 0; i < len(Letters); i++ {
		c := MustParse(Letters[i])
		if c.Complement().Complement() != c {
			t.Errorf("complement of complement of %c is %s", Letters[i], c.Complement().Complement())
		}
		if c&^N != 0 {
			t.Errorf("%c matches bases outside ACGT", Letters[i])
		}
	}
}

func TestComplementPairs(t *testing.T) {
	pairs := []struct {
		in, out byte
	}{
		{'A', 'T'}, {'C', 'G'}, {'W', 'W'}, {'S', 'S'}, {'K', 'M'},
		{'R', 'Y'}, {'B', 'V'}, {'D', 'H'}, {'N', 'N'},
	}
	for _, p := range pairs {
		if got := MustParse(p.in).Complement().String(); got != string(p.out) {
			t.Errorf("complement of %c: expected %c, got %s", p.in, p.out, got)
		}
	}
}

func TestBases(t *testing.T) {
	tests := map[byte]string{'A': "A", 'W': "AT", 'K': "GT", 'B': "CGT", 'N': "ACGT", 'v': "ACG"}
	for l, expected := range tests {
		if got := MustParse(l).Bases(); got != expected {
			t.Errorf("%c: expected %s, got %s", l, expected, got)
		}
	}
	if _, ok := Parse('X'); ok {
		t.Error("X should not parse")
	}
}

func TestContains(t *testing.T) {
	if !Y.Contains(dna.C) || !Y.Contains(dna.LowerT) || Y.Contains(dna.A) {
		t.Error("problem matching Y")
	}
	if N.Contains(dna.N) {
		t.Error("an unknown reference base must not match N")
	}
	if !K.ContainsLetter('g') || K.ContainsLetter('C') || K.ContainsLetter('N') {
		t.Error("problem matching letters against K")
	}
}

func TestTargets(t *testing.T) {
	ref, alt := Targets(C, K, Forward)
	if ref != C || alt != K {
		t.Errorf("forward targets changed: %s %s", ref, alt)
	}
	ref, alt = Targets(C, K, Reverse)
	if ref != G || alt != M {
		t.Errorf("expected G>M on reverse, got %s>%s", ref, alt)
	}
}
