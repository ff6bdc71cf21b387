// Package mutation defines point mutations together with the reference sequence that flanks them.
package mutation

import (
	"fmt"
	"github.com/vertgenlab/gonomics/dna"
)

// Site is a genomic position. It is comparable and is used as a set key when
// the same base is reached from the overlapping windows of neighbouring mutations.
type Site struct {
	Chrom string
	Pos   int
}

func (s Site) String() string {
	return fmt.Sprintf("%s:%d", s.Chrom, s.Pos)
}

// Flank is one base of the window surrounding a mutation.
type Flank struct {
	Chrom  string
	Pos    int // 1-based
	Base   dna.Base
	Strand byte // '+' as read from the reference, '-' once reverse complemented
}

// Site returns the genomic position of f.
func (f Flank) Site() Site {
	return Site{Chrom: f.Chrom, Pos: f.Pos}
}

// Mutation is an observed point mutation with its flanking reference sequence.
// Context has odd length 2w+1 and Context[w] is the mutated position.
type Mutation struct {
	Chrom   string
	Pos     int // 1-based
	Strand  byte
	Ref     string
	Alt     string
	Context []Flank
}

// Site returns the genomic position of m.
func (m Mutation) Site() Site {
	return Site{Chrom: m.Chrom, Pos: m.Pos}
}

// IsSubstitution reports whether m is a single base substitution.
func (m Mutation) IsSubstitution() bool {
	return len(m.Ref) == 1 && len(m.Alt) == 1 && m.Ref != m.Alt
}

// Radius returns w for a context of length 2w+1.
func (m Mutation) Radius() int {
	return (len(m.Context) - 1) / 2
}

// Samples maps sample names to their mutations.
type Samples map[string][]Mutation

// Count returns the total number of mutations over all samples.
func (s Samples) Count() int {
	var ans int
	for _, muts := range s {
		ans += len(muts)
	}
	return ans
}

// NewContext builds a plus strand window from consecutive reference bases starting at the 1-based position start.
func NewContext(chrom string, start int, seq []dna.Base) []Flank {
	ans := make([]Flank, len(seq))
	for i := range seq {
		ans[i] = Flank{Chrom: chrom, Pos: start + i, Base: seq[i], Strand: '+'}
	}
	return ans
}

// ReverseComplement returns a new window in reverse order with every base complemented and the strand set to '-'.
// Genomic coordinates are kept so that sites found on either strand share keys.
func ReverseComplement(seq []Flank) []Flank {
	ans := make([]Flank, len(seq))
	for i := range seq {
		ans[len(seq)-1-i] = Flank{
			Chrom:  seq[i].Chrom,
			Pos:    seq[i].Pos,
			Base:   complementBase(seq[i].Base),
			Strand: '-',
		}
	}
	return ans
}

// complementBase complements defined bases and leaves anything else (N, gaps) unchanged.
func complementBase(b dna.Base) dna.Base {
	if !dna.DefineBase(b) {
		return b
	}
	return dna.ComplementSingleBase(b)
}

// Bases returns the bases of a window as a string, useful for logs and tests.
func Bases(seq []Flank) string {
	b := make([]dna.Base, len(seq))
	for i := range seq {
		b[i] = seq[i].Base
	}
	return dna.BasesToString(b)
}
