// Package iupac holds the nucleotide and ambiguity code tables used to match motifs against reference sequence.
package iupac

import (
	"github.com/op/go-logging"
	"github.com/vertgenlab/gonomics/dna"
	"strings"
)

var log = logging.MustGetLogger("iupac")

func init() {
	logging.SetLevel(logging.WARNING, "iupac")
}

// Code is the set of canonical bases matched by a nucleotide or ambiguity code.
// Bit 0 is A, bit 1 is C, bit 2 is G, bit 3 is T.
type Code uint8

const (
	A Code = 1 << 0
	C Code = 1 << 1
	G Code = 1 << 2
	T Code = 1 << 3

	W = A | T
	S = C | G
	M = A | C
	K = G | T
	R = A | G
	Y = C | T
	B = C | G | T
	D = A | G | T
	H = A | C | T
	V = A | C | G
	N = A | C | G | T
)

// Letters lists all 15 recognized codes.
const Letters = "ACGTWSMKRYBDHVN"

// Canonical lists the four canonical bases.
const Canonical = "ACGT"

var letterToCode = map[byte]Code{
	'A': A, 'C': C, 'G': G, 'T': T,
	'W': W, 'S': S, 'M': M, 'K': K, 'R': R, 'Y': Y,
	'B': B, 'D': D, 'H': H, 'V': V, 'N': N,
}

var codeToLetter = map[Code]byte{
	A: 'A', C: 'C', G: 'G', T: 'T',
	W: 'W', S: 'S', M: 'M', K: 'K', R: 'R', Y: 'Y',
	B: 'B', D: 'D', H: 'H', V: 'V', N: 'N',
}

// Parse returns the Code for a single letter. Lower case letters are accepted.
func Parse(b byte) (Code, bool) {
	if b >= 'a' && b <= 'z' {
		b -= 'a' - 'A'
	}
	c, ok := letterToCode[b]
	return c, ok
}

// MustParse is Parse for letters known at compile time. Unknown letters panic.
func MustParse(b byte) Code {
	c, ok := Parse(b)
	if !ok {
		log.Panicf("unrecognized nucleotide code: %q", b)
	}
	return c
}

// ParseString converts every letter of s to a Code.
func ParseString(s string) ([]Code, bool) {
	ans := make([]Code, len(s))
	var ok bool
	for i := 0; i < len(s); i++ {
		if ans[i], ok = Parse(s[i]); !ok {
			return nil, false
		}
	}
	return ans, true
}

// String returns the single letter for c, or "?" when c is empty.
func (c Code) String() string {
	if l, ok := codeToLetter[c]; ok {
		return string(l)
	}
	return "?"
}

// Bases returns the canonical bases matched by c in ACGT order.
func (c Code) Bases() string {
	var s strings.Builder
	for i := 0; i < len(Canonical); i++ {
		if c&(1<<i) != 0 {
			s.WriteByte(Canonical[i])
		}
	}
	return s.String()
}

// Complement swaps A with T and C with G, so K becomes M, R becomes Y, B becomes V, D becomes H.
// W, S and N map to themselves.
func (c Code) Complement() Code {
	return (c&A)<<3 | (c&T)>>3 | (c&C)<<1 | (c&G)>>1
}

// Contains reports whether the reference base b is matched by c.
// N, gaps and anything else that is not a defined base never match.
func (c Code) Contains(b dna.Base) bool {
	switch dna.ToUpper(b) {
	case dna.A:
		return c&A != 0
	case dna.C:
		return c&C != 0
	case dna.G:
		return c&G != 0
	case dna.T:
		return c&T != 0
	default:
		return false
	}
}

// ContainsLetter reports whether the canonical base letter l is matched by c.
func (c Code) ContainsLetter(l byte) bool {
	switch l {
	case 'A', 'a':
		return c&A != 0
	case 'C', 'c':
		return c&C != 0
	case 'G', 'g':
		return c&G != 0
	case 'T', 't':
		return c&T != 0
	default:
		return false
	}
}

// Orientation selects which of the two ref/alt matching tables applies to a mutation.
type Orientation int

const (
	// Forward evaluates the window as given (reference strand).
	Forward Orientation = iota
	// Reverse evaluates the reverse complement of the window.
	Reverse
)

func (o Orientation) String() string {
	if o == Reverse {
		return "reverse"
	}
	return "forward"
}

// Targets returns the ref and alt sets an observed substitution must fall in for the given orientation.
func Targets(ref, alt Code, o Orientation) (Code, Code) {
	if o == Reverse {
		return ref.Complement(), alt.Complement()
	}
	return ref, alt
}
