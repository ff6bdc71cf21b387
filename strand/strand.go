package strand

import (
	"fmt"
	"github.com/dasnellings/motifTools/iupac"
	"github.com/vertgenlab/gonomics/vcf"
	"strings"
)

// Strand selects the strand a motif is searched on.
type Strand byte

const (
	Plus  Strand = '+'
	Minus Strand = '-'
	// Transcript orients every mutation by its own transcript strand: windows of
	// minus strand mutations are reverse complemented, plus strand windows are used as is.
	Transcript Strand = '='
)

func (s Strand) String() string {
	return string(s)
}

// ParseSelector converts a strand selector to the list of strands to evaluate.
// "" and "*" select both strands. Otherwise every character must be '+', '-' or '='.
func ParseSelector(s string) ([]Strand, error) {
	if s == "" || s == "*" {
		return []Strand{Plus, Minus}, nil
	}
	ans := make([]Strand, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch Strand(s[i]) {
		case Plus, Minus, Transcript:
			ans = append(ans, Strand(s[i]))
		default:
			return nil, fmt.Errorf("unrecognized strand selector %q: must be '+', '-', '*' or '='", s)
		}
	}
	return ans, nil
}

// Orient returns how a mutation on the given transcript strand is scanned when searching strand s.
// A mutation whose transcript strand equals the searched strand is scanned forward,
// any other is reverse complemented.
func (s Strand) Orient(transcript byte) iupac.Orientation {
	target := s
	if s == Transcript {
		target = Plus
	}
	if transcript == byte(target) {
		return iupac.Forward
	}
	return iupac.Reverse
}

// FromInfo reads the transcript strand from the Strand key of the VCF INFO field.
func FromInfo(v vcf.Vcf) (byte, error) {
	for _, field := range strings.Split(v.Info, ";") {
		key, val, found := strings.Cut(field, "=")
		if key != "Strand" {
			continue
		}
		if !found || (val != "+" && val != "-") {
			return 0, fmt.Errorf("malformed strand in vcf info field: %s:%d %s", v.Chr, v.Pos, v.Info)
		}
		return val[0], nil
	}
	return 0, fmt.Errorf("told to consider strand, but Strand not found in info field: %s:%d", v.Chr, v.Pos)
}
