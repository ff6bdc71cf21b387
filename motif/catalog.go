// Package motif finds enrichment of mutational sequence motifs (APOBEC, UV light, AID, ...)
// among the point mutations of a sample.
package motif

import (
	"github.com/dasnellings/motifTools/iupac"
	"github.com/dasnellings/motifTools/mutation"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("motif")

// Library output stays at warnings until a program installs its own backend and level.
func init() {
	logging.SetLevel(logging.WARNING, "motif")
}

// Motif describes a mutational signature as a short sequence pattern and the substitution at one of its positions.
type Motif struct {
	Name       string
	Logo       string // human readable pattern, e.g. T[C>K]W
	Motif      string // pattern over nucleotide and ambiguity codes, e.g. TCW
	Position   int    // 0-based index of the mutated base within Motif
	Ref        string // code matched before the mutation
	Alt        string // code matched after the mutation
	References string
}

// catalog is the curated list of known motifs. It is only handed out as a copy.
var catalog = [...]Motif{
	{
		Name:       "APOBEC1 and APOBEC3A/B",
		Logo:       "T[C>K]W",
		Motif:      "TCW",
		Position:   1,
		Ref:        "C",
		Alt:        "K",
		References: " Biochemistry  2011;76:131–46. Nat Immunol  2001;2:530–6. Biochim Biophys Acta  1992;1171:11–18",
	},
	{
		Name:       "APOBEC3G",
		Logo:       "C[C>K]R",
		Motif:      "CCR",
		Position:   1,
		Ref:        "C",
		Alt:        "K",
		References: " Biochemistry  2011;76:131–46",
	},
	{
		Name:       "Spontaneous G:C>A:T mutations",
		Logo:       "[C>T]G",
		Motif:      "CG",
		Position:   0,
		Ref:        "C",
		Alt:        "T",
		References: "Hum Genet  1988;78:151–5",
	},
	{
		Name:       "UV Light",
		Logo:       "Y[C>T]",
		Motif:      "YC",
		Position:   1,
		Ref:        "C",
		Alt:        "T",
		References: "JNCL Natl Cancer Inst (2018)",
	},
	{
		Name:       "Pol Eta",
		Logo:       "W[A>T]",
		Motif:      "WA",
		Position:   1,
		Ref:        "A",
		Alt:        "T",
		References: "Nat Genet  2013;45:970–6",
	},
	{
		Name:       "AID",
		Logo:       "W[R>S]C",
		Motif:      "WRC",
		Position:   1,
		Ref:        "R",
		Alt:        "S",
		References: "Nature  2003;424:103–7",
	},
}

// Catalog returns a copy of the curated motif list.
func Catalog() []Motif {
	ans := make([]Motif, len(catalog))
	copy(ans, catalog[:])
	return ans
}

// Lookup returns the catalog entry whose Logo or Name equals key.
func Lookup(key string) (Motif, bool) {
	for i := range catalog {
		if catalog[i].Logo == key || catalog[i].Name == key {
			return catalog[i], true
		}
	}
	return Motif{}, false
}

// compiled is a Motif converted to code sets, ready for scanning.
type compiled struct {
	pattern  []iupac.Code
	position int
	ref      iupac.Code
	alt      iupac.Code
}

// compile checks the invariants of m and converts it for scanning.
// Violations are programming errors and panic.
func (m Motif) compile() compiled {
	var ans compiled
	var ok bool
	if len(m.Ref) != 1 || len(m.Alt) != 1 {
		log.Panicf("ref and alt of motif %s must be single codes, found %q>%q", m.Logo, m.Ref, m.Alt)
	}
	if m.Position < 0 || m.Position >= len(m.Motif) {
		log.Panicf("position %d out of range for motif %s", m.Position, m.Motif)
	}
	if ans.pattern, ok = iupac.ParseString(m.Motif); !ok {
		log.Panicf("motif %s contains unrecognized codes", m.Motif)
	}
	ans.ref = iupac.MustParse(m.Ref[0])
	ans.alt = iupac.MustParse(m.Alt[0])
	if ans.ref == ans.alt {
		log.Panicf("motif %s should have different ref and alt", m.Logo)
	}
	ans.position = m.Position
	return ans
}

// matchAt reports whether the window slice starting at i matches the whole pattern.
func (c compiled) matchAt(seq []mutation.Flank, i int) bool {
	if i < 0 || i+len(c.pattern) > len(seq) {
		return false
	}
	for j := range c.pattern {
		if !c.pattern[j].Contains(seq[i+j].Base) {
			return false
		}
	}
	return true
}
