package motif

import (
	"fmt"
	"github.com/dasnellings/motifTools/contingency"
	"github.com/dasnellings/motifTools/mutation"
	"github.com/dasnellings/motifTools/strand"
	"github.com/op/go-logging"
	"math"
	"strings"
	"text/tabwriter"
)

// significance is the p-value both tests must fall under before a mutation load is estimated.
const significance = 0.05

// Enrichment summarizes one motif on one strand of one sample.
// The four Bases*Mutated* values carry the Haldane-Anscombe correction (+0.5).
type Enrichment struct {
	Enrichment   float64
	PValueFisher float64
	PValueChi2   float64
	MutationLoad int // excess mutations attributable to the motif, rounded up

	BasesMutatedInMotif       float64
	BasesMutatedNotInMotif    float64
	BasesInMotif              int
	BasesNotInMotif           int
	BasesNotMutatedInMotif    float64
	BasesNotMutatedNotInMotif float64
	TotalMutations            int
}

// Table returns the corrected contingency table the tests were run on.
func (e Enrichment) Table() contingency.Table {
	return contingency.Table{
		A: e.BasesMutatedNotInMotif,
		B: e.BasesMutatedInMotif,
		C: e.BasesNotMutatedNotInMotif,
		D: e.BasesNotMutatedInMotif,
	}
}

// Enrich scans the windows of all mutations of a sample for motif m on strand s and tests
// whether mutations fall in the motif more often than in other ref compatible sites.
// radius is the window radius w of the 2w+1 long contexts.
func Enrich(mutations []mutation.Mutation, m Motif, radius int, s strand.Strand) Enrichment {
	if radius < 0 {
		log.Panicf("window radius must be >= 0, found %d", radius)
	}
	c := m.compile()

	t := newTally()
	for i := range mutations {
		t.add(mutations[i], c, radius, s.Orient(mutations[i].Strand))
	}

	motifMutationCount := len(t.mutatedMotifs)
	mutationCount := t.mutatedBases.countExcept(t.mutatedMotifs)
	motifCount := len(t.motifs)
	refCount := t.bases.countExcept(t.motifs)
	statMotifCount := t.motifs.countExcept(t.mutatedMotifs)
	statRefCount := t.bases.countExcept(t.motifs, t.mutatedBases)

	raw := contingency.Table{
		A: float64(mutationCount),
		B: float64(motifMutationCount),
		C: float64(statRefCount),
		D: float64(statMotifCount),
	}
	table := raw.Haldane()

	ans := Enrichment{
		Enrichment:                table.OddsRatio(),
		PValueFisher:              contingency.FisherLess(table),
		PValueChi2:                contingency.ChiSquarePValue(table),
		BasesMutatedInMotif:       table.B,
		BasesMutatedNotInMotif:    table.A,
		BasesInMotif:              motifCount,
		BasesNotInMotif:           refCount,
		BasesNotMutatedInMotif:    table.D,
		BasesNotMutatedNotInMotif: table.C,
		TotalMutations:            len(mutations),
	}
	ans.MutationLoad = mutationLoad(ans)

	if log.IsEnabledFor(logging.DEBUG) {
		log.Debugf("\n%s", debugTable(m, ans))
	}
	return ans
}

// mutationLoad estimates the number of mutations in the motif in excess of a uniform background.
func mutationLoad(e Enrichment) int {
	if e.Enrichment <= 1 || e.PValueFisher >= significance || e.PValueChi2 >= significance {
		return 0
	}
	load := e.BasesMutatedInMotif * (e.Enrichment - 1) / e.Enrichment
	return int(math.Ceil(load))
}

func debugTable(m Motif, e Enrichment) string {
	s := new(strings.Builder)
	w := tabwriter.NewWriter(s, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "\t'%s>%s' mutation\tno '%s>%s' mutation\t\n", m.Ref, m.Alt, m.Ref, m.Alt)
	fmt.Fprintf(w, "'%s' motif\t%g\t%g\t\n", m.Motif, e.BasesMutatedInMotif, e.BasesNotMutatedInMotif)
	fmt.Fprintf(w, "no '%s' motif\t%g\t%g\t\n", m.Motif, e.BasesMutatedNotInMotif, e.BasesNotMutatedNotInMotif)
	w.Flush()
	fmt.Fprintf(s, "enrichment=%.4g fisher=%.4g chi2=%.4g load=%d total=%d",
		e.Enrichment, e.PValueFisher, e.PValueChi2, e.MutationLoad, e.TotalMutations)
	return s.String()
}
