// Package contingency implements the tests of independence run on 2x2 tables of mutation counts.
package contingency

import (
	"fmt"
	"gonum.org/v1/gonum/stat/combin"
	"gonum.org/v1/gonum/stat/distuv"
	"math"
	"strings"
)

// Table is a 2x2 contingency table
//
//	[[A, B],
//	 [C, D]]
type Table struct {
	A, B, C, D float64
}

// Haldane returns a copy of t with 0.5 added to every cell (Haldane-Anscombe correction).
func (t Table) Haldane() Table {
	return Table{A: t.A + 0.5, B: t.B + 0.5, C: t.C + 0.5, D: t.D + 0.5}
}

// OddsRatio returns (B/A) / (D/C), the ratio of the second column to the first
// across rows, or 0 when any denominator is zero.
func (t Table) OddsRatio() float64 {
	if t.A == 0 || t.C == 0 || t.D == 0 {
		return 0
	}
	ans := (t.B / t.A) / (t.D / t.C)
	if math.IsNaN(ans) || math.IsInf(ans, 0) {
		return 0
	}
	return ans
}

func (t Table) rows() (float64, float64) {
	return t.A + t.B, t.C + t.D
}

func (t Table) cols() (float64, float64) {
	return t.A + t.C, t.B + t.D
}

// degenerate reports whether any row or column sums to zero.
func (t Table) degenerate() bool {
	r1, r2 := t.rows()
	c1, c2 := t.cols()
	return r1 == 0 || r2 == 0 || c1 == 0 || c2 == 0
}

// String renders the table for debug logs.
func (t Table) String() string {
	s := new(strings.Builder)
	fmt.Fprintf(s, "[[%g\t%g]\n", t.A, t.B)
	fmt.Fprintf(s, " [%g\t%g]]", t.C, t.D)
	return s.String()
}

// FisherLess is the one-sided Fisher exact test with alternative "less": the probability,
// under the hypergeometric null with the table margins fixed, of observing a top-left
// cell no larger than A. Cells are truncated to integers before the test.
// A table with an empty margin returns 1.
func FisherLess(t Table) float64 {
	a, b, c, d := trunc(t.A), trunc(t.B), trunc(t.C), trunc(t.D)
	it := Table{A: float64(a), B: float64(b), C: float64(c), D: float64(d)}
	if it.degenerate() {
		return 1
	}

	n := a + b + c + d
	col1 := a + c
	row1 := a + b
	lo := row1 - (b + d)
	if lo < 0 {
		lo = 0
	}

	logTotal := combin.LogGeneralizedBinomial(float64(n), float64(row1))
	var p float64
	for x := lo; x <= a; x++ {
		p += math.Exp(combin.LogGeneralizedBinomial(float64(col1), float64(x)) +
			combin.LogGeneralizedBinomial(float64(n-col1), float64(row1-x)) - logTotal)
	}
	return clamp(p)
}

// ChiSquare is Pearson's chi-squared test of independence with Yates' continuity correction,
// as used for tables with one degree of freedom. It returns the statistic and its p-value.
// The test is undefined when an expected frequency is zero, in which case ok is false.
func ChiSquare(t Table) (stat, p float64, ok bool) {
	if t.degenerate() {
		return 0, 1, false
	}
	r1, r2 := t.rows()
	c1, c2 := t.cols()
	n := r1 + r2

	observed := [4]float64{t.A, t.B, t.C, t.D}
	expected := [4]float64{r1 * c1 / n, r1 * c2 / n, r2 * c1 / n, r2 * c2 / n}

	var diff float64
	for i := range observed {
		diff = math.Abs(observed[i] - expected[i])
		diff -= math.Min(0.5, diff)
		stat += diff * diff / expected[i]
	}

	dist := distuv.ChiSquared{K: 1}
	return stat, clamp(dist.Survival(stat)), true
}

// ChiSquarePValue returns the p-value of ChiSquare, or 1 when the test is undefined.
func ChiSquarePValue(t Table) float64 {
	_, p, ok := ChiSquare(t)
	if !ok {
		return 1
	}
	return p
}

func trunc(f float64) int {
	if f < 0 {
		return 0
	}
	return int(f)
}

func clamp(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return 1
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}
