package motif

import (
	"github.com/dasnellings/motifTools/iupac"
	"github.com/dasnellings/motifTools/mutation"
)

// siteSet holds unique genomic sites. The same site is often reached from the
// overlapping windows of nearby mutations and must only be counted once.
type siteSet map[mutation.Site]struct{}

func (s siteSet) add(sites ...mutation.Site) {
	for i := range sites {
		s[sites[i]] = struct{}{}
	}
}

func (s siteSet) has(site mutation.Site) bool {
	_, found := s[site]
	return found
}

// countExcept returns the number of sites in s that are in none of the excluded sets.
func (s siteSet) countExcept(exclude ...siteSet) int {
	var ans int
	var excluded bool
	for site := range s {
		excluded = false
		for i := range exclude {
			if exclude[i].has(site) {
				excluded = true
				break
			}
		}
		if !excluded {
			ans++
		}
	}
	return ans
}

// findMotifs returns, for every slice of seq matching the whole motif, the site at position pos of the slice.
// These are sites compatible with the motif whether or not they are mutated.
func findMotifs(seq []mutation.Flank, c compiled, pos int) []mutation.Site {
	var ans []mutation.Site
	for i := 0; i+len(c.pattern) <= len(seq); i++ {
		if c.matchAt(seq, i) {
			ans = append(ans, seq[i+pos].Site())
		}
	}
	return ans
}

// findRefBases returns the sites of seq whose base is compatible with ref, restricted to the
// positions with flank on both sides for a motif of length motifLen mutated at pos.
// The upper bound is exclusive of the last full-flank position.
func findRefBases(seq []mutation.Flank, ref iupac.Code, motifLen, pos int) []mutation.Site {
	var ans []mutation.Site
	for i := pos; i < len(seq)-(motifLen-pos); i++ {
		if ref.Contains(seq[i].Base) {
			ans = append(ans, seq[i].Site())
		}
	}
	return ans
}

// isMutated reports whether m is a single base substitution from a base in ref to a base in alt.
func isMutated(m mutation.Mutation, ref, alt iupac.Code) bool {
	if !m.IsSubstitution() {
		return false
	}
	return ref.ContainsLetter(m.Ref[0]) && alt.ContainsLetter(m.Alt[0])
}

// tally collects the four site sets needed for the enrichment table of one (sample, motif, strand).
type tally struct {
	bases         siteSet // ref compatible sites
	motifs        siteSet // sites matching the full motif
	mutatedBases  siteSet // mutated sites matching ref>alt
	mutatedMotifs siteSet // mutated sites whose context matches the full motif
}

func newTally() *tally {
	return &tally{
		bases:         make(siteSet),
		motifs:        make(siteSet),
		mutatedBases:  make(siteSet),
		mutatedMotifs: make(siteSet),
	}
}

// add scans the window of m in orientation o. On the reverse orientation the window is
// reverse complemented and the mutated position of the motif is mirrored.
func (t *tally) add(m mutation.Mutation, c compiled, radius int, o iupac.Orientation) {
	seq := m.Context
	pos := c.position
	if o == iupac.Reverse {
		seq = mutation.ReverseComplement(m.Context)
		pos = len(c.pattern) - c.position - 1
	}

	t.bases.add(findRefBases(seq, c.ref, len(c.pattern), pos)...)
	t.motifs.add(findMotifs(seq, c, pos)...)

	ref, alt := iupac.Targets(c.ref, c.alt, o)
	if !isMutated(m, ref, alt) {
		return
	}
	t.mutatedBases.add(m.Site())

	start := radius - c.position
	end := start + len(c.pattern)
	if start < 0 || end > len(seq) {
		return
	}
	t.mutatedMotifs.add(findMotifs(seq[start:end], c, pos)...)
}
