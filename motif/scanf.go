package motif

import (
	"github.com/dasnellings/motifTools/iupac"
	"regexp"
	"strings"
)

// shorthand matches patterns like A[C>T]G: a prefix and suffix of codes around a bracketed substitution.
var shorthand = regexp.MustCompile(
	`([` + iupac.Letters + `]*)\[([` + iupac.Canonical + `])>([` + iupac.Letters + `])\]([` + iupac.Letters + `]*)`)

// Scanf recognizes motif shorthand such as T[C>K]W and returns it as a one element motif list.
// The input is case insensitive. An empty list is returned when the shorthand cannot be
// parsed or when ref and alt are the same code.
func Scanf(s string) []Motif {
	g := shorthand.FindStringSubmatch(strings.ToUpper(s))
	if g == nil {
		return nil
	}
	prefix, ref, alt, suffix := g[1], g[2], g[3], g[4]
	if ref == alt {
		return nil
	}
	return []Motif{{
		Name:     "Custom motif",
		Logo:     g[0],
		Motif:    prefix + ref + suffix,
		Position: len(prefix),
		Ref:      ref,
		Alt:      alt,
	}}
}
