// Package ratio scores texts by the share of characters covered by their
// longest matching blocks.
package ratio

import (
	"github.com/pmezard/go-difflib/difflib"

	"notesort/internal/similarity"
)

// Scorer implements similarity.Scorer.
//
// Score normalises both texts, then sums the sizes M of the blocks found by
// repeatedly taking the longest common substring and recursing on the
// pieces left and right of it. The result is 2*M/(len(a)+len(b))*100 over
// runes. Among equally long candidates the match starting leftmost in a,
// then earliest in b, wins. Two empty texts score 100.
type Scorer struct {
	// AutoJunk stops characters that make up more than 1% of a b of 200+
	// runes from seeding a match. They can still extend one.
	AutoJunk bool
}

var _ similarity.Scorer = (*Scorer)(nil)

// New creates a Scorer.
func New(autoJunk bool) *Scorer { return &Scorer{AutoJunk: autoJunk} }

// Name returns the identifier of this scorer.
func (s *Scorer) Name() string { return "ratio" }

// Score returns the similarity of a and b in [0,100].
func (s *Scorer) Score(a, b string) float64 {
	m := difflib.NewMatcherWithJunk(runes(similarity.Normalize(a)), runes(similarity.Normalize(b)), s.AutoJunk, nil)
	return m.Ratio() * 100
}

// runes splits s into one element per rune, the unit difflib compares.
func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
