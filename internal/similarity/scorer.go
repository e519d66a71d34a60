// Package similarity defines text scorers used to match candidates
// against the corpus.
package similarity

import (
	"strings"

	"notesort/internal/domain"
)

// Scorer computes a similarity ratio in [0,100] between two texts.
// Implementations normalise their inputs with Normalize.
type Scorer = domain.Scorer

// Normalize lowercases text and collapses every whitespace run to a single
// space, trimming both ends.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
