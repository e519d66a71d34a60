// Package dedup collapses extracted notes that share a name.
package dedup

import (
	"unicode/utf8"

	"notesort/internal/domain"
)

// Result tells what Add did with a note.
type Result int

const (
	Inserted Result = iota
	Replaced
	Discarded
)

func (r Result) String() string {
	switch r {
	case Inserted:
		return "inserted"
	case Replaced:
		return "replaced"
	default:
		return "discarded"
	}
}

// Set is an insertion-ordered name → note map that keeps the longest text
// per name. The zero value is ready to use.
type Set struct {
	index map[string]int
	notes []domain.ExtractedNote
}

// New returns an empty Set.
func New() *Set { return &Set{} }

// Add inserts n, or replaces the stored note with the same name when n's
// text is strictly longer. A replacement keeps the original position.
func (s *Set) Add(n domain.ExtractedNote) Result {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	i, ok := s.index[n.Name]
	if !ok {
		s.index[n.Name] = len(s.notes)
		s.notes = append(s.notes, n)
		return Inserted
	}
	if utf8.RuneCountInString(n.Text) > utf8.RuneCountInString(s.notes[i].Text) {
		s.notes[i] = n
		return Replaced
	}
	return Discarded
}

// Len returns the number of unique names.
func (s *Set) Len() int { return len(s.notes) }

// Entries returns a copy of the retained notes in insertion order.
func (s *Set) Entries() []domain.ExtractedNote {
	out := make([]domain.ExtractedNote, len(s.notes))
	copy(out, s.notes)
	return out
}
