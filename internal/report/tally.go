package report

import (
	"path/filepath"

	"notesort/internal/domain"
)

// Failure is a per-item error kept for the summary.
type Failure struct {
	Path string
	Err  error
}

// Tally counts events of an extraction or organisation run.
type Tally struct {
	// extraction
	Fragments int
	Simple    int
	Nested    int
	Extracted int
	Unique    int
	Replaced  int
	Saved     int

	// organisation
	Skipped         int
	Versioned       int
	Added           int
	VersionsAddedTo []string
	CorpusErrors    int

	Failures []Failure

	versioned map[string]struct{}
}

// NewTally returns an empty Tally.
func NewTally() *Tally { return &Tally{} }

func (t *Tally) Emit(ev domain.Event) {
	switch ev.Kind {
	case domain.EventFragmentParsed:
		t.Fragments++
		if ev.Origin == domain.OriginNested {
			t.Nested++
		} else {
			t.Simple++
		}
	case domain.EventNoteExtracted:
		t.Extracted++
	case domain.EventNoteDeduplicated:
		switch ev.Result {
		case "inserted":
			t.Unique++
		case "replaced":
			t.Replaced++
		}
	case domain.EventNoteSaved:
		t.Saved++
	case domain.EventCorpusEntryFailed:
		t.CorpusErrors++
	case domain.EventCandidateSkipped:
		t.Skipped++
	case domain.EventCandidateVersion:
		t.Versioned++
		t.addVersioned(filepath.Base(ev.Match))
	case domain.EventCandidateAdded:
		t.Added++
	case domain.EventCandidateFailed, domain.EventNoteSaveFailed:
		t.Failures = append(t.Failures, Failure{Path: ev.Path, Err: ev.Err})
	}
}

func (t *Tally) addVersioned(name string) {
	if t.versioned == nil {
		t.versioned = make(map[string]struct{})
	}
	if _, ok := t.versioned[name]; ok {
		return
	}
	t.versioned[name] = struct{}{}
	t.VersionsAddedTo = append(t.VersionsAddedTo, name)
}

// Processed is the number of candidates that reached a decision.
func (t *Tally) Processed() int { return t.Skipped + t.Versioned + t.Added }
