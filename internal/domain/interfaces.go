package domain

import (
	"fmt"
	"io/fs"
)

// Origin tells which backup construct a note was extracted from.
type Origin string

const (
	OriginSimple Origin = "simple"
	OriginNested Origin = "nested"
)

// ExtractedNote is a candidate text pulled out of a backup fragment.
type ExtractedNote struct {
	Name     string
	Text     string
	Origin   Origin
	Folder   string // nested container title, empty for simple notes
	Fragment int
}

// CorpusEntry is an existing, already organized text file.
type CorpusEntry struct {
	Path    string
	Content string
	Folder  string
}

// MatchResult is the best corpus match for a candidate.
// Entry is nil when the corpus is empty or nothing scored above zero.
type MatchResult struct {
	Score float64
	Entry *CorpusEntry
}

// DecisionKind is the placement outcome for one candidate.
type DecisionKind string

const (
	DecisionSkip    DecisionKind = "skip"
	DecisionVersion DecisionKind = "version"
	DecisionNew     DecisionKind = "new"
)

// Decision is a tagged variant; Entry is set only for DecisionVersion.
type Decision struct {
	Kind  DecisionKind
	Entry *CorpusEntry
}

// Outcome records what happened to one candidate file during organisation.
type Outcome struct {
	Candidate string
	Match     MatchResult
	Decision  Decision
	Target    string // destination path, empty for skipped or failed candidates
	Err       error
}

// Failed reports whether the candidate could not be placed.
func (o Outcome) Failed() bool { return o.Err != nil }

// IOFailure wraps a storage error for a single artifact.
type IOFailure struct {
	Op   string
	Path string
	Err  error
}

func (e *IOFailure) Error() string { return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err) }

func (e *IOFailure) Unwrap() error { return e.Err }

// Storage is the file collaborator: plain UTF-8 text files addressed by path.
// Move never overwrites an existing destination.
type Storage interface {
	ReadText(path string) (string, error)
	WriteText(path, content string) error
	Move(src, dst string) error
	Delete(path string) error
	Exists(path string) (bool, error)
	MkdirAll(path string) error
	ReadDir(path string) ([]fs.DirEntry, error)
	WalkText(root string, fn func(path string) error) error
}

// Scorer computes a similarity ratio in [0,100] between two texts.
type Scorer interface {
	Name() string
	Score(a, b string) float64
}

// Index holds a read-only corpus snapshot and answers best-match queries.
type Index interface {
	Add(entries ...CorpusEntry)
	Len() int
	Best(candidate string) MatchResult
	Search(candidate string, topK int) []ScoredEntry
}

// ScoredEntry pairs a corpus entry with its score against a candidate.
type ScoredEntry struct {
	Entry CorpusEntry
	Score float64
}

// EventKind names a structured progress record.
type EventKind string

const (
	EventFragmentParsed    EventKind = "fragment_parsed"
	EventNoteExtracted     EventKind = "note_extracted"
	EventNoteDeduplicated  EventKind = "note_deduplicated"
	EventNoteSaved         EventKind = "note_saved"
	EventNoteSaveFailed    EventKind = "note_save_failed"
	EventCorpusEntryFailed EventKind = "corpus_entry_failed"
	EventCandidateScored   EventKind = "candidate_scored"
	EventCandidateSkipped  EventKind = "candidate_skipped"
	EventCandidateVersion  EventKind = "candidate_versioned"
	EventCandidateAdded    EventKind = "candidate_added"
	EventCandidateFailed   EventKind = "candidate_failed"
)

// Event is emitted by the services instead of printing.
type Event struct {
	Kind   EventKind
	Path   string // candidate, corpus or saved file
	Name   string
	Score  float64
	Match  string // matched corpus path, if any
	Target string
	Origin Origin
	Result string // dedup outcome: inserted, replaced or discarded
	Err    error
}

// EventSink receives progress events.
type EventSink interface {
	Emit(Event)
}
