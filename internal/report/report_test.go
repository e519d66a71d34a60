package report

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"notesort/internal/domain"
)

func TestTally_Organize(t *testing.T) {
	tl := NewTally()
	events := []domain.Event{
		{Kind: domain.EventCandidateSkipped, Path: "a.txt", Score: 100},
		{Kind: domain.EventCandidateVersion, Path: "b.txt", Match: "p/Tekst/story-001.txt"},
		{Kind: domain.EventCandidateVersion, Path: "c.txt", Match: "p/Tekst/story-001.txt"},
		{Kind: domain.EventCandidateVersion, Path: "d.txt", Match: "q/Tekst/other.txt"},
		{Kind: domain.EventCandidateAdded, Path: "e.txt"},
		{Kind: domain.EventCandidateFailed, Path: "f.txt", Err: errors.New("denied")},
		{Kind: domain.EventCandidateScored, Path: "a.txt"},
	}
	for _, ev := range events {
		tl.Emit(ev)
	}
	assert.Equal(t, 1, tl.Skipped)
	assert.Equal(t, 3, tl.Versioned)
	assert.Equal(t, 1, tl.Added)
	assert.Equal(t, 5, tl.Processed())
	assert.Equal(t, []string{"story-001.txt", "other.txt"}, tl.VersionsAddedTo)
	assert.Len(t, tl.Failures, 1)

	out := RenderOrganize(tl)
	assert.Contains(t, out, "Candidates processed")
	assert.Contains(t, out, "story-001.txt")
	assert.Contains(t, out, "denied")
}

func TestTally_Extract(t *testing.T) {
	tl := NewTally()
	Multi{tl, nil}.Emit(domain.Event{Kind: domain.EventFragmentParsed, Origin: domain.OriginNested})
	tl.Emit(domain.Event{Kind: domain.EventFragmentParsed, Origin: domain.OriginSimple})
	for _, r := range []string{"inserted", "replaced", "discarded", "inserted"} {
		tl.Emit(domain.Event{Kind: domain.EventNoteExtracted})
		tl.Emit(domain.Event{Kind: domain.EventNoteDeduplicated, Result: r})
	}
	tl.Emit(domain.Event{Kind: domain.EventNoteSaved})
	assert.Equal(t, 2, tl.Fragments)
	assert.Equal(t, 1, tl.Nested)
	assert.Equal(t, 1, tl.Simple)
	assert.Equal(t, 4, tl.Extracted)
	assert.Equal(t, 2, tl.Unique)
	assert.Equal(t, 1, tl.Replaced)

	out := RenderExtract(tl, "out")
	assert.Contains(t, out, "out")
	assert.Contains(t, out, "Unique texts")
	assert.Contains(t, out, "replaced by a longer text")
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	s := NewLogSink(logger)

	s.Emit(domain.Event{Kind: domain.EventCandidateScored, Path: "hidden.txt"})
	s.Emit(domain.Event{Kind: domain.EventCandidateVersion, Path: "b.txt", Score: 55, Target: "p/story-002.txt"})

	out := buf.String()
	assert.NotContains(t, out, "hidden.txt")
	assert.Contains(t, out, "event=candidate_versioned")
	assert.Contains(t, out, "score=55")
	assert.Contains(t, out, "target=p/story-002.txt")
}
