package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"notesort/internal/classify"
	"notesort/internal/domain"
)

// ErrSourceNotFound is returned when the candidate folder does not exist.
var ErrSourceNotFound = errors.New("source folder not found")

// Organizer files candidate texts against a fixed corpus snapshot.
type Organizer struct {
	storage    domain.Storage
	index      domain.Index
	thresholds classify.Thresholds
	sink       domain.EventSink
	logger     *slog.Logger
}

// NewOrganizer creates an Organizer. index must not be refreshed while a
// run is in progress; candidates filed by the run are not matched against.
func NewOrganizer(storage domain.Storage, index domain.Index, th classify.Thresholds, sink domain.EventSink, logger *slog.Logger) *Organizer {
	if sink == nil {
		sink = nopSink{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Organizer{storage: storage, index: index, thresholds: th, sink: sink, logger: logger}
}

// Run places every .txt file of sourceDir. Per-file failures are recorded
// on the returned outcomes; only unusable folders fail the run.
func (o *Organizer) Run(sourceDir, fallbackDir string) ([]domain.Outcome, error) {
	ok, err := o.storage.Exists(sourceDir)
	if err != nil {
		return nil, &domain.IOFailure{Op: "stat", Path: sourceDir, Err: err}
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, sourceDir)
	}
	if err := o.storage.MkdirAll(fallbackDir); err != nil {
		return nil, &domain.IOFailure{Op: "mkdir", Path: fallbackDir, Err: err}
	}
	candidates, err := o.candidates(sourceDir)
	if err != nil {
		return nil, err
	}
	o.logger.Info("organizing", "candidates", len(candidates), "corpus", o.index.Len())

	outcomes := make([]domain.Outcome, 0, len(candidates))
	for _, c := range candidates {
		outcomes = append(outcomes, o.Place(c, fallbackDir))
	}
	return outcomes, nil
}

func (o *Organizer) candidates(dir string) ([]string, error) {
	entries, err := o.storage.ReadDir(dir)
	if err != nil {
		return nil, &domain.IOFailure{Op: "list", Path: dir, Err: err}
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

// Place scores one candidate file and deletes or moves it accordingly.
func (o *Organizer) Place(candidate, fallbackDir string) domain.Outcome {
	out := domain.Outcome{Candidate: candidate}
	content, err := o.storage.ReadText(candidate)
	if err != nil {
		return o.failed(out, &domain.IOFailure{Op: "read", Path: candidate, Err: err})
	}

	out.Match = o.index.Best(content)
	o.traceMatches(candidate, content)
	scored := domain.Event{Kind: domain.EventCandidateScored, Path: candidate, Score: out.Match.Score}
	if out.Match.Entry != nil {
		scored.Match = out.Match.Entry.Path
	}
	o.sink.Emit(scored)

	out.Decision = o.thresholds.Classify(out.Match)
	switch out.Decision.Kind {
	case domain.DecisionSkip:
		if err := o.storage.Delete(candidate); err != nil {
			return o.failed(out, &domain.IOFailure{Op: "delete", Path: candidate, Err: err})
		}
		o.sink.Emit(domain.Event{Kind: domain.EventCandidateSkipped, Path: candidate, Score: out.Match.Score, Match: scored.Match})

	case domain.DecisionVersion:
		entry := out.Decision.Entry
		target, err := classify.NextVersion(o.storage, entry.Folder, filepath.Base(entry.Path))
		if err != nil {
			return o.failed(out, err)
		}
		if err := o.storage.Move(candidate, target); err != nil {
			return o.failed(out, &domain.IOFailure{Op: "move", Path: candidate, Err: err})
		}
		out.Target = target
		o.sink.Emit(domain.Event{Kind: domain.EventCandidateVersion, Path: candidate, Score: out.Match.Score, Match: entry.Path, Target: target})

	default:
		target, err := classify.NextFree(o.storage, fallbackDir, filepath.Base(candidate))
		if err != nil {
			return o.failed(out, err)
		}
		if err := o.storage.Move(candidate, target); err != nil {
			return o.failed(out, &domain.IOFailure{Op: "move", Path: candidate, Err: err})
		}
		out.Target = target
		o.sink.Emit(domain.Event{Kind: domain.EventCandidateAdded, Path: candidate, Score: out.Match.Score, Target: target})
	}
	return out
}

func (o *Organizer) failed(out domain.Outcome, err error) domain.Outcome {
	out.Err = err
	o.sink.Emit(domain.Event{Kind: domain.EventCandidateFailed, Path: out.Candidate, Err: err})
	return out
}

// traceMatches logs every positive-scoring corpus entry, best first, when
// debug logging is on.
func (o *Organizer) traceMatches(candidate, content string) {
	if !o.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for _, m := range o.index.Search(content, 0) {
		o.logger.Debug("match", "candidate", filepath.Base(candidate), "entry", m.Entry.Path, "score", m.Score)
	}
}
