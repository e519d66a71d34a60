// Package report turns service events into logs, counters and summaries.
package report

import (
	"context"
	"log/slog"

	"notesort/internal/domain"
)

// LogSink writes every event as one structured log record.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a LogSink; a nil logger means slog.Default().
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Emit(ev domain.Event) {
	attrs := []slog.Attr{slog.String("event", string(ev.Kind))}
	if ev.Path != "" {
		attrs = append(attrs, slog.String("path", ev.Path))
	}
	if ev.Name != "" {
		attrs = append(attrs, slog.String("name", ev.Name))
	}
	if ev.Origin != "" {
		attrs = append(attrs, slog.String("origin", string(ev.Origin)))
	}
	switch ev.Kind {
	case domain.EventCandidateScored, domain.EventCandidateSkipped,
		domain.EventCandidateVersion, domain.EventCandidateAdded:
		attrs = append(attrs, slog.Float64("score", ev.Score))
	}
	if ev.Result != "" {
		attrs = append(attrs, slog.String("result", ev.Result))
	}
	if ev.Match != "" {
		attrs = append(attrs, slog.String("match", ev.Match))
	}
	if ev.Target != "" {
		attrs = append(attrs, slog.String("target", ev.Target))
	}
	if ev.Err != nil {
		attrs = append(attrs, slog.String("error", ev.Err.Error()))
	}
	s.logger.LogAttrs(context.Background(), level(ev.Kind), message(ev.Kind), attrs...)
}

func level(k domain.EventKind) slog.Level {
	switch k {
	case domain.EventCandidateFailed, domain.EventNoteSaveFailed:
		return slog.LevelError
	case domain.EventCorpusEntryFailed:
		return slog.LevelWarn
	case domain.EventFragmentParsed, domain.EventNoteExtracted, domain.EventNoteDeduplicated,
		domain.EventCandidateScored:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func message(k domain.EventKind) string {
	switch k {
	case domain.EventFragmentParsed:
		return "fragment parsed"
	case domain.EventNoteExtracted:
		return "note extracted"
	case domain.EventNoteDeduplicated:
		return "note deduplicated"
	case domain.EventNoteSaved:
		return "note saved"
	case domain.EventNoteSaveFailed:
		return "note not saved"
	case domain.EventCorpusEntryFailed:
		return "corpus file unreadable"
	case domain.EventCandidateScored:
		return "candidate scored"
	case domain.EventCandidateSkipped:
		return "identical text, candidate removed"
	case domain.EventCandidateVersion:
		return "added as new version"
	case domain.EventCandidateAdded:
		return "added as new text"
	case domain.EventCandidateFailed:
		return "candidate not processed"
	default:
		return string(k)
	}
}

// Multi fans events out to several sinks in order.
type Multi []domain.EventSink

func (m Multi) Emit(ev domain.Event) {
	for _, s := range m {
		if s != nil {
			s.Emit(ev)
		}
	}
}
