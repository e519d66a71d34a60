package service

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"notesort/internal/backup"
	"notesort/internal/classify"
	"notesort/internal/dedup"
	"notesort/internal/domain"
)

// ErrBackupNotFound is returned when the backup file does not exist.
var ErrBackupNotFound = errors.New("backup file not found")

// ExtractResult lists what an extraction run produced.
type ExtractResult struct {
	Notes []domain.ExtractedNote // unique notes, in first-seen order
	Saved []string               // written files, same order, failures omitted
}

// Extractor unpacks a backup into one text file per unique note.
type Extractor struct {
	storage domain.Storage
	sink    domain.EventSink
	logger  *slog.Logger
}

// NewExtractor creates an Extractor. A nil sink discards events and a nil
// logger means slog.Default().
func NewExtractor(storage domain.Storage, sink domain.EventSink, logger *slog.Logger) *Extractor {
	if sink == nil {
		sink = nopSink{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{storage: storage, sink: sink, logger: logger}
}

// ExtractFile reads the backup at path and writes its notes into outDir.
// Structural parse failures abort the run before anything is written.
func (s *Extractor) ExtractFile(path, outDir string) (*ExtractResult, error) {
	ok, err := s.storage.Exists(path)
	if err != nil {
		return nil, &domain.IOFailure{Op: "stat", Path: path, Err: err}
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBackupNotFound, path)
	}
	content, err := s.storage.ReadText(path)
	if err != nil {
		return nil, &domain.IOFailure{Op: "read", Path: path, Err: err}
	}
	s.logger.Info("backup loaded", "path", path, "bytes", len(content))
	return s.Extract(content, outDir)
}

// Extract parses content and writes its notes into outDir.
func (s *Extractor) Extract(content, outDir string) (*ExtractResult, error) {
	doc, err := backup.Parse(content)
	if err != nil {
		return nil, err
	}
	s.logger.Info("backup parsed", "fragments", doc.Total, "kept", len(doc.Fragments))

	set := collect(doc, s.sink)
	s.logger.Info("notes deduplicated", "unique", set.Len())
	if err := s.storage.MkdirAll(outDir); err != nil {
		return nil, &domain.IOFailure{Op: "mkdir", Path: outDir, Err: err}
	}

	res := &ExtractResult{Notes: set.Entries()}
	for _, n := range res.Notes {
		path, err := s.save(outDir, n)
		if err != nil {
			s.sink.Emit(domain.Event{Kind: domain.EventNoteSaveFailed, Path: path, Name: n.Name, Origin: n.Origin, Err: err})
			continue
		}
		res.Saved = append(res.Saved, path)
		s.sink.Emit(domain.Event{Kind: domain.EventNoteSaved, Path: path, Name: n.Name, Origin: n.Origin})
	}
	return res, nil
}

// collect runs the extractor over every fragment and deduplicates by name.
func collect(doc *backup.Document, sink domain.EventSink) *dedup.Set {
	for _, f := range doc.Fragments {
		origin := domain.OriginSimple
		name := ""
		if backup.IsNested(f.Raw) {
			origin = domain.OriginNested
			name = backup.FolderTitle(f)
		}
		sink.Emit(domain.Event{Kind: domain.EventFragmentParsed, Name: name, Origin: origin})
	}
	set := dedup.New()
	for _, n := range backup.NewExtractor().ExtractAll(doc) {
		sink.Emit(domain.Event{Kind: domain.EventNoteExtracted, Name: n.Name, Origin: n.Origin})
		r := set.Add(n)
		sink.Emit(domain.Event{Kind: domain.EventNoteDeduplicated, Name: n.Name, Origin: n.Origin, Result: r.String()})
	}
	return set
}

func (s *Extractor) save(outDir string, n domain.ExtractedNote) (string, error) {
	path, err := classify.NextFree(s.storage, outDir, n.Name+".txt")
	if err != nil {
		return filepath.Join(outDir, n.Name+".txt"), err
	}
	if err := s.storage.WriteText(path, n.Text); err != nil {
		return path, &domain.IOFailure{Op: "write", Path: path, Err: err}
	}
	return path, nil
}

type nopSink struct{}

func (nopSink) Emit(domain.Event) {}
