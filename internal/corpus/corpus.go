// Package corpus gathers the existing, already organised texts that new
// candidates are compared against.
package corpus

import (
	"path/filepath"
	"strings"

	"notesort/internal/domain"
)

// Layout describes where corpus texts live under the library root:
//
//	<Root>/<album>/<project>/<ProjectTextFolder>/*.txt
//	<Root>/<RootTextFolder>/**/*.txt
//
// Albums named in SkipFolders are ignored. Under the root text folder,
// files inside SourceDir or whose path contains one of ExcludeMarkers
// (case-insensitive) are not part of the corpus.
type Layout struct {
	Root              string
	ProjectTextFolder string
	RootTextFolder    string
	SkipFolders       []string
	ExcludeMarkers    []string
	SourceDir         string
}

// Scanner walks a Layout through the storage collaborator.
type Scanner struct {
	storage domain.Storage
	layout  Layout
	sink    domain.EventSink
}

// NewScanner creates a Scanner. Unreadable corpus files are reported to
// sink and skipped.
func NewScanner(storage domain.Storage, layout Layout, sink domain.EventSink) *Scanner {
	return &Scanner{storage: storage, layout: layout, sink: sink}
}

// Scan returns every corpus entry, project folders first, in name order.
// Only a failure to list the library root is returned as an error.
func (s *Scanner) Scan() ([]domain.CorpusEntry, error) {
	albums, err := s.storage.ReadDir(s.layout.Root)
	if err != nil {
		return nil, &domain.IOFailure{Op: "list", Path: s.layout.Root, Err: err}
	}
	skip := make(map[string]struct{}, len(s.layout.SkipFolders))
	for _, name := range s.layout.SkipFolders {
		skip[name] = struct{}{}
	}

	var out []domain.CorpusEntry
	for _, album := range albums {
		if !album.IsDir() {
			continue
		}
		if _, ok := skip[album.Name()]; ok {
			continue
		}
		out = append(out, s.scanAlbum(filepath.Join(s.layout.Root, album.Name()))...)
	}
	out = append(out, s.scanRootTexts()...)
	return out, nil
}

func (s *Scanner) scanAlbum(album string) []domain.CorpusEntry {
	projects, err := s.storage.ReadDir(album)
	if err != nil {
		s.fail(album, err)
		return nil
	}
	var out []domain.CorpusEntry
	for _, project := range projects {
		if !project.IsDir() {
			continue
		}
		folder := filepath.Join(album, project.Name(), s.layout.ProjectTextFolder)
		if ok, _ := s.storage.Exists(folder); !ok {
			continue
		}
		files, err := s.storage.ReadDir(folder)
		if err != nil {
			s.fail(folder, err)
			continue
		}
		for _, f := range files {
			if f.IsDir() || !isText(f.Name()) {
				continue
			}
			if e, ok := s.read(filepath.Join(folder, f.Name())); ok {
				out = append(out, e)
			}
		}
	}
	return out
}

func (s *Scanner) scanRootTexts() []domain.CorpusEntry {
	root := filepath.Join(s.layout.Root, s.layout.RootTextFolder)
	if ok, _ := s.storage.Exists(root); !ok {
		return nil
	}
	var out []domain.CorpusEntry
	err := s.storage.WalkText(root, func(path string) error {
		if s.excluded(path) {
			return nil
		}
		if e, ok := s.read(path); ok {
			out = append(out, e)
		}
		return nil
	})
	if err != nil {
		s.fail(root, err)
	}
	return out
}

func (s *Scanner) excluded(path string) bool {
	if s.layout.SourceDir != "" && Within(s.layout.SourceDir, path) {
		return true
	}
	lower := strings.ToLower(path)
	for _, m := range s.layout.ExcludeMarkers {
		if m != "" && strings.Contains(lower, strings.ToLower(m)) {
			return true
		}
	}
	return false
}

func (s *Scanner) read(path string) (domain.CorpusEntry, bool) {
	content, err := s.storage.ReadText(path)
	if err != nil {
		s.fail(path, err)
		return domain.CorpusEntry{}, false
	}
	return domain.CorpusEntry{Path: path, Content: content, Folder: filepath.Dir(path)}, true
}

func (s *Scanner) fail(path string, err error) {
	if s.sink == nil {
		return
	}
	s.sink.Emit(domain.Event{Kind: domain.EventCorpusEntryFailed, Path: path, Err: err})
}

// Within reports whether path lies inside dir (or is dir itself).
func Within(dir, path string) bool {
	ad, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	ap, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(ad, ap)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func isText(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".txt")
}
