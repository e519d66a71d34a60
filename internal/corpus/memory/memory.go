package memory

import (
	"sort"
	"sync"

	"notesort/internal/domain"
)

// Snapshot is an in-memory corpus that scores every entry by brute force.
// Entries are kept in insertion order, which decides ties.
type Snapshot struct {
	mu      sync.RWMutex
	scorer  domain.Scorer
	entries []domain.CorpusEntry
}

var _ domain.Index = (*Snapshot)(nil)

// NewSnapshot creates an empty snapshot scored with scorer.
func NewSnapshot(scorer domain.Scorer, entries ...domain.CorpusEntry) *Snapshot {
	s := &Snapshot{scorer: scorer}
	s.Add(entries...)
	return s
}

func (s *Snapshot) Add(entries ...domain.CorpusEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entries...)
}

func (s *Snapshot) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Best returns the highest scoring entry. Only a strictly greater score
// replaces the current best, so the first of equal entries wins and an
// all-zero corpus yields no entry.
func (s *Snapshot) Best(candidate string) domain.MatchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res domain.MatchResult
	for i := range s.entries {
		score := s.scorer.Score(candidate, s.entries[i].Content)
		if score > res.Score {
			e := s.entries[i]
			res = domain.MatchResult{Score: score, Entry: &e}
		}
	}
	return res
}

// Search returns up to topK entries with a positive score, best first.
// topK <= 0 returns all of them.
func (s *Snapshot) Search(candidate string, topK int) []domain.ScoredEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.ScoredEntry
	for _, e := range s.entries {
		if score := s.scorer.Score(candidate, e.Content); score > 0 {
			out = append(out, domain.ScoredEntry{Entry: e, Score: score})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if topK > 0 && topK < len(out) {
		out = out[:topK]
	}
	return out
}
