package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesort/internal/domain"
	"notesort/internal/similarity/ratio"
)

// table scores by looking up the corpus content.
type table map[string]float64

func (t table) Name() string { return "table" }
func (t table) Score(_, b string) float64 { return t[b] }

func entry(content string) domain.CorpusEntry {
	return domain.CorpusEntry{Path: content + ".txt", Content: content, Folder: "f"}
}

func TestBest_EmptyCorpus(t *testing.T) {
	res := NewSnapshot(ratio.New(false)).Best("anything")
	assert.Equal(t, 0.0, res.Score)
	assert.Nil(t, res.Entry)
}

func TestBest_AllZero(t *testing.T) {
	res := NewSnapshot(table{}, entry("a"), entry("b")).Best("x")
	assert.Nil(t, res.Entry)
}

func TestBest_FirstWinsTies(t *testing.T) {
	s := NewSnapshot(table{"a": 10, "b": 55, "c": 55}, entry("a"), entry("b"), entry("c"))
	res := s.Best("x")
	require.NotNil(t, res.Entry)
	assert.Equal(t, "b", res.Entry.Content)
	assert.Equal(t, 55.0, res.Score)
}

func TestBest_WithRatio(t *testing.T) {
	s := NewSnapshot(ratio.New(false), entry("completely different"), entry("hello world"))
	res := s.Best("Hello\nWorld")
	require.NotNil(t, res.Entry)
	assert.Equal(t, 100.0, res.Score)
	assert.Equal(t, "hello world", res.Entry.Content)
}

func TestSearch(t *testing.T) {
	s := NewSnapshot(table{"a": 10, "b": 55, "c": 0, "d": 55}, entry("a"), entry("b"), entry("c"), entry("d"))
	got := s.Search("x", 0)
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].Entry.Content)
	assert.Equal(t, "d", got[1].Entry.Content)
	assert.Equal(t, "a", got[2].Entry.Content)

	assert.Len(t, s.Search("x", 1), 1)
	assert.Equal(t, 4, s.Len())
}
