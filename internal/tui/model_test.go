package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesort/internal/domain"
)

func outcomes() []domain.Outcome {
	entry := &domain.CorpusEntry{Path: "p/Tekst/story-001.txt"}
	return []domain.Outcome{
		{Candidate: "in/alpha.txt", Decision: domain.Decision{Kind: domain.DecisionSkip}, Match: domain.MatchResult{Score: 100, Entry: entry}},
		{Candidate: "in/beta.txt", Decision: domain.Decision{Kind: domain.DecisionVersion, Entry: entry}, Match: domain.MatchResult{Score: 55, Entry: entry}, Target: "p/Tekst/story-002.txt"},
		{Candidate: "in/gamma.txt", Err: errors.New("disk full")},
	}
}

type texts map[string]string

func (t texts) ReadText(p string) (string, error) { return t[p], nil }

func typeText(m Model, s string) Model {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func TestModel_FilterAndBrowse(t *testing.T) {
	m := New(outcomes(), "summary", texts{"p/Tekst/story-002.txt": "the new version"})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = next.(Model)
	require.Len(t, m.visible, 3)

	m = typeText(m, "version")
	require.Equal(t, []int{1}, m.visible)
	out := m.renderCurrent()
	assert.Contains(t, out, "beta.txt")
	assert.Contains(t, out, "55.0%")
	assert.Contains(t, out, "the new version")
}

func TestModel_FailedFilter(t *testing.T) {
	m := typeText(New(outcomes(), "", nil), "failed")
	require.Equal(t, []int{2}, m.visible)
	assert.Contains(t, m.renderCurrent(), "disk full")
}

func TestModel_CursorWraps(t *testing.T) {
	m := New(outcomes(), "", nil)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	assert.Equal(t, 2, m.cursor)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	assert.Equal(t, 0, m.cursor)
}

func TestModel_ViewBeforeSize(t *testing.T) {
	assert.Equal(t, "Loading...", New(nil, "", nil).View())
}
