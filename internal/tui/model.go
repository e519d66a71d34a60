package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"notesort/internal/domain"
)

// Previewer reads a placed file back for display.
type Previewer interface {
	ReadText(path string) (string, error)
}

// Model is the Bubble Tea model for browsing the outcomes of a run.
type Model struct {
	outcomes []domain.Outcome
	preview  Previewer
	input    textinput.Model
	viewport viewport.Model
	visible  []int
	summary  string
	status   string
	cursor   int
	ready    bool
}

// New creates a review model. preview may be nil.
func New(outcomes []domain.Outcome, summary string, preview Previewer) Model {
	ti := textinput.New()
	ti.Prompt = "filter> "
	ti.Placeholder = "name, skip, version, new or failed"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	m := Model{outcomes: outcomes, preview: preview, input: ti, viewport: vp, summary: summary}
	m.applyFilter()
	return m
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header + summary, status, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrent())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "down":
			if len(m.visible) > 0 {
				m.cursor = (m.cursor + 1) % len(m.visible)
				m.viewport.SetContent(m.renderCurrent())
			}
			return m, nil
		case "up":
			if len(m.visible) > 0 {
				m.cursor = (m.cursor - 1 + len(m.visible)) % len(m.visible)
				m.viewport.SetContent(m.renderCurrent())
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.applyFilter()
		m.viewport.SetContent(m.renderCurrent())
	}
	return m, cmd
}

// View renders the layout and the selected outcome.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("notesort review")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	body := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + body + "\n" + input + "\n" + status
}

// applyFilter recomputes the visible outcomes for the current filter text.
func (m *Model) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(m.input.Value()))
	visible := make([]int, 0, len(m.outcomes))
	for i, o := range m.outcomes {
		if q == "" || matches(o, q) {
			visible = append(visible, i)
		}
	}
	m.visible = visible
	m.cursor = 0
	m.status = fmt.Sprintf("%d of %d candidates  (up/down to browse, esc to quit)", len(m.visible), len(m.outcomes))
}

func matches(o domain.Outcome, q string) bool {
	if o.Failed() {
		return q == "failed" || strings.Contains(strings.ToLower(o.Candidate), q)
	}
	return string(o.Decision.Kind) == q || strings.Contains(strings.ToLower(filepath.Base(o.Candidate)), q)
}

func (m Model) renderCurrent() string {
	if len(m.visible) == 0 {
		return "Nothing to show."
	}
	o := m.outcomes[m.visible[m.cursor]]
	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d  %s\n\n", m.cursor+1, len(m.visible), filepath.Base(o.Candidate))
	if o.Failed() {
		b.WriteString(errorStyle.Render("failed: "+o.Err.Error()) + "\n")
		return b.String()
	}
	fmt.Fprintf(&b, "decision: %s\n", decisionStyle(o.Decision.Kind).Render(string(o.Decision.Kind)))
	fmt.Fprintf(&b, "score:    %.1f%%\n", o.Match.Score)
	if o.Match.Entry != nil {
		fmt.Fprintf(&b, "closest:  %s\n", o.Match.Entry.Path)
	}
	if o.Target != "" {
		fmt.Fprintf(&b, "filed as: %s\n", o.Target)
		if m.preview != nil {
			if text, err := m.preview.ReadText(o.Target); err == nil {
				b.WriteString("\n" + text)
			}
		}
	}
	return b.String()
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func decisionStyle(k domain.DecisionKind) lipgloss.Style {
	switch k {
	case domain.DecisionSkip:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	case domain.DecisionVersion:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
