package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Border(lipgloss.NormalBorder(), false, false, true, false)
	labelStyle = lipgloss.NewStyle().Width(34)
	countStyle = lipgloss.NewStyle().Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderExtract summarises an extraction run.
func RenderExtract(t *Tally, outDir string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Backup extraction") + "\n")
	row(&b, "Fragments", t.Fragments)
	row(&b, "  simple", t.Simple)
	row(&b, "  nested", t.Nested)
	row(&b, "Texts extracted", t.Extracted)
	row(&b, "Unique texts", t.Unique)
	if t.Replaced > 0 {
		row(&b, "  replaced by a longer text", t.Replaced)
	}
	row(&b, "Texts saved", t.Saved)
	b.WriteString(dimStyle.Render("Output: "+outDir) + "\n")
	failures(&b, t)
	return b.String()
}

// RenderOrganize summarises an organisation run.
func RenderOrganize(t *Tally) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Summary") + "\n")
	row(&b, "Candidates processed", t.Processed())
	row(&b, "Skipped (identical)", t.Skipped)
	row(&b, "Added as versions", t.Versioned)
	row(&b, "Added as new texts", t.Added)
	if t.CorpusErrors > 0 {
		row(&b, "Unreadable corpus files", t.CorpusErrors)
	}
	if len(t.VersionsAddedTo) > 0 {
		b.WriteString(fmt.Sprintf("\nTexts that received new versions (%d):\n", len(t.VersionsAddedTo)))
		for i, name := range t.VersionsAddedTo {
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, name))
		}
	}
	failures(&b, t)
	return b.String()
}

func row(b *strings.Builder, label string, n int) {
	b.WriteString(labelStyle.Render(label) + countStyle.Render(fmt.Sprint(n)) + "\n")
}

func failures(b *strings.Builder, t *Tally) {
	if len(t.Failures) == 0 {
		return
	}
	b.WriteString(errStyle.Render(fmt.Sprintf("\nFailures (%d):", len(t.Failures))) + "\n")
	for _, f := range t.Failures {
		b.WriteString(fmt.Sprintf("  %s: %v\n", f.Path, f.Err))
	}
}
