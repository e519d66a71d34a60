// Package classify turns a match score into a placement decision and picks
// collision-free file names for versioned and new texts.
package classify

import "notesort/internal/domain"

const (
	DefaultSkip    = 100.0
	DefaultVersion = 40.0
)

// Thresholds are inclusive lower bounds: Score >= Skip is a duplicate,
// Version <= Score < Skip is a new version, anything lower is a new text.
type Thresholds struct {
	Skip    float64
	Version float64
}

// Default returns the stock thresholds, 100 and 40.
func Default() Thresholds { return Thresholds{Skip: DefaultSkip, Version: DefaultVersion} }

// Classify maps a match to exactly one decision. A VERSION decision
// requires a matched entry; without one the text is treated as NEW.
func (t Thresholds) Classify(m domain.MatchResult) domain.Decision {
	switch {
	case m.Entry != nil && m.Score >= t.Skip:
		return domain.Decision{Kind: domain.DecisionSkip, Entry: m.Entry}
	case m.Entry != nil && m.Score >= t.Version:
		return domain.Decision{Kind: domain.DecisionVersion, Entry: m.Entry}
	default:
		return domain.Decision{Kind: domain.DecisionNew}
	}
}
