package tui

import (
	"github.com/aretw0/automata/pkg/domain"
	"github.com/muesli/termenv"
)

const (
	acceptColor = "#22c55e"
	rejectColor = "#ef4444"
	dimColor    = "#9ca3af"
)

// Styler colours run results for the terminal.
type Styler struct {
	profile termenv.Profile
}

// NewStyler creates a Styler for the given colour profile.
// termenv.Ascii disables colour entirely.
func NewStyler(p termenv.Profile) Styler {
	return Styler{profile: p}
}

// DefaultStyler detects the colour profile of stdout.
func DefaultStyler() Styler {
	return NewStyler(termenv.ColorProfile())
}

// Verdict renders v with a ✓ or ✗ mark, green when accepted and red otherwise.
func (s Styler) Verdict(v domain.Verdict) string {
	if v == domain.VerdictAccepted {
		return termenv.String("✓ " + string(v)).Foreground(s.profile.Color(acceptColor)).String()
	}
	return termenv.String("✗ " + string(v)).Foreground(s.profile.Color(rejectColor)).String()
}

// Path renders the trace of run, dimmed.
func (s Styler) Path(run domain.Run) string {
	return termenv.String(run.Path()).Foreground(s.profile.Color(dimColor)).String()
}

// Bold emphasises text.
func (s Styler) Bold(text string) string {
	if s.profile == termenv.Ascii {
		return text
	}
	return termenv.String(text).Bold().String()
}
