package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"manuscript-tracker/internal/domain"
)

// ANSI256 palette.
const (
	colorAccent = "74"  // blue
	colorMuted  = "245" // grey
	colorGood   = "71"  // green
	colorWarn   = "179" // amber
	colorBad    = "167" // red
)

// Styles renders text with or without colour. The zero value renders plain text.
type Styles struct {
	enabled bool

	heading lipgloss.Style
	accent  lipgloss.Style
	muted   lipgloss.Style
	good    lipgloss.Style
	warn    lipgloss.Style
	bad     lipgloss.Style
}

// NewStyles creates a style set; colour is applied only when enabled is true.
func NewStyles(enabled bool) *Styles {
	return &Styles{
		enabled: enabled,
		heading: lipgloss.NewStyle().Bold(true),
		accent:  lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent)),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)),
		good:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorGood)),
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorWarn)),
		bad:     lipgloss.NewStyle().Foreground(lipgloss.Color(colorBad)),
	}
}

// Enabled reports whether colour output is on.
func (s *Styles) Enabled() bool {
	return s != nil && s.enabled
}

func (s *Styles) render(style lipgloss.Style, text string) string {
	if !s.Enabled() {
		return text
	}
	return style.Render(text)
}

func (s *Styles) Heading(text string) string { return s.render(s.heading, text) }
func (s *Styles) Accent(text string) string  { return s.render(s.accent, text) }
func (s *Styles) Muted(text string) string   { return s.render(s.muted, text) }
func (s *Styles) Warning(text string) string { return s.render(s.warn, text) }

// Status colours a chapter status label by how far along it is.
func (s *Styles) Status(status domain.ChapterStatus) string {
	label := status.Label()
	switch status {
	case domain.StatusFinal:
		return s.render(s.good, label)
	case domain.StatusRevising, domain.StatusSupervisorReview:
		return s.render(s.accent, label)
	case domain.StatusDrafting, domain.StatusOutlining:
		return s.render(s.warn, label)
	default:
		return s.render(s.muted, label)
	}
}

// Fraction colours a completion fraction: red below a third, amber below
// completion, green when done.
func (s *Styles) Fraction(fraction float64, text string) string {
	switch {
	case fraction >= 1:
		return s.render(s.good, text)
	case fraction < 1.0/3.0:
		return s.render(s.bad, text)
	default:
		return s.render(s.warn, text)
	}
}

// ProgressBar draws a bar of width cells for a fraction in [0,1].
func (s *Styles) ProgressBar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*float64(width) + 0.5)
	bar := strings.Repeat("#", filled)
	rest := strings.Repeat("-", width-filled)
	return "[" + s.Fraction(fraction, bar) + s.Muted(rest) + "]"
}

// Width returns the printable width of text, ignoring ANSI sequences.
func Width(text string) int {
	return lipgloss.Width(text)
}

// PadRight pads text with spaces to the given printable width.
func PadRight(text string, width int) string {
	gap := width - Width(text)
	if gap <= 0 {
		return text
	}
	return text + strings.Repeat(" ", gap)
}
