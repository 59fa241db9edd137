package ui

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Colour modes accepted by the display.color setting.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// fder is implemented by *os.File.
type fder interface {
	Fd() uintptr
}

// isTerminal is swapped out in tests.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(fder)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// ShouldUseColor decides whether output written to w gets ANSI colours.
// "always" and "never" win outright. In "auto" mode NO_COLOR disables colour,
// CLICOLOR_FORCE=1 forces it, CLICOLOR=0 disables it, and otherwise colour is
// used only when w is a terminal.
func ShouldUseColor(mode string, w io.Writer) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR_FORCE")) == "1" {
		return true
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR")) == "0" {
		return false
	}
	return isTerminal(w)
}

// TerminalWidth returns the column count of w, or fallback when w is not a terminal.
func TerminalWidth(w io.Writer, fallback int) int {
	f, ok := w.(fder)
	if !ok || !isTerminal(w) {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
