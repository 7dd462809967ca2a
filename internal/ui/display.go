package ui

import (
	"os"

	"github.com/charmbracelet/x/term"
)

// fallbackWidth is assumed when stdout is not a terminal or its size cannot
// be read.
const fallbackWidth = 120

// Display captures the terminal a command renders into: its column width
// and whether output lands on a real TTY.
type Display struct {
	Width int
	TTY   bool
}

// DetectDisplay probes stdout. Call it once per command invocation.
func DetectDisplay() Display {
	fd := os.Stdout.Fd()
	if !term.IsTerminal(fd) {
		return Display{Width: fallbackWidth}
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		w = fallbackWidth
	}
	return Display{Width: w, TTY: true}
}

// FixedDisplay returns a Display with a known width, for tests.
func FixedDisplay(width int) Display {
	return Display{Width: width, TTY: true}
}

// TextWidth returns the wrap width left for body text indented by margin.
func (d Display) TextWidth(margin int) int {
	return d.Width - margin
}
