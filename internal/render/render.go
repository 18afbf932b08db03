// Package render draws simulation results for a terminal: a win-probability summary and
// a grouped horizontal bar chart of the score histogram.
package render

import (
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Color modes accepted by Options.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const (
	defaultWidth = 80
	minBarWidth  = 10
)

// Options controls layout and styling.
type Options struct {
	// Width is the total line width. Zero means the terminal width, or 80 when w is not
	// a terminal.
	Width int
	// Color is one of ColorAuto, ColorAlways or ColorNever. Empty means ColorAuto.
	Color string
}

type styles struct {
	plain lipgloss.Style
	title lipgloss.Style
	muted lipgloss.Style
	home  lipgloss.Style
	away  lipgloss.Style
}

func newStyles(w io.Writer, opts Options) styles {
	r := lipgloss.NewRenderer(w)
	switch {
	case opts.Color == ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case opts.Color == ColorNever || os.Getenv("NO_COLOR") != "":
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		plain: r.NewStyle(),
		title: r.NewStyle().Bold(true),
		muted: r.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
		home:  r.NewStyle().Foreground(lipgloss.Color("#3B82F6")),
		away:  r.NewStyle().Foreground(lipgloss.Color("#EF4444")),
	}
}

func resolveWidth(w io.Writer, width int) int {
	if width > 0 {
		return width
	}
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil || cols <= 0 {
		return defaultWidth
	}
	return cols
}

// Percent formats a win percentage as served, without re-rounding: 63 is "63%",
// 63.5 is "63.5%".
func Percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
