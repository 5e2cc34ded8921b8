package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/pfassina/dockyard/internal/theme"
)

// Styles are the lipgloss styles shared by panes and overlay panels.
// Build them per View() from the live theme so reloads take effect.
type Styles struct {
	PanelBorder lipgloss.Style
	StatusBar   lipgloss.Style
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Selected    lipgloss.Style
	Normal      lipgloss.Style
	Dim         lipgloss.Style
	Key         lipgloss.Style
	Error       lipgloss.Style
}

func StylesFrom(th *theme.Theme) Styles {
	return Styles{
		PanelBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(th.Border),
		StatusBar: lipgloss.NewStyle().
			Background(th.StatusBg).
			Foreground(th.StatusFg).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(th.Accent),
		Subtitle: lipgloss.NewStyle().Foreground(th.Subtle),
		Selected: lipgloss.NewStyle().
			Foreground(th.Accent).
			Bold(true),
		Normal: lipgloss.NewStyle().Foreground(th.Text),
		Dim:    lipgloss.NewStyle().Foreground(th.Dim),
		Key: lipgloss.NewStyle().
			Foreground(th.Accent).
			Bold(true),
		Error: lipgloss.NewStyle().Foreground(th.Error),
	}
}

// Fit truncates s to width cells with an ellipsis and pads it with spaces
// to exactly width.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// Window returns the first index of a height-row window over n rows that
// keeps cursor visible, starting from the previous offset.
func Window(offset, cursor, height, n int) int {
	if height <= 0 || n <= height {
		return 0
	}
	if cursor < offset {
		offset = cursor
	}
	if cursor >= offset+height {
		offset = cursor - height + 1
	}
	return max(0, min(offset, n-height))
}
