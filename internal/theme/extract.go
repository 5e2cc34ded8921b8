package theme

import "github.com/charmbracelet/lipgloss"

type attr int

const (
	fg attr = iota
	bg
)

// source is one highlight group attribute to read a color from.
type source struct {
	group string
	attr  attr
}

// rules lists, per field, the highlight groups to try in order.
var rules = []struct {
	field   func(*Theme) *lipgloss.Color
	sources []source
}{
	{func(t *Theme) *lipgloss.Color { return &t.Bg }, []source{{"Normal", bg}}},
	{func(t *Theme) *lipgloss.Color { return &t.Text }, []source{{"Normal", fg}}},
	{func(t *Theme) *lipgloss.Color { return &t.Accent }, []source{{"Function", fg}, {"Keyword", fg}}},
	{func(t *Theme) *lipgloss.Color { return &t.Subtle }, []source{{"Comment", fg}}},
	{func(t *Theme) *lipgloss.Color { return &t.Dim }, []source{{"NonText", fg}, {"LineNr", fg}}},
	{func(t *Theme) *lipgloss.Color { return &t.Border }, []source{{"WinSeparator", fg}, {"VertSplit", fg}}},
	{func(t *Theme) *lipgloss.Color { return &t.StatusBg }, []source{{"StatusLine", bg}}},
	{func(t *Theme) *lipgloss.Color { return &t.StatusFg }, []source{{"StatusLine", fg}}},
	{func(t *Theme) *lipgloss.Color { return &t.Error }, []source{{"DiagnosticError", fg}, {"ErrorMsg", fg}}},
	{func(t *Theme) *lipgloss.Color { return &t.LeaderMode }, []source{{"String", fg}}},
	{func(t *Theme) *lipgloss.Color { return &t.DragMode }, []source{{"Visual", bg}, {"WarningMsg", fg}}},
}

// FromNeovimColors maps Neovim highlight groups onto base. colors is keyed
// by group name with [fg, bg] hex values; missing attributes leave the base
// color in place.
func FromNeovimColors(colors map[string][2]string, base Theme) Theme {
	t := base
	t.Name = FromNeovim
	for _, r := range rules {
		for _, s := range r.sources {
			pair, ok := colors[s.group]
			if !ok || !isSet(pair[s.attr]) {
				continue
			}
			*r.field(&t) = lipgloss.Color(pair[s.attr])
			break
		}
	}
	t.NormalMode = t.Accent
	t.PromptMode = t.Error
	return t
}

// isSet treats empty and pure black as unset: Neovim reports 0 for groups
// that inherit the default colors.
func isSet(c string) bool {
	return c != "" && c != "#000000"
}
