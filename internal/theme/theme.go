package theme

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the color palette shared by the dock and every panel.
// Holders keep a *Theme so a live reload (config change or colors pulled
// from Neovim) shows up on the next View() call.
type Theme struct {
	Name       string
	Bg         lipgloss.Color
	Accent     lipgloss.Color
	Subtle     lipgloss.Color
	Text       lipgloss.Color
	Dim        lipgloss.Color
	Border     lipgloss.Color
	StatusBg   lipgloss.Color
	StatusFg   lipgloss.Color
	Error      lipgloss.Color
	NormalMode lipgloss.Color
	LeaderMode lipgloss.Color
	DragMode   lipgloss.Color
	PromptMode lipgloss.Color
}

// FromNeovim is the theme name that asks for colors to be read from the
// first Neovim pane instead of a built-in palette.
const FromNeovim = "nvim"

const defaultName = "catppuccin"

var palettes = map[string]Theme{
	"catppuccin": {
		Bg:         "#1e1e2e",
		Accent:     "#cba6f7",
		Subtle:     "#6c7086",
		Text:       "#cdd6f4",
		Dim:        "#585b70",
		Border:     "#45475a",
		StatusBg:   "#313244",
		StatusFg:   "#cdd6f4",
		Error:      "#f38ba8",
		NormalMode: "#89b4fa",
		LeaderMode: "#a6e3a1",
		DragMode:   "#f9e2af",
		PromptMode: "#f38ba8",
	},
	"nord": {
		Bg:         "#2e3440",
		Accent:     "#88c0d0",
		Subtle:     "#4c566a",
		Text:       "#eceff4",
		Dim:        "#434c5e",
		Border:     "#3b4252",
		StatusBg:   "#3b4252",
		StatusFg:   "#eceff4",
		Error:      "#bf616a",
		NormalMode: "#81a1c1",
		LeaderMode: "#a3be8c",
		DragMode:   "#ebcb8b",
		PromptMode: "#bf616a",
	},
	"gruvbox": {
		Bg:         "#282828",
		Accent:     "#d79921",
		Subtle:     "#665c54",
		Text:       "#ebdbb2",
		Dim:        "#504945",
		Border:     "#3c3836",
		StatusBg:   "#3c3836",
		StatusFg:   "#ebdbb2",
		Error:      "#fb4934",
		NormalMode: "#83a598",
		LeaderMode: "#b8bb26",
		DragMode:   "#fabd2f",
		PromptMode: "#fb4934",
	},
	"tokyo-night": {
		Bg:         "#1a1b26",
		Accent:     "#7aa2f7",
		Subtle:     "#565f89",
		Text:       "#c0caf5",
		Dim:        "#414868",
		Border:     "#292e42",
		StatusBg:   "#1f2335",
		StatusFg:   "#c0caf5",
		Error:      "#f7768e",
		NormalMode: "#7aa2f7",
		LeaderMode: "#9ece6a",
		DragMode:   "#e0af68",
		PromptMode: "#f7768e",
	},
}

// Get returns the named palette. Unknown names (including FromNeovim,
// which starts from the default until colors arrive) fall back to
// catppuccin and report false.
func Get(name string) (Theme, bool) {
	t, ok := palettes[name]
	if !ok {
		t = palettes[defaultName]
		t.Name = defaultName
		return t, false
	}
	t.Name = name
	return t, true
}

// Default returns the catppuccin palette.
func Default() Theme {
	t, _ := Get(defaultName)
	return t
}

// Names lists the built-in palettes in sorted order.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for n := range palettes {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
