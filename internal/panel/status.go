package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/dockyard/internal/theme"
	"github.com/pfassina/dockyard/internal/ui"
)

// Modes shown at the left of the status bar.
const (
	ModeNormal = "NORMAL"
	ModeLeader = "LEADER"
	ModeDrag   = "DRAG"
	ModePrompt = "PROMPT"
)

// Status is the status bar at the bottom.
type Status struct {
	width   int
	mode    string
	title   string
	tooltip string
	info    string
	errMsg  string
	theme   *theme.Theme
}

func NewStatus(th *theme.Theme) Status {
	return Status{mode: ModeNormal, theme: th}
}

func (s *Status) SetMode(mode string) {
	s.mode = mode
}

// SetTitle sets the title of the focused pane.
func (s *Status) SetTitle(title string) {
	s.title = title
}

// SetTooltip shows a hover tooltip in place of the title; "" clears it.
func (s *Status) SetTooltip(tip string) {
	s.tooltip = tip
}

// SetInfo sets the right-aligned text.
func (s *Status) SetInfo(info string) {
	s.info = info
}

func (s *Status) SetWidth(width int) {
	s.width = width
}

func (s *Status) SetError(msg string) {
	s.errMsg = msg
}

func (s *Status) ClearError() {
	s.errMsg = ""
}

func (s Status) Mode() string    { return s.mode }
func (s Status) Error() string   { return s.errMsg }
func (s Status) Tooltip() string { return s.tooltip }

func (s Status) modeColor() lipgloss.Color {
	switch s.mode {
	case ModeLeader:
		return s.theme.LeaderMode
	case ModeDrag:
		return s.theme.DragMode
	case ModePrompt:
		return s.theme.PromptMode
	}
	return s.theme.NormalMode
}

func (s Status) View() string {
	if s.width == 0 {
		return ""
	}
	th := s.theme
	bar := ui.StylesFrom(th).StatusBar

	mode := lipgloss.NewStyle().
		Background(s.modeColor()).
		Foreground(th.Bg).
		Bold(true).
		Padding(0, 1).
		Render(s.mode)

	var middle string
	switch {
	case s.errMsg != "":
		middle = bar.Foreground(th.Error).Render(s.errMsg)
	case s.tooltip != "":
		middle = bar.Foreground(th.Subtle).Render(s.tooltip)
	default:
		middle = bar.Render(s.title)
	}

	right := ""
	if s.info != "" {
		right = bar.Foreground(th.Dim).Render(s.info)
	}

	room := s.width - lipgloss.Width(mode) - lipgloss.Width(right)
	if room < 0 {
		right = ""
		room = s.width - lipgloss.Width(mode)
	}
	if lipgloss.Width(middle) > room {
		middle = ui.Fit(middle, max(room, 0))
	}
	pad := lipgloss.NewStyle().Background(th.StatusBg).
		Render(strings.Repeat(" ", max(room-lipgloss.Width(middle), 0)))

	return ui.Fit(mode+middle+pad+right, s.width)
}
