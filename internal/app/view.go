package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	view := a.dock.View()
	if len(a.dock.Dockables()) == 0 {
		hint := lipgloss.NewStyle().
			Foreground(a.theme.Dim).
			Render(fmt.Sprintf("No panes. Press %s then ? for help.", a.cfg.LeaderKey))
		view = overlayCenter(view, hint, a.layout.Dock.W, a.layout.Dock.H)
	}
	if a.layout.StatusRow >= 0 {
		view += "\n" + a.status.View()
	}

	if a.leader.showHelp && a.whichKey.Visible() {
		view = overlayCenter(view, a.whichKey.View(), a.width, a.height)
	}
	if a.picker.Visible() {
		view = overlayCenter(view, a.picker.View(), a.width, a.height)
	}
	if a.prompt.Visible() {
		view = overlayCenter(view, a.prompt.View(), a.width, a.height)
	}
	return view
}

func overlayCenter(base, overlay string, width, height int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")

	overlayWidth := 0
	for _, line := range overlayLines {
		overlayWidth = max(overlayWidth, lipgloss.Width(line))
	}

	startRow := max((height-len(overlayLines))/2, 0)
	startCol := max((width-overlayWidth)/2, 0)

	for i, overlayLine := range overlayLines {
		row := startRow + i
		if row >= len(baseLines) {
			break
		}

		// Pad with spaces based on *visible* width (handles ANSI strings safely).
		baseLine := baseLines[row]
		if pad := startCol - lipgloss.Width(baseLine); pad > 0 {
			baseLine += strings.Repeat(" ", pad)
		}

		// Overlay by columns without breaking ANSI sequences.
		left := ansi.Cut(baseLine, 0, startCol)
		right := ansi.Cut(baseLine, startCol+overlayWidth, width)
		baseLines[row] = ansi.Truncate(left+overlayLine+right, width, "")
	}

	return strings.Join(baseLines, "\n")
}
