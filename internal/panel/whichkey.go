package panel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/dockyard/internal/theme"
)

// WhichKeyEntry represents a single key binding for display.
type WhichKeyEntry struct {
	Key   string
	Label string
}

// WhichKey renders a which-key style popup showing available bindings.
type WhichKey struct {
	entries []WhichKeyEntry
	prefix  string
	width   int
	theme   *theme.Theme
}

func NewWhichKey(th *theme.Theme) WhichKey {
	return WhichKey{theme: th}
}

func (w *WhichKey) SetEntries(prefix string, entries []WhichKeyEntry) {
	w.prefix = prefix
	w.entries = entries
	sort.Slice(w.entries, func(i, j int) bool {
		return w.entries[i].Key < w.entries[j].Key
	})
}

func (w *WhichKey) SetWidth(width int) {
	w.width = width
}

func (w *WhichKey) Clear() {
	w.entries = nil
	w.prefix = ""
}

func (w WhichKey) Visible() bool {
	return len(w.entries) > 0
}

func (w WhichKey) View() string {
	if len(w.entries) == 0 {
		return ""
	}
	th := w.theme

	width := w.width
	if width == 0 {
		width = 60
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.LeaderMode).
		Padding(0, 1).
		Width(width - 4)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(th.LeaderMode)
	keyStyle := lipgloss.NewStyle().Foreground(th.Accent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(th.Text)

	title := "Leader"
	if w.prefix != "" {
		title = fmt.Sprintf("Leader > %s", w.prefix)
	}
	lines := []string{titleStyle.Render(title)}

	// Two columns when there is room for them.
	colWidth := (width - 4) / 2
	if colWidth < 20 {
		colWidth = width - 4
	}

	for i := 0; i < len(w.entries); i += 2 {
		left := keyStyle.Render(w.entries[i].Key) + " " + labelStyle.Render(w.entries[i].Label)
		if i+1 < len(w.entries) && colWidth < width-4 {
			right := keyStyle.Render(w.entries[i+1].Key) + " " + labelStyle.Render(w.entries[i+1].Label)
			leftPad := max(colWidth-lipgloss.Width(left), 1)
			lines = append(lines, left+strings.Repeat(" ", leftPad)+right)
			continue
		}
		lines = append(lines, left)
		if i+1 < len(w.entries) {
			// Single column: the pair's second entry gets its own row.
			lines = append(lines, keyStyle.Render(w.entries[i+1].Key)+" "+labelStyle.Render(w.entries[i+1].Label))
		}
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}
