package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/dockyard/internal/theme"
	"github.com/pfassina/dockyard/internal/ui"
)

// PickerItem is one choice in a Picker.
type PickerItem struct {
	Title string
	Extra string // dimmed after the title, e.g. the pane's location
	Value any
}

// PickedMsg is sent when an item is chosen. Purpose echoes Show's argument
// so one picker can serve several menus.
type PickedMsg struct {
	Purpose string
	Item    PickerItem
}

// PickerClosedMsg is sent when the picker is dismissed without a choice.
type PickerClosedMsg struct{}

// Picker is a filterable list overlay.
type Picker struct {
	input   textinput.Model
	title   string
	purpose string
	all     []PickerItem
	items   []PickerItem
	cursor  int
	width   int
	height  int
	visible bool
	theme   *theme.Theme
}

func NewPicker(th *theme.Theme) Picker {
	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.CharLimit = 256
	ti.Width = 50
	ti.Focus()

	return Picker{input: ti, theme: th}
}

func (p *Picker) Show(title, purpose string, items []PickerItem) {
	p.visible = true
	p.title = title
	p.purpose = purpose
	p.all = items
	p.input.SetValue("")
	p.input.Focus()
	p.filter()
}

func (p *Picker) Hide() {
	p.visible = false
	p.input.Blur()
}

func (p Picker) Visible() bool {
	return p.visible
}

// Items returns the items matching the current filter.
func (p Picker) Items() []PickerItem {
	return p.items
}

func (p *Picker) filter() {
	query := strings.ToLower(strings.TrimSpace(p.input.Value()))
	p.items = nil
	for _, it := range p.all {
		if query == "" || strings.Contains(strings.ToLower(it.Title), query) {
			p.items = append(p.items, it)
		}
	}
	p.cursor = 0
}

func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	if !p.visible {
		return p, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "ctrl+c":
			p.visible = false
			return p, func() tea.Msg { return PickerClosedMsg{} }

		case "enter":
			if p.cursor >= len(p.items) {
				return p, nil
			}
			picked := PickedMsg{Purpose: p.purpose, Item: p.items[p.cursor]}
			p.visible = false
			return p, func() tea.Msg { return picked }

		case "up", "ctrl+p", "ctrl+k":
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil

		case "down", "ctrl+n", "ctrl+j":
			if p.cursor < len(p.items)-1 {
				p.cursor++
			}
			return p, nil
		}
	}

	var cmd tea.Cmd
	prev := p.input.Value()
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != prev {
		p.filter()
	}
	return p, cmd
}

func (p Picker) View() string {
	if !p.visible {
		return ""
	}
	th := p.theme

	width := p.width
	if width == 0 {
		width = 60
	}
	innerWidth := width - 6

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Accent).
		Padding(0, 1).
		Width(innerWidth)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(th.Accent)
	dim := lipgloss.NewStyle().Foreground(th.Dim)

	lines := []string{titleStyle.Render(p.title), p.input.View(), ""}

	maxResults := min(max(p.height/2-4, 5), len(p.items))
	if len(p.items) == 0 {
		lines = append(lines, dim.Render("No matches"))
	}
	// Keep the cursor inside the visible slice.
	start := ui.Window(0, p.cursor, maxResults, len(p.items))
	for i := start; i < start+maxResults; i++ {
		item := p.items[i]
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(th.Text)
		if i == p.cursor {
			prefix = "> "
			style = lipgloss.NewStyle().Foreground(th.Accent).Bold(true)
		}
		line := style.Render(prefix + item.Title)
		if item.Extra != "" {
			line += " " + dim.Render(item.Extra)
		}
		lines = append(lines, ui.Fit(line, innerWidth-2))
	}
	if rest := len(p.items) - maxResults; rest > 0 {
		lines = append(lines, dim.Render(fmt.Sprintf("  ... and %d more", rest)))
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}

func (p *Picker) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(width/2-8, 10)
}
