package pane

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pfassina/dockyard/internal/theme"
	"github.com/pfassina/dockyard/internal/ui"
)

// Text is a scrollable list of static lines, used for the help pane.
type Text struct {
	title  string
	lines  []string
	theme  *theme.Theme
	width  int
	height int
	offset int
}

func NewText(title string, lines []string, th *theme.Theme) *Text {
	return &Text{title: title, lines: lines, theme: th}
}

func (t *Text) Title() string        { return t.title }
func (t *Text) TitleIcon() string    { return "?" }
func (t *Text) TitleTooltip() string { return t.title }
func (t *Text) Activated()           {}

func (t *Text) Describe() Spec {
	return Spec{Kind: KindText, Title: t.title}
}

func (t *Text) SetLines(lines []string) {
	t.lines = lines
	t.offset = min(t.offset, t.maxOffset())
}

func (t *Text) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.offset = min(t.offset, t.maxOffset())
}

func (t *Text) maxOffset() int {
	return max(0, len(t.lines)-t.height)
}

func (t *Text) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "j", "down":
		t.offset = min(t.offset+1, t.maxOffset())
	case "k", "up":
		t.offset = max(t.offset-1, 0)
	case "g", "home":
		t.offset = 0
	case "G", "end":
		t.offset = t.maxOffset()
	}
	return nil
}

func (t *Text) View() string {
	if t.width == 0 || t.height == 0 {
		return ""
	}
	st := ui.StylesFrom(t.theme)
	if len(t.lines) == 0 {
		return st.Dim.Render(ui.Fit(" No items", t.width))
	}
	var b strings.Builder
	end := min(len(t.lines), t.offset+t.height)
	for i := t.offset; i < end; i++ {
		if i > t.offset {
			b.WriteByte('\n')
		}
		b.WriteString(st.Normal.Render(ui.Fit(" "+t.lines[i], t.width)))
	}
	return b.String()
}
