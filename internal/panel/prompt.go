package panel

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/dockyard/internal/theme"
)

// PromptResultMsg is sent when the prompt is confirmed. Confirm prompts
// send Value "yes".
type PromptResultMsg struct {
	Value string
}

// PromptCancelledMsg is sent when the prompt is dismissed.
type PromptCancelledMsg struct{}

// Prompt is a centered overlay dialog: either a text input or a yes/no
// confirmation.
type Prompt struct {
	input   textinput.Model
	title   string
	confirm bool
	width   int
	height  int
	visible bool
	theme   *theme.Theme
}

func NewPrompt(th *theme.Theme) Prompt {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40
	ti.Focus()

	return Prompt{input: ti, theme: th}
}

func (p *Prompt) Show(title, placeholder string) {
	p.visible = true
	p.confirm = false
	p.title = title
	p.input.Placeholder = placeholder
	p.input.SetValue("")
	p.input.Focus()
}

// ShowConfirm asks a yes/no question.
func (p *Prompt) ShowConfirm(title string) {
	p.visible = true
	p.confirm = true
	p.title = title
	p.input.Blur()
}

func (p *Prompt) Hide() {
	p.visible = false
	p.input.Blur()
}

func (p Prompt) Visible() bool {
	return p.visible
}

func (p Prompt) Update(msg tea.Msg) (Prompt, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	key, isKey := msg.(tea.KeyMsg)

	if p.confirm {
		if !isKey {
			return p, nil
		}
		switch key.String() {
		case "y", "Y", "enter":
			p.visible = false
			return p, func() tea.Msg { return PromptResultMsg{Value: "yes"} }
		case "n", "N", "esc", "ctrl+c":
			p.visible = false
			return p, func() tea.Msg { return PromptCancelledMsg{} }
		}
		return p, nil
	}

	if isKey {
		switch key.String() {
		case "enter":
			value := strings.TrimSpace(p.input.Value())
			p.visible = false
			if value == "" {
				return p, func() tea.Msg { return PromptCancelledMsg{} }
			}
			return p, func() tea.Msg { return PromptResultMsg{Value: value} }

		case "esc", "ctrl+c":
			p.visible = false
			return p, func() tea.Msg { return PromptCancelledMsg{} }
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Prompt) View() string {
	if !p.visible {
		return ""
	}
	th := p.theme

	width := p.width
	if width == 0 {
		width = 60
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.PromptMode).
		Padding(0, 1).
		Width(width - 6)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(th.PromptMode)
	dimStyle := lipgloss.NewStyle().Foreground(th.Dim)

	lines := []string{titleStyle.Render(p.title)}
	if p.confirm {
		lines = append(lines, "", dimStyle.Render("y to confirm, n or Esc to cancel"))
	} else {
		lines = append(lines, p.input.View(), "", dimStyle.Render("Enter to confirm, Esc to cancel"))
	}
	return borderStyle.Render(strings.Join(lines, "\n"))
}

func (p *Prompt) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(width/2-8, 10)
}
