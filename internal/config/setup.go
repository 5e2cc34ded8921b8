package config

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SetupResult is what the first-run form collected.
type SetupResult struct {
	StartDir  string
	Shell     string
	Cancelled bool
}

const (
	fieldDir = iota
	fieldShell
	fieldCount
)

var setupLabels = [fieldCount]string{
	fieldDir:   "Directory the files pane opens in",
	fieldShell: "Command for new terminal panes",
}

type setupModel struct {
	fields [fieldCount]textinput.Model
	focus  int
	err    string
	done   bool
	quit   bool
}

func newSetupModel(defaults Config) setupModel {
	var m setupModel
	for i := range m.fields {
		ti := textinput.New()
		ti.CharLimit = 256
		ti.Width = 50
		m.fields[i] = ti
	}
	m.fields[fieldDir].Placeholder = "~"
	m.fields[fieldShell].Placeholder = defaults.Shell
	m.fields[fieldDir].Focus()
	return m
}

func (m setupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m setupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			return m, m.move(1)
		case "shift+tab", "up":
			return m, m.move(-1)
		case "enter":
			if m.focus < fieldCount-1 {
				return m, m.move(1)
			}
			res := m.result()
			if err := validateSetup(res); err != nil {
				m.err = err.Error()
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.quit = true
			return m, tea.Quit
		}
	}

	m.err = ""
	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	return m, cmd
}

func (m *setupModel) move(delta int) tea.Cmd {
	m.fields[m.focus].Blur()
	m.focus = (m.focus + delta + fieldCount) % fieldCount
	return m.fields[m.focus].Focus()
}

// result reads the form, falling back to the placeholders for empty fields.
func (m setupModel) result() SetupResult {
	value := func(i int) string {
		if v := strings.TrimSpace(m.fields[i].Value()); v != "" {
			return v
		}
		return m.fields[i].Placeholder
	}
	return SetupResult{
		StartDir: ExpandHome(value(fieldDir)),
		Shell:    value(fieldShell),
	}
}

func (m setupModel) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("212")).
		Render("Welcome to dockyard")
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	active := label.Bold(true)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	var b strings.Builder
	b.WriteString("\n " + title + "\n\n")
	for i, f := range m.fields {
		style := label
		if i == m.focus {
			style = active
		}
		fmt.Fprintf(&b, " %s\n   %s\n\n", style.Render(setupLabels[i]), f.View())
	}
	if m.err != "" {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		b.WriteString(" " + errStyle.Render(m.err) + "\n\n")
	}
	b.WriteString(" " + dim.Render("Tab to switch fields, Enter to confirm, Esc to cancel") + "\n")
	return b.String()
}

func validateSetup(res SetupResult) error {
	info, err := os.Stat(res.StartDir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%s does not exist", res.StartDir)
	case err != nil:
		return err
	case !info.IsDir():
		return fmt.Errorf("%s is not a directory", res.StartDir)
	}

	argv := strings.Fields(res.Shell)
	if len(argv) == 0 {
		return errors.New("the terminal command is empty")
	}
	if _, err := exec.LookPath(argv[0]); err != nil {
		return fmt.Errorf("%s not found", argv[0])
	}
	return nil
}

// RunSetup runs the first-run form, writes the answers to config.toml and
// returns them.
func RunSetup(defaults Config) (SetupResult, error) {
	final, err := tea.NewProgram(newSetupModel(defaults)).Run()
	if err != nil {
		return SetupResult{}, err
	}
	fm, ok := final.(setupModel)
	if !ok {
		return SetupResult{}, fmt.Errorf("unexpected model type from setup form")
	}
	if fm.quit || !fm.done {
		return SetupResult{Cancelled: true}, nil
	}

	res := fm.result()
	if err := SaveFile(res); err != nil {
		return SetupResult{}, fmt.Errorf("saving config: %w", err)
	}
	return res, nil
}
