package pane

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pfassina/dockyard/internal/markdown"
	"github.com/pfassina/dockyard/internal/theme"
	"github.com/pfassina/dockyard/internal/ui"
)

// Doc shows a rendered markdown file.
type Doc struct {
	path   string
	parser *markdown.Parser
	doc    *markdown.Document
	theme  *theme.Theme
	width  int
	height int
	offset int

	// render cache
	lines      []string
	linesWidth int
	linesTheme theme.Theme
}

// OpenDoc reads and parses the markdown file at path.
func OpenDoc(path string, p *markdown.Parser, th *theme.Theme) (*Doc, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	return NewDoc(path, content, p, th), nil
}

func NewDoc(path string, content []byte, p *markdown.Parser, th *theme.Theme) *Doc {
	if p == nil {
		p = markdown.NewParser()
	}
	return &Doc{path: path, parser: p, doc: p.Parse(content), theme: th}
}

func (d *Doc) Title() string {
	if t := d.doc.Title(); t != "" {
		return t
	}
	return strings.TrimSuffix(filepath.Base(d.path), filepath.Ext(d.path))
}

func (d *Doc) TitleIcon() string    { return "¶" }
func (d *Doc) TitleTooltip() string { return d.path }
func (d *Doc) Activated()           {}
func (d *Doc) Path() string         { return d.path }

func (d *Doc) Describe() Spec {
	return Spec{Kind: KindDoc, Arg: d.path, Title: d.Title()}
}

// Reload re-reads the file from disk.
func (d *Doc) Reload() error {
	content, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("reloading document: %w", err)
	}
	d.doc = d.parser.Parse(content)
	d.lines = nil
	return nil
}

func (d *Doc) SetSize(width, height int) {
	d.width = width
	d.height = height
}

func (d *Doc) rendered() []string {
	if d.lines == nil || d.linesWidth != d.width || d.linesTheme != *d.theme {
		out := d.doc.Render(d.width-2, markdown.StylesFrom(d.theme))
		d.lines = strings.Split(out, "\n")
		d.linesWidth = d.width
		d.linesTheme = *d.theme
	}
	return d.lines
}

func (d *Doc) maxOffset() int {
	return max(0, len(d.rendered())-d.height)
}

func (d *Doc) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	page := max(1, d.height/2)
	switch key.String() {
	case "j", "down":
		d.offset++
	case "k", "up":
		d.offset--
	case "ctrl+d", "pgdown":
		d.offset += page
	case "ctrl+u", "pgup":
		d.offset -= page
	case "g", "home":
		d.offset = 0
	case "G", "end":
		d.offset = d.maxOffset()
	case "r":
		d.Reload() //nolint:errcheck // keep showing the last good copy
	}
	d.offset = max(0, min(d.offset, d.maxOffset()))
	return nil
}

func (d *Doc) View() string {
	if d.width == 0 || d.height == 0 {
		return ""
	}
	lines := d.rendered()
	end := min(len(lines), d.offset+d.height)
	var b strings.Builder
	for i := d.offset; i < end; i++ {
		if i > d.offset {
			b.WriteByte('\n')
		}
		b.WriteString(ui.Fit(" "+lines[i], d.width))
	}
	return b.String()
}
