package pane

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/dockyard/internal/theme"
	"github.com/pfassina/dockyard/internal/ui"
)

// OpenDocMsg is sent when a markdown file is chosen in a Files pane. The app
// opens it as a tab next to From.
type OpenDocMsg struct {
	Path string
	From *Files
}

// FilesChangedMsg is sent when the browsed directory or the hidden-file
// toggle changes, so the preference can be persisted.
type FilesChangedMsg struct {
	Root       string
	ShowHidden bool
}

// maxEntries bounds a single directory listing.
const maxEntries = 2000

type entry struct {
	name  string
	path  string
	dir   bool
	depth int
}

// Files browses a directory tree. Directories expand in place.
type Files struct {
	root       string
	showHidden bool
	expanded   map[string]bool
	entries    []entry
	cursor     int
	offset     int
	width      int
	height     int
	showHelp   bool
	theme      *theme.Theme
	err        error
}

func NewFiles(root string, showHidden bool, th *theme.Theme) *Files {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &Files{
		root:       root,
		showHidden: showHidden,
		expanded:   make(map[string]bool),
		theme:      th,
	}
}

func (f *Files) Title() string        { return "Files" }
func (f *Files) TitleIcon() string    { return "▤" }
func (f *Files) TitleTooltip() string { return f.root }
func (f *Files) Activated()           {}

func (f *Files) Root() string     { return f.root }
func (f *Files) ShowHidden() bool { return f.showHidden }

func (f *Files) Describe() Spec {
	return Spec{Kind: KindFiles, Arg: f.root, Title: "Files"}
}

// Refresh re-reads the root and every expanded directory.
func (f *Files) Refresh() error {
	entries, err := f.walk(f.root, 0)
	f.entries = entries
	f.err = err
	f.cursor = max(0, min(f.cursor, len(f.entries)-1))
	return err
}

func (f *Files) walk(dir string, depth int) ([]entry, error) {
	list, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	if len(list) > maxEntries {
		list = list[:maxEntries]
	}
	// Directories first, each group keeps ReadDir's name order.
	slices.SortStableFunc(list, func(a, b os.DirEntry) int {
		switch {
		case a.IsDir() == b.IsDir():
			return 0
		case a.IsDir():
			return -1
		}
		return 1
	})

	var out []entry
	for _, de := range list {
		name := de.Name()
		if !f.showHidden && strings.HasPrefix(name, ".") {
			continue
		}
		e := entry{name: name, path: filepath.Join(dir, name), dir: de.IsDir(), depth: depth}
		out = append(out, e)
		if e.dir && f.expanded[e.path] {
			children, err := f.walk(e.path, depth+1)
			if err != nil {
				// Unreadable subdirectory: show it collapsed.
				delete(f.expanded, e.path)
				continue
			}
			out = append(out, children...)
		}
	}
	return out, nil
}

// Chdir makes dir the new root.
func (f *Files) Chdir(dir string) error {
	prev := f.root
	f.root = dir
	f.cursor, f.offset = 0, 0
	if err := f.Refresh(); err != nil {
		f.root = prev
		f.Refresh() //nolint:errcheck // previous root was readable a moment ago
		return err
	}
	return nil
}

func (f *Files) changed() tea.Cmd {
	msg := FilesChangedMsg{Root: f.root, ShowHidden: f.showHidden}
	return func() tea.Msg { return msg }
}

func isMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

func (f *Files) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	// When help is shown, any key dismisses it
	if f.showHelp {
		f.showHelp = false
		return nil
	}

	switch key.String() {
	case "j", "down":
		if f.cursor < len(f.entries)-1 {
			f.cursor++
		}
	case "k", "up":
		if f.cursor > 0 {
			f.cursor--
		}
	case "g", "home":
		f.cursor = 0
	case "G", "end":
		f.cursor = max(0, len(f.entries)-1)
	case "enter", "l", "right":
		if f.cursor >= len(f.entries) {
			break
		}
		e := f.entries[f.cursor]
		if e.dir {
			if key.String() == "enter" || !f.expanded[e.path] {
				f.expanded[e.path] = !f.expanded[e.path]
				f.Refresh() //nolint:errcheck // shown in View
			}
			break
		}
		if key.String() == "enter" && isMarkdown(e.name) {
			return func() tea.Msg { return OpenDocMsg{Path: e.path, From: f} }
		}
	case "h", "left":
		f.collapse()
	case "-", "backspace":
		parent := filepath.Dir(f.root)
		if parent != f.root && f.Chdir(parent) == nil {
			return f.changed()
		}
	case ".":
		f.showHidden = !f.showHidden
		f.Refresh() //nolint:errcheck // shown in View
		return f.changed()
	case "r":
		f.Refresh() //nolint:errcheck // shown in View
	case "?":
		f.showHelp = true
	}
	return nil
}

// collapse folds the directory under the cursor, or the one containing it.
func (f *Files) collapse() {
	if f.cursor >= len(f.entries) {
		return
	}
	e := f.entries[f.cursor]
	if e.dir && f.expanded[e.path] {
		delete(f.expanded, e.path)
		f.Refresh() //nolint:errcheck // shown in View
		return
	}
	parent := filepath.Dir(e.path)
	if parent == f.root {
		return
	}
	delete(f.expanded, parent)
	f.Refresh() //nolint:errcheck // shown in View
	for i, other := range f.entries {
		if other.path == parent {
			f.cursor = i
			break
		}
	}
}

func (f *Files) SetSize(width, height int) {
	f.width = width
	f.height = height
}

func (f *Files) View() string {
	if f.width == 0 || f.height == 0 {
		return ""
	}
	st := ui.StylesFrom(f.theme)

	var b strings.Builder
	head := st.Subtitle.Render(ui.Fit(" "+f.root, f.width-2)) + st.Dim.Render(" ?")
	b.WriteString(head)

	viewHeight := f.height - 1
	var help string
	if f.showHelp {
		help = f.renderHelp(st)
		viewHeight -= lipgloss.Height(help)
	}
	viewHeight = max(viewHeight, 0)

	if f.err != nil {
		b.WriteString("\n" + st.Error.Render(ui.Fit(" "+f.err.Error(), f.width)))
		viewHeight--
	}

	f.offset = ui.Window(f.offset, f.cursor, viewHeight, len(f.entries))
	for i := f.offset; i < len(f.entries) && i-f.offset < viewHeight; i++ {
		e := f.entries[i]
		icon := "  "
		if e.dir {
			if f.expanded[e.path] {
				icon = "▾ "
			} else {
				icon = "▸ "
			}
		}
		line := ui.Fit(" "+strings.Repeat("  ", e.depth)+icon+e.name, f.width)
		b.WriteByte('\n')
		switch {
		case i == f.cursor:
			b.WriteString(st.Selected.Render(line))
		case e.dir:
			b.WriteString(st.Title.UnsetBold().Render(line))
		default:
			b.WriteString(st.Normal.Render(line))
		}
	}

	if help != "" {
		b.WriteByte('\n')
		b.WriteString(help)
	}
	return b.String()
}

func (f *Files) renderHelp(st ui.Styles) string {
	lines := []struct{ k, v string }{
		{"j/k", "Navigate"},
		{"enter", "Open / Toggle dir"},
		{"h/l", "Collapse / Expand"},
		{"-", "Parent directory"},
		{".", "Toggle hidden files"},
		{"r", "Refresh"},
		{"g/G", "Top / Bottom"},
	}
	var sb strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&sb, " %s  %s\n", st.Key.Render(fmt.Sprintf("%-5s", l.k)), st.Dim.Render(l.v))
	}
	box := st.PanelBorder.Padding(0, 1).Width(max(f.width-2, 1))
	return box.Render(strings.TrimRight(sb.String(), "\n"))
}
