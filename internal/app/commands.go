package app

import (
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pfassina/dockyard/internal/dock"
	"github.com/pfassina/dockyard/internal/history"
	"github.com/pfassina/dockyard/internal/pane"
	"github.com/pfassina/dockyard/internal/panel"
)

// place docks d beside the focused container, or stacks it there for None.
func (a *App) place(d dock.Dockable, loc dock.Location) {
	if c := a.dock.ActiveContainer(); c != nil {
		a.dock.DockNode(d, c, loc)
		return
	}
	a.dock.DockRoot(d, loc)
}

func (a *App) current() dock.Dockable {
	if c := a.dock.ActiveContainer(); c != nil {
		return c.Current()
	}
	return nil
}

func (a *App) focusDockable(d dock.Dockable) {
	c := a.dock.ContainerOf(d)
	if c == nil {
		return
	}
	c.SetCurrent(d)
	a.dock.Focus(c)
}

func (a *App) splitTerminal(loc dock.Location) tea.Cmd {
	t, err := a.factory.Open(pane.Spec{Kind: pane.KindTerminal, Arg: a.cfg.Shell})
	if errors.Is(err, pane.ErrDisabled) {
		a.status.SetError("terminals are disabled in this session")
		return nil
	}
	if err != nil {
		a.status.SetError(err.Error())
		return nil
	}
	a.place(t, loc)
	return nil
}

func (a *App) closeCurrent() tea.Cmd {
	if d := a.current(); d != nil {
		return a.closeDockable(d)
	}
	return nil
}

// closeDockable is the user-facing close. A vetoed close asks for
// confirmation before forcing it.
func (a *App) closeDockable(d dock.Dockable) tea.Cmd {
	c := a.dock.ContainerOf(d)
	if c == nil {
		return nil
	}
	if cl, ok := d.(dock.Closer); ok && !cl.MayAttemptClose() {
		return nil
	}
	if !c.AttemptClose(d) {
		a.pendingClose = d
		a.prompt.ShowConfirm(fmt.Sprintf("%s has unsaved changes. Close anyway?", d.Title()))
		return nil
	}
	a.closed(d)
	return nil
}

func (a *App) forceClose() {
	d := a.pendingClose
	a.pendingClose = nil
	if d == nil {
		return
	}
	if c := a.dock.ContainerOf(d); c != nil {
		c.Close(d)
		a.closed(d)
	}
}

// closed records a pane that just left the dock and releases it.
func (a *App) closed(d dock.Dockable) {
	a.record(d)
	if cl, ok := d.(io.Closer); ok {
		if err := cl.Close(); err != nil {
			a.logger.Warn("close pane", "title", d.Title(), "err", err)
		}
	}
	a.dock.Revalidate()
}

func (a *App) record(d dock.Dockable) {
	desc, ok := d.(pane.Describer)
	if !ok || a.history == nil {
		return
	}
	s := desc.Describe()
	err := a.history.Record(history.Entry{Kind: string(s.Kind), Arg: s.Arg, Title: s.Title})
	if err != nil {
		a.logger.Warn("record closed pane", "title", s.Title, "err", err)
	}
}

// reopen brings back the most recently closed pane. Entries that can no
// longer be opened are skipped.
func (a *App) reopen() tea.Cmd {
	if a.history == nil {
		a.status.SetError("no pane history in this session")
		return nil
	}
	for {
		e, ok, err := a.history.Pop()
		if err != nil {
			a.status.SetError(fmt.Sprintf("history: %v", err))
			return nil
		}
		if !ok {
			a.status.SetError("nothing to reopen")
			return nil
		}
		if err := a.restore(e); err != nil {
			a.logger.Info("skip history entry", "kind", e.Kind, "arg", e.Arg, "err", err)
			continue
		}
		return nil
	}
}

const recentLimit = 20

// pickRecent lists the journal so any closed pane can be reopened, not only
// the last one.
func (a *App) pickRecent() tea.Cmd {
	if a.history == nil {
		a.status.SetError("no pane history in this session")
		return nil
	}
	entries, err := a.history.Recent(recentLimit)
	if err != nil {
		a.status.SetError(fmt.Sprintf("history: %v", err))
		return nil
	}
	if len(entries) == 0 {
		a.status.SetError("nothing to reopen")
		return nil
	}
	items := make([]panel.PickerItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, panel.PickerItem{
			Title: e.Title,
			Extra: fmt.Sprintf("%s · %s", e.Kind, a.ago(e.ClosedAt)),
			Value: e,
		})
	}
	a.picker.Show("Recently closed", "recent", items)
	return nil
}

// reopenEntry takes a picked journal entry out of the history and opens it.
func (a *App) reopenEntry(e history.Entry) {
	taken, ok, err := a.history.Take(e.ID)
	switch {
	case err != nil:
		a.status.SetError(fmt.Sprintf("history: %v", err))
	case !ok:
		a.status.SetError("already reopened")
	default:
		if err := a.restore(taken); err != nil {
			a.status.SetError(fmt.Sprintf("reopen %s: %v", taken.Title, err))
		}
	}
}

func (a *App) restore(e history.Entry) error {
	d, err := a.factory.Open(pane.Spec{Kind: pane.Kind(e.Kind), Arg: e.Arg, Title: e.Title})
	if err != nil {
		return err
	}
	a.place(d, dock.None)
	return nil
}

func (a *App) ago(t time.Time) string {
	d := a.now().Sub(t).Round(time.Second)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
	return t.Format("Jan 2")
}

func (a *App) toggleMaximize() tea.Cmd {
	a.dock.ToggleMaximize(a.dock.ActiveContainer())
	return nil
}

func (a *App) cycleTab(delta int) tea.Cmd {
	if c := a.dock.ActiveContainer(); c != nil {
		c.SelectNext(delta)
	}
	return nil
}

func (a *App) focusNeighbor(loc dock.Location) tea.Cmd {
	if n := a.dock.Neighbor(a.dock.ActiveContainer(), loc); n != nil {
		a.dock.Focus(n)
	}
	return nil
}

// moveCurrent re-docks the visible pane along an edge of the whole dock.
func (a *App) moveCurrent(loc dock.Location) tea.Cmd {
	if d := a.current(); d != nil {
		a.dock.DockRoot(d, loc)
	}
	return nil
}

func (a *App) pickTab() tea.Cmd {
	var items []panel.PickerItem
	for _, d := range a.dock.Dockables() {
		items = append(items, panel.PickerItem{Title: d.Title(), Extra: d.TitleTooltip(), Value: d})
	}
	a.picker.Show("Panes", "pick", items)
	return nil
}

// showOverflow lists the tabs of c that did not fit in its header.
func (a *App) showOverflow(c *dock.Container) {
	var items []panel.PickerItem
	for _, d := range c.Header().Hidden() {
		items = append(items, panel.PickerItem{Title: d.Title(), Extra: d.TitleTooltip(), Value: d})
	}
	a.picker.Show("Hidden tabs", "overflow", items)
}

func (a *App) evenSplits() tea.Cmd {
	a.dock.EvenSplits()
	return nil
}

// openFiles focuses the Files pane, opening one on the left edge if there
// is none.
func (a *App) openFiles() tea.Cmd {
	for _, d := range a.dock.Dockables() {
		if f, ok := d.(*pane.Files); ok {
			a.focusDockable(f)
			return nil
		}
	}
	files := a.newFiles()
	a.dock.DockRoot(files, dock.West)
	if c := a.dock.ContainerOf(files); c != nil && c.Parent() != nil {
		c.Parent().SetDividerOffset(filesWidth)
		a.dock.Revalidate()
	}
	return nil
}

func (a *App) openHelp() tea.Cmd {
	for _, d := range a.dock.Dockables() {
		if t, ok := d.(*pane.Text); ok && t.Title() == "Help" {
			t.SetLines(a.helpLines())
			a.focusDockable(t)
			return nil
		}
	}
	a.dock.DockRoot(pane.NewText("Help", a.helpLines(), a.theme), dock.East)
	return nil
}

// openDoc shows a markdown file. An open document is focused rather than
// duplicated; new ones stack with other documents, or open beside the
// Files pane that asked.
func (a *App) openDoc(msg pane.OpenDocMsg) tea.Cmd {
	var sibling dock.Dockable
	for _, d := range a.dock.Dockables() {
		doc, ok := d.(*pane.Doc)
		if !ok {
			continue
		}
		if doc.Path() == msg.Path {
			if err := doc.Reload(); err != nil {
				a.status.SetError(err.Error())
			}
			a.focusDockable(doc)
			return nil
		}
		if sibling == nil {
			sibling = doc
		}
	}

	doc, err := pane.OpenDoc(msg.Path, a.factory.Parser, a.theme)
	if err != nil {
		a.status.SetError(err.Error())
		return nil
	}
	switch {
	case sibling != nil:
		a.dock.DockTo(doc, sibling, dock.None)
	case msg.From != nil && a.dock.ContainerOf(msg.From) != nil:
		a.dock.DockTo(doc, msg.From, dock.East)
	default:
		a.place(doc, dock.None)
	}
	return nil
}

func (a *App) toggleStatus() tea.Cmd {
	a.state.ShowStatus = !a.state.ShowStatus
	if a.width > 0 && a.height > 0 {
		a.resize(a.width, a.height)
	}
	a.saveState()
	return nil
}

func (a *App) quit() tea.Cmd {
	return tea.Quit
}
