package app

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pfassina/dockyard/internal/dock"
	"github.com/pfassina/dockyard/internal/term"
)

// handleMouse drives the divider and tab gestures. Overlays swallow the
// mouse while they are open.
func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if a.prompt.Visible() || a.picker.Visible() {
		return nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			return a.mousePress(msg.X, msg.Y)
		case tea.MouseButtonWheelUp:
			return a.scroll(msg.X, msg.Y, tea.KeyUp)
		case tea.MouseButtonWheelDown:
			return a.scroll(msg.X, msg.Y, tea.KeyDown)
		}
	case tea.MouseActionMotion:
		a.mouseMotion(msg.X, msg.Y)
	case tea.MouseActionRelease:
		a.mouseRelease(msg.X, msg.Y)
	}
	return nil
}

func (a *App) mousePress(x, y int) tea.Cmd {
	a.status.ClearError()
	if a.dock.Divider().Press(x, y) {
		return nil
	}
	c := a.dock.ContainerAt(x, y)
	if c == nil {
		return nil
	}

	hit := c.Header().HitTest(x, y)
	switch hit.Kind {
	case dock.HitTab:
		d := c.Dockables()[hit.Index]
		c.SetCurrent(d)
		a.dock.Focus(c)
		if t, ok := a.dock.TransferFor(d); ok {
			a.dock.Drag().Arm(t, x, y)
		}
	case dock.HitClose:
		return a.closeDockable(c.Dockables()[hit.Index])
	case dock.HitMaximize:
		a.dock.ToggleMaximize(c)
	case dock.HitOverflow:
		a.dock.Focus(c)
		a.showOverflow(c)
	default:
		a.dock.Focus(c)
	}
	return nil
}

func (a *App) mouseMotion(x, y int) {
	if div := a.dock.Divider(); div.Pressed() {
		div.Move(x, y)
		return
	}
	drag := a.dock.Drag()
	if drag.Armed() || drag.Active() {
		if !a.dock.Bounds().Contains(x, y) {
			drag.Exit()
			return
		}
		drag.Motion(x, y)
		return
	}
	a.hover(x, y)
}

func (a *App) mouseRelease(x, y int) {
	if div := a.dock.Divider(); div.Pressed() {
		div.Release()
		return
	}
	drag := a.dock.Drag()
	switch {
	case drag.Active():
		err := drag.Drop(x, y)
		switch {
		case err == nil:
		case errors.Is(err, dock.ErrForeignTransfer):
			a.status.SetError("drop rejected: the pane is gone")
		default:
			a.logger.Debug("drop ignored", "err", err)
		}
	case drag.Armed():
		// A click, not a drag.
		drag.Exit()
	}
}

// hover shows the tooltip of the tab under the pointer.
func (a *App) hover(x, y int) {
	tip := ""
	if c := a.dock.ContainerAt(x, y); c != nil {
		if hit := c.Header().HitTest(x, y); hit.Kind == dock.HitTab {
			tip = c.Dockables()[hit.Index].TitleTooltip()
		}
	}
	a.status.SetTooltip(tip)
}

// scroll turns the wheel into arrow keys for the pane under the pointer.
// Terminals are left alone; arrows there mean shell history.
func (a *App) scroll(x, y int, key tea.KeyType) tea.Cmd {
	c := a.dock.ContainerAt(x, y)
	if c == nil || !c.ContentRect().Contains(x, y) {
		return nil
	}
	d := c.Current()
	if _, ok := d.(*term.Terminal); ok {
		return nil
	}
	if u, ok := d.(updater); ok {
		return u.Update(tea.KeyMsg{Type: key})
	}
	return nil
}
