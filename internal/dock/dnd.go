package dock

import (
	"time"

	"github.com/google/uuid"
)

// Transfer is what a drag carries: an opaque token the Dock issued for one
// of its dockables. Tokens are revoked when the dockable leaves the Dock.
type Transfer struct {
	Token uuid.UUID
}

// DropTarget describes where a drop at the current pointer would go.
type DropTarget struct {
	Container *Container
	// Location is None when the drop stacks into Container's tabs.
	Location Location
	// Index is the tab insertion index for stacking drops, -1 otherwise.
	Index int
	// Preview is the area highlighted while hovering.
	Preview Rect
}

// DragDrop carries a dockable across the dock. A tab press arms it; once
// the pointer passes the debounce it enters, tracks Over, and finishes
// with Drop or Exit. Exit and failed drops never touch the tree.
type DragDrop struct {
	dock *Dock

	armed   bool
	pending Transfer
	ax, ay  int
	at      time.Time

	source    Dockable
	target    DropTarget
	hasTarget bool
}

// Arm records a tab press that may turn into a drag.
func (g *DragDrop) Arm(t Transfer, x, y int) {
	g.reset()
	g.armed = true
	g.pending = t
	g.ax, g.ay = x, y
	g.at = g.dock.now()
}

// Armed reports whether a press is waiting on the debounce.
func (g *DragDrop) Armed() bool { return g.armed }

// Motion feeds pointer movement. An armed press enters the drag once the
// pointer moves past the drag threshold or the delay elapses. It reports
// whether a drag is in flight afterwards.
func (g *DragDrop) Motion(x, y int) bool {
	if g.armed {
		moved := max(abs(x-g.ax), abs(y-g.ay))
		held := g.dock.now().Sub(g.at)
		if moved < g.dock.threshold && held < g.dock.delay {
			return false
		}
		t := g.pending
		if err := g.Enter(t); err != nil {
			g.dock.logger.Debug("drag rejected", "err", err)
			return false
		}
	}
	if g.source == nil {
		return false
	}
	g.Over(x, y)
	return true
}

// Enter starts a drag of the dockable t refers to. Tokens from another
// Dock or for dockables that have since left are rejected.
func (g *DragDrop) Enter(t Transfer) error {
	g.reset()
	d, err := g.dock.resolve(t)
	if err != nil {
		return err
	}
	g.source = d
	return nil
}

// Active reports whether a drag is in flight.
func (g *DragDrop) Active() bool { return g.source != nil }

// Source returns the dockable being dragged.
func (g *DragDrop) Source() Dockable { return g.source }

// Target returns the drop target under the pointer from the last Over.
func (g *DragDrop) Target() (DropTarget, bool) {
	return g.target, g.hasTarget
}

// Preview is the rectangle to highlight, empty when there is no target.
func (g *DragDrop) Preview() Rect {
	if !g.hasTarget {
		return Rect{}
	}
	return g.target.Preview
}

// Over resolves the drop target under (x, y). The header row stacks at
// the insertion point; the content area splits toward the nearest side.
func (g *DragDrop) Over(x, y int) bool {
	if g.source == nil {
		return false
	}
	t, ok := g.dock.targetAt(x, y)
	g.setTarget(t, ok)
	return ok
}

func (g *DragDrop) setTarget(t DropTarget, ok bool) {
	if g.hasTarget && g.target.Container != nil {
		g.target.Container.header.SetDropIndex(-1)
	}
	g.target, g.hasTarget = t, ok
	if ok && t.Location == None {
		t.Container.header.SetDropIndex(t.Index)
	}
}

// Drop commits the drag at (x, y). The drag ends whatever the outcome.
func (g *DragDrop) Drop(x, y int) error {
	if g.source == nil {
		g.reset()
		return ErrNotDragging
	}
	defer g.reset()

	src := g.source
	// The dockable may have been closed while the drag was in flight.
	if t, ok := g.dock.tokenOf[src]; !ok || g.dock.tokens[t] != src {
		return ErrForeignTransfer
	}
	t, ok := g.dock.targetAt(x, y)
	if !ok {
		return ErrNoTarget
	}
	if g.dock.degenerate(src, t) {
		return ErrDegenerateDrop
	}
	g.setTarget(DropTarget{}, false)

	if t.Location == None {
		t.Container.Stack(src, t.Index)
		g.dock.Focus(t.Container)
		g.dock.Revalidate()
		return nil
	}
	g.dock.DockNode(src, t.Container, t.Location)
	return nil
}

// Exit abandons the drag, for example when the pointer leaves the dock.
func (g *DragDrop) Exit() {
	g.reset()
}

func (g *DragDrop) reset() {
	if g.hasTarget && g.target.Container != nil {
		g.target.Container.header.SetDropIndex(-1)
	}
	*g = DragDrop{dock: g.dock}
}

func (d *Dock) targetAt(x, y int) (DropTarget, bool) {
	c := d.ContainerAt(x, y)
	if c == nil {
		return DropTarget{}, false
	}
	if c.header.bounds.Contains(x, y) {
		return DropTarget{
			Container: c,
			Location:  None,
			Index:     c.header.InsertionIndex(x),
			Preview:   c.ContentRect(),
		}, true
	}
	loc := quadrant(c.bounds, x, y)
	return DropTarget{
		Container: c,
		Location:  loc,
		Index:     -1,
		Preview:   loc.Half(c.bounds),
	}, true
}

// degenerate reports whether dropping src on t would leave everything
// where it is.
func (d *Dock) degenerate(src Dockable, t DropTarget) bool {
	host := d.hosts[src]
	if host == nil {
		return false
	}
	if t.Location == None {
		if host != t.Container {
			return false
		}
		if len(host.dockables) == 1 {
			return true
		}
		i := host.indexOf(src)
		return t.Index == i || t.Index == i+1
	}
	if len(host.dockables) > 1 {
		return false
	}
	if host == t.Container {
		return true
	}
	p := host.parent
	return p != nil && p == t.Container.parent &&
		p.indexOf(host) == t.Location.Slot() &&
		p.orientation == t.Location.Orientation()
}
