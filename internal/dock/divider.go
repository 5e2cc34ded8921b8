package dock

import "time"

// DividerDrag tracks a mouse drag on a Layout divider. The gesture runs
// Press, then any number of Moves, then Release. Every Move past the
// debounce applies the new offset immediately, so there is nothing to
// cancel.
type DividerDrag struct {
	dock   *Dock
	layout *Layout
	origin int
	offset int
	at     time.Time
	active bool
}

// Press starts a gesture if (x, y) is on a divider and reports whether it
// did.
func (g *DividerDrag) Press(x, y int) bool {
	l := g.dock.DividerAt(x, y)
	if l == nil {
		return false
	}
	p, _ := l.primary(l.bounds)
	*g = DividerDrag{
		dock:   g.dock,
		layout: l,
		origin: l.orientation.along(x, y),
		offset: p,
		at:     g.dock.now(),
	}
	return true
}

// Move drags the divider to follow the pointer once the pointer has
// travelled the drag threshold or the press has been held for the drag
// delay. It reports whether the layout changed.
func (g *DividerDrag) Move(x, y int) bool {
	l := g.layout
	if l == nil {
		return false
	}
	if !g.dock.root.Contains(l) || !l.Full() {
		g.Release()
		return false
	}
	delta := l.orientation.along(x, y) - g.origin
	if !g.active {
		held := g.dock.now().Sub(g.at)
		if abs(delta) < g.dock.threshold && held < g.dock.delay {
			return false
		}
		g.active = true
	}
	before := l.divider
	l.SetDividerOffset(g.offset + delta)
	l.Revalidate()
	return l.divider != before
}

// Release ends the gesture.
func (g *DividerDrag) Release() {
	*g = DividerDrag{dock: g.dock}
}

// Pressed reports whether a gesture is in progress, debounced or not.
func (g *DividerDrag) Pressed() bool { return g.layout != nil }

// Active reports whether the gesture has passed the debounce.
func (g *DividerDrag) Active() bool { return g.active }

// Layout returns the Layout being resized.
func (g *DividerDrag) Layout() *Layout { return g.layout }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
