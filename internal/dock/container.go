package dock

import "slices"

// headerHeight is the number of rows the tab header takes.
const headerHeight = 1

// Container is a leaf of the dock tree: one or more dockables stacked as
// tabs, exactly one of them visible.
type Container struct {
	owner     *Dock
	parent    *Layout
	dockables []Dockable
	current   int
	active    bool
	header    *Header
	bounds    Rect
}

func newContainer(owner *Dock, d Dockable) *Container {
	mustDockable(d)
	c := &Container{owner: owner}
	c.header = newHeader(c)
	c.insert(d, 0)
	return c
}

func (c *Container) dockNode() {}

func (c *Container) Bounds() Rect      { return c.bounds }
func (c *Container) Parent() *Layout   { return c.parent }
func (c *Container) Header() *Header   { return c.header }
func (c *Container) Active() bool      { return c.active }
func (c *Container) CurrentIndex() int { return c.current }

// Maximized reports whether this container currently fills the dock.
func (c *Container) Maximized() bool {
	return c.owner.maximized == c
}

// Dockables returns the tabs in order.
func (c *Container) Dockables() []Dockable {
	return slices.Clone(c.dockables)
}

// Current returns the visible dockable, or nil for a destroyed container.
func (c *Container) Current() Dockable {
	if c.current < 0 || c.current >= len(c.dockables) {
		return nil
	}
	return c.dockables[c.current]
}

func (c *Container) indexOf(d Dockable) int {
	return slices.Index(c.dockables, d)
}

// ContentRect is the area below the header where the current dockable draws.
func (c *Container) ContentRect() Rect {
	return c.bounds.Inset(headerHeight, 0, 0, 0)
}

// Stack adds d as a tab at index (negative or past the end appends) and
// makes it current. A dockable living elsewhere is closed there first,
// which may destroy its old container.
func (c *Container) Stack(d Dockable, index int) {
	mustDockable(d)
	host := c.owner.hosts[d]
	if host == c && len(c.dockables) == 1 {
		c.owner.Focus(c)
		return
	}
	switch {
	case host == c:
		c.move(d, index)
	case host != nil:
		host.Close(d)
		c.insert(d, index)
	default:
		c.insert(d, index)
	}
	c.SetCurrent(d)
	c.Revalidate()
}

// move reorders a tab that already lives in c.
func (c *Container) move(d Dockable, index int) {
	old := c.indexOf(d)
	cur := c.Current()
	if index < 0 || index > len(c.dockables) {
		index = len(c.dockables)
	}
	if index > old {
		index--
	}
	c.dockables = slices.Delete(c.dockables, old, old+1)
	c.dockables = slices.Insert(c.dockables, index, d)
	c.header.moveTab(old, index)
	c.current = c.indexOf(cur)
}

func (c *Container) insert(d Dockable, index int) {
	if index < 0 || index > len(c.dockables) {
		index = len(c.dockables)
	}
	c.dockables = slices.Insert(c.dockables, index, d)
	c.header.insertTab(index, d)
	if index <= c.current && len(c.dockables) > 1 {
		c.current++
	}
	c.owner.adopt(d, c)
}

// Close removes d without consulting it. The last close destroys the
// container and collapses the tree around it. Otherwise the tab left of
// the removed one (or the first) becomes current.
func (c *Container) Close(d Dockable) {
	i := c.indexOf(d)
	if i < 0 {
		return
	}
	prev := c.Current()
	c.dockables = slices.Delete(c.dockables, i, i+1)
	c.header.removeTab(i)
	c.owner.release(d, c)

	if len(c.dockables) == 0 {
		c.current = 0
		c.owner.removeContainer(c)
		return
	}

	next := max(i-1, 0)
	if c.dockables[next] == prev {
		c.current = next
		c.header.fit()
		return
	}
	c.current = -1
	c.setCurrentIndex(next)
}

// AttemptClose is the user-facing close: it asks a Closer first and
// reports whether d was removed.
func (c *Container) AttemptClose(d Dockable) bool {
	if c.indexOf(d) < 0 {
		return false
	}
	if cl, ok := d.(Closer); ok {
		if !cl.MayAttemptClose() || !cl.AttemptClose() {
			c.owner.logger.Debug("close vetoed", "title", d.Title())
			return false
		}
	}
	c.Close(d)
	return true
}

// SetCurrent makes d the visible tab.
func (c *Container) SetCurrent(d Dockable) {
	if i := c.indexOf(d); i >= 0 {
		c.setCurrentIndex(i)
	}
}

// SelectNext moves the current tab by delta, wrapping around.
func (c *Container) SelectNext(delta int) {
	n := len(c.dockables)
	if n == 0 {
		return
	}
	c.setCurrentIndex(((c.current+delta)%n + n) % n)
}

func (c *Container) setCurrentIndex(i int) {
	changed := i != c.current
	c.current = i
	c.header.fit()
	if changed && c.active {
		c.dockables[i].Activated()
	}
}

// SetBounds places the header on the first row and hands the rest to the
// dockables.
func (c *Container) SetBounds(r Rect) {
	c.place(r)
	if r.hidden() {
		return
	}
	content := c.ContentRect()
	for _, d := range c.dockables {
		if s, ok := d.(Sizer); ok {
			s.SetSize(content.W, content.H)
		}
	}
}

func (c *Container) place(r Rect) {
	c.bounds = r
	h := headerHeight
	if h > r.H {
		h = r.H
	}
	c.header.SetBounds(Rect{X: r.X, Y: r.Y, W: r.W, H: h})
}

func (c *Container) Revalidate() {
	c.SetBounds(c.bounds)
}
