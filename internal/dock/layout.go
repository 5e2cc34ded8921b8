package dock

// Layout is an internal tree node with two slots. A slot holds nothing, a
// *Container or another *Layout. Outside the root, a Layout always has both
// slots filled; removal collapses it into its surviving child.
type Layout struct {
	owner       *Dock
	parent      *Layout
	children    [2]Node
	orientation Orientation
	// divider is the size of slot 0 along the split axis, or -1 for an
	// even split recomputed on every layout pass.
	divider int
	bounds  Rect
}

func newLayout(owner *Dock, o Orientation) *Layout {
	return &Layout{owner: owner, orientation: o, divider: -1}
}

func (l *Layout) dockNode() {}

func (l *Layout) Bounds() Rect             { return l.bounds }
func (l *Layout) Parent() *Layout          { return l.parent }
func (l *Layout) Orientation() Orientation { return l.orientation }
func (l *Layout) Children() [2]Node        { return l.children }

// Full reports whether both slots are occupied.
func (l *Layout) Full() bool {
	return l.children[0] != nil && l.children[1] != nil
}

// Empty reports whether both slots are free.
func (l *Layout) Empty() bool {
	return l.children[0] == nil && l.children[1] == nil
}

func (l *Layout) indexOf(n Node) int {
	if n == nil {
		return -1
	}
	for i, c := range l.children {
		if c == n {
			return i
		}
	}
	return -1
}

func (l *Layout) sibling(n Node) Node {
	switch l.indexOf(n) {
	case 0:
		return l.children[1]
	case 1:
		return l.children[0]
	}
	return nil
}

// setChildren is the only place slots are written. It keeps the parent
// back pointers in step with the slots.
func (l *Layout) setChildren(a, b Node) {
	for _, old := range l.children {
		if old != nil && old != a && old != b && parentOf(old) == l {
			setParent(old, nil)
		}
	}
	l.children = [2]Node{a, b}
	if a != nil {
		setParent(a, l)
	}
	if b != nil {
		setParent(b, l)
	}
}

func (l *Layout) setChild(i int, n Node) {
	c := l.children
	c[i] = n
	l.setChildren(c[0], c[1])
}

// placeAt puts n on side loc of other and adopts loc's orientation.
func (l *Layout) placeAt(n, other Node, loc Location) {
	if loc.Slot() == 0 {
		l.setChildren(n, other)
	} else {
		l.setChildren(other, n)
	}
	l.orientation = loc.Orientation()
}

// Contains reports whether n is l or lies below it.
func (l *Layout) Contains(n Node) bool {
	if n == nil {
		return false
	}
	if n == Node(l) {
		return true
	}
	for _, c := range l.children {
		switch c := c.(type) {
		case nil:
		case *Container:
			if Node(c) == n {
				return true
			}
		case *Layout:
			if c.Contains(n) {
				return true
			}
		}
	}
	return false
}

// DividerOffset returns the stored divider offset, or -1 when the split
// is even.
func (l *Layout) DividerOffset() int {
	return l.divider
}

// SetDividerOffset stores an explicit divider offset. Negative values clamp
// to zero; the upper bound is applied on the next layout pass.
func (l *Layout) SetDividerOffset(v int) {
	if v < 0 {
		v = 0
	}
	l.divider = v
}

// ResetDividers returns l and every Layout below it to an even split.
func (l *Layout) ResetDividers() {
	walk(l, func(n Node) {
		if n, ok := n.(*Layout); ok {
			n.divider = -1
		}
	})
}

func (l *Layout) thickness(r Rect) int {
	t := l.owner.thickness
	if e := l.orientation.extent(r); t > e {
		t = e
	}
	return t
}

// primary computes the size of slot 0 for r and the space shared by both
// slots. An explicit offset is clamped and written back.
func (l *Layout) primary(r Rect) (primary, avail int) {
	avail = l.orientation.extent(r) - l.thickness(r)
	if avail < 0 {
		avail = 0
	}
	if l.divider < 0 {
		return avail / 2, avail
	}
	if l.divider > avail {
		l.divider = avail
	}
	return l.divider, avail
}

func (l *Layout) split(r Rect) (Rect, Rect) {
	p, avail := l.primary(r)
	t := l.thickness(r)
	if l.orientation == Vertical {
		return Rect{X: r.X, Y: r.Y, W: r.W, H: p},
			Rect{X: r.X, Y: r.Y + p + t, W: r.W, H: avail - p}
	}
	return Rect{X: r.X, Y: r.Y, W: p, H: r.H},
		Rect{X: r.X + p + t, Y: r.Y, W: avail - p, H: r.H}
}

// DividerRect is the strip between the two slots. It is empty unless the
// Layout is full and on screen.
func (l *Layout) DividerRect() Rect {
	if !l.Full() || l.bounds.hidden() || l.owner.maximized != nil {
		return Rect{}
	}
	r := l.bounds
	p, _ := l.primary(r)
	t := l.thickness(r)
	if l.orientation == Vertical {
		return Rect{X: r.X, Y: r.Y + p, W: r.W, H: t}
	}
	return Rect{X: r.X + p, Y: r.Y, W: t, H: r.H}
}

// SetBounds lays the subtree out inside r. While a container is maximized
// everything else moves off canvas and the maximized container alone gets r.
func (l *Layout) SetBounds(r Rect) {
	l.bounds = r
	if m := l.owner.maximized; m != nil {
		for _, c := range l.children {
			hide(c)
		}
		if l.Contains(m) {
			m.SetBounds(r)
		}
		return
	}

	a, b := l.children[0], l.children[1]
	switch {
	case a != nil && b != nil:
		ra, rb := l.split(r)
		a.SetBounds(ra)
		b.SetBounds(rb)
	case a != nil:
		a.SetBounds(r)
	case b != nil:
		b.SetBounds(r)
	}
}

func (l *Layout) Revalidate() {
	l.SetBounds(l.bounds)
}

// hide moves n and everything below it off canvas without changing sizes.
func hide(n Node) {
	walk(n, func(n Node) {
		switch n := n.(type) {
		case *Layout:
			n.bounds = n.bounds.offCanvas()
		case *Container:
			n.place(n.bounds.offCanvas())
		}
	})
}
