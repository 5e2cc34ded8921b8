package dock

// dock places n on side loc of target. target must already be in the tree
// below l; anything else is ignored. n may already live in the tree, in
// which case it is moved.
func (l *Layout) dock(n, target Node, loc Location) {
	if n == nil || target == nil || n == target || !l.Contains(target) {
		return
	}
	if t, ok := target.(*Layout); ok && loc != None &&
		t.indexOf(n) == loc.Slot() && t.orientation == loc.Orientation() {
		// n already fills that side of t.
		return
	}

	if l.Contains(n) {
		old := parentOf(n)
		if old != nil && old == parentOf(target) {
			old.reposition(n, loc)
			return
		}
		// Taking n out of old collapses old into n's sibling.
		if target == Node(old) {
			if s := old.sibling(n); s != nil {
				target = s
			}
		}
		l.remove(n)
		if !l.Contains(target) {
			// Only the root can absorb a Layout child on removal.
			if _, ok := target.(*Layout); !ok {
				return
			}
			target = l
		}
	}

	switch t := target.(type) {
	case *Layout:
		t.dockInto(n, loc)
	case *Container:
		t.parent.dockBeside(n, t, loc)
	}
}

// reposition handles n and its sibling trading places within l.
func (l *Layout) reposition(n Node, loc Location) {
	s := l.sibling(n)
	if l.indexOf(n) == loc.Slot() && l.orientation == loc.Orientation() {
		return
	}
	swapped := l.indexOf(n) != loc.Slot()
	sameAxis := l.orientation == loc.Orientation()
	l.placeAt(n, s, loc)
	switch {
	case !sameAxis:
		l.divider = -1
	case swapped && l.divider >= 0:
		// Keep each occupant's size: slot 0 now holds what slot 1 had.
		_, avail := l.primary(l.bounds)
		l.divider = avail - l.divider
	}
}

// dockInto places n relative to the whole area of l.
func (l *Layout) dockInto(n Node, loc Location) {
	switch {
	case l.Empty():
		l.setChildren(n, nil)
		l.orientation = loc.Orientation()
	case !l.Full():
		existing := l.children[0]
		if existing == nil {
			existing = l.children[1]
		}
		l.placeAt(n, existing, loc)
	default:
		// Push both current children one level down.
		pushed := newLayout(l.owner, l.orientation)
		pushed.setChildren(l.children[0], l.children[1])
		if loc.Slot() == 1 {
			// pushed lands in slot 0 and keeps its origin, so the old
			// offset still describes its split.
			pushed.divider = l.divider
		}
		l.placeAt(n, pushed, loc)
	}
	l.divider = -1
}

// dockBeside places n on side loc of target, a direct child of l.
func (l *Layout) dockBeside(n Node, target *Container, loc Location) {
	i := l.indexOf(target)
	if i < 0 {
		return
	}
	if l.children[1-i] == nil {
		l.placeAt(n, target, loc)
		l.divider = -1
		return
	}
	// nl takes over target's slot and bounds, so l keeps its offset. A
	// Container has no split of its own to hand down, so nl starts even.
	nl := newLayout(l.owner, loc.Orientation())
	l.setChild(i, nl)
	nl.placeAt(n, target, loc)
}

// remove takes n out of the tree below l, collapsing any Layout left with
// fewer than two children. It reports whether n was found.
func (l *Layout) remove(n Node) bool {
	if n == nil || n == Node(l) {
		return false
	}
	if i := l.indexOf(n); i >= 0 {
		l.setChild(i, nil)
		l.collapse()
		return true
	}
	for _, c := range l.children {
		if cl, ok := c.(*Layout); ok && cl.remove(n) {
			return true
		}
	}
	return false
}

// collapse replaces a non-full Layout with its surviving child in the
// parent, cascading upwards while Layouts empty out. The root stays and
// instead absorbs a lone Layout child.
func (l *Layout) collapse() {
	if l.Full() {
		return
	}
	survivor := l.children[0]
	if survivor == nil {
		survivor = l.children[1]
	}

	if l.parent == nil {
		switch s := survivor.(type) {
		case *Layout:
			l.adopt(s)
		case *Container:
			l.setChildren(s, nil)
		}
		return
	}

	p := l.parent
	i := p.indexOf(l)
	l.setChildren(nil, nil)
	p.setChild(i, survivor)
	if survivor == nil {
		p.collapse()
	}
}

// adopt moves child's slots, orientation and divider into l.
func (l *Layout) adopt(child *Layout) {
	a, b := child.children[0], child.children[1]
	child.setChildren(nil, nil)
	l.setChildren(a, b)
	l.orientation = child.orientation
	l.divider = child.divider
}
