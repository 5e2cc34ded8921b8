package dock

import (
	"fmt"
	"strings"
)

// Node is anything that occupies a rectangle in the dock tree. It has
// exactly two implementations, *Layout and *Container.
type Node interface {
	Bounds() Rect
	// SetBounds assigns a new rectangle and lays out any descendants.
	SetBounds(r Rect)
	// Revalidate re-applies the current bounds.
	Revalidate()

	dockNode()
}

func parentOf(n Node) *Layout {
	switch n := n.(type) {
	case *Layout:
		return n.parent
	case *Container:
		return n.parent
	}
	return nil
}

func setParent(n Node, l *Layout) {
	switch n := n.(type) {
	case *Layout:
		n.parent = l
	case *Container:
		n.parent = l
	}
}

// walk visits n and its descendants depth-first, slot 0 before slot 1.
func walk(n Node, fn func(Node)) {
	switch n := n.(type) {
	case nil:
	case *Container:
		fn(n)
	case *Layout:
		fn(n)
		walk(n.children[0], fn)
		walk(n.children[1], fn)
	}
}

// describe renders the structure below n, e.g. "H([A], V([B* C], [D]))".
// Tabs are listed in order, the current one starred.
func describe(n Node) string {
	var b strings.Builder
	var rec func(Node)
	rec = func(n Node) {
		switch n := n.(type) {
		case nil:
			b.WriteString("_")
		case *Container:
			b.WriteByte('[')
			for i, d := range n.dockables {
				if i > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(d.Title())
				if i == n.current && len(n.dockables) > 1 {
					b.WriteByte('*')
				}
			}
			b.WriteByte(']')
		case *Layout:
			if n.orientation == Vertical {
				b.WriteString("V(")
			} else {
				b.WriteString("H(")
			}
			rec(n.children[0])
			b.WriteString(", ")
			rec(n.children[1])
			b.WriteByte(')')
		default:
			panic(fmt.Sprintf("dock: unknown node %T", n))
		}
	}
	rec(n)
	return b.String()
}
