package dock

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"
	"time"
)

type fake struct {
	title     string
	activated int
	w, h      int
}

func (f *fake) Title() string        { return f.title }
func (f *fake) TitleIcon() string    { return "" }
func (f *fake) TitleTooltip() string { return "tooltip " + f.title }
func (f *fake) Activated()           { f.activated++ }
func (f *fake) SetSize(w, h int)     { f.w, f.h = w, h }
func (f *fake) View() string         { return f.title }

// guarded refuses to close while dirty is set.
type guarded struct {
	fake
	dirty bool
	asked int
}

func (g *guarded) MayAttemptClose() bool { return true }
func (g *guarded) AttemptClose() bool {
	g.asked++
	return !g.dirty
}

func fakes(titles ...string) []*fake {
	out := make([]*fake, len(titles))
	for i, t := range titles {
		out[i] = &fake{title: t}
	}
	return out
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestDock(t *testing.T, w, h int, opts ...Option) *Dock {
	t.Helper()
	d := New(opts...)
	d.SetBounds(Rect{W: w, H: h})
	return d
}

// checkTree verifies the structural invariants: every Layout below the
// root has two children, the root holds a lone child only as a Container
// in slot 0, parent pointers match, and containers are never empty.
func checkTree(t *testing.T, d *Dock) {
	t.Helper()
	var rec func(l *Layout)
	rec = func(l *Layout) {
		for _, c := range l.children {
			if c != nil && parentOf(c) != l {
				t.Fatalf("bad parent pointer under %s", describe(l))
			}
			switch c := c.(type) {
			case *Layout:
				if !c.Full() {
					t.Fatalf("non-full inner layout %s in %s", describe(c), d)
				}
				rec(c)
			case *Container:
				if len(c.dockables) == 0 {
					t.Fatalf("empty container in %s", d)
				}
				if c.current < 0 || c.current >= len(c.dockables) {
					t.Fatalf("current %d out of range in %s", c.current, d)
				}
				for _, x := range c.dockables {
					if d.hosts[x] != c {
						t.Fatalf("host map out of step for %s", x.Title())
					}
				}
			}
		}
	}
	r := d.root
	if r.parent != nil {
		t.Fatal("root has a parent")
	}
	if !r.Full() && !r.Empty() {
		if _, ok := r.children[0].(*Container); !ok {
			t.Fatalf("root holds a lone non-container or uses slot 1: %s", d)
		}
	}
	rec(r)
	if len(d.hosts) != len(d.tokens) || len(d.tokens) != len(d.tokenOf) {
		t.Fatalf("token maps out of step: hosts=%d tokens=%d", len(d.hosts), len(d.tokens))
	}
	if n := len(d.Dockables()); n != len(d.hosts) {
		t.Fatalf("%d dockables in tree, %d hosted", n, len(d.hosts))
	}
}

func TestDockScenario(t *testing.T) {
	d := newTestDock(t, 81, 24)
	f := fakes("A", "B", "C")
	a, b, c := f[0], f[1], f[2]

	d.DockRoot(a, South)
	if got := d.String(); got != "V([A], _)" {
		t.Fatalf("after A: %s", got)
	}
	if got := d.ContainerOf(a).Bounds(); got != (Rect{W: 81, H: 24}) {
		t.Errorf("A bounds = %+v", got)
	}

	d.DockTo(b, a, East)
	if got := d.String(); got != "H([A], [B])" {
		t.Fatalf("after B: %s", got)
	}
	ca, cb := d.ContainerOf(a), d.ContainerOf(b)
	if ca.Bounds() != (Rect{W: 40, H: 24}) || cb.Bounds() != (Rect{X: 41, W: 40, H: 24}) {
		t.Errorf("split bounds: A=%+v B=%+v", ca.Bounds(), cb.Bounds())
	}

	cb.Stack(c, -1)
	if got := d.String(); got != "H([A], [B C*])" {
		t.Fatalf("after stack: %s", got)
	}
	if cb.Current() != c || len(cb.Header().Tabs()) != 2 {
		t.Errorf("current = %v, tabs = %d", cb.Current(), len(cb.Header().Tabs()))
	}

	d.Maximize(cb)
	if cb.Bounds() != (Rect{W: 81, H: 24}) {
		t.Errorf("maximized bounds = %+v", cb.Bounds())
	}
	if !ca.Bounds().hidden() || d.ContainerAt(5, 5) != cb {
		t.Errorf("A still on screen while maximized: %+v", ca.Bounds())
	}
	if !d.root.DividerRect().Empty() {
		t.Error("divider shown while maximized")
	}
	d.Restore()
	if ca.Bounds() != (Rect{W: 40, H: 24}) || cb.Bounds() != (Rect{X: 41, W: 40, H: 24}) {
		t.Errorf("restore changed geometry: A=%+v B=%+v", ca.Bounds(), cb.Bounds())
	}

	ca.Close(a)
	if got := d.String(); got != "H([B C*], _)" {
		t.Fatalf("after close: %s", got)
	}
	if cb.Bounds() != (Rect{W: 81, H: 24}) {
		t.Errorf("survivor bounds = %+v", cb.Bounds())
	}
	checkTree(t, d)
}

func TestDockPushDown(t *testing.T) {
	tests := []struct {
		name        string
		loc         Location
		want        string
		wantDivider int
	}{
		{"secondary side inherits", South, "V(H([A], [B]), [C])", 10},
		{"primary side starts even", North, "V([C], H([A], [B]))", -1},
		{"same axis", East, "H(H([A], [B]), [C])", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDock(t, 80, 24)
			f := fakes("A", "B", "C")
			d.DockRoot(f[0], West)
			d.DockRoot(f[1], East)
			d.root.SetDividerOffset(10)

			d.DockRoot(f[2], tt.loc)
			if got := d.String(); got != tt.want {
				t.Fatalf("tree = %s, want %s", got, tt.want)
			}
			pushed := d.ContainerOf(f[0]).Parent()
			if got := pushed.DividerOffset(); got != tt.wantDivider {
				t.Errorf("pushed divider = %d, want %d", got, tt.wantDivider)
			}
			if d.root.DividerOffset() != -1 {
				t.Errorf("root divider = %d, want even", d.root.DividerOffset())
			}
			checkTree(t, d)
		})
	}
}

func TestDockBesideNestedContainer(t *testing.T) {
	d := newTestDock(t, 81, 24)
	f := fakes("A", "B", "C", "D")
	d.DockRoot(f[0], West)
	d.DockTo(f[1], f[0], East)
	d.DockTo(f[2], f[1], South)
	if got := d.String(); got != "H([A], V([B], [C]))" {
		t.Fatalf("tree = %s", got)
	}
	d.DockTo(f[3], f[0], North)
	if got := d.String(); got != "H(V([D], [A]), V([B], [C]))" {
		t.Fatalf("tree = %s", got)
	}
	checkTree(t, d)
}

func TestDockBesideKeepsParentOffset(t *testing.T) {
	d := newTestDock(t, 81, 24)
	f := fakes("A", "B", "C", "D")
	d.DockRoot(f[0], West)
	d.DockTo(f[1], f[0], East)
	d.root.SetDividerOffset(30)

	d.DockTo(f[2], f[0], South)
	d.DockTo(f[3], f[1], North)
	if got := d.String(); got != "H(V([A], [C]), V([D], [B]))" {
		t.Fatalf("tree = %s", got)
	}
	if got := d.root.DividerOffset(); got != 30 {
		t.Errorf("root divider = %d, want 30", got)
	}
	for _, x := range []*fake{f[0], f[1]} {
		if got := d.ContainerOf(x).Parent().DividerOffset(); got != -1 {
			t.Errorf("new layout around %s divider = %d, want even", x.title, got)
		}
	}
	if got := d.ContainerOf(f[0]).Bounds().W; got != 30 {
		t.Errorf("A width = %d, want 30", got)
	}
	checkTree(t, d)
}

func TestDockSameSideIsIdempotent(t *testing.T) {
	tests := []struct {
		name string
		redo func(d *Dock, f []*fake)
	}{
		{"beside sibling", func(d *Dock, f []*fake) { d.DockTo(f[2], f[1], South) }},
		{"sibling from the other side", func(d *Dock, f []*fake) { d.DockTo(f[1], f[2], North) }},
		{"root layout", func(d *Dock, f []*fake) { d.DockRoot(f[0], West) }},
		{"nested layout", func(d *Dock, f []*fake) {
			d.DockNode(f[1], d.ContainerOf(f[1]).Parent(), North)
		}},
		{"nested layout secondary", func(d *Dock, f []*fake) {
			d.DockNode(f[2], d.ContainerOf(f[2]).Parent(), South)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDock(t, 81, 24)
			f := fakes("A", "B", "C")
			d.DockRoot(f[0], West)
			d.DockTo(f[1], f[0], East)
			d.DockTo(f[2], f[1], South)
			nested := d.ContainerOf(f[1]).Parent()
			d.root.SetDividerOffset(30)
			nested.SetDividerOffset(5)
			d.Revalidate()

			before := d.String()
			bounds := make([]Rect, len(f))
			for i, x := range f {
				bounds[i] = d.ContainerOf(x).Bounds()
			}

			for range 2 {
				tt.redo(d, f)
			}
			if got := d.String(); got != before {
				t.Fatalf("tree = %s, want %s", got, before)
			}
			if d.root.DividerOffset() != 30 || d.ContainerOf(f[1]).Parent().DividerOffset() != 5 {
				t.Errorf("dividers = %d, %d; want 30, 5",
					d.root.DividerOffset(), d.ContainerOf(f[1]).Parent().DividerOffset())
			}
			for i, x := range f {
				if got := d.ContainerOf(x).Bounds(); got != bounds[i] {
					t.Errorf("%s bounds = %+v, want %+v", x.title, got, bounds[i])
				}
			}
			checkTree(t, d)
		})
	}
}

func TestSplitThenRemoveRestoresBounds(t *testing.T) {
	tests := []struct {
		name     string
		remove   int
		survivor int
	}{
		{"remove south", 1, 0},
		{"remove north", 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDock(t, 81, 24)
			f := fakes("A", "B")
			d.DockRoot(f[0], North)
			full := d.ContainerOf(f[0]).Bounds()

			d.DockTo(f[1], f[0], South)
			if got := d.String(); got != "V([A], [B])" {
				t.Fatalf("tree = %s", got)
			}
			d.root.SetDividerOffset(7)
			d.Revalidate()
			if got := d.ContainerOf(f[0]).Bounds().H; got != 7 {
				t.Fatalf("north height = %d, want 7", got)
			}

			d.ContainerOf(f[tt.remove]).Close(f[tt.remove])
			survivor := d.ContainerOf(f[tt.survivor])
			if got := survivor.Bounds(); got != full {
				t.Errorf("survivor bounds = %+v, want %+v", got, full)
			}
			if got := d.String(); got != "V(["+f[tt.survivor].title+"], _)" {
				t.Errorf("tree = %s", got)
			}
			checkTree(t, d)
		})
	}
}

func TestCloseCollapses(t *testing.T) {
	tests := []struct {
		name  string
		close string
		want  string
	}{
		{"inner child replaced by sibling", "A", "V([B], [C])"},
		{"root adopts lone layout", "C", "H([A], [B])"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDock(t, 80, 24)
			f := fakes("A", "B", "C")
			d.DockRoot(f[0], West)
			d.DockRoot(f[1], East)
			d.DockRoot(f[2], South)

			for _, x := range f {
				if x.title == tt.close {
					d.ContainerOf(x).Close(x)
				}
			}
			if got := d.String(); got != tt.want {
				t.Fatalf("tree = %s, want %s", got, tt.want)
			}
			checkTree(t, d)
		})
	}
}

func TestCloseLastLeavesEmptyRoot(t *testing.T) {
	d := newTestDock(t, 80, 24)
	a := &fake{title: "A"}
	d.DockRoot(a, West)
	c := d.ContainerOf(a)
	c.Close(a)
	if !d.root.Empty() || d.ActiveContainer() != nil || len(d.Dockables()) != 0 {
		t.Fatalf("tree = %s active=%v", d, d.ActiveContainer())
	}
	if _, ok := d.TransferFor(a); ok {
		t.Error("token survived close")
	}
	// A destroyed container is no longer a valid target.
	d.DockNode(&fake{title: "B"}, c, East)
	if got := d.String(); got != "H(_, _)" {
		t.Errorf("stale target mutated tree: %s", got)
	}
}

func TestDockToNoneStacks(t *testing.T) {
	d := newTestDock(t, 80, 24)
	f := fakes("A", "B", "C")
	d.DockRoot(f[0], West)
	d.DockTo(f[1], f[0], None)
	if got := d.String(); got != "H([A B*], _)" {
		t.Fatalf("tree = %s", got)
	}
	// None against the whole area stacks into the active container.
	d.DockRoot(f[2], None)
	if got := d.String(); got != "H([A B C*], _)" {
		t.Fatalf("tree = %s", got)
	}
}

func TestDockIntoItselfIsNoop(t *testing.T) {
	d := newTestDock(t, 80, 24)
	f := fakes("A", "B")
	d.DockRoot(f[0], West)
	d.DockTo(f[1], f[0], East)
	before := d.String()

	d.DockTo(f[1], f[1], West)
	if got := d.String(); got != before {
		t.Errorf("tree = %s, want %s", got, before)
	}
	cb := d.ContainerOf(f[1])
	d.DockNode(f[1], cb, South)
	if got := d.String(); got != before {
		t.Errorf("tree = %s, want %s", got, before)
	}
}

func TestMoveExisting(t *testing.T) {
	tests := []struct {
		name   string
		move   string
		target string
		loc    Location
		want   string
	}{
		{"swap siblings", "B", "A", West, "H([B], [A])"},
		{"turn siblings", "B", "A", South, "V([A], [B])"},
		{"leave nested layout", "C", "A", West, "H(H([C], [A]), [B])"},
		{"into nested layout", "A", "C", North, "V([B], V([A], [C]))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDock(t, 81, 25)
			f := map[string]*fake{}
			for _, x := range fakes("A", "B", "C") {
				f[x.title] = x
			}
			d.DockRoot(f["A"], West)
			d.DockTo(f["B"], f["A"], East)
			if tt.move != "B" || tt.target != "A" {
				d.DockTo(f["C"], f["B"], South)
			}
			d.DockTo(f[tt.move], f[tt.target], tt.loc)
			if got := d.String(); got != tt.want {
				t.Fatalf("tree = %s, want %s", got, tt.want)
			}
			checkTree(t, d)
		})
	}
}

func TestSplitTabOff(t *testing.T) {
	d := newTestDock(t, 80, 24)
	f := fakes("A", "B")
	d.DockRoot(f[0], West)
	d.DockTo(f[1], f[0], None)
	d.DockTo(f[1], f[0], East)
	if got := d.String(); got != "H([A], [B])" {
		t.Fatalf("tree = %s", got)
	}
	if d.ActiveContainer() != d.ContainerOf(f[1]) {
		t.Error("split-off tab not focused")
	}
	checkTree(t, d)
}

func TestMaximizeOnlyOne(t *testing.T) {
	d := newTestDock(t, 81, 24)
	f := fakes("A", "B")
	d.DockRoot(f[0], West)
	d.DockTo(f[1], f[0], East)
	ca, cb := d.ContainerOf(f[0]), d.ContainerOf(f[1])

	d.Maximize(ca)
	d.Maximize(cb)
	if d.Maximized() != cb || ca.Maximized() {
		t.Fatalf("maximized = %v", d.Maximized())
	}
	if !ca.Bounds().hidden() || cb.Bounds() != (Rect{W: 81, H: 24}) {
		t.Errorf("A=%+v B=%+v", ca.Bounds(), cb.Bounds())
	}
	d.ToggleMaximize(cb)
	if d.Maximized() != nil || ca.Bounds().hidden() {
		t.Errorf("toggle did not restore: A=%+v", ca.Bounds())
	}

	d.Maximize(cb)
	cb.Close(f[1])
	if d.Maximized() != nil {
		t.Error("closed container still maximized")
	}
	if ca.Bounds() != (Rect{W: 81, H: 24}) {
		t.Errorf("survivor bounds = %+v", ca.Bounds())
	}
}

func TestFocusActivation(t *testing.T) {
	d := newTestDock(t, 80, 24)
	f := fakes("A", "B", "C")
	d.DockRoot(f[0], West)
	d.DockTo(f[1], f[0], East)
	ca, cb := d.ContainerOf(f[0]), d.ContainerOf(f[1])
	if d.ActiveContainer() != cb || !cb.Active() || ca.Active() {
		t.Fatal("new container not focused")
	}

	base := f[0].activated
	d.Focus(ca)
	if f[0].activated != base+1 {
		t.Errorf("A activated %d times, want %d", f[0].activated, base+1)
	}
	d.Focus(ca)
	if f[0].activated != base+1 {
		t.Error("refocus activated again")
	}

	// Tab changes in an inactive container stay quiet.
	cb.Stack(f[2], -1)
	cb.SetCurrent(f[1])
	cBefore, bBefore := f[2].activated, f[1].activated
	cb.SetCurrent(f[2])
	if f[2].activated != cBefore || f[1].activated != bBefore {
		t.Error("inactive container activated a tab")
	}
	d.Focus(cb)
	cb.SelectNext(1)
	if cb.Current() != f[1] || f[1].activated != bBefore+1 {
		t.Errorf("current = %s, B activated %d", cb.Current().Title(), f[1].activated)
	}
}

func TestContainerClose(t *testing.T) {
	tests := []struct {
		name        string
		current     int
		close       int
		wantCurrent string
		wantTabs    string
	}{
		{"current closes to left", 2, 2, "B", "[A B* D E]"},
		{"first current falls to index 0", 0, 0, "B", "[B* C D E]"},
		{"tab before current", 3, 1, "A", "[A* C D E]"},
		{"tab after current", 0, 3, "C", "[A B C* E]"},
		{"left neighbour already current", 1, 2, "B", "[A B* D E]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDock(t, 200, 10)
			f := fakes("A", "B", "C", "D", "E")
			d.DockRoot(f[0], West)
			c := d.ContainerOf(f[0])
			for _, x := range f[1:] {
				c.Stack(x, -1)
			}
			c.SetCurrent(f[tt.current])
			c.Close(f[tt.close])
			if got := c.Current().Title(); got != tt.wantCurrent {
				t.Errorf("current = %s, want %s", got, tt.wantCurrent)
			}
			if got := describe(c); got != tt.wantTabs {
				t.Errorf("tabs = %s, want %s", got, tt.wantTabs)
			}
			if n := len(c.Header().Tabs()); n != 4 {
				t.Errorf("%d header tabs, want 4", n)
			}
		})
	}
}

func TestStackReorderAndMove(t *testing.T) {
	d := newTestDock(t, 200, 10)
	f := fakes("A", "B", "C", "D")
	d.DockRoot(f[0], West)
	ca := d.ContainerOf(f[0])
	ca.Stack(f[1], -1)
	ca.Stack(f[2], -1)

	ca.Stack(f[2], 0)
	if got := describe(ca); got != "[C* A B]" {
		t.Errorf("reorder = %s", got)
	}
	for i, tab := range ca.Header().Tabs() {
		if tab.Dockable() != ca.Dockables()[i] {
			t.Fatalf("header tab %d out of step", i)
		}
	}

	d.DockRoot(f[3], East)
	cd := d.ContainerOf(f[3])
	cd.Stack(f[1], 0)
	if got := d.String(); got != "H([C A*], [B* D])" {
		t.Errorf("tree = %s", got)
	}

	// Stacking the only tab of a container elsewhere destroys it.
	ca.Stack(f[3], -1)
	ca.Stack(f[1], -1)
	if got := d.String(); got != "H([C A D B*], _)" {
		t.Errorf("tree = %s", got)
	}
	checkTree(t, d)
}

func TestStackSingletonFocuses(t *testing.T) {
	d := newTestDock(t, 80, 24)
	f := fakes("A", "B")
	d.DockRoot(f[0], West)
	d.DockTo(f[1], f[0], East)
	ca := d.ContainerOf(f[0])
	ca.Stack(f[0], -1)
	if d.ActiveContainer() != ca || d.String() != "H([A], [B])" {
		t.Errorf("active = %v tree = %s", d.ActiveContainer(), d)
	}
}

func TestAttemptCloseVeto(t *testing.T) {
	d := newTestDock(t, 80, 24)
	g := &guarded{fake: fake{title: "G"}, dirty: true}
	d.DockRoot(g, West)
	c := d.ContainerOf(g)

	if c.AttemptClose(g) {
		t.Fatal("dirty dockable closed")
	}
	if d.ContainerOf(g) != c || g.asked != 1 {
		t.Fatalf("host = %v asked = %d", d.ContainerOf(g), g.asked)
	}
	g.dirty = false
	if !c.AttemptClose(g) {
		t.Fatal("clean dockable refused")
	}
	if d.ContainerOf(g) != nil {
		t.Error("still hosted")
	}
}

func TestNeighbor(t *testing.T) {
	d := newTestDock(t, 81, 24)
	f := fakes("A", "B", "C")
	d.DockRoot(f[0], West)
	d.DockTo(f[1], f[0], East)
	d.DockTo(f[2], f[1], South)
	ca, cb, cc := d.ContainerOf(f[0]), d.ContainerOf(f[1]), d.ContainerOf(f[2])

	tests := []struct {
		from *Container
		loc  Location
		want *Container
	}{
		{ca, East, cc},
		{ca, West, nil},
		{cb, South, cc},
		{cc, North, cb},
		{cc, West, ca},
		{cb, West, ca},
	}
	for _, tt := range tests {
		if got := d.Neighbor(tt.from, tt.loc); got != tt.want {
			t.Errorf("Neighbor(%s, %s) = %v, want %v", describe(tt.from), tt.loc, got, tt.want)
		}
	}
}

func TestHitTesting(t *testing.T) {
	d := newTestDock(t, 81, 24)
	f := fakes("A", "B")
	d.DockRoot(f[0], West)
	d.DockTo(f[1], f[0], East)

	if got := d.ContainerAt(10, 10); got != d.ContainerOf(f[0]) {
		t.Errorf("ContainerAt(10,10) = %v", got)
	}
	if got := d.ContainerAt(40, 10); got != nil {
		t.Errorf("ContainerAt on divider = %v", got)
	}
	if got := d.DividerAt(40, 10); got != d.root {
		t.Errorf("DividerAt = %v", got)
	}
	if got := d.DividerAt(39, 10); got != nil {
		t.Errorf("DividerAt(39,10) = %v", got)
	}
}

func TestDividerClamp(t *testing.T) {
	d := newTestDock(t, 81, 24)
	f := fakes("A", "B")
	d.DockRoot(f[0], West)
	d.DockTo(f[1], f[0], East)

	d.root.SetDividerOffset(500)
	d.Revalidate()
	if got := d.root.DividerOffset(); got != 80 {
		t.Errorf("clamped offset = %d, want 80", got)
	}
	if w := d.ContainerOf(f[1]).Bounds().W; w != 0 {
		t.Errorf("B width = %d, want 0", w)
	}
	d.root.SetDividerOffset(-5)
	if got := d.root.DividerOffset(); got != 0 {
		t.Errorf("negative offset = %d, want 0", got)
	}
	d.EvenSplits()
	if got := d.root.DividerOffset(); got != -1 {
		t.Errorf("after EvenSplits = %d", got)
	}

	// Shrinking the dock re-clamps a stored offset.
	d.root.SetDividerOffset(60)
	d.SetBounds(Rect{W: 41, H: 10})
	if got := d.root.DividerOffset(); got != 40 {
		t.Errorf("offset after shrink = %d, want 40", got)
	}
}

func TestSizerReceivesContentSize(t *testing.T) {
	d := newTestDock(t, 81, 24)
	f := fakes("A", "B")
	d.DockRoot(f[0], West)
	d.DockTo(f[1], f[0], None)
	for _, x := range f {
		if x.w != 81 || x.h != 23 {
			t.Errorf("%s size = %dx%d, want 81x23", x.title, x.w, x.h)
		}
	}
}

func TestProgrammerErrorsPanic(t *testing.T) {
	other := New()
	other.DockRoot(&fake{title: "X"}, West)

	tests := []struct {
		name string
		fn   func(d *Dock)
	}{
		{"nil dockable", func(d *Dock) { d.DockRoot(nil, West) }},
		{"foreign node", func(d *Dock) { d.DockNode(&fake{title: "Y"}, other.Root(), East) }},
		{"negative size", func(d *Dock) { d.SetBounds(Rect{W: -1, H: 3}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("no panic")
				}
			}()
			tt.fn(New())
		})
	}
}

// TestRandomOperationsKeepInvariants runs a seeded mix of docking, moving,
// closing and maximizing and checks the tree after every step.
func TestRandomOperationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	d := newTestDock(t, 160, 60)
	locs := []Location{None, North, South, East, West}
	next := 0
	live := map[Dockable]bool{}

	pick := func() Dockable {
		all := d.Dockables()
		if len(all) == 0 {
			return nil
		}
		return all[rng.IntN(len(all))]
	}

	for step := 0; step < 2000; step++ {
		switch op := rng.IntN(10); {
		case op < 4 || len(live) == 0:
			x := &fake{title: fmt.Sprint(next)}
			next++
			if target := pick(); target != nil && rng.IntN(4) > 0 {
				d.DockTo(x, target, locs[rng.IntN(len(locs))])
			} else {
				d.DockRoot(x, locs[1+rng.IntN(4)])
			}
			live[x] = true
		case op < 7:
			x, target := pick(), pick()
			d.DockTo(x, target, locs[rng.IntN(len(locs))])
		case op < 9:
			x := pick()
			d.ContainerOf(x).Close(x)
			delete(live, x)
		default:
			cs := d.Containers()
			d.ToggleMaximize(cs[rng.IntN(len(cs))])
		}
		checkTree(t, d)

		got := d.Dockables()
		if len(got) != len(live) {
			t.Fatalf("step %d: %d dockables hosted, want %d (%s)", step, len(got), len(live), d)
		}
		for _, x := range got {
			if !live[x] {
				t.Fatalf("step %d: closed dockable %s still hosted", step, x.Title())
			}
		}
		if m := d.Maximized(); m != nil && !slices.Contains(d.Containers(), m) {
			t.Fatalf("step %d: maximized container not in tree", step)
		}
		if a := d.ActiveContainer(); len(live) > 0 && (a == nil || !a.Active()) {
			t.Fatalf("step %d: no active container", step)
		}
	}
}
