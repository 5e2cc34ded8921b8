package dock

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/pfassina/dockyard/internal/theme"
)

const (
	DefaultDividerThickness = 1
	DefaultTabMinWidth      = 6
	DefaultDragThreshold    = 2
	DefaultDragDelay        = 250 * time.Millisecond
)

// Dock owns a tree of Layouts and Containers filling one rectangle. All
// mutation goes through its methods; it is not safe for concurrent use.
type Dock struct {
	root      *Layout
	bounds    Rect
	maximized *Container
	active    *Container

	hosts   map[Dockable]*Container
	tokens  map[uuid.UUID]Dockable
	tokenOf map[Dockable]uuid.UUID

	divider DividerDrag
	drag    DragDrop

	theme     *theme.Theme
	logger    *log.Logger
	thickness int
	tabMin    int
	threshold int
	delay     time.Duration
	now       func() time.Time
}

// Option configures a Dock.
type Option func(*Dock)

func WithLogger(l *log.Logger) Option {
	return func(d *Dock) {
		if l != nil {
			d.logger = l
		}
	}
}

func WithTheme(th *theme.Theme) Option {
	return func(d *Dock) {
		if th != nil {
			d.theme = th
		}
	}
}

// WithDividerThickness sets the cells between split siblings. Zero gives
// borderless splits that can only be resized from the keyboard.
func WithDividerThickness(n int) Option {
	return func(d *Dock) { d.thickness = max(n, 0) }
}

func WithTabMinWidth(n int) Option {
	return func(d *Dock) { d.tabMin = max(n, 1) }
}

// WithDragThreshold sets how far (in cells) the pointer must travel before
// a divider or tab drag starts.
func WithDragThreshold(n int) Option {
	return func(d *Dock) { d.threshold = max(n, 0) }
}

// WithDragDelay sets how long a press must be held before a drag starts
// without moving past the threshold.
func WithDragDelay(v time.Duration) Option {
	return func(d *Dock) { d.delay = v }
}

// WithClock replaces time.Now for gesture debouncing.
func WithClock(now func() time.Time) Option {
	return func(d *Dock) {
		if now != nil {
			d.now = now
		}
	}
}

// New returns an empty Dock.
func New(opts ...Option) *Dock {
	th := theme.Default()
	d := &Dock{
		hosts:     make(map[Dockable]*Container),
		tokens:    make(map[uuid.UUID]Dockable),
		tokenOf:   make(map[Dockable]uuid.UUID),
		theme:     &th,
		logger:    log.New(io.Discard),
		thickness: DefaultDividerThickness,
		tabMin:    DefaultTabMinWidth,
		threshold: DefaultDragThreshold,
		delay:     DefaultDragDelay,
		now:       time.Now,
	}
	d.root = newLayout(d, Horizontal)
	d.divider.dock = d
	d.drag.dock = d
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Configure applies opts to a live Dock and lays it out again.
func (d *Dock) Configure(opts ...Option) {
	for _, opt := range opts {
		opt(d)
	}
	d.Revalidate()
}

func (d *Dock) Root() *Layout               { return d.root }
func (d *Dock) Bounds() Rect                { return d.bounds }
func (d *Dock) Theme() *theme.Theme         { return d.theme }
func (d *Dock) Divider() *DividerDrag       { return &d.divider }
func (d *Dock) Drag() *DragDrop             { return &d.drag }
func (d *Dock) Maximized() *Container       { return d.maximized }
func (d *Dock) ActiveContainer() *Container { return d.active }

// String describes the tree, e.g. "H([A], V([B* C], [D]))".
func (d *Dock) String() string {
	return describe(d.root)
}

// DockRoot places dockable relative to the whole dock area.
func (d *Dock) DockRoot(dockable Dockable, loc Location) {
	d.DockNode(dockable, d.root, loc)
}

// DockTo places dockable beside target's container, or stacks it there as
// a tab when loc is None. An unhosted target is ignored.
func (d *Dock) DockTo(dockable, target Dockable, loc Location) {
	mustDockable(dockable)
	c := d.hosts[target]
	if c == nil {
		d.logger.Debug("dock target not hosted", "title", dockable.Title())
		return
	}
	d.DockNode(dockable, c, loc)
}

// DockNode places dockable on side loc of node. A node that is no longer
// in the tree is ignored. Placing a container's only dockable beside that
// same container does nothing.
func (d *Dock) DockNode(dockable Dockable, node Node, loc Location) {
	mustDockable(dockable)
	if node == nil {
		node = d.root
	}
	d.mustOwn(node)
	if !d.root.Contains(node) {
		d.logger.Debug("dock target not in tree", "title", dockable.Title())
		return
	}

	if loc == None {
		c := d.stackTarget(node)
		if c == nil {
			// Nothing to stack onto: the dock is empty.
			loc = West
		} else {
			c.Stack(dockable, -1)
			d.Focus(c)
			d.Revalidate()
			return
		}
	}

	host := d.hosts[dockable]
	if host != nil && Node(host) == node && len(host.dockables) == 1 {
		return
	}
	if d.maximized != nil {
		d.maximized = nil
	}
	d.root.dock(d.containerFor(dockable), node, loc)
	d.Focus(d.hosts[dockable])
	d.Revalidate()
	d.logger.Debug("docked", "title", dockable.Title(), "at", loc, "tree", d)
}

// stackTarget picks the container a None drop onto node stacks into.
func (d *Dock) stackTarget(node Node) *Container {
	if c, ok := node.(*Container); ok {
		return c
	}
	if d.active != nil && d.root.Contains(d.active) && node.(*Layout).Contains(d.active) {
		return d.active
	}
	var first *Container
	walk(node, func(n Node) {
		if c, ok := n.(*Container); ok && first == nil {
			first = c
		}
	})
	return first
}

// containerFor returns the container to move for dockable: a fresh one
// for a newcomer, its current one when it is alone there, or a new one
// after detaching its tab.
func (d *Dock) containerFor(dockable Dockable) *Container {
	host := d.hosts[dockable]
	if host != nil && len(host.dockables) == 1 {
		return host
	}
	if host != nil {
		host.Close(dockable)
	}
	return newContainer(d, dockable)
}

func (d *Dock) mustOwn(n Node) {
	var owner *Dock
	switch n := n.(type) {
	case *Layout:
		owner = n.owner
	case *Container:
		owner = n.owner
	}
	if owner != d {
		panic(fmt.Sprintf("dock: %T belongs to a different dock", n))
	}
}

func (d *Dock) adopt(dockable Dockable, c *Container) {
	d.hosts[dockable] = c
	if _, ok := d.tokenOf[dockable]; !ok {
		t := uuid.New()
		d.tokenOf[dockable] = t
		d.tokens[t] = dockable
	}
}

func (d *Dock) release(dockable Dockable, c *Container) {
	if d.hosts[dockable] != c {
		return
	}
	delete(d.hosts, dockable)
	if t, ok := d.tokenOf[dockable]; ok {
		delete(d.tokens, t)
		delete(d.tokenOf, dockable)
	}
}

// removeContainer takes an emptied container out of the tree.
func (d *Dock) removeContainer(c *Container) {
	d.root.remove(c)
	c.active = false
	if d.maximized == c {
		d.maximized = nil
	}
	if d.active == c {
		d.active = nil
		if cs := d.Containers(); len(cs) > 0 {
			d.Focus(cs[0])
		}
	}
	d.Revalidate()
}

// Focus makes c the active container; its current dockable is told.
func (d *Dock) Focus(c *Container) {
	if c == nil || c == d.active || !d.root.Contains(c) {
		return
	}
	if d.active != nil {
		d.active.active = false
	}
	d.active = c
	c.active = true
	if cur := c.Current(); cur != nil {
		cur.Activated()
	}
}

// Maximize lets c fill the dock until Restore. A previously maximized
// container is restored first.
func (d *Dock) Maximize(c *Container) {
	if c == nil || c == d.maximized || !d.root.Contains(c) {
		return
	}
	if d.maximized != nil {
		d.Restore()
	}
	d.maximized = c
	d.Focus(c)
	d.Revalidate()
}

// Restore brings back the split layout hidden by Maximize.
func (d *Dock) Restore() {
	if d.maximized == nil {
		return
	}
	d.maximized = nil
	d.Revalidate()
}

func (d *Dock) ToggleMaximize(c *Container) {
	if c != nil && c == d.maximized {
		d.Restore()
		return
	}
	d.Maximize(c)
}

// Containers lists the containers in tree order.
func (d *Dock) Containers() []*Container {
	var out []*Container
	walk(d.root, func(n Node) {
		if c, ok := n.(*Container); ok {
			out = append(out, c)
		}
	})
	return out
}

// Dockables lists every hosted dockable, container by container.
func (d *Dock) Dockables() []Dockable {
	var out []Dockable
	for _, c := range d.Containers() {
		out = append(out, c.dockables...)
	}
	return out
}

// ContainerOf returns the container hosting dockable, or nil.
func (d *Dock) ContainerOf(dockable Dockable) *Container {
	return d.hosts[dockable]
}

// ContainerAt returns the on-screen container under a cell.
func (d *Dock) ContainerAt(x, y int) *Container {
	for _, c := range d.Containers() {
		if !c.bounds.hidden() && c.bounds.Contains(x, y) {
			return c
		}
	}
	return nil
}

// DividerAt returns the Layout whose divider covers a cell.
func (d *Dock) DividerAt(x, y int) *Layout {
	var hit *Layout
	walk(d.root, func(n Node) {
		if l, ok := n.(*Layout); ok && hit == nil && l.DividerRect().Contains(x, y) {
			hit = l
		}
	})
	return hit
}

// Neighbor finds the visible container next to c in direction loc: the
// nearest one across that edge, preferring the widest shared span.
func (d *Dock) Neighbor(c *Container, loc Location) *Container {
	if c == nil || loc == None {
		return nil
	}
	r := c.bounds
	var best *Container
	bestGap, bestOverlap := 0, 0
	for _, o := range d.Containers() {
		b := o.bounds
		if o == c || b.hidden() || b.Empty() {
			continue
		}
		var gap, overlap int
		switch loc {
		case North:
			gap, overlap = r.Y-b.Bottom(), span(r.X, r.Right(), b.X, b.Right())
		case South:
			gap, overlap = b.Y-r.Bottom(), span(r.X, r.Right(), b.X, b.Right())
		case West:
			gap, overlap = r.X-b.Right(), span(r.Y, r.Bottom(), b.Y, b.Bottom())
		case East:
			gap, overlap = b.X-r.Right(), span(r.Y, r.Bottom(), b.Y, b.Bottom())
		}
		if gap < 0 || overlap <= 0 {
			continue
		}
		if best == nil || gap < bestGap || (gap == bestGap && overlap > bestOverlap) {
			best, bestGap, bestOverlap = o, gap, overlap
		}
	}
	return best
}

func span(a0, a1, b0, b1 int) int {
	return min(a1, b1) - max(a0, b0)
}

// SetBounds lays the whole tree out in r.
func (d *Dock) SetBounds(r Rect) {
	if r.W < 0 || r.H < 0 {
		panic(fmt.Sprintf("dock: negative size %dx%d", r.W, r.H))
	}
	d.bounds = r
	d.root.SetBounds(r)
}

func (d *Dock) Revalidate() {
	d.root.SetBounds(d.bounds)
}

// EvenSplits drops every explicit divider offset.
func (d *Dock) EvenSplits() {
	d.root.ResetDividers()
	d.Revalidate()
}

// TransferFor returns the drag token for a hosted dockable.
func (d *Dock) TransferFor(dockable Dockable) (Transfer, bool) {
	t, ok := d.tokenOf[dockable]
	return Transfer{Token: t}, ok
}

func (d *Dock) resolve(t Transfer) (Dockable, error) {
	dockable, ok := d.tokens[t.Token]
	if !ok {
		return nil, ErrForeignTransfer
	}
	return dockable, nil
}
