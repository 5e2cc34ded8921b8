package dock

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	maximizeGlyph = "□"
	restoreGlyph  = "▣"
	overflowGlyph = "»"
)

// HitKind classifies what a point on the header lands on.
type HitKind int

const (
	HitNone HitKind = iota
	HitTab
	HitClose
	HitMaximize
	HitOverflow
)

// HeaderHit is the result of Header.HitTest. Index is the tab index for
// HitTab and HitClose, -1 otherwise.
type HeaderHit struct {
	Kind  HitKind
	Index int
}

// Header is the tab row of a Container: one Tab per dockable followed by
// the overflow indicator and the maximize/restore button.
type Header struct {
	owner       *Container
	tabs        []*Tab
	bounds      Rect
	dropIndex   int
	hiddenCount int
	maxButton   Rect
	overflow    Rect
}

func newHeader(c *Container) *Header {
	return &Header{owner: c, dropIndex: -1}
}

func (h *Header) Bounds() Rect { return h.bounds }

// Tabs returns the tab widgets in dockable order.
func (h *Header) Tabs() []*Tab { return slices.Clone(h.tabs) }

func (h *Header) insertTab(i int, d Dockable) {
	h.tabs = slices.Insert(h.tabs, i, newTab(d))
}

func (h *Header) removeTab(i int) {
	h.tabs = slices.Delete(h.tabs, i, i+1)
}

func (h *Header) moveTab(from, to int) {
	t := h.tabs[from]
	h.tabs = slices.Delete(h.tabs, from, from+1)
	h.tabs = slices.Insert(h.tabs, to, t)
}

func (h *Header) SetBounds(r Rect) {
	h.bounds = r
	h.fit()
}

func buttonWidth(glyph string) int {
	return lipgloss.Width(glyph) + 2
}

func overflowLabel(n int) string {
	return fmt.Sprintf(" %s%d ", overflowGlyph, n)
}

func overflowWidth(n int) int {
	if n <= 0 {
		return 0
	}
	return lipgloss.Width(overflowLabel(n))
}

// fit re-measures every tab and lays the row out for the current width.
func (h *Header) fit() {
	for _, t := range h.tabs {
		t.measure(h.owner.owner.tabMin)
	}

	mw := min(buttonWidth(maximizeGlyph), max(h.bounds.W, 0))
	fitTabs(h.tabs, h.owner.current, max(h.bounds.W-mw, 0), overflowWidth)

	x := h.bounds.X
	h.hiddenCount = 0
	for _, t := range h.tabs {
		if t.hidden {
			h.hiddenCount++
			continue
		}
		t.x = x
		x += t.width
	}

	h.maxButton = Rect{X: h.bounds.Right() - mw, Y: h.bounds.Y, W: mw, H: h.bounds.H}
	ow := overflowWidth(h.hiddenCount)
	h.overflow = Rect{X: h.maxButton.X - ow, Y: h.bounds.Y, W: ow, H: h.bounds.H}
}

// Hidden returns the dockables pushed into the overflow control, sorted
// by title.
func (h *Header) Hidden() []Dockable {
	var out []Dockable
	for _, t := range h.tabs {
		if t.hidden {
			out = append(out, t.dockable)
		}
	}
	slices.SortStableFunc(out, func(a, b Dockable) int {
		return strings.Compare(a.Title(), b.Title())
	})
	return out
}

// HitTest maps a cell to a header element.
func (h *Header) HitTest(x, y int) HeaderHit {
	miss := HeaderHit{Kind: HitNone, Index: -1}
	if !h.bounds.Contains(x, y) {
		return miss
	}
	if h.maxButton.Contains(x, y) {
		return HeaderHit{Kind: HitMaximize, Index: -1}
	}
	if h.overflow.Contains(x, y) {
		return HeaderHit{Kind: HitOverflow, Index: -1}
	}
	for i, t := range h.tabs {
		if t.hidden || x < t.x || x >= t.x+t.width {
			continue
		}
		if t.closeWidth() > 0 && x == t.x+t.width-1-tabPadding {
			return HeaderHit{Kind: HitClose, Index: i}
		}
		return HeaderHit{Kind: HitTab, Index: i}
	}
	return miss
}

// InsertionIndex is the tab index a dockable dropped at column x would
// take.
func (h *Header) InsertionIndex(x int) int {
	last := -1
	for i, t := range h.tabs {
		if t.hidden {
			continue
		}
		if x < t.x+t.width/2 {
			return i
		}
		last = i
	}
	return last + 1
}

// SetDropIndex shows an insertion marker before tab i; -1 clears it.
func (h *Header) SetDropIndex(i int) {
	h.dropIndex = i
}

func (h *Header) DropIndex() int { return h.dropIndex }

// markerColumn is where the insertion marker is drawn, relative to the
// header's left edge, or -1 when none should be drawn.
func (h *Header) markerColumn() int {
	if h.dropIndex < 0 {
		return -1
	}
	col := 0
	for i, t := range h.tabs {
		if t.hidden {
			continue
		}
		if i >= h.dropIndex {
			return t.x - h.bounds.X
		}
		col = t.x - h.bounds.X + t.width
	}
	if col >= h.bounds.W {
		col = h.bounds.W - 1
	}
	return col
}
