package dock

import "github.com/charmbracelet/lipgloss"

const (
	tabPadding = 1
	closeGlyph = "×"
)

// Tab is the header widget for one dockable.
type Tab struct {
	dockable  Dockable
	preferred int
	minimum   int
	width     int
	x         int
	hidden    bool
}

func newTab(d Dockable) *Tab {
	return &Tab{dockable: d}
}

func (t *Tab) Dockable() Dockable { return t.dockable }

// Width is the width assigned by the last fit; hidden tabs keep theirs.
func (t *Tab) Width() int     { return t.width }
func (t *Tab) Preferred() int { return t.preferred }
func (t *Tab) Minimum() int   { return t.minimum }
func (t *Tab) Hidden() bool   { return t.hidden }

func (t *Tab) label() string {
	if icon := t.dockable.TitleIcon(); icon != "" {
		return icon + " " + t.dockable.Title()
	}
	return t.dockable.Title()
}

func (t *Tab) closeWidth() int {
	if closable(t.dockable) {
		return 1 + lipgloss.Width(closeGlyph)
	}
	return 0
}

// measure refreshes the preferred width from the current title; titles of
// some dockables change over time.
func (t *Tab) measure(minWidth int) {
	t.preferred = lipgloss.Width(t.label()) + 2*tabPadding + t.closeWidth()
	t.minimum = min(minWidth, t.preferred)
}

// fitTabs assigns widths and hidden flags so the visible tabs plus the
// overflow control fit in avail. overflow reports the control's width for
// a given number of hidden tabs (zero for none).
//
// Space is reclaimed in three phases: shrink the non-current tabs toward
// their minimum, hide non-current tabs from the trailing end, and finally
// shrink the current tab. The current tab is never hidden.
func fitTabs(tabs []*Tab, current, avail int, overflow func(hidden int) int) {
	excess := -avail
	for _, t := range tabs {
		t.hidden = false
		t.width = t.preferred
		excess += t.width
	}
	if excess <= 0 {
		return
	}

	shrinkable := func() []*Tab {
		var out []*Tab
		for i, t := range tabs {
			if i != current && !t.hidden && t.width > t.minimum {
				out = append(out, t)
			}
		}
		return out
	}
	for excess > 0 {
		s := shrinkable()
		if len(s) == 0 {
			break
		}
		step := (excess + len(s) - 1) / len(s)
		for _, t := range s {
			d := min(step, t.width-t.minimum, excess)
			t.width -= d
			excess -= d
			if excess == 0 {
				break
			}
		}
	}

	hidden := 0
	for i := len(tabs) - 1; i >= 0 && excess > 0; i-- {
		if i == current {
			continue
		}
		tabs[i].hidden = true
		excess -= tabs[i].width
		hidden++
		excess += overflow(hidden) - overflow(hidden-1)
	}

	if excess < 0 && hidden > 0 {
		regrow(tabs, current, -excess)
		return
	}

	if excess > 0 && current >= 0 && current < len(tabs) {
		t := tabs[current]
		t.width -= min(excess, t.width-t.minimum)
	}
}

// regrow hands slack back to visible tabs that were shrunk below their
// preferred width, evenly per pass.
func regrow(tabs []*Tab, current, slack int) {
	for slack > 0 {
		var g []*Tab
		for i, t := range tabs {
			if i != current && !t.hidden && t.width < t.preferred {
				g = append(g, t)
			}
		}
		if len(g) == 0 {
			return
		}
		step := (slack + len(g) - 1) / len(g)
		for _, t := range g {
			d := min(step, t.preferred-t.width, slack)
			t.width += d
			slack -= d
			if slack == 0 {
				return
			}
		}
	}
}
