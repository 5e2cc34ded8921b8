package dock

// Dockable is a panel the dock can place, stack and move. The dock owns its
// placement and tab; the dockable owns its content.
//
// Dockables are used as map keys, so implementations must be comparable
// (pointer receivers are the norm).
type Dockable interface {
	Title() string
	// TitleIcon is a short glyph drawn before the title. May be empty.
	TitleIcon() string
	TitleTooltip() string
	// Activated is called when the dockable becomes the visible tab of the
	// focused container.
	Activated()
}

// Closer is implemented by dockables that want a say before a user closes
// their tab. Without it a close is unconditional.
type Closer interface {
	// MayAttemptClose reports whether a close should be offered at all.
	MayAttemptClose() bool
	// AttemptClose is called right before removal; returning false vetoes it.
	AttemptClose() bool
}

// Sizer receives the size of the content area below the tab header.
type Sizer interface {
	SetSize(width, height int)
}

// Viewer renders the dockable's content. Dockables without it are drawn
// as a blank area.
type Viewer interface {
	View() string
}

func closable(d Dockable) bool {
	if c, ok := d.(Closer); ok {
		return c.MayAttemptClose()
	}
	return true
}

func mustDockable(d Dockable) {
	if d == nil {
		panic("dock: nil dockable")
	}
}
