package app

import "github.com/pfassina/dockyard/internal/dock"

// Layout is the split of the window between the dock and the status bar.
type Layout struct {
	Dock      dock.Rect
	StatusRow int // -1 when the status bar is hidden
}

// ComputeLayout places the dock above an optional one-row status bar.
func ComputeLayout(totalWidth, totalHeight int, showStatus bool) Layout {
	// During live resizes some terminals momentarily report 0 (or even negative)
	// dimensions; clamp to avoid propagating invalid sizes into the dock.
	totalWidth = max(totalWidth, 1)
	totalHeight = max(totalHeight, 1)

	if !showStatus || totalHeight < 2 {
		return Layout{
			Dock:      dock.Rect{W: totalWidth, H: totalHeight},
			StatusRow: -1,
		}
	}
	return Layout{
		Dock:      dock.Rect{W: totalWidth, H: totalHeight - 1},
		StatusRow: totalHeight - 1,
	}
}
