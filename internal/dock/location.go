package dock

import (
	"fmt"
	"strings"
)

// Location names a side of a node. The zero value None means "stack as a
// tab" wherever the placement API accepts a location.
type Location int

const (
	None Location = iota
	North
	South
	East
	West
)

func (l Location) String() string {
	switch l {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	}
	return "none"
}

// Orientation is the split a Layout gets when something is docked at l.
func (l Location) Orientation() Orientation {
	if l == North || l == South {
		return Vertical
	}
	return Horizontal
}

// Slot is the Layout slot the new occupant takes: 0 (primary) for North
// and West, 1 (secondary) for South and East.
func (l Location) Slot() int {
	if l == North || l == West {
		return 0
	}
	return 1
}

// Half returns the half of r on side l. None returns r unchanged.
func (l Location) Half(r Rect) Rect {
	switch l {
	case North:
		return Rect{X: r.X, Y: r.Y, W: r.W, H: r.H / 2}
	case South:
		h := r.H / 2
		return Rect{X: r.X, Y: r.Y + r.H - h, W: r.W, H: h}
	case West:
		return Rect{X: r.X, Y: r.Y, W: r.W / 2, H: r.H}
	case East:
		w := r.W / 2
		return Rect{X: r.X + r.W - w, Y: r.Y, W: w, H: r.H}
	}
	return r
}

// ParseLocation accepts the names produced by String plus the compass
// shorthands n, s, e and w.
func ParseLocation(s string) (Location, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n", "top":
		return North, nil
	case "south", "s", "bottom":
		return South, nil
	case "east", "e", "right":
		return East, nil
	case "west", "w", "left":
		return West, nil
	case "none", "", "stack", "tab":
		return None, nil
	}
	return None, fmt.Errorf("unknown location %q", s)
}

// quadrant resolves the side of r nearest to (x, y). Offsets are measured
// from the nearest vertical and horizontal edges; when the horizontal
// offset is the larger one the point sits closer to the top or bottom edge.
func quadrant(r Rect, x, y int) Location {
	dx, dy := x-r.X, y-r.Y
	left := dx < r.W/2
	top := dy < r.H/2

	h := dx
	if !left {
		h = r.W - 1 - dx
	}
	v := dy
	if !top {
		v = r.H - 1 - dy
	}

	if h > v {
		if top {
			return North
		}
		return South
	}
	if left {
		return West
	}
	return East
}
