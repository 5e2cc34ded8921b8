package dock

// Rect is a rectangle of terminal cells. X and Y are the top-left corner.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rect covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether the cell at (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return !r.Empty() && x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Inset shrinks r by the given margins. Margins larger than r are clamped
// so the result never has a negative size.
func (r Rect) Inset(top, right, bottom, left int) Rect {
	top = min(max(top, 0), r.H)
	bottom = min(max(bottom, 0), r.H-top)
	left = min(max(left, 0), r.W)
	right = min(max(right, 0), r.W-left)
	return Rect{X: r.X + left, Y: r.Y + top, W: r.W - left - right, H: r.H - top - bottom}
}

func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

// offCanvas returns a rect of the same size that lies entirely left of
// column zero, so it can never contain an on-screen cell.
func (r Rect) offCanvas() Rect {
	return Rect{X: -r.W - 1, Y: r.Y, W: r.W, H: r.H}
}

// hidden reports whether r was produced by offCanvas.
func (r Rect) hidden() bool {
	return r.X < 0
}

// Orientation decides how a Layout arranges its two slots.
type Orientation int

const (
	// Horizontal places slot 0 left of slot 1.
	Horizontal Orientation = iota
	// Vertical places slot 0 above slot 1.
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// extent is the length of r along the split axis.
func (o Orientation) extent(r Rect) int {
	if o == Vertical {
		return r.H
	}
	return r.W
}

// along picks the coordinate on the split axis.
func (o Orientation) along(x, y int) int {
	if o == Vertical {
		return y
	}
	return x
}
