package dock

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// canvas is a grid of styled lines that blocks are pasted onto by column.
type canvas struct {
	w, h  int
	lines []string
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, lines: make([]string, h)}
	blank := strings.Repeat(" ", w)
	for i := range c.lines {
		c.lines[i] = blank
	}
	return c
}

// paste writes block with its top-left cell at (x, y), clipping at the
// canvas edges without breaking escape sequences.
func (c *canvas) paste(x, y int, block string) {
	if x < 0 || x >= c.w {
		return
	}
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= c.h {
			continue
		}
		line = ansi.Truncate(line, c.w-x, "")
		lw := ansi.StringWidth(line)
		if lw == 0 {
			continue
		}
		base := c.lines[row]
		c.lines[row] = ansi.Cut(base, 0, x) + line + ansi.Cut(base, x+lw, c.w)
	}
}

func (c *canvas) String() string {
	return strings.Join(c.lines, "\n")
}

// fitBlock clips or pads s to exactly w by h cells.
func fitBlock(s string, w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	out := make([]string, h)
	for i := range out {
		var line string
		if i < len(lines) {
			line = ansi.Truncate(lines[i], w, "")
		}
		if pad := w - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		out[i] = line
	}
	return strings.Join(out, "\n")
}

// View renders the dock at its bounds size.
func (d *Dock) View() string {
	r := d.bounds
	if r.Empty() {
		return ""
	}
	cv := newCanvas(r.W, r.H)

	for _, c := range d.Containers() {
		if c.bounds.hidden() || c.bounds.Empty() {
			continue
		}
		hb := c.header.bounds
		cv.paste(hb.X-r.X, hb.Y-r.Y, c.header.render(d))
		content := c.ContentRect()
		if content.Empty() {
			continue
		}
		var body string
		if v, ok := c.Current().(Viewer); ok {
			body = v.View()
		}
		cv.paste(content.X-r.X, content.Y-r.Y, fitBlock(body, content.W, content.H))
	}

	walk(d.root, func(n Node) {
		l, ok := n.(*Layout)
		if !ok {
			return
		}
		dr := l.DividerRect()
		if dr.Empty() {
			return
		}
		color := d.theme.Border
		if d.divider.layout == l {
			color = d.theme.Accent
		}
		glyph := "│"
		if l.orientation == Vertical {
			glyph = "─"
		}
		row := strings.Repeat(glyph, dr.W)
		block := strings.TrimSuffix(strings.Repeat(row+"\n", dr.H), "\n")
		cv.paste(dr.X-r.X, dr.Y-r.Y, lipgloss.NewStyle().Foreground(color).Render(block))
	})

	if p := d.drag.Preview(); !p.Empty() {
		d.paintPreview(cv, Rect{X: p.X - r.X, Y: p.Y - r.Y, W: p.W, H: p.H})
	}
	return cv.String()
}

// paintPreview outlines p on the canvas, leaving the inside visible.
func (d *Dock) paintPreview(cv *canvas, p Rect) {
	st := lipgloss.NewStyle().Foreground(d.theme.DragMode)
	if p.W < 2 || p.H < 2 {
		cv.paste(p.X, p.Y, st.Render(fitBlock(strings.Repeat("▒", p.W), p.W, p.H)))
		return
	}
	b := lipgloss.RoundedBorder()
	mid := strings.Repeat(b.Top, p.W-2)
	cv.paste(p.X, p.Y, st.Render(b.TopLeft+mid+b.TopRight))
	cv.paste(p.X, p.Bottom()-1, st.Render(b.BottomLeft+strings.Repeat(b.Bottom, p.W-2)+b.BottomRight))
	for y := p.Y + 1; y < p.Bottom()-1; y++ {
		cv.paste(p.X, y, st.Render(b.Left))
		cv.paste(p.Right()-1, y, st.Render(b.Right))
	}
}

// render draws the tab row at the header's width.
func (h *Header) render(d *Dock) string {
	th := d.theme
	w := h.bounds.W
	if w <= 0 {
		return ""
	}
	c := h.owner
	cv := newCanvas(w, 1)
	base := lipgloss.NewStyle().Background(th.StatusBg).Foreground(th.Subtle)
	cv.paste(0, 0, base.Render(strings.Repeat(" ", w)))

	for i, t := range h.tabs {
		if t.hidden || t.width <= 0 {
			continue
		}
		st := base
		switch {
		case i == c.current && c.active:
			st = lipgloss.NewStyle().Background(th.Accent).Foreground(th.Bg).Bold(true)
		case i == c.current:
			st = lipgloss.NewStyle().Background(th.Border).Foreground(th.Text)
		}
		cv.paste(t.x-h.bounds.X, 0, st.Render(t.text()))
	}

	if h.hiddenCount > 0 && !h.overflow.Empty() {
		st := base.Foreground(th.Accent)
		cv.paste(h.overflow.X-h.bounds.X, 0, st.Render(overflowLabel(h.hiddenCount)))
	}
	if !h.maxButton.Empty() {
		glyph := maximizeGlyph
		if c.Maximized() {
			glyph = restoreGlyph
		}
		cv.paste(h.maxButton.X-h.bounds.X, 0, base.Render(" "+glyph+" "))
	}
	if col := h.markerColumn(); col >= 0 {
		cv.paste(col, 0, lipgloss.NewStyle().Foreground(th.DragMode).Background(th.StatusBg).Render("▏"))
	}
	return cv.String()
}

// text is the tab's cells at its assigned width: padding, the label cut
// to fit, and the close glyph when the dockable may be closed.
func (t *Tab) text() string {
	pad := strings.Repeat(" ", tabPadding)
	room := t.width - 2*tabPadding - t.closeWidth()
	var b strings.Builder
	b.WriteString(pad)
	if room > 0 {
		label := t.label()
		if ansi.StringWidth(label) > room {
			label = ansi.Truncate(label, room, "…")
		}
		b.WriteString(label)
		b.WriteString(strings.Repeat(" ", room-ansi.StringWidth(label)))
	}
	if t.closeWidth() > 0 {
		b.WriteString(" " + closeGlyph)
	}
	b.WriteString(pad)
	return ansi.Truncate(b.String(), t.width, "")
}
