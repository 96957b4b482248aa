package widget

// Geometry is the live position and size of a widget.
type Geometry struct {
	Width  int
	Height int
	Anchor Anchor
	Top    int
}

// Left returns the left offset when the widget is left-anchored.
func (g Geometry) Left() (int, bool) {
	if g.Anchor.Edge == EdgeLeft {
		return g.Anchor.Offset, true
	}
	return 0, false
}

// Right returns the right offset when the widget is right-anchored.
func (g Geometry) Right() (int, bool) {
	if g.Anchor.Edge == EdgeRight {
		return g.Anchor.Offset, true
	}
	return 0, false
}

// Resolve returns the absolute top-left corner for a viewport windowWidth px wide.
func (g Geometry) Resolve(windowWidth int) (x, y int) {
	if g.Anchor.Edge == EdgeRight {
		return windowWidth - g.Anchor.Offset - g.Width, g.Top
	}
	return g.Anchor.Offset, g.Top
}

// patch is the mapping persisted after a drag settles. The inactive edge is
// written as null so a stale value never outranks the active one on load.
func (g Geometry) patch() map[string]any {
	p := map[string]any{
		keyTop:    g.Top,
		keyWidth:  g.Width,
		keyHeight: g.Height,
		keyLeft:   nil,
		keyRight:  nil,
	}
	if left, ok := g.Left(); ok {
		p[keyLeft] = left
	} else {
		p[keyRight] = g.Anchor.Offset
	}
	return p
}

// clamp bounds v to [lo, hi]. When lo > hi the lower bound wins.
func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

func (c Config) clampWidth(w int) int  { return clamp(w, c.MinWidth, c.MaxWidth) }
func (c Config) clampHeight(h int) int { return clamp(h, c.MinHeight, c.MaxHeight) }
