package main

import (
	"image"

	"desklet/internal/widget"
)

// node is an element of the terminal document. Geometry lives in style as
// px; the desktop maps it to cells when drawing and hit testing.
type node struct {
	doc      *desktop
	kind     widget.Kind
	parent   *node
	children []*node
	style    map[string]int
	classes  map[string]bool
	image    image.Image

	label string
	text  []string
}

func (n *node) Host() widget.Host { return n.doc }

func (n *node) SetStyle(prop string, px int) { n.style[prop] = px }

func (n *node) SetClass(name string, on bool) {
	if on {
		n.classes[name] = true
		return
	}
	delete(n.classes, name)
}

func (n *node) AppendChild(child widget.Element) {
	c := child.(*node)
	if c.parent != nil {
		c.parent.removeChild(c)
	}
	c.parent = n
	n.children = append(n.children, c)
}

func (n *node) SetImage(img image.Image) { n.image = img }

func (n *node) removeChild(c *node) {
	for i, child := range n.children {
		if child == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			return
		}
	}
}

func (n *node) child(kind widget.Kind) *node {
	for _, c := range n.children {
		if c.kind == kind {
			return c
		}
	}
	return nil
}

// cells returns the inclusive cell rectangle covered by n.
func (n *node) cells(cellW, cellH int) (col0, row0, col1, row1 int) {
	left, top := n.style[widget.StyleLeft], n.style[widget.StyleTop]
	width, height := n.style[widget.StyleWidth], n.style[widget.StyleHeight]
	col0 = floorDiv(left, cellW)
	row0 = floorDiv(top, cellH)
	col1 = floorDiv(left+width-1, cellW)
	row1 = floorDiv(top+height-1, cellH)
	return col0, row0, col1, row1
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

type listener struct {
	target *node
	kind   widget.EventKind
	fn     widget.Handler
	off    bool
}

// desktop is the widget host of the terminal: a body node holding widget
// roots, pointer dispatch and the loop scheduler.
type desktop struct {
	*loop

	cellW, cellH int
	cols, rows   int

	body      *node
	listeners []*listener

	hovered   *node
	pressed   *node
	pressCell point
}

func newDesktop(l *loop, cellW, cellH int) *desktop {
	if cellW <= 0 {
		cellW = defaultCellWidth
	}
	if cellH <= 0 {
		cellH = defaultCellHeight
	}
	d := &desktop{loop: l, cellW: cellW, cellH: cellH}
	d.body = d.newNode(widget.KindRoot)
	return d
}

func (d *desktop) newNode(kind widget.Kind) *node {
	return &node{
		doc:     d,
		kind:    kind,
		style:   make(map[string]int),
		classes: make(map[string]bool),
	}
}

func (d *desktop) CreateElement(kind widget.Kind) widget.Element { return d.newNode(kind) }

func (d *desktop) ViewportWidth() int { return d.cols * d.cellW }

func (d *desktop) On(target widget.Element, kind widget.EventKind, fn widget.Handler) func() {
	n, _ := target.(*node)
	l := &listener{target: n, kind: kind, fn: fn}
	d.listeners = append(d.listeners, l)
	return func() {
		if l.off {
			return
		}
		l.off = true
		for i, other := range d.listeners {
			if other == l {
				d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
				break
			}
		}
	}
}

func (d *desktop) resize(cols, rows int) {
	d.cols, d.rows = cols, rows
}

// remove detaches a widget root from the body.
func (d *desktop) remove(root *node) {
	d.body.removeChild(root)
	if d.hovered == root {
		d.hovered = nil
	}
	if d.pressed == root {
		d.pressed = nil
	}
}

// roots returns the widget roots, bottom first.
func (d *desktop) roots() []*node { return d.body.children }

// hit returns the topmost root containing cell (col, row) and the element
// that receives the event: the root's handle on its bottom-right cell, the
// root itself elsewhere.
func (d *desktop) hit(col, row int) (root, target *node) {
	for i := len(d.body.children) - 1; i >= 0; i-- {
		r := d.body.children[i]
		col0, row0, col1, row1 := r.cells(d.cellW, d.cellH)
		if col < col0 || col > col1 || row < row0 || row > row1 {
			continue
		}
		if col == col1 && row == row1 {
			if h := r.child(widget.KindHandle); h != nil {
				return r, h
			}
		}
		return r, r
	}
	return nil, nil
}

func (d *desktop) px(col, row int) (x, y int) {
	return col*d.cellW + d.cellW/2, row*d.cellH + d.cellH/2
}

func (d *desktop) pointerDown(col, row int, button widget.Button) {
	d.hover(col, row)
	root, target := d.hit(col, row)
	d.pressed = root
	d.pressCell = point{col, row}

	x, y := d.px(col, row)
	d.dispatch(target, &widget.PointerEvent{Kind: widget.PointerDown, X: x, Y: y, Button: button})
}

func (d *desktop) pointerMove(col, row int) {
	d.hover(col, row)
	_, target := d.hit(col, row)
	x, y := d.px(col, row)
	d.dispatch(target, &widget.PointerEvent{Kind: widget.PointerMove, X: x, Y: y, Button: widget.ButtonNone})
}

func (d *desktop) pointerUp(col, row int, button widget.Button) {
	root, target := d.hit(col, row)
	x, y := d.px(col, row)
	d.dispatch(target, &widget.PointerEvent{Kind: widget.PointerUp, X: x, Y: y, Button: button})

	pressed := d.pressed
	d.pressed = nil
	if root != nil && root == pressed && d.pressCell == (point{col, row}) {
		d.dispatch(target, &widget.PointerEvent{Kind: widget.Click, X: x, Y: y, Button: button})
	}
	d.hover(col, row)
}

// hover emits leave/enter when the root under the pointer changes. Neither
// event bubbles.
func (d *desktop) hover(col, row int) {
	root, _ := d.hit(col, row)
	if root == d.hovered {
		return
	}
	x, y := d.px(col, row)
	if prev := d.hovered; prev != nil {
		d.hovered = nil
		d.deliver(prev, &widget.PointerEvent{Kind: widget.PointerLeave, X: x, Y: y, Button: widget.ButtonNone})
	}
	d.hovered = root
	if root != nil {
		d.deliver(root, &widget.PointerEvent{Kind: widget.PointerEnter, X: x, Y: y, Button: widget.ButtonNone})
	}
}

// dispatch runs the listeners of target and its ancestors, innermost first,
// then the document listeners, unless a handler stops propagation.
// Listeners added during dispatch see the next event.
func (d *desktop) dispatch(target *node, ev *widget.PointerEvent) {
	ls := append([]*listener(nil), d.listeners...)
	for n := target; n != nil; n = n.parent {
		d.run(ls, n, ev)
		if ev.Stopped() {
			return
		}
	}
	d.run(ls, nil, ev)
}

func (d *desktop) deliver(target *node, ev *widget.PointerEvent) {
	d.run(append([]*listener(nil), d.listeners...), target, ev)
}

func (d *desktop) run(ls []*listener, target *node, ev *widget.PointerEvent) {
	for _, l := range ls {
		if l.off || l.target != target || l.kind != ev.Kind {
			continue
		}
		l.fn(ev)
	}
}
