package widget

type action int

const (
	actionNone action = iota
	actionMove
	actionResize
)

func (a action) String() string {
	switch a {
	case actionMove:
		return "move"
	case actionResize:
		return "resize"
	default:
		return "none"
	}
}

type point struct {
	X, Y int
}

type dragState struct {
	action        action
	startPointer  point
	startPosition point
	startWidth    int
	startHeight   int
	startAnchor   Anchor
}

func (w *Widget) onBodyDown(ev *PointerEvent) {
	w.beginDrag(ev, actionMove)
}

func (w *Widget) onHandleDown(ev *PointerEvent) {
	// The handle sits inside the body; never let it start a move as well.
	ev.StopPropagation()
	w.beginDrag(ev, actionResize)
}

func (w *Widget) beginDrag(ev *PointerEvent, a action) {
	if ev.Button != ButtonLeft || w.Manipulating() {
		return
	}

	w.windowWidth = w.host.ViewportWidth()
	x, y := w.geom.Resolve(w.windowWidth)
	w.drag = dragState{
		action:        a,
		startPointer:  point{ev.X, ev.Y},
		startPosition: point{x, y},
		startWidth:    w.geom.Width,
		startHeight:   w.geom.Height,
		startAnchor:   w.geom.Anchor,
	}

	w.envelopeTimer.stop()
	w.root.SetClass(ClassActive, true)

	w.dragSubs = append(w.dragSubs,
		w.host.On(nil, PointerMove, w.onDragMove),
		w.host.On(nil, PointerUp, w.onDragUp),
	)
}

func (w *Widget) onDragMove(ev *PointerEvent) {
	dx := ev.X - w.drag.startPointer.X
	dy := ev.Y - w.drag.startPointer.Y

	switch w.drag.action {
	case actionMove:
		w.moveTo(w.drag.startPosition.X+dx, w.drag.startPosition.Y+dy)
	case actionResize:
		w.resizeBy(dx, dy)
	}
}

func (w *Widget) moveTo(x, y int) {
	// Right anchoring is dropped while moving and only comes back through
	// the midpoint check below.
	w.geom.Anchor = Anchor{Edge: EdgeLeft, Offset: x}
	w.geom.Top = y
	w.applyPosition()

	if w.config.Reanchor && 2*x+w.geom.Width > w.windowWidth {
		w.geom.Anchor = Anchor{Edge: EdgeRight, Offset: w.windowWidth - (x + w.geom.Width)}
	}
}

func (w *Widget) resizeBy(dx, dy int) {
	d := w.drag
	width := w.config.clampWidth(d.startWidth + dx)
	height := w.config.clampHeight(d.startHeight + dy)
	if w.config.Aspect && d.startWidth > 0 && d.startHeight > 0 {
		// Both axes follow the clamped horizontal delta; if that pushes the
		// height out of bounds, the height bound limits the width instead.
		height = d.startHeight + (width-d.startWidth)*d.startHeight/d.startWidth
		if clamped := w.config.clampHeight(height); clamped != height {
			height = clamped
			width = w.config.clampWidth(d.startWidth + (height-d.startHeight)*d.startWidth/d.startHeight)
		}
	}

	w.geom.Width = width
	w.geom.Height = height

	// Keep the left edge where it was for right-anchored widgets.
	if d.startAnchor.Edge == EdgeRight {
		w.geom.Anchor.Offset = d.startAnchor.Offset - (w.geom.Width - d.startWidth)
	}

	w.applySize()
	w.applyPosition()
	w.after(&w.resizeTimer, w.timing.ResizeSettle, w.notifyResize)
}

func (w *Widget) onDragUp(ev *PointerEvent) {
	w.endDrag()
	w.root.SetClass(ClassActive, false)

	w.envelopeTimer.stop()
	w.setEnvelope(false)

	if w.timing.SaveDelay <= 0 {
		w.saveTimer.stop()
		w.save()
		return
	}
	w.after(&w.saveTimer, w.timing.SaveDelay, w.save)
}

// endDrag drops the drag-scoped document subscriptions and the drag state.
func (w *Widget) endDrag() {
	for _, off := range w.dragSubs {
		off()
	}
	w.dragSubs = nil
	w.drag = dragState{}
}

func (w *Widget) save() {
	if w.settings == nil {
		return
	}
	if err := w.settings.Set("", w.geom.patch(), true); err != nil {
		w.logger.Printf("widget %s: save geometry: %v", w.name, err)
	}
}
