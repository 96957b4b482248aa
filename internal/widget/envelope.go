package widget

func (w *Widget) onClick(ev *PointerEvent) {
	w.envelopeTimer.stop()
	w.setEnvelope(true)
}

func (w *Widget) onEnter(ev *PointerEvent) {
	w.after(&w.envelopeTimer, w.timing.EnvelopeShow, func() { w.setEnvelope(true) })
}

func (w *Widget) onLeave(ev *PointerEvent) {
	w.envelopeTimer.stop()
	if w.Manipulating() {
		return
	}
	w.after(&w.envelopeTimer, w.timing.EnvelopeHide, func() { w.setEnvelope(false) })
}

func (w *Widget) setEnvelope(on bool) {
	w.envelope = on
	if w.root != nil {
		w.root.SetClass(ClassEnvelope, on)
	}
}
