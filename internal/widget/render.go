package widget

import (
	"math"
	"time"

	"github.com/fogleman/gg"
)

// Renderer is called on each throttled frame of a canvas-backed widget.
type Renderer interface {
	OnRender(dc *gg.Context)
}

// interval is the time between renders; zero renders on every frame.
// Frequencies too low to express as a Duration never render.
func (w *Widget) interval() time.Duration {
	if w.config.Frequency <= 0 {
		return 0
	}
	d := float64(time.Second) / w.config.Frequency
	if d >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(d)
}

func (w *Widget) startRenderLoop() {
	w.then = w.host.Now()
	w.requestFrame()
}

func (w *Widget) requestFrame() {
	w.frame.arm(w.host.RequestFrame(func(now time.Time) {
		w.frame.cancel = nil
		w.tick(now)
	}))
}

func (w *Widget) tick(now time.Time) {
	w.requestFrame()

	interval := w.interval()
	elapsed := now.Sub(w.then)
	if interval > 0 && elapsed <= interval {
		return
	}
	if interval > 0 {
		// Keep the remainder so the phase does not drift.
		w.then = now.Add(-(elapsed % interval))
	} else {
		w.then = now
	}

	if r, ok := w.hooks.(Renderer); ok && w.dc != nil {
		r.OnRender(w.dc)
	}
}
