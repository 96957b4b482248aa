package widget

import (
	"log"
	"time"

	"github.com/fogleman/gg"
)

// Widget is a positioned, resizable overlay element. All methods must be
// called from the host's event loop.
type Widget struct {
	name     string
	config   Config
	timing   Timing
	settings Settings
	hooks    any
	logger   *log.Logger

	geom        Geometry
	windowWidth int
	drag        dragState
	envelope    bool
	destroyed   bool

	host   Host
	root   Element
	handle Element
	canvas Element
	dc     *gg.Context

	bindings []func()
	dragSubs []func()

	resizeTimer   slot
	saveTimer     slot
	envelopeTimer slot
	frame         slot
	then          time.Time
}

// New builds a widget from the defaults, opts and the values persisted in
// settings, in increasing precedence. hooks may implement Initer, Resizer
// and Renderer; settings may be nil.
func New(name string, settings Settings, hooks any, opts ...Option) *Widget {
	o := options{
		config: DefaultConfig(),
		timing: DefaultTiming(),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := o.config
	if settings != nil {
		cfg = overlay(cfg, settings.Get())
	}

	return &Widget{
		name:     name,
		config:   cfg,
		timing:   o.timing,
		settings: settings,
		hooks:    hooks,
		logger:   o.logger,
		geom: Geometry{
			Width:  cfg.clampWidth(cfg.Width),
			Height: cfg.clampHeight(cfg.Height),
			Anchor: cfg.Anchor,
			Top:    cfg.Top,
		},
	}
}

// Init builds the widget's elements inside container and returns the root.
func (w *Widget) Init(container Element, canvasBacked bool) Element {
	host := container.Host()
	w.host = host
	w.windowWidth = host.ViewportWidth()

	w.root = host.CreateElement(KindRoot)
	w.handle = host.CreateElement(KindHandle)
	if canvasBacked {
		w.canvas = host.CreateElement(KindCanvas)
		w.root.AppendChild(w.canvas)
	}

	w.bindings = append(w.bindings,
		host.On(w.root, PointerDown, w.onBodyDown),
		host.On(w.handle, PointerDown, w.onHandleDown),
		host.On(w.root, Click, w.onClick),
		host.On(w.root, PointerEnter, w.onEnter),
		host.On(w.root, PointerLeave, w.onLeave),
	)

	w.applyPosition()
	w.applySize()

	w.root.AppendChild(w.handle)
	container.AppendChild(w.root)

	if h, ok := w.hooks.(Initer); ok {
		h.OnInited()
	}
	w.notifyResize()

	if canvasBacked {
		w.startRenderLoop()
	}
	return w.root
}

// Destroy unbinds every listener, cancels every pending callback and drops
// the element references. Nothing the widget scheduled runs afterwards.
func (w *Widget) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true

	w.endDrag()
	for _, off := range w.bindings {
		off()
	}
	w.bindings = nil

	w.resizeTimer.stop()
	w.saveTimer.stop()
	w.envelopeTimer.stop()
	w.frame.stop()

	w.host = nil
	w.root = nil
	w.handle = nil
	w.canvas = nil
	w.dc = nil
}

// Settle writes geometry whose save is still waiting on the debounce.
func (w *Widget) Settle() {
	if !w.saveTimer.pending() {
		return
	}
	w.saveTimer.stop()
	w.save()
}

// Reflow re-reads the viewport width and re-applies the position, so a
// right-anchored widget stays pinned after the viewport changes size.
func (w *Widget) Reflow() {
	if w.root == nil || w.Manipulating() {
		return
	}
	w.windowWidth = w.host.ViewportWidth()
	w.applyPosition()
}

func (w *Widget) Name() string       { return w.name }
func (w *Widget) Config() Config     { return w.config }
func (w *Widget) Geometry() Geometry { return w.geom }

// Position returns the resolved top-left corner.
func (w *Widget) Position() (x, y int) { return w.geom.Resolve(w.windowWidth) }

func (w *Widget) Manipulating() bool  { return w.drag.action != actionNone }
func (w *Widget) Resizing() bool      { return w.drag.action == actionResize }
func (w *Widget) EnvelopeShown() bool { return w.envelope }
func (w *Widget) Destroyed() bool     { return w.destroyed }

// Root is nil before Init and after Destroy.
func (w *Widget) Root() Element { return w.root }

// Context is the drawing context of a canvas-backed widget. It is replaced
// whenever the size changes.
func (w *Widget) Context() *gg.Context { return w.dc }

func (w *Widget) applyPosition() {
	x, y := w.geom.Resolve(w.windowWidth)
	w.root.SetStyle(StyleLeft, x)
	w.root.SetStyle(StyleTop, y)
}

func (w *Widget) applySize() {
	width := w.config.clampWidth(w.geom.Width)
	height := w.config.clampHeight(w.geom.Height)
	w.root.SetStyle(StyleWidth, width)
	w.root.SetStyle(StyleHeight, height)

	if w.canvas == nil {
		return
	}
	if w.dc == nil || w.dc.Width() != width || w.dc.Height() != height {
		w.dc = gg.NewContext(width, height)
		w.canvas.SetImage(w.dc.Image())
	}
}

func (w *Widget) notifyResize() {
	if h, ok := w.hooks.(Resizer); ok {
		h.OnResize()
	}
}

// after arms s with a callback that clears s before running fn.
func (w *Widget) after(s *slot, d time.Duration, fn func()) {
	s.arm(w.host.After(d, func() {
		s.cancel = nil
		fn()
	}))
}

// slot holds at most one pending callback.
type slot struct {
	cancel Cancel
}

func (s *slot) arm(c Cancel) {
	s.stop()
	s.cancel = c
}

func (s *slot) stop() {
	if s.cancel == nil {
		return
	}
	c := s.cancel
	s.cancel = nil
	c()
}

func (s *slot) pending() bool { return s.cancel != nil }
