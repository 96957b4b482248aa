package widget

import (
	"image"
	"sort"
	"time"

	"github.com/fogleman/gg"
)

// fakeHost is an in-memory Host with a virtual clock.
type fakeHost struct {
	now    time.Time
	width  int
	nextID int

	timers map[int]*fakeTimer
	frames map[int]func(time.Time)
	subs   []*fakeSub

	created []*fakeElement
}

type fakeTimer struct {
	id int
	at time.Time
	fn func()
}

type fakeSub struct {
	id     int
	target Element
	kind   EventKind
	fn     Handler
}

func newFakeHost(width int) *fakeHost {
	return &fakeHost{
		now:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		width:  width,
		timers: make(map[int]*fakeTimer),
		frames: make(map[int]func(time.Time)),
	}
}

func (h *fakeHost) id() int {
	h.nextID++
	return h.nextID
}

func (h *fakeHost) Now() time.Time { return h.now }

func (h *fakeHost) After(d time.Duration, fn func()) Cancel {
	id := h.id()
	h.timers[id] = &fakeTimer{id: id, at: h.now.Add(d), fn: fn}
	return func() { delete(h.timers, id) }
}

func (h *fakeHost) RequestFrame(fn func(time.Time)) Cancel {
	id := h.id()
	h.frames[id] = fn
	return func() { delete(h.frames, id) }
}

func (h *fakeHost) CreateElement(kind Kind) Element {
	el := &fakeElement{
		host:    h,
		kind:    kind,
		style:   make(map[string]int),
		classes: make(map[string]bool),
	}
	h.created = append(h.created, el)
	return el
}

func (h *fakeHost) ViewportWidth() int { return h.width }

func (h *fakeHost) On(target Element, kind EventKind, fn Handler) func() {
	sub := &fakeSub{id: h.id(), target: target, kind: kind, fn: fn}
	h.subs = append(h.subs, sub)
	return func() {
		for i, s := range h.subs {
			if s.id == sub.id {
				h.subs = append(h.subs[:i], h.subs[i+1:]...)
				return
			}
		}
	}
}

// Advance moves the clock forward by d, firing due timers in order.
func (h *fakeHost) Advance(d time.Duration) {
	end := h.now.Add(d)
	for {
		var due []*fakeTimer
		for _, t := range h.timers {
			if !t.at.After(end) {
				due = append(due, t)
			}
		}
		if len(due) == 0 {
			break
		}
		sort.Slice(due, func(i, j int) bool {
			if due[i].at.Equal(due[j].at) {
				return due[i].id < due[j].id
			}
			return due[i].at.Before(due[j].at)
		})
		t := due[0]
		delete(h.timers, t.id)
		h.now = t.at
		t.fn()
	}
	h.now = end
}

// Frame advances the clock by step, then runs the frame callbacks that were
// pending at that point and are still pending when their turn comes.
func (h *fakeHost) Frame(step time.Duration) {
	h.Advance(step)
	ids := make([]int, 0, len(h.frames))
	for id := range h.frames {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fn, ok := h.frames[id]
		if !ok {
			continue
		}
		delete(h.frames, id)
		fn(h.now)
	}
}

// Dispatch delivers ev to target, its ancestors, then the document.
func (h *fakeHost) Dispatch(target *fakeElement, ev *PointerEvent) {
	for el := target; el != nil && !ev.Stopped(); el = el.parent {
		h.deliver(el, ev)
	}
	if !ev.Stopped() {
		h.deliver(nil, ev)
	}
}

func (h *fakeHost) deliver(target Element, ev *PointerEvent) {
	subs := append([]*fakeSub(nil), h.subs...)
	for _, s := range subs {
		if s.kind != ev.Kind {
			continue
		}
		if target == nil && s.target != nil {
			continue
		}
		if target != nil && s.target != target {
			continue
		}
		s.fn(ev)
		if ev.Stopped() {
			return
		}
	}
}

func (h *fakeHost) down(el *fakeElement, x, y int) {
	h.Dispatch(el, &PointerEvent{Kind: PointerDown, X: x, Y: y, Button: ButtonLeft})
}

func (h *fakeHost) move(x, y int) {
	h.Dispatch(nil, &PointerEvent{Kind: PointerMove, X: x, Y: y, Button: ButtonLeft})
}

func (h *fakeHost) up(x, y int) {
	h.Dispatch(nil, &PointerEvent{Kind: PointerUp, X: x, Y: y, Button: ButtonLeft})
}

func (h *fakeHost) fire(el *fakeElement, kind EventKind) {
	h.Dispatch(el, &PointerEvent{Kind: kind, Button: ButtonLeft})
}

type fakeElement struct {
	host     *fakeHost
	kind     Kind
	style    map[string]int
	classes  map[string]bool
	children []*fakeElement
	parent   *fakeElement
	image    image.Image
}

func (e *fakeElement) Host() Host { return e.host }

func (e *fakeElement) SetStyle(prop string, px int) { e.style[prop] = px }

func (e *fakeElement) SetClass(name string, on bool) {
	if on {
		e.classes[name] = true
		return
	}
	delete(e.classes, name)
}

func (e *fakeElement) AppendChild(child Element) {
	c := child.(*fakeElement)
	c.parent = e
	e.children = append(e.children, c)
}

func (e *fakeElement) SetImage(img image.Image) { e.image = img }

// fakeSettings records every Set call.
type fakeSettings struct {
	data map[string]any
	sets []map[string]any
	err  error
}

func newFakeSettings(data map[string]any) *fakeSettings {
	if data == nil {
		data = make(map[string]any)
	}
	return &fakeSettings{data: data}
}

func (s *fakeSettings) Get() map[string]any {
	out := make(map[string]any, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

func (s *fakeSettings) Set(key string, value any, persist bool) error {
	if s.err != nil {
		return s.err
	}
	if key == "" {
		patch := value.(map[string]any)
		cp := make(map[string]any, len(patch))
		for k, v := range patch {
			s.data[k] = v
			cp[k] = v
		}
		s.sets = append(s.sets, cp)
		return nil
	}
	s.data[key] = value
	s.sets = append(s.sets, map[string]any{key: value})
	return nil
}

// hookRecorder counts hook calls.
type hookRecorder struct {
	w       *Widget
	calls   []string
	resizes []Geometry
	renders []time.Time
	host    *fakeHost
}

func (r *hookRecorder) OnInited() { r.calls = append(r.calls, "inited") }

func (r *hookRecorder) OnResize() {
	r.calls = append(r.calls, "resize")
	if r.w != nil {
		r.resizes = append(r.resizes, r.w.Geometry())
	}
}

// renderHooks records frame times of OnRender.
type renderHooks struct {
	hookRecorder
	sizes [][2]int
}

func (r *renderHooks) OnRender(dc *gg.Context) {
	r.renders = append(r.renders, r.host.now)
	r.sizes = append(r.sizes, [2]int{dc.Width(), dc.Height()})
}

func (r *hookRecorder) count(name string) int {
	n := 0
	for _, c := range r.calls {
		if c == name {
			n++
		}
	}
	return n
}

// fixture wires a widget to a fake host and container.
type fixture struct {
	host      *fakeHost
	container *fakeElement
	settings  *fakeSettings
	hooks     *hookRecorder
	w         *Widget
	root      *fakeElement
}

func newFixture(viewport int, saved map[string]any, canvas bool, opts ...Option) *fixture {
	h := newFakeHost(viewport)
	container := h.CreateElement(KindRoot).(*fakeElement)
	settings := newFakeSettings(saved)
	hooks := &hookRecorder{host: h}
	w := New("test", settings, hooks, opts...)
	hooks.w = w
	root := w.Init(container, canvas).(*fakeElement)
	return &fixture{host: h, container: container, settings: settings, hooks: hooks, w: w, root: root}
}

func (f *fixture) handle() *fakeElement {
	for _, c := range f.root.children {
		if c.kind == KindHandle {
			return c
		}
	}
	return nil
}

func (f *fixture) canvas() *fakeElement {
	for _, c := range f.root.children {
		if c.kind == KindCanvas {
			return c
		}
	}
	return nil
}
