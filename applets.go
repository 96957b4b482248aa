package main

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fogleman/gg"
	"github.com/spf13/cast"
	"golang.org/x/image/font"

	"desklet/internal/settings"
	"desklet/internal/widget"
)

// base gives hooks access to the widget they decorate.
type base struct {
	w *widget.Widget
}

func (b *base) bind(w *widget.Widget) { b.w = w }

type binder interface {
	bind(w *widget.Widget)
}

// clockFace draws an analog clock with the time in digits below the hub.
type clockFace struct {
	base
	now  func() time.Time
	face font.Face
}

func (c *clockFace) OnInited() { c.loadFace() }
func (c *clockFace) OnResize() { c.loadFace() }

func (c *clockFace) loadFace() {
	g := c.w.Geometry()
	size := math.Max(float64(min(g.Width, g.Height))/8, 6)
	face, err := loadMonoFace(size)
	if err != nil {
		log.Printf("clock %s: %v", c.w.Name(), err)
		return
	}
	c.face = face
}

func (c *clockFace) OnRender(dc *gg.Context) {
	t := c.now()
	w, h := float64(dc.Width()), float64(dc.Height())
	cx, cy := w/2, h/2
	r := math.Min(w, h)/2 - 4

	dc.SetRGB(0.08, 0.08, 0.12)
	dc.Clear()

	dc.SetRGB(0.85, 0.85, 0.9)
	dc.SetLineWidth(2)
	dc.DrawCircle(cx, cy, r)
	dc.Stroke()
	for i := 0; i < 12; i++ {
		a := float64(i) * math.Pi / 6
		dc.DrawLine(cx+math.Sin(a)*r*0.85, cy-math.Cos(a)*r*0.85, cx+math.Sin(a)*r, cy-math.Cos(a)*r)
	}
	dc.Stroke()

	hand := func(turn, length, width float64) {
		a := turn * 2 * math.Pi
		dc.SetLineWidth(width)
		dc.DrawLine(cx, cy, cx+math.Sin(a)*length, cy-math.Cos(a)*length)
		dc.Stroke()
	}
	secs := float64(t.Second())
	mins := float64(t.Minute()) + secs/60
	hours := float64(t.Hour()%12) + mins/60
	hand(hours/12, r*0.5, 3)
	hand(mins/60, r*0.75, 2)
	dc.SetRGB(0.9, 0.3, 0.3)
	hand(secs/60, r*0.9, 1)

	if c.face != nil {
		dc.SetFontFace(c.face)
		dc.SetRGB(0.85, 0.85, 0.9)
		dc.DrawStringAnchored(t.Format("15:04"), cx, cy+r*0.45, 0.5, 0.5)
	}
}

// sparkline plots the interval between its own renders.
type sparkline struct {
	base
	now     func() time.Time
	face    font.Face
	last    time.Time
	samples []float64
}

func (s *sparkline) OnInited() {
	face, err := loadMonoFace(10)
	if err != nil {
		log.Printf("spark %s: %v", s.w.Name(), err)
		return
	}
	s.face = face
}

func (s *sparkline) OnRender(dc *gg.Context) {
	t := s.now()
	if !s.last.IsZero() {
		s.samples = append(s.samples, float64(t.Sub(s.last))/float64(time.Millisecond))
	}
	s.last = t
	if keep := dc.Width() / 2; len(s.samples) > keep {
		s.samples = s.samples[len(s.samples)-keep:]
	}

	w, h := float64(dc.Width()), float64(dc.Height())
	dc.SetRGB(0.05, 0.1, 0.08)
	dc.Clear()
	if len(s.samples) == 0 {
		return
	}

	peak := 0.0
	for _, v := range s.samples {
		peak = math.Max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	dc.SetRGB(0.3, 0.9, 0.5)
	dc.SetLineWidth(1.5)
	for i, v := range s.samples {
		x := w - float64(len(s.samples)-i)*2
		y := h - 4 - v/peak*(h-20)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.Stroke()

	if s.face != nil {
		dc.SetFontFace(s.face)
		dc.DrawString(fmt.Sprintf("%.0fms", s.samples[len(s.samples)-1]), 4, 12)
	}
}

// note is a text note without a canvas. The text is stored under "text" in
// the widget's settings and wrapped to the widget width.
type note struct {
	base
	settings *settings.Handle
	cellW    int
	text     string
}

func (n *note) OnInited() {
	n.text = cast.ToString(n.settings.Get()["text"])
	n.wrap()
}

func (n *note) OnResize() { n.wrap() }

// setText replaces the note text; the store writes it on its next flush.
func (n *note) setText(s string) error {
	n.text = s
	n.wrap()
	return n.settings.Set("text", s, false)
}

func (n *note) wrap() {
	root, ok := n.w.Root().(*node)
	if !ok {
		return
	}
	cols := n.w.Geometry().Width/n.cellW - 2
	if cols < 1 || n.text == "" {
		root.text = nil
		return
	}

	wrapped := lipgloss.NewStyle().Width(cols).Render(n.text)
	lines := strings.Split(wrapped, "\n")
	if len(lines) > maxNoteLines {
		lines = lines[:maxNoteLines]
	}
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	root.text = lines
}

// optionsFromMap turns a config options table into widget options.
// Unknown keys and values of the wrong type are ignored.
func optionsFromMap(opts map[string]any) []widget.Option {
	def := widget.DefaultConfig()
	var out []widget.Option

	intOf := func(key string, fallback int) (int, bool) {
		v, ok := opts[key]
		if !ok {
			return fallback, false
		}
		n, err := cast.ToIntE(v)
		if err != nil {
			return fallback, false
		}
		return n, true
	}

	width, hasW := intOf("width", def.Width)
	height, hasH := intOf("height", def.Height)
	if hasW || hasH {
		out = append(out, widget.WithSize(width, height))
	}

	minW, a := intOf("min_width", def.MinWidth)
	minH, b := intOf("min_height", def.MinHeight)
	maxW, c := intOf("max_width", def.MaxWidth)
	maxH, d := intOf("max_height", def.MaxHeight)
	if a || b || c || d {
		out = append(out, widget.WithBounds(minW, minH, maxW, maxH))
	}

	if right, ok := intOf("right", 0); ok {
		out = append(out, widget.WithRight(right))
	} else if left, ok := intOf("left", 0); ok {
		out = append(out, widget.WithLeft(left))
	}
	if top, ok := intOf("top", 0); ok {
		out = append(out, widget.WithTop(top))
	}

	if v, ok := opts["aspect"]; ok {
		if on, err := cast.ToBoolE(v); err == nil {
			out = append(out, widget.WithAspect(on))
		}
	}
	if v, ok := opts["reanchor"]; ok {
		if on, err := cast.ToBoolE(v); err == nil {
			out = append(out, widget.WithReanchor(on))
		}
	}
	if v, ok := opts["frequency"]; ok {
		if fps, err := cast.ToFloat64E(v); err == nil {
			out = append(out, widget.WithFrequency(fps))
		}
	}
	return out
}

// spawn creates the widget described by spec on the desktop and focuses it.
func (m *model) spawn(spec WidgetSpec) (*applet, error) {
	for _, a := range m.applets {
		if a.name() == spec.Name {
			return nil, fmt.Errorf("widget %q already exists", spec.Name)
		}
	}

	h, err := m.store.Handle(spec.Name)
	if err != nil {
		return nil, fmt.Errorf("settings for %q: %w", spec.Name, err)
	}

	a := &applet{kind: spec.Kind}
	switch spec.Kind {
	case kindClock:
		a.hooks = &clockFace{now: m.loop.Now}
		a.canvas = true
	case kindSpark:
		a.hooks = &sparkline{now: m.loop.Now}
		a.canvas = true
	case kindNote:
		a.hooks = &note{settings: h, cellW: m.desktop.cellW}
	default:
		return nil, fmt.Errorf("unknown widget kind %q", spec.Kind)
	}

	opts := append(optionsFromMap(spec.Options), widget.WithTiming(m.config.Timing))
	a.w = widget.New(spec.Name, h, a.hooks, opts...)
	a.hooks.(binder).bind(a.w)

	a.root = a.w.Init(m.desktop.body, a.canvas).(*node)
	a.root.label = spec.Name

	m.applets = append(m.applets, a)
	m.focused = len(m.applets) - 1
	log.Printf("spawned %s %q", spec.Kind, spec.Name)
	return a, nil
}

// removeApplet destroys a widget, detaches it and forgets its settings.
func (m *model) removeApplet(i int) error {
	if i < 0 || i >= len(m.applets) {
		return fmt.Errorf("no widget selected")
	}
	a := m.applets[i]
	a.w.Destroy()
	m.desktop.remove(a.root)
	m.applets = append(m.applets[:i], m.applets[i+1:]...)
	if m.focused >= len(m.applets) {
		m.focused = len(m.applets) - 1
	}
	if err := m.store.Delete(a.name()); err != nil {
		return fmt.Errorf("delete settings for %q: %w", a.name(), err)
	}
	return nil
}

func (m *model) focusedApplet() *applet {
	if m.focused < 0 || m.focused >= len(m.applets) {
		return nil
	}
	return m.applets[m.focused]
}

func (m *model) appletAt(root *node) int {
	for i, a := range m.applets {
		if a.root == root {
			return i
		}
	}
	return -1
}
