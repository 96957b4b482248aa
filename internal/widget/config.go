package widget

import (
	"io"
	"log"
	"time"

	"github.com/spf13/cast"
)

// Edge is the viewport edge a widget's horizontal position is measured from.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
)

func (e Edge) String() string {
	if e == EdgeRight {
		return "right"
	}
	return "left"
}

// Anchor pins a widget horizontally: Offset px from the Edge.
type Anchor struct {
	Edge   Edge
	Offset int
}

// Config is fixed once a widget is constructed.
type Config struct {
	Aspect    bool
	Width     int
	Height    int
	MinWidth  int
	MinHeight int
	MaxWidth  int
	MaxHeight int
	Anchor    Anchor
	Top       int
	Frequency float64
	Reanchor  bool
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Width:     100,
		Height:    100,
		MinWidth:  32,
		MinHeight: 32,
		MaxWidth:  500,
		MaxHeight: 500,
		Anchor:    Anchor{Edge: EdgeLeft, Offset: 10},
		Top:       10,
		Frequency: 1,
		Reanchor:  true,
	}
}

// Timing holds the delays used by a widget.
type Timing struct {
	ResizeSettle time.Duration
	// SaveDelay of zero persists synchronously on pointer-up.
	SaveDelay    time.Duration
	EnvelopeShow time.Duration
	EnvelopeHide time.Duration
}

// DefaultTiming returns the built-in delays.
func DefaultTiming() Timing {
	return Timing{
		ResizeSettle: 250 * time.Millisecond,
		SaveDelay:    time.Second,
		EnvelopeShow: 3 * time.Second,
		EnvelopeHide: time.Second,
	}
}

type options struct {
	config Config
	timing Timing
	logger *log.Logger
}

// Option overrides a default before persisted settings are applied.
type Option func(*options)

func WithSize(width, height int) Option {
	return func(o *options) {
		o.config.Width = width
		o.config.Height = height
	}
}

func WithBounds(minWidth, minHeight, maxWidth, maxHeight int) Option {
	return func(o *options) {
		o.config.MinWidth = minWidth
		o.config.MinHeight = minHeight
		o.config.MaxWidth = maxWidth
		o.config.MaxHeight = maxHeight
	}
}

// WithLeft anchors the widget left px from the viewport's left edge.
func WithLeft(left int) Option {
	return func(o *options) { o.config.Anchor = Anchor{Edge: EdgeLeft, Offset: left} }
}

// WithRight anchors the widget right px from the viewport's right edge.
func WithRight(right int) Option {
	return func(o *options) { o.config.Anchor = Anchor{Edge: EdgeRight, Offset: right} }
}

func WithTop(top int) Option {
	return func(o *options) { o.config.Top = top }
}

func WithAspect(aspect bool) Option {
	return func(o *options) { o.config.Aspect = aspect }
}

func WithFrequency(fps float64) Option {
	return func(o *options) { o.config.Frequency = fps }
}

// WithReanchor toggles flipping the anchor edge when a move-drag crosses the
// viewport's horizontal midpoint.
func WithReanchor(on bool) Option {
	return func(o *options) { o.config.Reanchor = on }
}

func WithTiming(t Timing) Option {
	return func(o *options) { o.timing = t }
}

func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = log.New(io.Discard, "", 0)
		}
		o.logger = l
	}
}

// Keys used in the persisted mapping.
const (
	keyAspect    = "aspect"
	keyWidth     = "width"
	keyHeight    = "height"
	keyMinWidth  = "minWidth"
	keyMinHeight = "minHeight"
	keyMaxWidth  = "maxWidth"
	keyMaxHeight = "maxHeight"
	keyLeft      = "left"
	keyRight     = "right"
	keyTop       = "top"
	keyFrequency = "frequency"
)

// overlay applies persisted values over c. Values that cannot be coerced are
// skipped so the lower-precedence value stays in place.
func overlay(c Config, saved map[string]any) Config {
	if len(saved) == 0 {
		return c
	}

	setInt := func(key string, dst *int) {
		if v, ok := saved[key]; ok && v != nil {
			if n, err := cast.ToIntE(v); err == nil {
				*dst = n
			}
		}
	}

	if v, ok := saved[keyAspect]; ok && v != nil {
		if b, err := cast.ToBoolE(v); err == nil {
			c.Aspect = b
		}
	}
	setInt(keyWidth, &c.Width)
	setInt(keyHeight, &c.Height)
	setInt(keyMinWidth, &c.MinWidth)
	setInt(keyMinHeight, &c.MinHeight)
	setInt(keyMaxWidth, &c.MaxWidth)
	setInt(keyMaxHeight, &c.MaxHeight)
	setInt(keyTop, &c.Top)
	if v, ok := saved[keyFrequency]; ok && v != nil {
		if f, err := cast.ToFloat64E(v); err == nil {
			c.Frequency = f
		}
	}

	// A non-null right wins; the widget always writes the inactive edge as null.
	right, left := c.Anchor, c.Anchor
	var hasRight, hasLeft bool
	if v, ok := saved[keyRight]; ok && v != nil {
		if n, err := cast.ToIntE(v); err == nil {
			right, hasRight = Anchor{Edge: EdgeRight, Offset: n}, true
		}
	}
	if v, ok := saved[keyLeft]; ok && v != nil {
		if n, err := cast.ToIntE(v); err == nil {
			left, hasLeft = Anchor{Edge: EdgeLeft, Offset: n}, true
		}
	}
	switch {
	case hasRight:
		c.Anchor = right
	case hasLeft:
		c.Anchor = left
	}
	return c
}
