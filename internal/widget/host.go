package widget

import (
	"image"
	"time"
)

// Kind selects the element a Host creates.
type Kind int

const (
	KindRoot Kind = iota
	KindHandle
	KindCanvas
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindHandle:
		return "handle"
	case KindCanvas:
		return "canvas"
	default:
		return "unknown"
	}
}

// Style properties and class markers set by a widget on its root element.
const (
	StyleLeft   = "left"
	StyleTop    = "top"
	StyleWidth  = "width"
	StyleHeight = "height"

	ClassActive   = "active"
	ClassEnvelope = "envelope"
)

// Element is a node of the host's display tree.
type Element interface {
	// Host returns the host that created the element.
	Host() Host
	// SetStyle sets an inline style property in px.
	SetStyle(prop string, px int)
	// SetClass adds or removes a class marker.
	SetClass(name string, on bool)
	AppendChild(child Element)
	// SetImage replaces the pixels shown by a canvas element.
	SetImage(img image.Image)
}

// EventKind is the type of a pointer event.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	Click
	PointerEnter
	PointerLeave
)

func (k EventKind) String() string {
	switch k {
	case PointerDown:
		return "pointerdown"
	case PointerMove:
		return "pointermove"
	case PointerUp:
		return "pointerup"
	case Click:
		return "click"
	case PointerEnter:
		return "pointerenter"
	case PointerLeave:
		return "pointerleave"
	default:
		return "unknown"
	}
}

// Button identifies the pointer button of an event.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
	ButtonNone
)

// PointerEvent is delivered to handlers. X and Y are viewport coordinates in px.
type PointerEvent struct {
	Kind   EventKind
	X, Y   int
	Button Button

	stopped bool
}

// StopPropagation keeps the event from reaching ancestor and document listeners.
func (e *PointerEvent) StopPropagation() { e.stopped = true }

// Stopped reports whether a handler stopped propagation.
func (e *PointerEvent) Stopped() bool { return e.stopped }

// Handler receives pointer events.
type Handler func(ev *PointerEvent)

// Cancel stops a scheduled callback. Calling it more than once is allowed.
type Cancel func()

// Scheduler runs deferred work on the host's event loop.
type Scheduler interface {
	Now() time.Time
	// After runs fn once d has elapsed, unless cancelled first.
	After(d time.Duration, fn func()) Cancel
	// RequestFrame runs fn on the next frame with the frame time.
	RequestFrame(fn func(now time.Time)) Cancel
}

// Host is the environment a widget is initialised into: element factory,
// viewport, the shared pointer-event source and the scheduler.
type Host interface {
	Scheduler
	CreateElement(kind Kind) Element
	ViewportWidth() int
	// On subscribes fn to events of kind dispatched to target. A nil target
	// subscribes at the document level, which sees every event that was not
	// stopped. The returned func unsubscribes.
	On(target Element, kind EventKind, fn Handler) (off func())
}

// Settings is the persistence handle of one widget.
type Settings interface {
	Get() map[string]any
	// Set stores value under key. An empty key merges a map[string]any
	// into the stored mapping.
	Set(key string, value any, persist bool) error
}

// Optional hooks, checked on the value passed to New.
type (
	Initer interface{ OnInited() }
	Resizer interface{ OnResize() }
)
