/*
Package widget implements a small positioned, resizable, optionally animated
desktop overlay element.

A Widget owns its geometry, turns left-button drag gestures on its body and
resize handle into moves and resizes, clamps its size to configured bounds,
persists geometry after a quiet period and, when canvas-backed, drives a
throttled render loop on top of the host's frame callback.

The widget never touches a concrete display system. The container passed to
Init leads to a Host: element factory, viewport width, pointer-event source
and Scheduler (timers and frame callbacks). Persistence goes through a
Settings handle. All callbacks
are expected to run on a single goroutine, the host's event loop.

Example usage:

	w := widget.New("clock", handle, hooks, widget.WithSize(120, 120))
	root := w.Init(container, true)
	// ...
	w.Destroy()
*/
package widget
