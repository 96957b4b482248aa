package main

import (
	"desklet/internal/settings"
	"desklet/internal/widget"
)

type model struct {
	width       int
	height      int
	cursorX     int
	cursorY     int
	pointerDown bool
	pressed     widget.Button
	started     bool
	mode        Mode
	help        bool
	helpScroll  int

	desktop *desktop
	loop    *loop
	store   *settings.Store
	applets []*applet
	focused int

	config         *Config
	keys           keyMap
	errorMessage   string
	successMessage string
}

type point struct {
	X, Y int
}

// applet is one widget on the desktop together with the hooks that give it
// its content.
type applet struct {
	kind   string
	canvas bool
	w      *widget.Widget
	hooks  any
	root   *node
}

func (a *applet) name() string { return a.w.Name() }
