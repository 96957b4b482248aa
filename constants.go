package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeMove
	ModeResize
	ModeHelp
)

// Applet kinds that can be spawned on the desktop.
const (
	kindClock = "clock"
	kindSpark = "spark"
	kindNote  = "note"
)

const (
	defaultCellWidth  = 8 // px per terminal column
	defaultCellHeight = 16
	defaultFrameRate  = 30
	maxNoteLines      = 64
	fastMoveCells     = 4 // HJKL pointer step
)
