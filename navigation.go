package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"desklet/internal/widget"
)

// handleCursorMove moves the virtual pointer. With the pointer held down the
// move is dispatched, so a keyboard drag works like a mouse drag.
func (m *model) handleCursorMove(msg tea.KeyMsg) {
	dx, dy := 0, 0
	switch {
	case key.Matches(msg, m.keys.Left):
		dx = -1
	case key.Matches(msg, m.keys.Right):
		dx = 1
	case key.Matches(msg, m.keys.Up):
		dy = -1
	case key.Matches(msg, m.keys.Down):
		dy = 1
	case key.Matches(msg, m.keys.FastLeft):
		dx = -fastMoveCells
	case key.Matches(msg, m.keys.FastRight):
		dx = fastMoveCells
	case key.Matches(msg, m.keys.FastUp):
		dy = -fastMoveCells
	case key.Matches(msg, m.keys.FastDown):
		dy = fastMoveCells
	default:
		return
	}

	m.cursorX += dx
	m.cursorY += dy
	m.ensureCursorInBounds()
	m.desktop.pointerMove(m.cursorX, m.cursorY)
}

// togglePress presses or releases the left button at the pointer.
func (m *model) togglePress() {
	if m.pointerDown {
		m.pointerDown = false
		m.desktop.pointerUp(m.cursorX, m.cursorY, widget.ButtonLeft)
		return
	}
	m.pointerDown = true
	m.focusAt(m.cursorX, m.cursorY)
	m.desktop.pointerDown(m.cursorX, m.cursorY, widget.ButtonLeft)
}

func (m *model) focusAt(col, row int) {
	root, _ := m.desktop.hit(col, row)
	if root == nil {
		return
	}
	if i := m.appletAt(root); i >= 0 {
		m.focused = i
	}
}

func (m *model) focusNext() {
	if len(m.applets) == 0 {
		return
	}
	m.focused = (m.focused + 1) % len(m.applets)
	a := m.applets[m.focused]
	col0, row0, _, _ := a.root.cells(m.desktop.cellW, m.desktop.cellH)
	m.cursorX, m.cursorY = col0+1, row0+1
	m.ensureCursorInBounds()
}

func (m *model) ensureCursorInBounds() {
	maxX, maxY := m.width-1, m.desktopRows()-1
	m.cursorX = max(0, min(m.cursorX, maxX))
	m.cursorY = max(0, min(m.cursorY, maxY))
}
