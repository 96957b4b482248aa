package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"desklet/internal/settings"
	"desklet/internal/widget"
)

func main() {
	if f, err := tea.LogToFile(logPath(), "desklet"); err == nil {
		defer f.Close()
	}

	config, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}
	store, err := settings.Open(config.DatabasePath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	m := newModel(config, store)
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	m.loop.send = p.Send
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func logPath() string {
	if path := os.Getenv("DESKLET_LOG"); path != "" {
		return path
	}
	return os.DevNull
}

func newModel(config *Config, store *settings.Store) *model {
	l := newLoop(config.FrameRate)
	return &model{
		mode:    ModeNormal,
		help:    config.StartMenu,
		desktop: newDesktop(l, config.CellWidth, config.CellHeight),
		loop:    l,
		store:   store,
		focused: -1,
		config:  config,
		keys:    defaultKeyMap(),
	}
}

func (m *model) desktopRows() int {
	return max(m.height-1, 1) // status line
}

func (m *model) spawnConfigured() {
	for _, spec := range m.config.Widgets {
		if _, err := m.spawn(spec); err != nil {
			log.Printf("spawn %q: %v", spec.Name, err)
			m.errorMessage = err.Error()
		}
	}
}

func (m *model) shutdown() {
	for _, a := range m.applets {
		a.w.Settle()
		a.w.Destroy()
	}
	if err := m.store.Close(); err != nil {
		log.Printf("close settings: %v", err)
	}
}

func (m *model) Init() tea.Cmd {
	return m.loop.tick()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.desktop.resize(m.width, m.desktopRows())
		if !m.started {
			m.started = true
			m.spawnConfigured()
		}
		for _, a := range m.applets {
			a.w.Reflow()
		}
		m.ensureCursorInBounds()
		return m, nil

	case timerMsg:
		m.loop.fire(msg.id)
		return m, nil

	case frameMsg:
		m.loop.runFrames(time.Time(msg))
		return m, m.loop.tick()

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	m.cursorX, m.cursorY = msg.X, msg.Y
	m.ensureCursorInBounds()

	switch msg.Type {
	case tea.MouseLeft, tea.MouseMiddle, tea.MouseRight:
		if m.pointerDown {
			m.desktop.pointerMove(m.cursorX, m.cursorY)
			return
		}
		m.pointerDown = true
		m.pressed = mouseButton(msg.Type)
		m.focusAt(m.cursorX, m.cursorY)
		m.desktop.pointerDown(m.cursorX, m.cursorY, m.pressed)
	case tea.MouseMotion:
		m.desktop.pointerMove(m.cursorX, m.cursorY)
	case tea.MouseRelease:
		if !m.pointerDown {
			return
		}
		m.pointerDown = false
		m.desktop.pointerUp(m.cursorX, m.cursorY, m.pressed)
	}
}

func mouseButton(t tea.MouseEventType) widget.Button {
	switch t {
	case tea.MouseLeft:
		return widget.ButtonLeft
	case tea.MouseMiddle:
		return widget.ButtonMiddle
	case tea.MouseRight:
		return widget.ButtonRight
	default:
		return widget.ButtonNone
	}
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.shutdown()
		return m, tea.Quit
	}

	if m.help {
		switch {
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Close):
			m.help = false
		case key.Matches(msg, m.keys.Down):
			m.helpScroll++
		case key.Matches(msg, m.keys.Up):
			if m.helpScroll > 0 {
				m.helpScroll--
			}
		}
		return m, nil
	}

	m.errorMessage = ""
	m.successMessage = ""

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help = true
		m.helpScroll = 0
	case key.Matches(msg, m.keys.Press):
		m.togglePress()
	case key.Matches(msg, m.keys.Close):
		if m.pointerDown {
			m.togglePress()
		}
	case key.Matches(msg, m.keys.Focus):
		m.focusNext()
	case key.Matches(msg, m.keys.Copy):
		m.report(m.copyGeometry(), "Geometry copied")
	case key.Matches(msg, m.keys.Paste):
		m.report(m.pasteNote(), "Pasted into new note")
	case key.Matches(msg, m.keys.NewNote):
		_, err := m.newNote("")
		m.report(err, "Note created")
	case key.Matches(msg, m.keys.Delete):
		m.report(m.removeApplet(m.focused), "Widget removed")
	case key.Matches(msg, m.keys.ExportTXT):
		path := m.config.GetSavePath("desklet.txt")
		m.report(m.exportVisualTXT(path), "Exported "+path)
	case key.Matches(msg, m.keys.ExportPNG):
		path := m.config.GetSavePath("desklet.png")
		m.report(m.desktop.ExportToPNG(path), "Exported "+path)
	case key.Matches(msg, m.keys.ExportYAML):
		path := m.config.GetSavePath("desklet-layout.yaml")
		m.report(m.exportLayout(path), "Exported "+path)
	default:
		m.handleCursorMove(msg)
	}
	return m, nil
}

func (m *model) report(err error, success string) {
	if err != nil {
		log.Print(err)
		m.errorMessage = err.Error()
		return
	}
	m.successMessage = success
}

// currentMode reports what the pointer is doing to a widget.
func (m *model) currentMode() Mode {
	if m.help {
		return ModeHelp
	}
	for _, a := range m.applets {
		switch {
		case a.w.Resizing():
			return ModeResize
		case a.w.Manipulating():
			return ModeMove
		}
	}
	return ModeNormal
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

func (m *model) View() string {
	if m.help {
		return m.helpView()
	}
	if m.width < 1 {
		return ""
	}

	rendered := m.desktop.Render(m.width, m.desktopRows(), m.cursorX, m.cursorY, true)

	m.mode = m.currentMode()
	status := fmt.Sprintf("Mode: %s | Pointer: (%d,%d)", m.modeString(), m.cursorX, m.cursorY)
	if a := m.focusedApplet(); a != nil {
		g := a.w.Geometry()
		status += fmt.Sprintf(" | %s %dx%d", a.name(), g.Width, g.Height)
	}
	switch {
	case m.errorMessage != "":
		status = statusStyle.Render(status) + errorStyle.Render(" | ERROR: "+m.errorMessage)
	case m.successMessage != "":
		status = statusStyle.Render(status) + okStyle.Render(" | "+m.successMessage)
	default:
		status = statusStyle.Render(status + " | " + m.keys.shortHelp())
	}

	return rendered.String() + "\n" + status
}

func (m *model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeMove:
		return "MOVE"
	case ModeResize:
		return "RESIZE"
	case ModeHelp:
		return "HELP"
	default:
		return "UNKNOWN"
	}
}

func (m *model) helpView() string {
	helpLines := []string{
		"desklet Help",
		"============",
		"",
		"Widgets sit on the desktop. Drag a widget's body to move it and its",
		"bottom-right corner (◢) to resize it. Dragging past the middle of the",
		"screen pins the widget to the nearer edge. Hover a widget for a few",
		"seconds, or click it, to highlight its outline.",
		"",
		"Keys:",
		"-----",
	}
	for _, b := range m.keys.all() {
		h := b.Help()
		helpLines = append(helpLines, fmt.Sprintf("  %-12s %s", h.Key, h.Desc))
	}
	helpLines = append(helpLines,
		"",
		"The mouse works too: press, drag and release with the left button.",
		"",
		"Press ? or Esc to close this screen.",
	)

	visibleHeight := max(m.height-1, 1)

	startLine := m.helpScroll
	if startLine > len(helpLines)-visibleHeight {
		startLine = max(len(helpLines)-visibleHeight, 0)
		m.helpScroll = startLine
	}
	endLine := min(startLine+visibleHeight, len(helpLines))

	result := strings.Join(helpLines[startLine:endLine], "\n")
	statusLine := fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result + "\n" + statusLine
}
