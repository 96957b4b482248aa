package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	FastLeft   key.Binding
	FastRight  key.Binding
	FastUp     key.Binding
	FastDown   key.Binding
	Press      key.Binding
	Focus      key.Binding
	Copy       key.Binding
	Paste      key.Binding
	NewNote    key.Binding
	Delete     key.Binding
	ExportTXT  key.Binding
	ExportPNG  key.Binding
	ExportYAML key.Binding
	Help       key.Binding
	Close      key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:       key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "pointer left")),
		Right:      key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "pointer right")),
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "pointer up")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "pointer down")),
		FastLeft:   key.NewBinding(key.WithKeys("H", "shift+left"), key.WithHelp("H", "pointer left x4")),
		FastRight:  key.NewBinding(key.WithKeys("L", "shift+right"), key.WithHelp("L", "pointer right x4")),
		FastUp:     key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "pointer up x4")),
		FastDown:   key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "pointer down x4")),
		Press:      key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "press/release")),
		Focus:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next widget")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy geometry")),
		Paste:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "paste into note")),
		NewNote:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new note")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove widget")),
		ExportTXT:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export txt")),
		ExportPNG:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "export png")),
		ExportYAML: key.NewBinding(key.WithKeys("Y"), key.WithHelp("Y", "export layout")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Close:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) all() []key.Binding {
	return []key.Binding{
		k.Left, k.Right, k.Up, k.Down,
		k.FastLeft, k.FastRight, k.FastUp, k.FastDown,
		k.Press, k.Focus, k.Copy, k.Paste, k.NewNote, k.Delete,
		k.ExportTXT, k.ExportPNG, k.ExportYAML, k.Help, k.Quit,
	}
}

// shortHelp is the status line hint.
func (k keyMap) shortHelp() string {
	var parts []string
	for _, b := range []key.Binding{k.Press, k.Focus, k.Delete, k.Help, k.Quit} {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
