package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

func (m *model) exportVisualTXT(filename string) error {
	if m.width < 1 {
		return fmt.Errorf("no desktop to export")
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	// Rendered as it appears, without the pointer.
	rendered := m.desktop.Render(m.width, m.desktopRows(), -1, -1, false)
	for _, line := range rendered.Plain() {
		fmt.Fprintln(file, line)
	}
	return nil
}

// layoutEntry is one widget in an exported layout. Exactly one of Left and
// Right is set.
type layoutEntry struct {
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Top    int    `yaml:"top"`
	Left   *int   `yaml:"left,omitempty"`
	Right  *int   `yaml:"right,omitempty"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
}

type layout struct {
	Viewport struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"viewport"`
	Widgets []layoutEntry `yaml:"widgets"`
}

func layoutEntryOf(a *applet, viewportWidth int) layoutEntry {
	g := a.w.Geometry()
	x, y := g.Resolve(viewportWidth)
	e := layoutEntry{
		Name:   a.name(),
		Kind:   a.kind,
		Width:  g.Width,
		Height: g.Height,
		Top:    g.Top,
		X:      x,
		Y:      y,
	}
	if left, ok := g.Left(); ok {
		e.Left = &left
	}
	if right, ok := g.Right(); ok {
		e.Right = &right
	}
	return e
}

// exportLayout writes every widget's geometry as YAML.
func (m *model) exportLayout(filename string) error {
	if len(m.applets) == 0 {
		return fmt.Errorf("nothing to export")
	}

	var l layout
	l.Viewport.Width = m.desktop.ViewportWidth()
	l.Viewport.Height = m.desktop.rows * m.desktop.cellH
	for _, a := range m.applets {
		l.Widgets = append(l.Widgets, layoutEntryOf(a, l.Viewport.Width))
	}

	out, err := yaml.Marshal(&l)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return os.WriteFile(filename, out, 0o644)
}
