package main

import (
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

// copyGeometry puts the focused widget's geometry on the clipboard as YAML.
func (m *model) copyGeometry() error {
	a := m.focusedApplet()
	if a == nil {
		return fmt.Errorf("no widget selected")
	}
	out, err := yaml.Marshal(layoutEntryOf(a, m.desktop.ViewportWidth()))
	if err != nil {
		return fmt.Errorf("encode geometry: %w", err)
	}
	if err := clipboard.WriteAll(string(out)); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// pasteNote creates a note holding the clipboard text.
func (m *model) pasteNote() error {
	text, err := readClipboardText()
	if err != nil {
		return fmt.Errorf("read clipboard: %w", err)
	}
	text = clipboardNoteText(text)
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("clipboard is empty")
	}
	_, err = m.newNote(text)
	return err
}

// newNote spawns a note at the pointer under a fresh name.
func (m *model) newNote(text string) (*applet, error) {
	spec := WidgetSpec{
		Name: "note-" + uuid.NewString(),
		Kind: kindNote,
		Options: map[string]any{
			"left":   m.cursorX * m.desktop.cellW,
			"top":    m.cursorY * m.desktop.cellH,
			"width":  240,
			"height": 96,
		},
	}
	a, err := m.spawn(spec)
	if err != nil {
		return nil, err
	}
	if text != "" {
		if err := a.hooks.(*note).setText(text); err != nil {
			return a, fmt.Errorf("store note text: %w", err)
		}
	}
	return a, nil
}

// clipboardNoteText reduces rich clipboard content to plain text.
func clipboardNoteText(text string) string {
	switch {
	case isRTF(text):
		text = extractTextFromRTF(text)
	case isHTML(text):
		text = extractTextFromHTML(text)
	}
	return cleanClipboardText(text)
}

func isRTF(text string) bool {
	return strings.HasPrefix(text, "{\\rtf") || strings.Contains(text, "\\rtf1")
}

func isHTML(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "<") &&
		(strings.Contains(text, "<html") || strings.Contains(text, "<body") || strings.Contains(text, "<div"))
}

func isLetter(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isDigit(b byte) bool  { return b == '-' || (b >= '0' && b <= '9') }

// extractTextFromRTF drops groups' braces and control words, keeping
// escaped characters, hex bytes and paragraph breaks.
func extractTextFromRTF(rtf string) string {
	var result strings.Builder
	result.Grow(len(rtf))

	for i := 0; i < len(rtf); i++ {
		b := rtf[i]
		switch {
		case b == '{' || b == '}':
			continue
		case b != '\\':
			if b >= 32 && b < 127 || b == '\n' || b == '\t' {
				result.WriteByte(b)
			}
			continue
		case i+1 >= len(rtf):
			continue
		}

		next := rtf[i+1]
		switch {
		case next == '\'' && i+3 < len(rtf):
			if val, err := strconv.ParseUint(rtf[i+2:i+4], 16, 8); err == nil {
				result.WriteByte(byte(val))
			}
			i += 3
		case next == '\\' || next == '{' || next == '}' || next == '-':
			result.WriteByte(next)
			i++
		case next == '_':
			result.WriteByte(' ')
			i++
		case isLetter(next):
			start := i + 1
			i++
			for i+1 < len(rtf) && isLetter(rtf[i+1]) {
				i++
			}
			word := rtf[start : i+1]
			for i+1 < len(rtf) && isDigit(rtf[i+1]) {
				i++
			}
			if i+1 < len(rtf) && rtf[i+1] == ' ' {
				i++
			}
			switch word {
			case "par", "line":
				result.WriteByte('\n')
			case "tab":
				result.WriteByte('\t')
			}
		}
	}
	return result.String()
}

var htmlEntities = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
	"&quot;", "\"",
	"&#39;", "'",
	"&nbsp;", " ",
)

func extractTextFromHTML(html string) string {
	var result strings.Builder
	result.Grow(len(html))
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			result.WriteRune(r)
		}
	}
	return htmlEntities.Replace(result.String())
}

// cleanClipboardText drops control characters and normalizes line endings.
func cleanClipboardText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || r >= 32 {
			return r
		}
		return -1
	}, text)
}
