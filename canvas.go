package main

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"desklet/internal/widget"
)

// glyph is one terminal cell. plain is what a text export shows.
type glyph struct {
	r     rune
	plain rune
	fg    string
	bg    string
}

var blank = glyph{r: ' ', plain: ' '}

const (
	colorBorder   = "250"
	colorActive   = "212"
	colorEnvelope = "237"
	colorHandle   = "205"
	colorLabel    = "86"
	colorCursorFg = "0"
	colorCursorBg = "7"
)

// shades maps luminance to a character for text exports of canvas cells.
const shades = " .:-=+*#%@"

// grid is the desktop drawn into cells, one row per terminal line.
type grid struct {
	cells [][]glyph
}

func newGrid(cols, rows int) *grid {
	g := &grid{cells: make([][]glyph, rows)}
	for y := range g.cells {
		g.cells[y] = make([]glyph, cols)
		for x := range g.cells[y] {
			g.cells[y][x] = blank
		}
	}
	return g
}

func (g *grid) isValidPos(x, y int) bool {
	return y >= 0 && y < len(g.cells) && x >= 0 && x < len(g.cells[y])
}

func (g *grid) set(x, y int, c glyph) {
	if g.isValidPos(x, y) {
		g.cells[y][x] = c
	}
}

func (g *grid) background(x, y int, bg string) {
	if g.isValidPos(x, y) && g.cells[y][x].bg == "" {
		g.cells[y][x].bg = bg
	}
}

// Render draws every widget root of the desktop, bottom first. With
// showCursor the pointer cell is drawn reversed.
func (d *desktop) Render(cols, rows, cursorX, cursorY int, showCursor bool) *grid {
	g := newGrid(cols, rows)
	for _, root := range d.roots() {
		d.drawRoot(g, root)
	}
	if showCursor && g.isValidPos(cursorX, cursorY) {
		c := g.cells[cursorY][cursorX]
		if c.r == ' ' {
			c.r = '·'
		}
		c.fg, c.bg = colorCursorFg, colorCursorBg
		g.cells[cursorY][cursorX] = c
	}
	return g
}

func (d *desktop) drawRoot(g *grid, root *node) {
	col0, row0, col1, row1 := root.cells(d.cellW, d.cellH)

	var corner, horizontal, vertical rune
	fg := colorBorder
	if root.classes[widget.ClassActive] {
		corner, horizontal, vertical = '#', '#', '#'
		fg = colorActive
	} else {
		corner, horizontal, vertical = '+', '-', '|'
	}

	for y := row0; y <= row1; y++ {
		for x := col0; x <= col1; x++ {
			switch {
			case (y == row0 || y == row1) && (x == col0 || x == col1):
				g.set(x, y, glyph{r: corner, plain: corner, fg: fg})
			case y == row0 || y == row1:
				g.set(x, y, glyph{r: horizontal, plain: horizontal, fg: fg})
			case x == col0 || x == col1:
				g.set(x, y, glyph{r: vertical, plain: vertical, fg: fg})
			default:
				g.set(x, y, blank)
			}
		}
	}

	for i, r := range fitText(root.label, col1-col0-1) {
		g.set(col0+1+i, row0, glyph{r: r, plain: r, fg: colorLabel})
	}

	if canvas := root.child(widget.KindCanvas); canvas != nil && canvas.image != nil {
		d.drawImage(g, canvas.image, root.style[widget.StyleLeft], root.style[widget.StyleTop], col0, row0, col1, row1)
	}
	for i, line := range root.text {
		y := row0 + 1 + i
		if y >= row1 {
			break
		}
		for j, r := range fitText(line, col1-col0-1) {
			g.set(col0+1+j, y, glyph{r: r, plain: r})
		}
	}

	if root.child(widget.KindHandle) != nil {
		g.set(col1, row1, glyph{r: '◢', plain: '+', fg: colorHandle})
	}

	if root.classes[widget.ClassEnvelope] {
		for y := row0; y <= row1; y++ {
			for x := col0; x <= col1; x++ {
				g.background(x, y, colorEnvelope)
			}
		}
	}
}

// drawImage samples img into the interior cells, two pixels per cell stacked
// with the upper half block. left and top place the image in px.
func (d *desktop) drawImage(g *grid, img image.Image, left, top, col0, row0, col1, row1 int) {
	b := img.Bounds()
	for y := row0 + 1; y < row1; y++ {
		for x := col0 + 1; x < col1; x++ {
			px := x*d.cellW + d.cellW/2 - left
			upperY := y*d.cellH + d.cellH/4 - top
			lowerY := y*d.cellH + 3*d.cellH/4 - top
			if px < 0 || px >= b.Dx() || upperY < 0 || upperY >= b.Dy() {
				continue
			}
			upper := img.At(b.Min.X+px, b.Min.Y+upperY)
			lower := upper
			if lowerY < b.Dy() {
				lower = img.At(b.Min.X+px, b.Min.Y+lowerY)
			}
			g.set(x, y, glyph{
				r:     '▀',
				plain: shade(upper, lower),
				fg:    hexColor(upper),
				bg:    hexColor(lower),
			})
		}
	}
}

func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

func shade(a, b color.Color) rune {
	luma := func(c color.Color) float64 {
		r, g, b, _ := c.RGBA()
		return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 0xffff
	}
	l := (luma(a) + luma(b)) / 2
	i := int(l * float64(len(shades)-1))
	return rune(shades[i])
}

func fitText(s string, width int) []rune {
	if width <= 0 {
		return nil
	}
	r := []rune(s)
	if len(r) > width {
		r = r[:width]
	}
	return r
}

// String renders the grid with colors, merging runs of equal style.
func (g *grid) String() string {
	lines := make([]string, len(g.cells))
	for y, row := range g.cells {
		var sb strings.Builder
		for x := 0; x < len(row); {
			start := x
			for x < len(row) && row[x].fg == row[start].fg && row[x].bg == row[start].bg {
				x++
			}
			var run strings.Builder
			for _, c := range row[start:x] {
				run.WriteRune(c.r)
			}
			style := lipgloss.NewStyle()
			if fg := row[start].fg; fg != "" {
				style = style.Foreground(lipgloss.Color(fg))
			}
			if bg := row[start].bg; bg != "" {
				style = style.Background(lipgloss.Color(bg))
			}
			sb.WriteString(style.Render(run.String()))
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// Plain returns the grid as text lines without styling.
func (g *grid) Plain() []string {
	lines := make([]string, len(g.cells))
	for y, row := range g.cells {
		rs := make([]rune, len(row))
		for x, c := range row {
			rs[x] = c.plain
		}
		lines[y] = strings.TrimRight(string(rs), " ")
	}
	return lines
}

// loadMonoFace returns the bundled mono font at size points.
func loadMonoFace(size float64) (font.Face, error) {
	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(ttfFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// ExportToPNG draws the desktop at pixel resolution: each widget as a
// framed rectangle with its name, canvas surfaces in place and note text in
// the mono face.
func (d *desktop) ExportToPNG(filename string) error {
	roots := d.roots()
	if len(roots) == 0 {
		return fmt.Errorf("nothing to export")
	}

	imageWidth := d.cols * d.cellW
	imageHeight := d.rows * d.cellH
	if imageWidth <= 0 || imageHeight <= 0 {
		return fmt.Errorf("empty viewport")
	}

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(color.White)
	dc.Clear()

	face, err := loadMonoFace(12)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)

	for _, root := range roots {
		d.drawRootPNG(dc, root)
	}
	return dc.SavePNG(filename)
}

func (d *desktop) drawRootPNG(dc *gg.Context, root *node) {
	x := float64(root.style[widget.StyleLeft])
	y := float64(root.style[widget.StyleTop])
	width := float64(root.style[widget.StyleWidth])
	height := float64(root.style[widget.StyleHeight])

	if canvas := root.child(widget.KindCanvas); canvas != nil && canvas.image != nil {
		dc.DrawImage(canvas.image, int(x), int(y))
	}

	dc.SetLineWidth(1.0)
	dc.SetColor(color.Black)
	dc.DrawRectangle(x, y, width, height)
	dc.Stroke()

	charHeight := float64(d.cellH)
	dc.DrawString(root.label, x+float64(d.cellW), y-2)
	for i, line := range root.text {
		dc.DrawString(line, x+float64(d.cellW), y+charHeight*float64(i+1))
	}
}
