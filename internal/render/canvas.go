package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Class tags what a cell shows. When two classes land in one cell the
// higher value wins.
type Class uint8

const (
	ClassNone Class = iota
	ClassEdge
	ClassBar
	ClassNode
	ClassEdgeHighlight
	ClassCompare
	ClassActive
	ClassSwap
	ClassLabel
)

// Canvas is a braille pixel grid with a color class per cell and an
// optional text overlay.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Class         [][]Class
	overlay       [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:   w,
		Height:  h,
		Grid:    make([][]rune, h),
		Class:   make([][]Class, h),
		overlay: make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Class[i] = make([]Class, w)
		c.overlay[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// PixelSize is the canvas size in sub-pixels: (Width*2) x (Height*4).
func (c *Canvas) PixelSize() (int, int) { return c.Width * 2, c.Height * 4 }

// Set lights the sub-pixel at (x, y) and tags its cell.
func (c *Canvas) Set(x, y int, class Class) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if class > c.Class[row][col] {
		c.Class[row][col] = class
	}
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	mask := ^rune(pixelMap[y%4][x%2])
	c.Grid[row][col] &= mask
	if c.Grid[row][col] < brailleBlank {
		c.Grid[row][col] = brailleBlank
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.Class[i][j] = ClassNone
			c.overlay[i][j] = 0
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, class Class) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, class)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) FillRect(x, y, w, h int, class Class) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			c.Set(px, py, class)
		}
	}
}

func (c *Canvas) FillCircle(cx, cy, r int, class Class) {
	for py := cy - r; py <= cy+r; py++ {
		for px := cx - r; px <= cx+r; px++ {
			dx, dy := px-cx, py-cy
			if dx*dx+dy*dy <= r*r {
				c.Set(px, py, class)
			}
		}
	}
}

// Text writes s into the overlay starting at cell (col, row). Overlay
// characters replace the braille glyph when the canvas is rendered.
func (c *Canvas) Text(col, row int, s string, class Class) {
	if row < 0 || row >= c.Height {
		return
	}
	for i, r := range []rune(s) {
		x := col + i
		if x < 0 || x >= c.Width {
			continue
		}
		c.overlay[row][x] = r
		if class > c.Class[row][x] {
			c.Class[row][x] = class
		}
	}
}

func (c *Canvas) cell(row, col int) rune {
	if r := c.overlay[row][col]; r != 0 {
		return r
	}
	return c.Grid[row][col]
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := range c.Grid {
		for col := range c.Grid[row] {
			b.WriteRune(c.cell(row, col))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Render draws the canvas with one style per class. Runs of equal class
// share a single styled span.
func (c *Canvas) Render(p Palette) string {
	if c.Width == 0 {
		return ""
	}
	var b strings.Builder
	for row := range c.Grid {
		var run strings.Builder
		cur := c.Class[row][0]
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(p.Style(cur).Render(run.String()))
			run.Reset()
		}
		for col := range c.Grid[row] {
			if cl := c.Class[row][col]; cl != cur {
				flush()
				cur = cl
			}
			run.WriteRune(c.cell(row, col))
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Palette maps cell classes to terminal styles.
type Palette map[Class]lipgloss.Style

// DefaultPalette mirrors the browser colors: green bars, amber compare,
// red swap and active, cyan nodes, orange traversed edges.
func DefaultPalette() Palette {
	return Palette{
		ClassEdge:          lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8")),
		ClassBar:           lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")),
		ClassNode:          lipgloss.NewStyle().Foreground(lipgloss.Color("#06b6d4")),
		ClassEdgeHighlight: lipgloss.NewStyle().Foreground(lipgloss.Color("#f97316")).Bold(true),
		ClassCompare:       lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b")),
		ClassActive:        lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")),
		ClassSwap:          lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true),
		ClassLabel:         lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true),
	}
}

func (p Palette) Style(c Class) lipgloss.Style {
	if s, ok := p[c]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
