package viz

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
const brailleBlank = 0x2800

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of Braille cells, each 2 dots wide and 4 tall. Every
// cell remembers the ink of the last dot set in it so bodies keep their
// colors.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	ink           [][]int
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h}
	c.Grid = make([][]rune, h)
	c.ink = make([][]int, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.ink[i] = make([]int, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in sub-pixels.
func (c *Canvas) Dots() (int, int) {
	return c.Width * 2, c.Height * 4
}

// Set sets the dot at sub-pixel (x, y) with ink, an index into the palette
// given to Render. Negative ink renders uncolored.
func (c *Canvas) Set(x, y, ink int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.ink[row][col] = ink
}

// Blob sets a 2x2 block of dots around (x, y).
func (c *Canvas) Blob(x, y, ink int) {
	for dx := 0; dx < 2; dx++ {
		for dy := 0; dy < 2; dy++ {
			c.Set(x+dx, y+dy, ink)
		}
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.ink[i][j] = -1
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1, ink int) {
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
		c.Set(x0, y0, ink)
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

// String renders the canvas without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Render colors every inked cell from palette.
func (c *Canvas) Render(palette []lipgloss.Color) string {
	styles := make([]lipgloss.Style, len(palette))
	for i, col := range palette {
		styles[i] = lipgloss.NewStyle().Foreground(col)
	}

	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			ink := c.ink[i][j]
			if r == brailleBlank || ink < 0 || ink >= len(styles) {
				b.WriteRune(r)
				continue
			}
			b.WriteString(styles[ink].Render(string(r)))
		}
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
