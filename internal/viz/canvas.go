package viz

import (
	"math"
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

const blank = 0x2800

// Canvas is a braille pixel grid. Each cell carries the ink of the last
// pixel drawn into it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Ink           [][]lipgloss.Color

	pen lipgloss.Color
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h}
	c.Grid = make([][]rune, h)
	c.Ink = make([][]lipgloss.Color, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Ink[i] = make([]lipgloss.Color, w)
	}
	c.Clear()
	return c
}

// Pixels is the canvas size in sub-pixels.
func (c *Canvas) Pixels() (int, int) { return c.Width * 2, c.Height * 4 }

// SetPen selects the ink for subsequent drawing. An empty colour draws with
// the terminal default.
func (c *Canvas) SetPen(ink lipgloss.Color) { c.pen = ink }

// Set sets a pixel at (x, y) in sub-pixel coordinates.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.Ink[row][col] = c.pen
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Ink[i][j] = ""
		}
	}
	c.pen = ""
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
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
		c.Set(x0, y0)
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

// Ellipse outlines an axis-aligned ellipse. Spheres become ellipses because
// braille cells are not square once the world is scaled to the terminal.
func (c *Canvas) Ellipse(cx, cy, rx, ry float64) {
	if rx < 0.5 && ry < 0.5 {
		c.Set(int(math.Round(cx)), int(math.Round(cy)))
		return
	}
	steps := max(12, int(2*math.Pi*max(rx, ry)))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.Set(int(math.Round(cx+rx*math.Cos(a))), int(math.Round(cy+ry*math.Sin(a))))
	}
}

// Rect outlines the rectangle between two corners.
func (c *Canvas) Rect(x0, y0, x1, y1 int) {
	c.DrawLine(x0, y0, x1, y0)
	c.DrawLine(x1, y0, x1, y1)
	c.DrawLine(x1, y1, x0, y1)
	c.DrawLine(x0, y1, x0, y0)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render is String with each run of same-ink cells styled.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Ink[i][j] == c.Ink[i][start] {
				continue
			}
			run := string(row[start:j])
			if ink := c.Ink[i][start]; ink != "" {
				run = lipgloss.NewStyle().Foreground(ink).Render(run)
			}
			b.WriteString(run)
			start = j
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
