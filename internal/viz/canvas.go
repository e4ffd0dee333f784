package viz

import (
	"math"
	"strings"

	"github.com/san-kum/lspline/internal/stoch"
)

// Braille dots per cell:
// 1 4
// 2 5
// 3 6
// 7 8
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at (x, y) in dot coordinates, (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
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

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Plot clears c and draws path as a polyline and stems as vertical lines
// from zero. Non-finite values are skipped.
func Plot(c *Canvas, path, stems stoch.Series) {
	c.Clear()
	if path.Len() == 0 {
		return
	}

	minX, maxX := path.Times[0], path.Times[len(path.Times)-1]
	minY, maxY := 0.0, 0.0
	for _, s := range []stoch.Series{path, stems} {
		for _, v := range s.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			minY = math.Min(minY, v)
			maxY = math.Max(maxY, v)
		}
	}
	if maxX == minX {
		maxX = minX + 1
	}
	if maxY == minY {
		maxY = minY + 1
	}

	w, h := c.Width*2-1, c.Height*4-1
	px := func(x float64) int { return int(math.Round((x - minX) / (maxX - minX) * float64(w))) }
	py := func(y float64) int { return h - int(math.Round((y-minY)/(maxY-minY)*float64(h))) }

	zero := py(0)
	for i, v := range stems.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		x := px(stems.Times[i])
		c.DrawLine(x, zero, x, py(v))
	}

	prevOK := false
	var x0, y0 int
	for i, v := range path.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			prevOK = false
			continue
		}
		x, y := px(path.Times[i]), py(v)
		if prevOK {
			c.DrawLine(x0, y0, x, y)
		} else {
			c.Set(x, y)
		}
		x0, y0, prevOK = x, y, true
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
