package viz

import (
	"strings"
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

// Canvas is a grid of Braille cells. Drawing happens in sub-pixels: a canvas
// of Width x Height cells has Width*2 x Height*4 pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
	return c
}

// PixelSize is the canvas size in sub-pixels.
func (c *Canvas) PixelSize() (int, int) { return c.Width * 2, c.Height * 4 }

// Set turns on the sub-pixel at (x, y). Out of range pixels are ignored.
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

// IsSet reports whether the sub-pixel at (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return false
	}
	return c.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

// Dot draws a filled 3x3 marker centered on (x, y).
func (c *Canvas) Dot(x, y int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			c.Set(x+dx, y+dy)
		}
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
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

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(string(row))
	}
	return b.String()
}

// Viewport maps a rectangle of world coordinates onto a canvas, y up.
type Viewport struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// ToPixel converts world (x, y) to canvas sub-pixels.
func (v Viewport) ToPixel(c *Canvas, x, y float64) (int, int) {
	pw, ph := c.PixelSize()
	px := (x - v.MinX) / (v.MaxX - v.MinX) * float64(pw-1)
	py := (v.MaxY - y) / (v.MaxY - v.MinY) * float64(ph-1)
	return int(px + 0.5), int(py + 0.5)
}

// Scatter draws world axes through the origin and one pixel per point.
// The most recent point is drawn as a dot.
func Scatter(c *Canvas, v Viewport, xs, ys []float64) {
	ox, oy := v.ToPixel(c, 0, 0)
	pw, ph := c.PixelSize()
	for x := 0; x < pw; x += 2 {
		c.Set(x, oy)
	}
	for y := 0; y < ph; y += 2 {
		c.Set(ox, y)
	}

	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	for i := 0; i < n; i++ {
		px, py := v.ToPixel(c, xs[i], ys[i])
		if i == n-1 {
			c.Dot(px, py)
		} else {
			c.Set(px, py)
		}
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
