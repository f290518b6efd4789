package viz

import (
	"math"
	"strings"

	"github.com/san-kum/orbsim/internal/vecmath"
)

// Braille cells hold 2x4 dots:
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

// Canvas is a braille grid of Width x Height cells, giving
// (Width*2) x (Height*4) addressable dots.
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
	}
	c.Clear()
	return c
}

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

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Viewport maps world coordinates onto canvas dots, centred on Center with
// Scale world units per dot. World y grows upward.
type Viewport struct {
	Center vecmath.Vector
	Scale  float64
}

// FitViewport returns a viewport that shows every point with a small margin.
func FitViewport(c *Canvas, points []vecmath.Vector) Viewport {
	if len(points) == 0 {
		return Viewport{Scale: 1}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	center := vecmath.Vec((minX+maxX)/2, (minY+maxY)/2)
	dotsW, dotsH := float64(c.Width*2), float64(c.Height*4)
	scale := math.Max((maxX-minX)/dotsW, (maxY-minY)/dotsH) * 1.1
	if scale == 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}
	return Viewport{Center: center, Scale: scale}
}

func (v Viewport) Project(c *Canvas, p vecmath.Vector) (int, int) {
	d := p.Sub(v.Center).Div(v.Scale)
	x := int(math.Round(float64(c.Width) + d.X))
	y := int(math.Round(float64(c.Height*2) - d.Y))
	return x, y
}

func (c *Canvas) Plot(v Viewport, p vecmath.Vector) {
	if !p.IsFinite() {
		return
	}
	x, y := v.Project(c, p)
	c.Set(x, y)
}

// Body draws a 2x2 dot block so bodies stand out from trails.
func (c *Canvas) Body(v Viewport, p vecmath.Vector) {
	if !p.IsFinite() {
		return
	}
	x, y := v.Project(c, p)
	c.Set(x, y)
	c.Set(x+1, y)
	c.Set(x, y+1)
	c.Set(x+1, y+1)
}
