package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orbsim/internal/vecmath"
)

// PlotTrajectory charts x, y and distance from the origin over samples.
func PlotTrajectory(name string, traj []vecmath.Vector, height, width int) string {
	if len(traj) == 0 {
		return Subtle.Render(fmt.Sprintf("%s: no samples", name))
	}

	xs := make([]float64, len(traj))
	ys := make([]float64, len(traj))
	rs := make([]float64, len(traj))
	for i, p := range traj {
		xs[i], ys[i], rs[i] = p.X, p.Y, p.Magnitude()
	}

	charts := []string{
		plot(xs, height, width, name+" x"),
		plot(ys, height, width, name+" y"),
		plot(rs, height, width, name+" |r|"),
	}
	return strings.Join(charts, "\n\n")
}

// PlotPath draws the trajectory in the plane on a braille canvas.
func PlotPath(traj []vecmath.Vector, width, height int) string {
	c := NewCanvas(width, height)
	v := FitViewport(c, traj)
	for _, p := range traj {
		c.Plot(v, p)
	}
	if len(traj) > 0 {
		c.Body(v, traj[len(traj)-1])
	}
	return c.String()
}

func plot(data []float64, height, width int, caption string) string {
	if len(data) == 1 {
		data = []float64{data[0], data[0]}
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
