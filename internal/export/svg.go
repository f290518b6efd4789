package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/orbsim/internal/experiment"
	"github.com/san-kum/orbsim/internal/vecmath"
)

var palette = []string{"#00ff88", "#00ccff", "#ffaa00", "#ff4488", "#aa88ff", "#ffff66"}

type bounds struct {
	minX, minY, rangeX, rangeY float64
}

func fit(result *experiment.Result) bounds {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, frame := range result.Positions {
		for _, p := range frame {
			if !p.IsFinite() {
				continue
			}
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}

	// square the frame so orbits are not distorted
	rangeX, rangeY := maxX-minX, maxY-minY
	span := math.Max(rangeX, rangeY)
	if span == 0 || math.IsInf(span, 0) {
		span = 1
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	if math.IsInf(cx, 0) || math.IsNaN(cx) {
		cx, cy = 0, 0
	}
	span *= 1.2
	return bounds{minX: cx - span/2, minY: cy - span/2, rangeX: span, rangeY: span}
}

func (b bounds) project(p vecmath.Vector, width, height int) (float64, float64) {
	x := (p.X - b.minX) / b.rangeX * float64(width)
	y := float64(height) - (p.Y-b.minY)/b.rangeY*float64(height)
	return x, y
}

// TrajectorySVG draws every body's path as a polyline, with a dot at its
// final position.
func TrajectorySVG(w io.Writer, result *experiment.Result, width, height int) error {
	if len(result.Positions) == 0 {
		return fmt.Errorf("no samples to draw")
	}
	b := fit(result)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for j, id := range result.IDs {
		color := palette[j%len(palette)]
		fmt.Fprintf(&sb, `<g id="%s">`+"\n", id)

		sb.WriteString(`<path fill="none" stroke="` + color + `" stroke-width="1.5" d="`)
		cmd := "M"
		for _, frame := range result.Positions {
			p := frame[j]
			if !p.IsFinite() {
				cmd = "M"
				continue
			}
			x, y := b.project(p, width, height)
			fmt.Fprintf(&sb, "%s%.1f,%.1f ", cmd, x, y)
			cmd = "L"
		}
		sb.WriteString(`"/>` + "\n")

		last := result.Positions[len(result.Positions)-1][j]
		if last.IsFinite() {
			x, y := b.project(last, width, height)
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>`+"\n", x, y, color)
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
