package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/orbsim/internal/experiment"
	"github.com/san-kum/orbsim/internal/orbital"
	"github.com/san-kum/orbsim/internal/vecmath"
)

func TestTrajectorySVG(t *testing.T) {
	result := &experiment.Result{
		IDs:   []orbital.ID{"a", "b"},
		Times: []float64{0, 10},
		Positions: [][]vecmath.Vector{
			{vecmath.Vec(1, 0), vecmath.Vec(-1, 0)},
			{vecmath.Vec(0, 1), vecmath.Vec(0, -1)},
		},
	}

	var buf bytes.Buffer
	if err := TrajectorySVG(&buf, result, 200, 200); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "<?xml") || !strings.HasSuffix(out, "</svg>\n") {
		t.Error("not a complete svg document")
	}
	for _, want := range []string{`<g id="a">`, `<g id="b">`, "<circle"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
	if n := strings.Count(out, "<path"); n != 2 {
		t.Errorf("got %d paths, want 2", n)
	}
}

func TestTrajectorySVGEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := TrajectorySVG(&buf, &experiment.Result{}, 10, 10); err == nil {
		t.Error("expected error for empty result")
	}
}

func TestFitIsSquareAndCentred(t *testing.T) {
	result := &experiment.Result{
		IDs:       []orbital.ID{"a"},
		Positions: [][]vecmath.Vector{{vecmath.Vec(0, 0)}, {vecmath.Vec(10, 2)}},
	}
	b := fit(result)
	if b.rangeX != b.rangeY {
		t.Errorf("ranges differ: %g vs %g", b.rangeX, b.rangeY)
	}

	x, y := b.project(vecmath.Vec(5, 1), 100, 100)
	if x != 50 || y != 50 {
		t.Errorf("centre projected to (%g,%g), want (50,50)", x, y)
	}
}
