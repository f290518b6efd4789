package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/orbsim/internal/bodies"
	"github.com/san-kum/orbsim/internal/diag"
	"github.com/san-kum/orbsim/internal/orbital"
	"github.com/san-kum/orbsim/internal/vecmath"
)

const (
	ParamHeading  = "heading"
	ParamThrottle = "throttle"
)

// BurnPlan is a craft heading (degrees) and throttle, with the closest
// previewed approach to the target it achieves.
type BurnPlan struct {
	Heading  float64
	Throttle float64
	Closest  float64
}

// Headings returns evenly spaced headings in degrees covering a full turn.
func Headings(step float64) []float64 {
	if step <= 0 || step > 360 {
		step = 360
	}
	var out []float64
	for h := 0.0; h < 360; h += step {
		out = append(out, h)
	}
	return out
}

// PlanBurn searches headings and throttles for craft so that its preview
// passes closest to target. Each candidate runs on a clone of s; body Step
// hooks are not invoked, so fuel is not consumed during the preview.
func PlanBurn(ctx context.Context, s *orbital.Simulation, craft, target orbital.ID, dt, domain float64, headings, throttles []float64) (BurnPlan, error) {
	b, ok := s.Get(craft)
	if !ok {
		return BurnPlan{}, fmt.Errorf("%w: %s", orbital.ErrUnknownBody, craft)
	}
	if _, ok := b.(*bodies.Craft); !ok {
		return BurnPlan{}, fmt.Errorf("body %s is not a craft", craft)
	}
	if _, ok := s.Get(target); !ok {
		return BurnPlan{}, fmt.Errorf("%w: %s", orbital.ErrUnknownBody, target)
	}

	// candidates preview concurrently, so they share one serialized sink
	base := s.Clone()
	if _, nop := s.Diagnostics().(orbital.NopSink); !nop {
		base.SetDiagnostics(diag.NewLocked(s.Diagnostics()))
	}

	grid := NewGridSearch([]string{ParamHeading, ParamThrottle}, [][]float64{headings, throttles})
	params, closest, err := grid.Search(ctx, func(ctx context.Context, p map[string]float64) (float64, error) {
		return closestApproach(ctx, base, craft, target, dt, domain, p[ParamHeading], p[ParamThrottle])
	})
	if err != nil {
		return BurnPlan{}, err
	}
	return BurnPlan{
		Heading:  params[ParamHeading],
		Throttle: params[ParamThrottle],
		Closest:  closest,
	}, nil
}

func closestApproach(ctx context.Context, s *orbital.Simulation, craft, target orbital.ID, dt, domain, heading, throttle float64) (float64, error) {
	trial := s.Clone()
	b, _ := trial.Get(craft)
	c := b.(*bodies.Craft)
	c.SetOrientation(vecmath.FromDegrees(heading))
	c.Throttle = throttle

	path, err := trial.VirtualStep(ctx, dt, domain, craft)
	if err != nil {
		return 0, err
	}
	goal, err := trial.VirtualStep(ctx, dt, domain, target)
	if err != nil {
		return 0, err
	}

	closest := math.Inf(1)
	for k := range path {
		closest = math.Min(closest, path[k].Distance(goal[k]))
	}
	return closest, nil
}
