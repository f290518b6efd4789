package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/orbsim/internal/bodies"
	"github.com/san-kum/orbsim/internal/config"
	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/orbital"
	"github.com/san-kum/orbsim/internal/vecmath"
)

// Registry maps body kind names from scenario files to constructors.
type Registry struct {
	kinds map[string]func(config.BodyConfig) orbital.Body
}

func NewRegistry() *Registry {
	r := &Registry{
		kinds: make(map[string]func(config.BodyConfig) orbital.Body),
	}

	point := func(c config.BodyConfig) orbital.Body {
		p := bodies.NewPoint(orbital.ID(c.ID), c.Mass, vecmath.Vec(c.X, c.Y), vecmath.Vec(c.VX, c.VY))
		p.Heading = vecmath.FromDegrees(c.Heading)
		p.Atmos = orbital.Atmosphere{
			BaseDensity: c.Atmosphere.BaseDensity,
			BaseRadius:  c.Atmosphere.BaseRadius,
			ScaleHeight: c.Atmosphere.ScaleHeight,
		}
		return p
	}
	r.kinds["point"] = point
	r.kinds["planet"] = point
	r.kinds["craft"] = func(c config.BodyConfig) orbital.Body {
		cr := bodies.NewCraft(orbital.ID(c.ID), c.Craft.DryMass, c.Craft.Fuel, vecmath.Vec(c.X, c.Y), vecmath.Vec(c.VX, c.VY))
		cr.Heading = vecmath.FromDegrees(c.Heading)
		cr.BurnRate = c.Craft.BurnRate
		cr.Thrust = c.Craft.Thrust
		cr.Throttle = c.Craft.Throttle
		cr.Spin = c.Craft.Spin
		return cr
	}

	return r
}

func (r *Registry) GetBody(c config.BodyConfig) (orbital.Body, error) {
	kind := c.Kind
	if kind == "" {
		kind = "point"
	}
	fn, ok := r.kinds[kind]
	if !ok {
		return nil, fmt.Errorf("unknown body kind: %s", c.Kind)
	}
	return fn(c), nil
}

func (r *Registry) ListKinds() []string {
	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build validates sc and constructs its simulation. An explicit gravity
// value wins over the unit system.
func (r *Registry) Build(sc *config.Scenario) (*orbital.Simulation, error) {
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	g := sc.Gravity
	if g == 0 {
		var ok bool
		g, ok = orbital.GravityForUnit(sc.Units)
		if !ok {
			return nil, fmt.Errorf("unknown units: %s (available: %v)", sc.Units, orbital.Units())
		}
	}

	s := orbital.New(g)
	for _, bc := range sc.Bodies {
		b, err := r.GetBody(bc)
		if err != nil {
			return nil, fmt.Errorf("body %s: %w", bc.ID, err)
		}
		s.Register(b)
	}
	return s, nil
}

// DefaultMetrics bounds stability at a hundred times the scenario's widest
// initial separation from the origin.
func (r *Registry) DefaultMetrics(sc *config.Scenario) []metrics.Metric {
	extent := 1.0
	for _, b := range sc.Bodies {
		if d := vecmath.Vec(b.X, b.Y).Magnitude(); d > extent {
			extent = d
		}
	}
	return metrics.Defaults(100 * extent)
}
