package bodies

import (
	"github.com/san-kum/orbsim/internal/orbital"
	"github.com/san-kum/orbsim/internal/vecmath"
)

// Craft is a powered body. Thrust acts along its heading while it has fuel;
// Step burns fuel and turns the heading at Spin rad/s.
//
// Thrust is a force in the simulation's distance unit (kg·unit/s²).
type Craft struct {
	Point
	DryMass  float64
	Fuel     float64
	BurnRate float64 // kg/s at full throttle
	Thrust   float64 // at full throttle
	Throttle float64 // [0, 1]
	Spin     float64
}

func NewCraft(id orbital.ID, dryMass, fuel float64, pos, vel vecmath.Vector) *Craft {
	return &Craft{
		Point:   Point{Name: id, Pos: pos, Vel: vel},
		DryMass: dryMass,
		Fuel:    fuel,
	}
}

func (c *Craft) Mass() float64 {
	return c.DryMass + c.Fuel
}

func (c *Craft) Acceleration() vecmath.Vector {
	if c.Fuel <= 0 || c.Throttle <= 0 {
		return vecmath.Vector{}
	}
	return c.Heading.UnitVector().Scale(c.Thrust * c.Throttle / c.Mass())
}

func (c *Craft) Step(dt float64) {
	burn := c.BurnRate * c.Throttle * dt
	if burn > c.Fuel {
		burn = c.Fuel
	}
	c.Fuel -= burn
	if c.Spin != 0 {
		c.Heading = c.Heading.AddRadians(c.Spin * dt)
	}
}

func (c *Craft) Clone() orbital.Body {
	cp := *c
	return &cp
}
