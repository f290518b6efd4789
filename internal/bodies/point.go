package bodies

import (
	"github.com/san-kum/orbsim/internal/orbital"
	"github.com/san-kum/orbsim/internal/vecmath"
)

// Point is an inert mass: no thrust and no internal state.
type Point struct {
	Name    orbital.ID
	Pos     vecmath.Vector
	Vel     vecmath.Vector
	M       float64
	Heading vecmath.Angle
	Atmos   orbital.Atmosphere
}

func NewPoint(id orbital.ID, mass float64, pos, vel vecmath.Vector) *Point {
	return &Point{Name: id, M: mass, Pos: pos, Vel: vel}
}

func (p *Point) ID() orbital.ID                 { return p.Name }
func (p *Point) Position() vecmath.Vector       { return p.Pos }
func (p *Point) SetPosition(v vecmath.Vector)   { p.Pos = v }
func (p *Point) Velocity() vecmath.Vector       { return p.Vel }
func (p *Point) SetVelocity(v vecmath.Vector)   { p.Vel = v }
func (p *Point) Mass() float64                  { return p.M }
func (p *Point) Orientation() vecmath.Angle     { return p.Heading }
func (p *Point) SetOrientation(a vecmath.Angle) { p.Heading = a }
func (p *Point) Acceleration() vecmath.Vector   { return vecmath.Vector{} }
func (p *Point) Atmosphere() orbital.Atmosphere { return p.Atmos }
func (p *Point) Step(dt float64)                {}

func (p *Point) Clone() orbital.Body {
	c := *p
	return &c
}
