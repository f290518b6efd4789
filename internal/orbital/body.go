package orbital

import "github.com/san-kum/orbsim/internal/vecmath"

// ID identifies a body inside a Simulation.
type ID string

// Atmosphere describes an exponential atmosphere around a body. The integrator
// never reads it.
type Atmosphere struct {
	BaseDensity float64 `json:"base_density" yaml:"base_density"`
	BaseRadius  float64 `json:"base_radius" yaml:"base_radius"`
	ScaleHeight float64 `json:"scale_height" yaml:"scale_height"`
}

// Body is the capability the integrator consumes.
//
// Acceleration is body-intrinsic (thrust and the like) and excludes gravity.
// Clone must return a copy that shares no mutable state with the receiver,
// including internal state Step evolves (fuel, timers).
type Body interface {
	ID() ID
	Position() vecmath.Vector
	SetPosition(vecmath.Vector)
	Velocity() vecmath.Vector
	SetVelocity(vecmath.Vector)
	Mass() float64
	Orientation() vecmath.Angle
	SetOrientation(vecmath.Angle)
	Acceleration() vecmath.Vector
	Atmosphere() Atmosphere
	Step(dt float64)
	Clone() Body
}
