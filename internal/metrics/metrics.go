package metrics

import "github.com/san-kum/orbsim/internal/orbital"

// System is the read-only view of a simulation a metric samples.
type System interface {
	Bodies() []orbital.Body
	GravityConstant() float64
	Elapsed() float64
}

type Metric interface {
	Name() string
	Observe(sys System)
	Value() float64
	Reset()
}

func Defaults(threshold float64) []Metric {
	return []Metric{
		NewEnergy(),
		NewEnergyDrift(),
		NewMomentum(),
		NewStability(threshold),
		NewThrustEffort(),
	}
}
