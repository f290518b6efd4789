package metrics

import "math"

// TotalEnergy is kinetic plus pairwise gravitational potential energy.
func TotalEnergy(sys System) float64 {
	bodies := sys.Bodies()
	g := sys.GravityConstant()

	ke, pe := 0.0, 0.0
	for i, a := range bodies {
		v := a.Velocity().Magnitude()
		ke += 0.5 * a.Mass() * v * v

		for _, b := range bodies[i+1:] {
			pe -= g * a.Mass() * b.Mass() / a.Position().Distance(b.Position())
		}
	}
	return ke + pe
}

func TotalMomentum(sys System) (px, py float64) {
	for _, b := range sys.Bodies() {
		v := b.Velocity()
		px += b.Mass() * v.X
		py += b.Mass() * v.Y
	}
	return
}

type Energy struct {
	name    string
	current float64
	samples int
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(sys System) {
	e.current = TotalEnergy(sys)
	e.samples++
}

func (e *Energy) Value() float64 {
	return e.current
}

func (e *Energy) Reset() {
	e.current = 0
	e.samples = 0
}

// EnergyDrift tracks the largest relative departure from the first observed
// energy. The semi-implicit scheme is expected to drift.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(sys System) {
	energy := TotalEnergy(sys)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

type Momentum struct {
	name    string
	current float64
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(sys System) {
	px, py := TotalMomentum(sys)
	m.current = math.Hypot(px, py)
}

func (m *Momentum) Value() float64 { return m.current }
func (m *Momentum) Reset()         { m.current = 0 }
