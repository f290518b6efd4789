package orbital

import (
	"fmt"

	"github.com/san-kum/orbsim/internal/vecmath"
)

// Simulation is the real state: a fixed gravity constant, the ordered body
// registry and the simulated time advanced by Step.
type Simulation struct {
	g       float64
	bodies  []Body
	elapsed float64
	sink    DiagnosticSink
}

func New(g float64, bodies ...Body) *Simulation {
	s := &Simulation{
		g:      g,
		bodies: make([]Body, 0, len(bodies)),
		sink:   NopSink{},
	}
	s.bodies = append(s.bodies, bodies...)
	return s
}

func (s *Simulation) GravityConstant() float64 { return s.g }
func (s *Simulation) Elapsed() float64         { return s.elapsed }
func (s *Simulation) Len() int                 { return len(s.bodies) }

// SetDiagnostics installs the sink used by speculative runs. nil restores the no-op sink.
func (s *Simulation) SetDiagnostics(sink DiagnosticSink) {
	if sink == nil {
		sink = NopSink{}
	}
	s.sink = sink
}

func (s *Simulation) Diagnostics() DiagnosticSink { return s.sink }

// Bodies returns the registry in order. The slice is a copy; the bodies are not.
func (s *Simulation) Bodies() []Body {
	out := make([]Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

// Register appends b. Duplicate ids are the caller's problem.
func (s *Simulation) Register(b Body) {
	s.bodies = append(s.bodies, b)
}

// Unregister removes the first body whose id matches b's. Unknown ids are ignored.
func (s *Simulation) Unregister(b Body) {
	id := b.ID()
	for i, c := range s.bodies {
		if c.ID() == id {
			s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
			return
		}
	}
}

// Get returns the first body registered under id.
func (s *Simulation) Get(id ID) (Body, bool) {
	for _, b := range s.bodies {
		if b.ID() == id {
			return b, true
		}
	}
	return nil, false
}

// Step advances the real state by domain using increments of at most dt.
// Elapsed grows by exactly domain.
func (s *Simulation) Step(dt, domain float64) error {
	plan, err := newSchedule(dt, domain)
	if err != nil {
		return fmt.Errorf("step: %w", err)
	}

	for k := 0; k < plan.n; k++ {
		s.increment(plan.at(k), true)
	}

	s.elapsed += domain
	return nil
}

// Clone returns an independent copy: same gravity constant and elapsed time,
// every body replaced by its Clone.
func (s *Simulation) Clone() *Simulation {
	c := &Simulation{
		g:       s.g,
		bodies:  make([]Body, len(s.bodies)),
		elapsed: s.elapsed,
		sink:    s.sink,
	}
	for i, b := range s.bodies {
		c.bodies[i] = b.Clone()
	}
	return c
}

// increment runs one whole-set update of length h. Every phase finishes for
// all bodies before the next starts, and gravity reads only pre-increment
// positions.
func (s *Simulation) increment(h float64, internal bool) {
	for i, a := range s.bodies {
		v := a.Velocity()
		for j, b := range s.bodies {
			if i == j {
				continue
			}
			v = v.Add(s.Gravity(a, b).Scale(h))
		}
		a.SetVelocity(v)
	}

	if internal {
		for _, a := range s.bodies {
			a.Step(h)
		}
	}

	for _, a := range s.bodies {
		a.SetVelocity(a.Velocity().Add(a.Acceleration().Scale(h)))
	}

	for _, a := range s.bodies {
		a.SetPosition(a.Position().Add(a.Velocity().Scale(h)))
	}
}

// positionOf is used by speculative runs to record the tracked body.
func (s *Simulation) positionOf(id ID) (vecmath.Vector, bool) {
	b, ok := s.Get(id)
	if !ok {
		return vecmath.Vector{}, false
	}
	return b.Position(), true
}
