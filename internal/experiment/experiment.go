package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/orbsim/internal/config"
	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/orbital"
	"github.com/san-kum/orbsim/internal/vecmath"
)

// DefaultFrames is how many samples a run records when Config.Frames is unset.
const DefaultFrames = 200

type Config struct {
	Scenario *config.Scenario
	Frames   int
}

// Result holds one sample per frame: Positions[i][j] is body IDs[j] at Times[i].
type Result struct {
	IDs        []orbital.ID
	Times      []float64
	Positions  [][]vecmath.Vector
	Velocities [][]vecmath.Vector
	Metrics    map[string]float64
}

// Observer is notified after every recorded frame.
type Observer interface {
	OnFrame(s *orbital.Simulation, t float64)
}

type Experiment struct {
	cfg       Config
	sim       *orbital.Simulation
	metrics   []metrics.Metric
	observers []Observer
}

func New(cfg Config) *Experiment {
	if cfg.Frames <= 0 {
		cfg.Frames = DefaultFrames
	}
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(s *orbital.Simulation, ms []metrics.Metric) error {
	if s == nil {
		return fmt.Errorf("experiment: nil simulation")
	}
	e.sim = s
	e.metrics = ms
	return nil
}

func (e *Experiment) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// Simulation returns the underlying simulation for previews and observers.
func (e *Experiment) Simulation() *orbital.Simulation {
	return e.sim
}

// Run advances the simulation over the scenario duration, split into frames
// of whole dt multiples, sampling bodies and metrics after each frame.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.sim == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	sc := e.cfg.Scenario
	frames, frame, err := framing(sc.Dt, sc.Duration, e.cfg.Frames)
	if err != nil {
		return nil, err
	}

	for _, m := range e.metrics {
		m.Reset()
	}

	result := newResult(e.sim, frames+1)
	result.record(e.sim)
	e.observe()

	done := 0.0
	for k := 0; k < frames; k++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		h := frame
		if k == frames-1 {
			h = sc.Duration - done
		}
		if err := e.sim.Step(sc.Dt, h); err != nil {
			return result, fmt.Errorf("frame %d: %w", k, err)
		}
		done += h

		result.record(e.sim)
		e.observe()
	}

	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

func (e *Experiment) observe() {
	for _, m := range e.metrics {
		m.Observe(e.sim)
	}
	for _, o := range e.observers {
		o.OnFrame(e.sim, e.sim.Elapsed())
	}
}

// Preview runs a speculative step for the scenario's tracked body using its
// preview settings and returns the trajectory as a single-body Result.
func Preview(ctx context.Context, s *orbital.Simulation, sc *config.Scenario) (*Result, error) {
	if sc.Track == "" {
		return nil, fmt.Errorf("scenario %s: no tracked body", sc.Name)
	}
	dt, domain := sc.Preview.Dt, sc.Preview.Duration
	if dt <= 0 {
		dt = sc.Dt
	}

	traj, err := s.VirtualStep(ctx, dt, domain, orbital.ID(sc.Track))
	if err != nil {
		return nil, err
	}
	return trajectoryResult(orbital.ID(sc.Track), s.Elapsed(), dt, domain, traj), nil
}

func trajectoryResult(id orbital.ID, start, dt, domain float64, traj []vecmath.Vector) *Result {
	r := &Result{
		IDs:       []orbital.ID{id},
		Times:     make([]float64, len(traj)),
		Positions: make([][]vecmath.Vector, len(traj)),
		Metrics:   map[string]float64{},
	}
	t := start
	for i, p := range traj {
		t += dt
		if i == len(traj)-1 {
			t = start + domain
		}
		r.Times[i] = t
		r.Positions[i] = []vecmath.Vector{p}
	}
	return r
}

// framing picks a frame length that is a whole number of dt increments so
// frame boundaries never introduce extra truncated increments.
func framing(dt, duration float64, frames int) (int, float64, error) {
	total, err := orbital.Increments(dt, duration)
	if err != nil {
		return 0, 0, err
	}
	per := total / frames
	if per < 1 {
		per = 1
	}
	frame := float64(per) * dt
	n, err := orbital.Increments(frame, duration)
	if err != nil {
		return 0, 0, err
	}
	return n, frame, nil
}

func newResult(s *orbital.Simulation, capacity int) *Result {
	bs := s.Bodies()
	ids := make([]orbital.ID, len(bs))
	for i, b := range bs {
		ids[i] = b.ID()
	}
	return &Result{
		IDs:        ids,
		Times:      make([]float64, 0, capacity),
		Positions:  make([][]vecmath.Vector, 0, capacity),
		Velocities: make([][]vecmath.Vector, 0, capacity),
		Metrics:    make(map[string]float64),
	}
}

func (r *Result) record(s *orbital.Simulation) {
	bs := s.Bodies()
	pos := make([]vecmath.Vector, len(bs))
	vel := make([]vecmath.Vector, len(bs))
	for i, b := range bs {
		pos[i] = b.Position()
		vel[i] = b.Velocity()
	}
	r.Times = append(r.Times, s.Elapsed())
	r.Positions = append(r.Positions, pos)
	r.Velocities = append(r.Velocities, vel)
}

// Track returns the positions of one body across all samples.
func (r *Result) Track(id orbital.ID) ([]vecmath.Vector, bool) {
	col := -1
	for j, x := range r.IDs {
		if x == id {
			col = j
			break
		}
	}
	if col < 0 {
		return nil, false
	}
	out := make([]vecmath.Vector, len(r.Positions))
	for i, row := range r.Positions {
		out[i] = row[col]
	}
	return out, true
}
