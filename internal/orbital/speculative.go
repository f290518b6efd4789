package orbital

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/san-kum/orbsim/internal/vecmath"
)

// maxPrealloc bounds the trajectory buffer reserved up front; long previews grow it.
const maxPrealloc = 1 << 12

type Phase int32

const (
	Idle Phase = iota
	Running
	Completed
	Canceled
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Canceled:
		return "canceled"
	default:
		return fmt.Sprintf("phase(%d)", int32(p))
	}
}

// Preview is a speculative run over a snapshot of a Simulation. The zero
// value reports Idle.
type Preview struct {
	phase  atomic.Int32
	done   chan struct{}
	cancel context.CancelFunc

	virtual *Simulation
	plan    schedule
	track   ID

	trajectory []vecmath.Vector
	err        error
}

// VirtualStep previews where body id will be after each increment of a Step
// with the same dt and domain, without mutating s. Body Step hooks are not
// invoked. The run stops between increments when ctx is done.
func (s *Simulation) VirtualStep(ctx context.Context, dt, domain float64, id ID) ([]vecmath.Vector, error) {
	p := s.prepare(dt, domain, id)
	if p.virtual != nil {
		p.run(ctx)
	}
	return p.Wait()
}

// Speculate snapshots s synchronously and runs the preview on its own
// goroutine. s may be stepped as soon as Speculate returns.
func (s *Simulation) Speculate(ctx context.Context, dt, domain float64, id ID) *Preview {
	p := s.prepare(dt, domain, id)
	if p.virtual == nil {
		return p
	}

	ctx, p.cancel = context.WithCancel(ctx)
	go p.run(ctx)
	return p
}

func (s *Simulation) prepare(dt, domain float64, id ID) *Preview {
	p := &Preview{done: make(chan struct{})}
	p.phase.Store(int32(Running))

	plan, err := newSchedule(dt, domain)
	if err != nil {
		p.finish(nil, fmt.Errorf("virtual step: %w", err))
		return p
	}
	if _, ok := s.Get(id); !ok {
		p.finish(nil, fmt.Errorf("virtual step: %w: %q", ErrUnknownBody, id))
		return p
	}

	p.virtual = s.snapshot()
	p.plan = plan
	p.track = id
	return p
}

// snapshot clones s, tracing every body identity before and after.
func (s *Simulation) snapshot() *Simulation {
	for i, b := range s.bodies {
		s.sink.Print(traceOf(TraceOriginal, i, b))
	}
	c := s.Clone()
	for i, b := range c.bodies {
		s.sink.Print(traceOf(TraceSnapshot, i, b))
	}
	return c
}

func (p *Preview) run(ctx context.Context) {
	if p.cancel != nil {
		defer p.cancel()
	}

	out := make([]vecmath.Vector, 0, min(p.plan.n, maxPrealloc))
	t := 0.0
	for k := 0; k < p.plan.n; k++ {
		if err := ctx.Err(); err != nil {
			p.finish(out, &StepError{
				Increment: k,
				Time:      t,
				Wrapped:   fmt.Errorf("%w: %w", ErrCanceled, err),
			})
			return
		}

		h := p.plan.at(k)
		p.virtual.increment(h, false)
		t += h

		pos, _ := p.virtual.positionOf(p.track)
		out = append(out, pos)
	}
	p.finish(out, nil)
}

func (p *Preview) finish(trajectory []vecmath.Vector, err error) {
	p.trajectory = trajectory
	p.err = err
	p.virtual = nil

	phase := Completed
	if errors.Is(err, ErrCanceled) {
		phase = Canceled
	}
	p.phase.Store(int32(phase))
	close(p.done)
}

func (p *Preview) Phase() Phase {
	return Phase(p.phase.Load())
}

// Done is closed once the run has finished, successfully or not.
func (p *Preview) Done() <-chan struct{} {
	return p.done
}

// Cancel asks a running preview to stop before its next increment.
func (p *Preview) Cancel() {
	if p.cancel != nil {
		p.cancel()
	}
}

// Wait blocks until the preview finishes. On cancellation the positions
// computed so far are returned with the error.
func (p *Preview) Wait() ([]vecmath.Vector, error) {
	if p.done == nil {
		return nil, nil
	}
	<-p.done
	return p.trajectory, p.err
}
