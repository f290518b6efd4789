package orbital

import (
	"fmt"
	"math"
)

// scheduleTolerance is the fraction of dt below which a trailing remainder is
// treated as round-off rather than given its own increment.
const scheduleTolerance = 1e-9

// schedule splits a domain into n increments of dt, the last one truncated to
// whatever remains.
type schedule struct {
	dt   float64
	last float64
	n    int
}

func newSchedule(dt, domain float64) (schedule, error) {
	if !(dt > 0) || !(domain > 0) || math.IsInf(dt, 1) || math.IsInf(domain, 1) {
		return schedule{}, fmt.Errorf("%w: dt=%g domain=%g", ErrInvalidStep, dt, domain)
	}

	ratio := math.Ceil(domain / dt)
	if !(ratio < float64(math.MaxInt)) {
		return schedule{}, fmt.Errorf("%w: dt=%g domain=%g needs too many increments", ErrInvalidStep, dt, domain)
	}
	n := max(int(ratio), 1)

	last := domain - float64(n-1)*dt
	if n > 1 && last <= dt*scheduleTolerance {
		n--
		last = domain - float64(n-1)*dt
	}
	if last > dt {
		last = dt
	}
	return schedule{dt: dt, last: last, n: n}, nil
}

func (p schedule) at(k int) float64 {
	if k == p.n-1 {
		return p.last
	}
	return p.dt
}

// Increments reports how many increments Step or VirtualStep performs for dt
// and domain.
func Increments(dt, domain float64) (int, error) {
	p, err := newSchedule(dt, domain)
	if err != nil {
		return 0, err
	}
	return p.n, nil
}
