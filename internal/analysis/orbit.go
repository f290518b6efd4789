package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/orbsim/internal/orbital"
	"github.com/san-kum/orbsim/internal/vecmath"
)

type Apsides struct {
	Periapsis float64
	Apoapsis  float64
}

// Eccentricity is estimated from the apsides, so it is only meaningful for a
// closed, roughly Keplerian orbit.
func (a Apsides) Eccentricity() float64 {
	if a.Apoapsis+a.Periapsis == 0 {
		return 0
	}
	return (a.Apoapsis - a.Periapsis) / (a.Apoapsis + a.Periapsis)
}

// FindApsides returns the closest and farthest distance of traj from about,
// sample by sample. A nil about measures from the origin.
func FindApsides(traj, about []vecmath.Vector) (Apsides, error) {
	if len(traj) == 0 {
		return Apsides{}, fmt.Errorf("empty trajectory")
	}
	if about != nil && len(about) != len(traj) {
		return Apsides{}, fmt.Errorf("reference has %d samples, trajectory %d", len(about), len(traj))
	}

	a := Apsides{Periapsis: math.Inf(1), Apoapsis: math.Inf(-1)}
	for i, p := range traj {
		var center vecmath.Vector
		if about != nil {
			center = about[i]
		}
		r := p.Distance(center)
		a.Periapsis = math.Min(a.Periapsis, r)
		a.Apoapsis = math.Max(a.Apoapsis, r)
	}
	return a, nil
}

// SampleSpacing is the mean interval between sample times. Recorded runs may
// end on a shorter frame, so the first interval alone is not representative.
func SampleSpacing(times []float64) (float64, bool) {
	n := len(times)
	if n < 2 || !(times[n-1] > times[0]) {
		return 0, false
	}
	return (times[n-1] - times[0]) / float64(n-1), true
}

// OrbitalPeriod estimates the period of traj around about from samples
// spaced dt apart.
func OrbitalPeriod(traj, about []vecmath.Vector, dt float64) (float64, bool) {
	if about != nil && len(about) != len(traj) {
		return 0, false
	}
	xs := make([]float64, len(traj))
	for i, p := range traj {
		if about != nil {
			p = p.Sub(about[i])
		}
		xs[i] = p.X
	}
	return DominantPeriod(xs, dt)
}

type SensitivityResult struct {
	Exponent          float64
	InitialSeparation float64
	FinalSeparation   float64
}

// Sensitivity previews body id twice, once as-is and once displaced along x
// by perturbation, and fits ln(d(T)/d0)/T over the preview. Neither preview
// touches s.
func Sensitivity(ctx context.Context, s *orbital.Simulation, id orbital.ID, perturbation, dt, domain float64) (SensitivityResult, error) {
	if perturbation <= 0 {
		return SensitivityResult{}, fmt.Errorf("perturbation must be positive, got %g", perturbation)
	}

	base, err := s.VirtualStep(ctx, dt, domain, id)
	if err != nil {
		return SensitivityResult{}, err
	}

	shifted := s.Clone()
	b, ok := shifted.Get(id)
	if !ok {
		return SensitivityResult{}, fmt.Errorf("%w: %s", orbital.ErrUnknownBody, id)
	}
	b.SetPosition(b.Position().Add(vecmath.Vec(perturbation, 0)))

	nudged, err := shifted.VirtualStep(ctx, dt, domain, id)
	if err != nil {
		return SensitivityResult{}, err
	}

	final := base[len(base)-1].Distance(nudged[len(nudged)-1])
	res := SensitivityResult{
		InitialSeparation: perturbation,
		FinalSeparation:   final,
	}
	if final > 0 {
		res.Exponent = math.Log(final/perturbation) / domain
	} else {
		res.Exponent = math.Inf(-1)
	}
	return res, nil
}
