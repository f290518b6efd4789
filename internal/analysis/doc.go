// Package analysis characterizes recorded and previewed orbits.
//
//   - [FindApsides]: closest and farthest approach to a reference trajectory
//   - [OrbitalPeriod]: period estimate from the dominant spectral peak
//   - [Sensitivity]: divergence of a body's preview under a small
//     perturbation, a finite-time Lyapunov estimate
//
// A positive sensitivity exponent means nearby starting points separate
// exponentially, as in close encounters of three or more bodies:
//
//	s, err := analysis.Sensitivity(ctx, sim, "shuttle", 1, 10, 1e5)
//	if err == nil && s.Exponent > 0 {
//	    // small errors in the initial state grow
//	}
package analysis
