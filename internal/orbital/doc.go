// Package orbital advances a set of bodies under mutual Newtonian gravity.
//
// The package defines the body contract and the two stepping paths:
//
//   - [Body]: capability a concrete body implements (position, velocity, mass, ...)
//   - [Simulation]: ordered body registry plus the fixed-step integrator
//   - [Simulation.VirtualStep]: runs the same loop on a snapshot and reports one
//     body's future positions without touching the real state
//   - [Preview]: handle for a speculative run dispatched onto its own goroutine
//
// # Integration order
//
// Each increment updates every body's velocity (gravity, then the body's own
// Step hook, then its intrinsic acceleration) before any position moves. This
// is a whole-set semi-implicit Euler scheme and drifts in energy over long runs.
//
// # Preconditions
//
// Coincident positions or zero mass produce Inf/NaN accelerations. They are not
// checked.
//
// # Thread Safety
//
// Simulation is NOT thread-safe. A [Preview] only reads the real registry while
// its snapshot is taken, inside [Simulation.Speculate].
package orbital
