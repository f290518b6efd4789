// Package vecmath provides the 2D arithmetic every orbital computation is built on.
//
//   - [Vector]: Euclidean value type with exact field-wise equality
//   - [Angle]: radian value always held in [0, 2π)
//
// Arithmetic on [Angle] renormalizes its result, so a.Sub(b) is never negative.
// Use [Angle.Diff] for the signed shortest turn in [-π, π).
package vecmath
