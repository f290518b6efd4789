package orbital

import "github.com/san-kum/orbsim/internal/vecmath"

// Gravity returns the acceleration b imparts on a, pointing from a toward b.
// a and b must be distinct and must not share a position.
func (s *Simulation) Gravity(a, b Body) vecmath.Vector {
	pa, pb := a.Position(), b.Position()
	return pa.Azimuth(pb).UnitVector().Scale(s.g * b.Mass() / pa.SquaredDistance(pb))
}
