package vecmath

import (
	"fmt"
	"math"
)

const twoPi = 2 * math.Pi

// Angle is a radian value canonicalized to [0, 2π).
// The zero value is a valid angle of 0 rad.
type Angle struct {
	rad float64
}

func NewAngle(radians float64) Angle {
	return Angle{rad: norm(radians)}
}

// FromDegrees builds an angle from a value in degrees.
func FromDegrees(degrees float64) Angle {
	return NewAngle(ToRadians(degrees))
}

func (a Angle) Radians() float64 { return a.rad }

func (a Angle) Degrees() float64 { return ToDegrees(a.rad) }

func (a Angle) Add(b Angle) Angle { return NewAngle(a.rad + b.rad) }

func (a Angle) AddRadians(r float64) Angle { return NewAngle(a.rad + r) }

func (a Angle) Sub(b Angle) Angle { return NewAngle(a.rad - b.rad) }

func (a Angle) SubRadians(r float64) Angle { return NewAngle(a.rad - r) }

func (a Angle) Scale(s float64) Angle { return NewAngle(a.rad * s) }

// Diff returns the signed shortest turn from b to a, in [-π, π).
func (a Angle) Diff(b Angle) float64 {
	return centerNorm(a.rad - b.rad)
}

func (a Angle) UnitVector() Vector {
	return Vector{math.Cos(a.rad), math.Sin(a.rad)}
}

func (a Angle) String() string {
	return fmt.Sprintf("%.6frad", a.rad)
}

func ToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func ToDegrees(radians float64) float64 {
	return radians * 180 / math.Pi
}

// norm maps r into [0, 2π). math.Mod keeps huge inputs from looping and the
// final checks absorb the rounding cases where Mod lands exactly on 2π.
func norm(r float64) float64 {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return r
	}
	r = math.Mod(r, twoPi)
	if r < 0 {
		r += twoPi
	}
	if r >= twoPi {
		r -= twoPi
	}
	return r
}

// centerNorm maps r into [-π, π).
func centerNorm(r float64) float64 {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return r
	}
	r = math.Mod(r, twoPi)
	if r >= math.Pi {
		r -= twoPi
	}
	if r < -math.Pi {
		r += twoPi
		if r >= math.Pi {
			r -= twoPi
		}
	}
	return r
}
