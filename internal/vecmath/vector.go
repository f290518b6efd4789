package vecmath

import (
	"fmt"
	"math"
)

type Vector struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func Vec(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// FromPolar returns the vector of the given magnitude pointing along dir.
func FromPolar(dir Angle, magnitude float64) Vector {
	return dir.UnitVector().Scale(magnitude)
}

func (v Vector) Add(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y}
}

func (v Vector) Sub(o Vector) Vector {
	return Vector{v.X - o.X, v.Y - o.Y}
}

func (v Vector) Scale(s float64) Vector {
	return Vector{v.X * s, v.Y * s}
}

// Div divides both components by s. Division by zero is not guarded.
func (v Vector) Div(s float64) Vector {
	return Vector{v.X / s, v.Y / s}
}

// Equal compares fields exactly, no tolerance.
func (v Vector) Equal(o Vector) bool {
	return v.X == o.X && v.Y == o.Y
}

func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vector) SquaredDistance(o Vector) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

func (v Vector) Distance(o Vector) float64 {
	return math.Sqrt(v.SquaredDistance(o))
}

// Azimuth returns the angle pointing from v toward o.
func (v Vector) Azimuth(o Vector) Angle {
	return NewAngle(math.Atan2(o.Y-v.Y, o.X-v.X))
}

// Direction returns the angle of v measured from the origin.
func (v Vector) Direction() Angle {
	return NewAngle(math.Atan2(v.Y, v.X))
}

func (v Vector) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}
