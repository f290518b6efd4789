package vecmath

import (
	"math"
	"testing"
)

func TestVector_Arithmetic(t *testing.T) {
	a := Vec(1, 2)
	b := Vec(5, 6)

	if got := a.Add(b); !got.Equal(Vec(6, 8)) {
		t.Errorf("Add = %v, want (6, 8)", got)
	}
	if got := b.Sub(a); !got.Equal(Vec(4, 4)) {
		t.Errorf("Sub = %v, want (4, 4)", got)
	}
	if got := a.Scale(3); !got.Equal(Vec(3, 6)) {
		t.Errorf("Scale = %v, want (3, 6)", got)
	}
	if got := b.Div(2); !got.Equal(Vec(2.5, 3)) {
		t.Errorf("Div = %v, want (2.5, 3)", got)
	}
}

func TestVector_AddLaws(t *testing.T) {
	vs := []Vector{Vec(1, 2), Vec(-3.5, 0.25), Vec(0, 0), Vec(1e10, -1e-3)}
	for _, a := range vs {
		for _, b := range vs {
			if !a.Add(b).Equal(b.Add(a)) {
				t.Errorf("%v + %v not commutative", a, b)
			}
			for _, c := range vs {
				l := a.Add(b).Add(c)
				r := a.Add(b.Add(c))
				if l.Distance(r) > 1e-6*math.Max(1, l.Magnitude()) {
					t.Errorf("(%v+%v)+%v = %v, %v+(%v+%v) = %v", a, b, c, l, a, b, c, r)
				}
			}
			for _, s := range []float64{0, 2, -0.5} {
				l := a.Add(b).Scale(s)
				r := a.Scale(s).Add(b.Scale(s))
				if l.Distance(r) > 1e-6*math.Max(1, l.Magnitude()) {
					t.Errorf("scale %v does not distribute over %v + %v", s, a, b)
				}
			}
		}
	}
}

func TestVector_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Vector
		want bool
	}{
		{"identical", Vec(1, 2), Vec(1, 2), true},
		{"zero", Vector{}, Vec(0, 0), true},
		{"off by ulp", Vec(1, 2), Vec(math.Nextafter(1, 2), 2), false},
		{"swapped", Vec(1, 2), Vec(2, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVector_Distances(t *testing.T) {
	a := Vec(1, 1)
	b := Vec(4, 5)

	if got := a.SquaredDistance(b); got != 25 {
		t.Errorf("SquaredDistance = %v, want 25", got)
	}
	if got := a.Distance(b); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
	if got := Vec(3, 4).Magnitude(); got != 5 {
		t.Errorf("Magnitude = %v, want 5", got)
	}
}

func TestVector_Azimuth(t *testing.T) {
	tests := []struct {
		from, to Vector
		want     float64
	}{
		{Vec(0, 0), Vec(1, 0), 0},
		{Vec(0, 0), Vec(0, 1), math.Pi / 2},
		{Vec(1, 0), Vec(-1, 0), math.Pi},
		{Vec(0, 0), Vec(0, -1), 3 * math.Pi / 2},
		{Vec(2, 2), Vec(3, 3), math.Pi / 4},
	}
	for _, tt := range tests {
		got := tt.from.Azimuth(tt.to).Radians()
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Azimuth(%v -> %v) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}

	if got := Vec(-1, 0).Direction().Radians(); math.Abs(got-math.Pi) > 1e-12 {
		t.Errorf("Direction = %v, want π", got)
	}
}

func TestFromPolar(t *testing.T) {
	v := FromPolar(NewAngle(math.Pi/2), 3)
	if math.Abs(v.X) > 1e-12 || math.Abs(v.Y-3) > 1e-12 {
		t.Errorf("FromPolar = %v, want (0, 3)", v)
	}
}

func TestVector_IsFinite(t *testing.T) {
	if !Vec(1, 2).IsFinite() {
		t.Error("expected finite")
	}
	if Vec(math.NaN(), 0).IsFinite() || Vec(0, math.Inf(-1)).IsFinite() {
		t.Error("expected non-finite")
	}
}
