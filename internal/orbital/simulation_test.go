package orbital_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbsim/internal/bodies"
	"github.com/san-kum/orbsim/internal/orbital"
	"github.com/san-kum/orbsim/internal/vecmath"
)

// recorder records the dt of every Step hook call. The log is shared with its
// clones so a test can see hooks invoked on a snapshot.
type recorder struct {
	bodies.Point
	accel vecmath.Vector
	next  *vecmath.Vector
	dts   *[]float64
}

func newRecorder(id orbital.ID, mass float64, pos, vel vecmath.Vector) *recorder {
	return &recorder{
		Point: bodies.Point{Name: id, M: mass, Pos: pos, Vel: vel},
		dts:   new([]float64),
	}
}

func (p *recorder) Acceleration() vecmath.Vector { return p.accel }

func (p *recorder) Step(dt float64) {
	*p.dts = append(*p.dts, dt)
	if p.next != nil {
		p.accel = *p.next
	}
}

func (p *recorder) Clone() orbital.Body {
	c := *p
	return &c
}

func mirrored(a, b vecmath.Vector, tol float64) bool {
	return math.Abs(a.X+b.X) <= tol && math.Abs(a.Y+b.Y) <= tol
}

var _ = Describe("Simulation", func() {
	Describe("registry", func() {
		var (
			s    *orbital.Simulation
			sun  *bodies.Point
			moon *bodies.Point
		)

		BeforeEach(func() {
			sun = bodies.NewPoint("sun", 1e30, vecmath.Vector{}, vecmath.Vector{})
			moon = bodies.NewPoint("moon", 1e22, vecmath.Vec(1e8, 0), vecmath.Vector{})
			s = orbital.New(orbital.GKilometer, sun)
		})

		It("keeps the initial set and appends in order", func() {
			s.Register(moon)
			Expect(s.Len()).To(Equal(2))
			Expect(s.Bodies()).To(Equal([]orbital.Body{sun, moon}))
		})

		It("returns the exact registered body", func() {
			s.Register(moon)
			got, ok := s.Get("moon")
			Expect(ok).To(BeTrue())
			Expect(got).To(BeIdenticalTo(moon))
		})

		It("reports unknown ids as not found", func() {
			got, ok := s.Get("pluto")
			Expect(ok).To(BeFalse())
			Expect(got).To(BeNil())
		})

		It("removes by identity and ignores unknown bodies", func() {
			s.Register(moon)
			s.Unregister(bodies.NewPoint("pluto", 1, vecmath.Vector{}, vecmath.Vector{}))
			Expect(s.Len()).To(Equal(2))

			s.Unregister(bodies.NewPoint("sun", 1, vecmath.Vector{}, vecmath.Vector{}))
			Expect(s.Bodies()).To(Equal([]orbital.Body{moon}))
		})

		It("hands out a copy of the registry slice", func() {
			list := s.Bodies()
			list[0] = moon
			got, _ := s.Get("sun")
			Expect(got).To(BeIdenticalTo(sun))
		})
	})

	Describe("Gravity", func() {
		It("points from a toward b with inverse-square magnitude", func() {
			s := orbital.New(1)
			a := bodies.NewPoint("a", 5, vecmath.Vector{}, vecmath.Vector{})
			b := bodies.NewPoint("b", 1e10, vecmath.Vec(10, 0), vecmath.Vector{})

			Expect(s.Gravity(a, b)).To(Equal(vecmath.Vec(1e8, 0)))

			back := s.Gravity(b, a)
			Expect(back.X).To(BeNumerically("~", -0.05, 1e-15))
			Expect(back.Y).To(BeNumerically("~", 0, 1e-15))
		})
	})

	Describe("Step", func() {
		It("rejects non-positive or non-finite arguments without touching state", func() {
			p := newRecorder("p", 1, vecmath.Vec(1, 1), vecmath.Vec(1, 0))
			s := orbital.New(1, p)

			for _, args := range [][2]float64{{0, 1}, {-1, 1}, {1, 0}, {1, -5}, {math.NaN(), 1}, {1, math.Inf(1)}} {
				Expect(s.Step(args[0], args[1])).To(MatchError(orbital.ErrInvalidStep))
			}
			Expect(p.Position()).To(Equal(vecmath.Vec(1, 1)))
			Expect(s.Elapsed()).To(BeZero())
			Expect(*p.dts).To(BeEmpty())
		})

		It("performs domain/dt increments and advances elapsed by exactly domain", func() {
			p := newRecorder("p", 1, vecmath.Vector{}, vecmath.Vector{})
			s := orbital.New(1, p)

			Expect(s.Step(0.1, 1)).To(Succeed())
			Expect(*p.dts).To(HaveLen(10))
			Expect(s.Elapsed()).To(Equal(1.0))

			Expect(s.Step(10, 100)).To(Succeed())
			Expect(*p.dts).To(HaveLen(20))
			Expect(s.Elapsed()).To(Equal(101.0))
		})

		It("truncates the final increment to the remaining time", func() {
			p := newRecorder("p", 1, vecmath.Vector{}, vecmath.Vector{})
			s := orbital.New(1, p)

			Expect(s.Step(10, 25)).To(Succeed())
			Expect(*p.dts).To(Equal([]float64{10, 10, 5}))
			Expect(s.Elapsed()).To(Equal(25.0))
		})

		It("uses a single increment when dt exceeds domain", func() {
			p := newRecorder("p", 1, vecmath.Vector{}, vecmath.Vector{})
			s := orbital.New(1, p)

			Expect(s.Step(60, 1.5)).To(Succeed())
			Expect(*p.dts).To(Equal([]float64{1.5}))
		})

		It("computes gravity from pre-increment positions for every body", func() {
			a := bodies.NewPoint("a", 1, vecmath.Vector{}, vecmath.Vector{})
			b := bodies.NewPoint("b", 1, vecmath.Vec(1, 0), vecmath.Vector{})
			s := orbital.New(1, a, b)

			Expect(s.Step(1, 1)).To(Succeed())

			Expect(a.Velocity()).To(Equal(vecmath.Vec(1, 0)))
			Expect(a.Position()).To(Equal(vecmath.Vec(1, 0)))
			Expect(b.Velocity().X).To(BeNumerically("~", -1, 1e-12))
			Expect(b.Position().X).To(BeNumerically("~", 0, 1e-12))
		})

		It("applies intrinsic acceleration after the body's own Step hook", func() {
			p := newRecorder("p", 1, vecmath.Vector{}, vecmath.Vector{})
			thrust := vecmath.Vec(0, 2)
			p.next = &thrust
			s := orbital.New(1, p)

			Expect(s.Step(0.5, 1)).To(Succeed())
			Expect(p.Velocity()).To(Equal(vecmath.Vec(0, 2)))
			Expect(p.Position()).To(Equal(vecmath.Vec(0, 1.5)))
		})

		It("keeps a symmetric pair symmetric", func() {
			a := bodies.NewPoint("a", 1, vecmath.Vec(1, 0), vecmath.Vec(0, 0.5))
			b := bodies.NewPoint("b", 1, vecmath.Vec(-1, 0), vecmath.Vec(0, -0.5))
			s := orbital.New(1, a, b)

			for i := 0; i < 5; i++ {
				Expect(s.Step(0.01, 1)).To(Succeed())
				Expect(mirrored(a.Position(), b.Position(), 1e-9)).To(BeTrue())
				Expect(mirrored(a.Velocity(), b.Velocity(), 1e-9)).To(BeTrue())
			}
			Expect(a.Position().Magnitude()).To(BeNumerically("<", 10))
		})

		It("moves the reference pair toward the origin and along y", func() {
			a := bodies.NewPoint("a", 1e20, vecmath.Vec(1e10, 0), vecmath.Vec(0, 2))
			b := bodies.NewPoint("b", 1e20, vecmath.Vec(-1e10, 0), vecmath.Vec(0, -2))
			s := orbital.New(6.674e-11, a, b)

			Expect(s.Step(10, 100)).To(Succeed())

			Expect(a.Velocity().X).To(BeNumerically("<", 0))
			Expect(b.Velocity().X).To(BeNumerically(">", 0))
			Expect(a.Position().X).To(BeNumerically("<=", 1e10))
			Expect(a.Position().Y).To(BeNumerically("~", 200, 1e-6))
			Expect(b.Position().Y).To(BeNumerically("~", -200, 1e-6))
			Expect(mirrored(a.Position(), b.Position(), 1e-6)).To(BeTrue())
		})
	})

	Describe("Clone", func() {
		It("copies the gravity constant and shares no body state", func() {
			a := bodies.NewPoint("a", 1, vecmath.Vec(1, 0), vecmath.Vector{})
			s := orbital.New(3, a)

			c := s.Clone()
			Expect(c.GravityConstant()).To(Equal(3.0))

			got, ok := c.Get("a")
			Expect(ok).To(BeTrue())
			Expect(got).NotTo(BeIdenticalTo(a))

			got.SetPosition(vecmath.Vec(7, 7))
			Expect(a.Position()).To(Equal(vecmath.Vec(1, 0)))
		})
	})
})

var _ = DescribeTable("Increments",
	func(dt, domain float64, want int) {
		n, err := orbital.Increments(dt, domain)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(want))
	},
	Entry("exact multiple", 10.0, 100.0, 10),
	Entry("decimal multiple", 0.1, 1.0, 10),
	Entry("round-off below", 0.1, 0.3, 3),
	Entry("remainder", 10.0, 25.0, 3),
	Entry("dt larger than domain", 5.0, 1.0, 1),
	Entry("two billion unit increments", 1.0, 2e9, 2000000000),
	Entry("a billion nanosecond increments", 1e-9, 1.0, 1000000000),
	Entry("millisecond increments over five million", 1e-3, 5e6, 5000000000),
)

var _ = Describe("Increments beyond int range", func() {
	It("rejects a ratio that cannot be counted", func() {
		_, err := orbital.Increments(1e-10, 1e10)
		Expect(err).To(MatchError(orbital.ErrInvalidStep))
	})
})

var _ = DescribeTable("GravityForUnit",
	func(unit string, want float64, known bool) {
		g, ok := orbital.GravityForUnit(unit)
		Expect(ok).To(Equal(known))
		Expect(g).To(Equal(want))
	},
	Entry("meters", "m", orbital.GMeter, true),
	Entry("kilometers", "km", orbital.GKilometer, true),
	Entry("megameters", "Mm", orbital.GMegameter, true),
	Entry("gigameters", "Gm", orbital.GGigameter, true),
	Entry("astronomical units", "au", orbital.GAstronomicalUnit, true),
	Entry("millimeters are not megameters", "mm", 0.0, false),
	Entry("lowercase gigameters", "gm", 0.0, false),
	Entry("unknown", "ly", 0.0, false),
)
