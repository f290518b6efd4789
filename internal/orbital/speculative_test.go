package orbital_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbsim/internal/bodies"
	"github.com/san-kum/orbsim/internal/orbital"
	"github.com/san-kum/orbsim/internal/vecmath"
)

type recordingSink struct {
	traces []orbital.Trace
}

func (r *recordingSink) Print(payload any) {
	if t, ok := payload.(orbital.Trace); ok {
		r.traces = append(r.traces, t)
	}
}

func binary() (*orbital.Simulation, *recorder, *recorder) {
	a := newRecorder("a", 1, vecmath.Vec(1, 0), vecmath.Vec(0, 0.5))
	b := newRecorder("b", 1, vecmath.Vec(-1, 0), vecmath.Vec(0, -0.5))
	return orbital.New(1, a, b), a, b
}

var _ = Describe("VirtualStep", func() {
	var (
		s    *orbital.Simulation
		a, b *recorder
		ctx  context.Context
	)

	BeforeEach(func() {
		s, a, b = binary()
		ctx = context.Background()
	})

	It("leaves the real registry bit-identical", func() {
		posA, velA := a.Position(), a.Velocity()
		posB, velB := b.Position(), b.Velocity()

		_, err := s.VirtualStep(ctx, 0.01, 2, "a")
		Expect(err).NotTo(HaveOccurred())

		Expect(a.Position()).To(Equal(posA))
		Expect(a.Velocity()).To(Equal(velA))
		Expect(b.Position()).To(Equal(posB))
		Expect(b.Velocity()).To(Equal(velB))
		Expect(s.Elapsed()).To(BeZero())
	})

	It("never invokes body Step hooks", func() {
		_, err := s.VirtualStep(ctx, 0.1, 1, "a")
		Expect(err).NotTo(HaveOccurred())
		Expect(*a.dts).To(BeEmpty())
		Expect(*b.dts).To(BeEmpty())
	})

	DescribeTable("returns one position per increment",
		func(dt, domain float64, want int) {
			traj, err := s.VirtualStep(ctx, dt, domain, "b")
			Expect(err).NotTo(HaveOccurred())
			Expect(traj).To(HaveLen(want))
		},
		Entry("exact", 0.1, 1.0, 10),
		Entry("truncated tail", 0.4, 1.0, 3),
		Entry("single", 5.0, 1.0, 1),
	)

	It("matches the positions a real Step produces", func() {
		traj, err := s.VirtualStep(ctx, 0.25, 1, "a")
		Expect(err).NotTo(HaveOccurred())

		committed := s.Clone()
		tracked, _ := committed.Get("a")
		for i := range traj {
			Expect(committed.Step(0.25, 0.25)).To(Succeed())
			Expect(traj[i]).To(Equal(tracked.Position()))
		}
	})

	It("rejects unknown ids and bad arguments", func() {
		traj, err := s.VirtualStep(ctx, 0.1, 1, "ghost")
		Expect(err).To(MatchError(orbital.ErrUnknownBody))
		Expect(traj).To(BeNil())

		_, err = s.VirtualStep(ctx, 0, 1, "a")
		Expect(err).To(MatchError(orbital.ErrInvalidStep))
	})

	It("traces every body before and after the snapshot", func() {
		sink := &recordingSink{}
		s.SetDiagnostics(sink)

		_, err := s.VirtualStep(ctx, 0.1, 0.1, "a")
		Expect(err).NotTo(HaveOccurred())

		Expect(sink.traces).To(HaveLen(4))
		Expect(sink.traces[0].Stage).To(Equal(orbital.TraceOriginal))
		Expect(sink.traces[2].Stage).To(Equal(orbital.TraceSnapshot))
		Expect(sink.traces[2].ID).To(Equal(orbital.ID("a")))
		Expect(sink.traces[0].Ref).NotTo(Equal(sink.traces[2].Ref))
	})

	It("runs with no sink installed", func() {
		s.SetDiagnostics(nil)
		_, err := s.VirtualStep(ctx, 0.1, 1, "a")
		Expect(err).NotTo(HaveOccurred())
	})

	It("stops between increments when the context is canceled", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		traj, err := s.VirtualStep(cctx, 0.1, 1, "a")
		Expect(err).To(MatchError(orbital.ErrCanceled))
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		Expect(traj).To(BeEmpty())

		var stepErr *orbital.StepError
		Expect(errors.As(err, &stepErr)).To(BeTrue())
		Expect(stepErr.Increment).To(Equal(0))
	})

	It("snapshots fuel without burning it", func() {
		craft := bodies.NewCraft("shuttle", 10, 5, vecmath.Vec(0, 0), vecmath.Vector{})
		craft.Thrust = 15
		craft.Throttle = 1
		craft.BurnRate = 1
		solo := orbital.New(1, craft)

		traj, err := solo.VirtualStep(ctx, 1, 2, "shuttle")
		Expect(err).NotTo(HaveOccurred())
		Expect(craft.Fuel).To(Equal(5.0))
		// constant 1 unit/s² for two seconds: x = 1 then 3
		Expect(traj).To(Equal([]vecmath.Vector{vecmath.Vec(1, 0), vecmath.Vec(3, 0)}))
	})
})

var _ = Describe("Preview", func() {
	It("reports Idle for the zero value", func() {
		var p orbital.Preview
		Expect(p.Phase()).To(Equal(orbital.Idle))
	})

	It("runs on a snapshot while the real state moves on", func() {
		s, a, _ := binary()
		want, err := s.Clone().VirtualStep(context.Background(), 0.01, 3, "a")
		Expect(err).NotTo(HaveOccurred())

		p := s.Speculate(context.Background(), 0.01, 3, "a")
		Expect(s.Step(0.01, 5)).To(Succeed())

		Eventually(p.Done()).Should(BeClosed())
		Expect(p.Phase()).To(Equal(orbital.Completed))

		got, err := p.Wait()
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(want))
		Expect(math.Abs(a.Position().Y)).To(BeNumerically(">", 0))
	})

	It("completes immediately with an error for unknown ids", func() {
		s, _, _ := binary()
		p := s.Speculate(context.Background(), 0.1, 1, "ghost")
		Expect(p.Phase()).To(Equal(orbital.Completed))

		_, err := p.Wait()
		Expect(err).To(MatchError(orbital.ErrUnknownBody))
	})

	It("can be canceled", func() {
		s, _, _ := binary()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		p := s.Speculate(ctx, 1e-6, 10, "a")
		_, err := p.Wait()
		Expect(err).To(MatchError(orbital.ErrCanceled))
		Expect(p.Phase()).To(Equal(orbital.Canceled))

		p.Cancel()
	})
})
