package metrics

// ThrustEffort averages the summed intrinsic acceleration magnitude of all
// bodies per sample.
type ThrustEffort struct {
	name    string
	sum     float64
	samples int
}

func NewThrustEffort() *ThrustEffort {
	return &ThrustEffort{
		name: "thrust_effort",
	}
}

func (c *ThrustEffort) Name() string {
	return c.name
}

func (c *ThrustEffort) Observe(sys System) {
	for _, b := range sys.Bodies() {
		c.sum += b.Acceleration().Magnitude()
	}
	c.samples++
}

func (c *ThrustEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ThrustEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
