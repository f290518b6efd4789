package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt              = 10.0
	DefaultDuration        = 100.0
	DefaultUnits           = "m"
	DefaultPreviewDt       = 10.0
	DefaultPreviewDuration = 1000.0
)

// Scenario describes a simulation: its unit system, stepping parameters and
// initial bodies.
type Scenario struct {
	Name     string        `yaml:"name"`
	Units    string        `yaml:"units"`
	Gravity  float64       `yaml:"gravity,omitempty"`
	Dt       float64       `yaml:"dt"`
	Duration float64       `yaml:"duration"`
	Track    string        `yaml:"track,omitempty"`
	Preview  PreviewConfig `yaml:"preview"`
	Bodies   []BodyConfig  `yaml:"bodies"`
}

type PreviewConfig struct {
	Dt       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`
}

type BodyConfig struct {
	ID         string           `yaml:"id"`
	Kind       string           `yaml:"kind"`
	Mass       float64          `yaml:"mass,omitempty"`
	X          float64          `yaml:"x"`
	Y          float64          `yaml:"y"`
	VX         float64          `yaml:"vx"`
	VY         float64          `yaml:"vy"`
	Heading    float64          `yaml:"heading,omitempty"`
	Atmosphere AtmosphereConfig `yaml:"atmosphere,omitempty"`
	Craft      CraftConfig      `yaml:"craft,omitempty"`
}

type AtmosphereConfig struct {
	BaseDensity float64 `yaml:"base_density,omitempty"`
	BaseRadius  float64 `yaml:"base_radius,omitempty"`
	ScaleHeight float64 `yaml:"scale_height,omitempty"`
}

type CraftConfig struct {
	DryMass  float64 `yaml:"dry_mass,omitempty"`
	Fuel     float64 `yaml:"fuel,omitempty"`
	BurnRate float64 `yaml:"burn_rate,omitempty"`
	Thrust   float64 `yaml:"thrust,omitempty"`
	Throttle float64 `yaml:"throttle,omitempty"`
	Spin     float64 `yaml:"spin,omitempty"`
}

// TotalMass is the mass the body starts with.
func (b BodyConfig) TotalMass() float64 {
	if b.Kind == "craft" {
		return b.Craft.DryMass + b.Craft.Fuel
	}
	return b.Mass
}

// DefaultScenario is the two-body reference case: equal masses mirrored
// about the origin with opposite velocities.
func DefaultScenario() *Scenario {
	return &Scenario{
		Name:     "binary",
		Units:    DefaultUnits,
		Gravity:  6.674e-11,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Track:    "a",
		Preview:  PreviewConfig{Dt: DefaultPreviewDt, Duration: DefaultPreviewDuration},
		Bodies: []BodyConfig{
			{ID: "a", Kind: "point", Mass: 1e20, X: 1e10, VY: 2},
			{ID: "b", Kind: "point", Mass: 1e20, X: -1e10, VY: -2},
		},
	}
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := &Scenario{
		Units:    DefaultUnits,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Preview:  PreviewConfig{Dt: DefaultPreviewDt, Duration: DefaultPreviewDuration},
	}
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return sc, nil
}

func Save(path string, sc *Scenario) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy so presets can be modified by callers.
func (s *Scenario) Clone() *Scenario {
	c := *s
	c.Bodies = make([]BodyConfig, len(s.Bodies))
	copy(c.Bodies, s.Bodies)
	return &c
}

func (s *Scenario) Validate() error {
	var errs []error
	if s.Dt <= 0 {
		errs = append(errs, fmt.Errorf("dt must be positive, got %g", s.Dt))
	}
	if s.Duration <= 0 {
		errs = append(errs, fmt.Errorf("duration must be positive, got %g", s.Duration))
	}
	if len(s.Bodies) == 0 {
		errs = append(errs, errors.New("scenario has no bodies"))
	}

	seen := make(map[string]bool, len(s.Bodies))
	for i, b := range s.Bodies {
		if b.ID == "" {
			errs = append(errs, fmt.Errorf("body %d: missing id", i))
			continue
		}
		if seen[b.ID] {
			errs = append(errs, fmt.Errorf("body %q: duplicate id", b.ID))
		}
		seen[b.ID] = true
		if b.TotalMass() <= 0 {
			errs = append(errs, fmt.Errorf("body %q: mass must be positive", b.ID))
		}
	}

	if s.Track != "" && !seen[s.Track] {
		errs = append(errs, fmt.Errorf("track %q is not a body", s.Track))
	}
	return errors.Join(errs...)
}
