package config

import "sort"

var Presets = map[string]*Scenario{
	"binary": DefaultScenario(),
	"earth-moon": {
		Name: "earth-moon", Units: "km", Dt: 60, Duration: 86400, Track: "moon",
		Preview: PreviewConfig{Dt: 600, Duration: 28 * 86400},
		Bodies: []BodyConfig{
			{ID: "earth", Kind: "planet", Mass: 5.972e24, VY: -0.01257,
				Atmosphere: AtmosphereConfig{BaseDensity: 1.225e9, BaseRadius: 6371, ScaleHeight: 8.5}},
			{ID: "moon", Kind: "point", Mass: 7.342e22, X: 384400, VY: 1.022},
		},
	},
	"sun-earth": {
		Name: "sun-earth", Units: "au", Dt: 3600, Duration: 30 * 86400, Track: "earth",
		Preview: PreviewConfig{Dt: 86400, Duration: 365 * 86400},
		Bodies: []BodyConfig{
			{ID: "sun", Kind: "point", Mass: 1.989e30},
			{ID: "earth", Kind: "point", Mass: 5.972e24, X: 1, VY: 1.991e-7},
		},
	},
	"leo-burn": {
		Name: "leo-burn", Units: "km", Dt: 1, Duration: 600, Track: "shuttle",
		Preview: PreviewConfig{Dt: 10, Duration: 5400},
		Bodies: []BodyConfig{
			{ID: "earth", Kind: "planet", Mass: 5.972e24,
				Atmosphere: AtmosphereConfig{BaseDensity: 1.225e9, BaseRadius: 6371, ScaleHeight: 8.5}},
			{ID: "shuttle", Kind: "craft", X: 6771, VY: 7.672, Heading: 90,
				Craft: CraftConfig{DryMass: 1000, Fuel: 500, BurnRate: 1, Thrust: 0.5, Throttle: 1}},
			{ID: "station", Kind: "point", Mass: 4.2e5, Y: 6871, VX: -7.617},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Scenario {
	sc, ok := Presets[name]
	if !ok {
		return nil
	}
	return sc.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
