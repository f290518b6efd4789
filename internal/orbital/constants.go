package orbital

// Gravitational constants for common distance units, mass in kg, time in s.
const (
	GMeter            = 6.67384e-11
	GKilometer        = 6.67384e-20
	GMegameter        = 6.67384e-29
	GGigameter        = 6.67384e-38
	GAstronomicalUnit = 1.99342e-44
)

var unitConstants = map[string]float64{
	"m":  GMeter,
	"km": GKilometer,
	"Mm": GMegameter,
	"Gm": GGigameter,
	"au": GAstronomicalUnit,
}

// GravityForUnit returns the constant for a distance unit symbol: "m", "km",
// "Mm", "Gm" or "au". Symbols are case-sensitive, so "mm" is not a megameter.
func GravityForUnit(unit string) (float64, bool) {
	g, ok := unitConstants[unit]
	return g, ok
}

func Units() []string {
	return []string{"m", "km", "Mm", "Gm", "au"}
}
