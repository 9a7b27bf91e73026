package config

import "github.com/opd-ai/go-voyage/pkg/physics"

// Units holds the conversion constants of a voyage. Distances are in meters
// and times in days. A Units value is built once at startup and only read
// afterwards.
type Units struct {
	Meter              float64
	Kilometer          float64
	AU                 float64 // astronomical unit
	DaysInYear         float64
	SpeedOfLightPerDay float64
	Origin             physics.Vector3 // the center of the universe
}

// DefaultUnits returns SI-based units with the IAU astronomical unit.
func DefaultUnits() Units {
	const meter = 1.0
	au := 149597870700 * meter
	return Units{
		Meter:              meter,
		Kilometer:          1000 * meter,
		AU:                 au,
		DaysInYear:         365,
		SpeedOfLightPerDay: 173 * au,
		Origin:             physics.Vector3{},
	}
}
