// Package feature builds the numeric input vector consumed by artifact-backed
// models.
package feature

import (
	"math"
	"time"

	"github.com/gridwatt/demandcast/core/region"
)

// Size is the fixed vector length.
const Size = 15

// Vector is an ordered feature sequence. The field order and count are a
// compatibility contract with every trained artifact and must not change:
// [year, month, day, weekday, day-of-year, lat, lon, sin/cos annual phase,
// sin/cos monthly phase, region hash bucket, ISO week, ISO weekday,
// days since year start].
type Vector []float64

// Build constructs the vector for a region and date. Pure; latitude and
// longitude pass through unvalidated.
func Build(label string, lat, lon float64, date time.Time) Vector {
	yday := float64(date.YearDay())
	annual := 2 * math.Pi * yday / 365.25
	monthly := 2 * math.Pi * float64(date.Month()) / 12

	_, isoWeek := date.ISOWeek()
	weekday := mondayIndexed(date)

	return Vector{
		float64(date.Year()),
		float64(date.Month()),
		float64(date.Day()),
		float64(weekday),
		yday,
		lat,
		lon,
		math.Sin(annual),
		math.Cos(annual),
		math.Sin(monthly),
		math.Cos(monthly),
		float64(region.HashBucket(label)),
		float64(isoWeek),
		float64(weekday + 1), // ISO weekday, Monday=1
		yday - 1,
	}
}

// mondayIndexed returns the weekday with Monday as 0, matching the encoding
// the artifacts were trained against.
func mondayIndexed(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}
