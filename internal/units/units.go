// Package units provides shared constants and validation for time-like
// coordinate units
package units

import "strings"

// Time unit constants
const (
	Seconds      = "seconds"
	Milliseconds = "milliseconds"
	Microseconds = "microseconds"
	Nanoseconds  = "nanoseconds"
)

// ValidTimeUnits contains all valid time unit values
var ValidTimeUnits = []string{Seconds, Milliseconds, Microseconds, Nanoseconds}

// IsValidTimeUnit checks if the given unit is in the list of valid time units
func IsValidTimeUnit(unit string) bool {
	for _, validUnit := range ValidTimeUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidTimeUnitsString returns a comma-separated string of valid time units for error messages
func GetValidTimeUnitsString() string {
	return "seconds, milliseconds, microseconds, nanoseconds"
}

// ScaleToSeconds converts one tick of the given time unit to seconds.
// Unknown units scale by 1 (treated as seconds).
func ScaleToSeconds(unit string) float64 {
	switch unit {
	case Nanoseconds:
		return 1e-9
	case Microseconds:
		return 1e-6
	case Milliseconds:
		return 1e-3
	case Seconds:
		return 1
	default:
		return 1 // default to seconds if unknown unit
	}
}

// ParseTimeUnits splits a units attribute of the form "<unit> since <epoch>"
// (e.g. "seconds since 1970-01-01T00:00:00Z") into its unit and epoch parts.
// Returns ok=false for attributes that do not follow the convention.
func ParseTimeUnits(attr string) (unit, epoch string, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(attr), " since ", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	unit = strings.TrimSpace(parts[0])
	epoch = strings.TrimSpace(parts[1])
	if !IsValidTimeUnit(unit) || epoch == "" {
		return "", "", false
	}
	return unit, epoch, true
}

// IsTimeLike reports whether a units attribute declares a time-like
// coordinate ("<unit> since <epoch>").
func IsTimeLike(attr string) bool {
	_, _, ok := ParseTimeUnits(attr)
	return ok
}
