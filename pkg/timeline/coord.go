// Package timeline maps month indices onto a fixed twelve-unit axis and packs
// month intervals into rows that never overlap.
package timeline

import "math"

const (
	// FirstMonth is the lowest month index on the axis.
	FirstMonth = 1
	// LastMonth is the highest month index on the axis.
	LastMonth = 12
	// Months is the number of units the axis is divided into.
	Months = 12
)

// MonthToOffset returns the position of the left edge of month as a fraction
// of the axis. The month is not clamped; callers clamp before calling.
func MonthToOffset(month int) float64 {
	return float64(month-1) / Months
}

// DurationToWidth returns the fraction of the axis covered by the inclusive
// month range [start, end].
func DurationToWidth(start, end int) float64 {
	return float64(end-start+1) / Months
}

// PositionToMonth snaps a fraction along the axis to a month index in
// [FirstMonth, LastMonth]. The fraction is scaled by Months and rounded half
// up (2.5 becomes 3), so a pointer snaps to the next month once it passes the
// middle of a month cell. It is the inverse of MonthToOffset:
//
//	PositionToMonth(MonthToOffset(m)) == m
func PositionToMonth(fraction float64) int {
	if math.IsNaN(fraction) {
		return FirstMonth
	}
	scaled := fraction * Months
	// keep the float inside a small window so the int conversion is defined
	scaled = math.Max(-1, math.Min(Months+1, scaled))
	return ClampMonth(int(math.Floor(scaled+0.5)) + 1)
}

// Fraction converts a pointer coordinate into a fraction of a container of the
// given width. A non-positive width yields zero.
func Fraction(x, width float64) float64 {
	if width <= 0 {
		return 0
	}
	return x / width
}

// MonthDelta returns how many whole months the pointer travelled between two
// coordinates measured against a container of the given width. Both ends are
// snapped with PositionToMonth before subtracting.
func MonthDelta(fromX, toX, width float64) int {
	return PositionToMonth(Fraction(toX, width)) - PositionToMonth(Fraction(fromX, width))
}

// ClampMonth bounds month to [FirstMonth, LastMonth].
func ClampMonth(month int) int {
	return Clamp(month, FirstMonth, LastMonth)
}

// Clamp bounds v to [lo, hi]. When hi < lo, lo wins.
func Clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
