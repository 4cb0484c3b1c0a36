package timeline

import "fmt"

// Bounds is an inclusive month range on the axis.
type Bounds struct {
	Start int `json:"startMonth" yaml:"startMonth"`
	End   int `json:"endMonth" yaml:"endMonth"`
}

// Valid reports whether both months are on the axis and Start <= End.
func (b Bounds) Valid() bool {
	return b.Start >= FirstMonth && b.End <= LastMonth && b.Start <= b.End
}

// Duration is the distance between the start and end months. A one month
// range has a duration of zero.
func (b Bounds) Duration() int {
	return b.End - b.Start
}

// Span is the number of months covered.
func (b Bounds) Span() int {
	return b.End - b.Start + 1
}

// Overlaps reports whether the two ranges share at least one month.
func (b Bounds) Overlaps(other Bounds) bool {
	return b.Start <= other.End && other.Start <= b.End
}

// Contains reports whether month falls inside the range.
func (b Bounds) Contains(month int) bool {
	return month >= b.Start && month <= b.End
}

// Offset is the left edge of the range as a fraction of the axis.
func (b Bounds) Offset() float64 {
	return MonthToOffset(b.Start)
}

// Width is the fraction of the axis the range covers.
func (b Bounds) Width() float64 {
	return DurationToWidth(b.Start, b.End)
}

// Clamped returns the nearest valid range: both months are pulled onto the
// axis and the end never precedes the start.
func (b Bounds) Clamped() Bounds {
	start := ClampMonth(b.Start)
	return Bounds{Start: start, End: Clamp(b.End, start, LastMonth)}
}

func (b Bounds) String() string {
	if b.Start == b.End {
		return MonthLabel(b.Start)
	}
	return fmt.Sprintf("%s-%s", MonthLabel(b.Start), MonthLabel(b.End))
}
