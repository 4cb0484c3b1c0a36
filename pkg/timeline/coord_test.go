package timeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthToOffsetAndWidth(t *testing.T) {
	assert.InDelta(t, 0.0, MonthToOffset(1), 1e-9)
	assert.InDelta(t, 0.5, MonthToOffset(7), 1e-9)
	assert.InDelta(t, 11.0/12.0, MonthToOffset(12), 1e-9)

	assert.InDelta(t, 1.0, DurationToWidth(1, 12), 1e-9)
	assert.InDelta(t, 1.0/12.0, DurationToWidth(6, 6), 1e-9)
	assert.InDelta(t, 0.25, DurationToWidth(4, 6), 1e-9)
}

func TestPositionToMonthRoundTrip(t *testing.T) {
	for m := FirstMonth; m <= LastMonth; m++ {
		require.Equal(t, m, PositionToMonth(MonthToOffset(m)), "month %d", m)
	}
}

func TestPositionToMonthRounding(t *testing.T) {
	cases := []struct {
		name     string
		fraction float64
		want     int
	}{
		{"origin", 0, 1},
		{"just below half a month", 0.49 / 12, 1},
		{"one and a half months rounds up", 0.125, 3},
		{"four and a half months rounds up", 0.375, 6},
		{"just past a boundary", 0.09, 2},
		{"end of axis", 1, 12},
		{"past the end", 3, 12},
		{"before the start", -0.4, 1},
		{"huge", math.Inf(1), 12},
		{"negative huge", math.Inf(-1), 1},
		{"nan", math.NaN(), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PositionToMonth(tc.fraction))
		})
	}
}

func TestMonthDelta(t *testing.T) {
	const width = 120.0 // ten units per month
	assert.Equal(t, 0, MonthDelta(30, 34, width))
	assert.Equal(t, 1, MonthDelta(30, 36, width))
	assert.Equal(t, -2, MonthDelta(30, 10, width))
	assert.Equal(t, 10, MonthDelta(0, 100, width))
	assert.Equal(t, 0, MonthDelta(0, 100, 0), "zero width never moves")
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, ClampMonth(-3))
	assert.Equal(t, 12, ClampMonth(40))
	assert.Equal(t, 5, Clamp(5, 1, 12))
	assert.Equal(t, 4, Clamp(9, 4, 2), "lo wins when the range is empty")
}

func TestBounds(t *testing.T) {
	b := Bounds{Start: 3, End: 5}
	assert.True(t, b.Valid())
	assert.Equal(t, 2, b.Duration())
	assert.Equal(t, 3, b.Span())
	assert.True(t, b.Contains(4))
	assert.False(t, b.Contains(6))
	assert.Equal(t, "Mar-May", b.String())
	assert.Equal(t, "Jun", Bounds{Start: 6, End: 6}.String())

	assert.True(t, b.Overlaps(Bounds{Start: 5, End: 9}))
	assert.False(t, b.Overlaps(Bounds{Start: 6, End: 9}))

	assert.False(t, Bounds{Start: 0, End: 3}.Valid())
	assert.False(t, Bounds{Start: 7, End: 6}.Valid())
	assert.Equal(t, Bounds{Start: 7, End: 7}, Bounds{Start: 7, End: 6}.Clamped())
	assert.Equal(t, Bounds{Start: 1, End: 12}, Bounds{Start: -2, End: 99}.Clamped())
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Jan", MonthLabel(1))
	assert.Equal(t, "", MonthLabel(13))
	assert.Equal(t, 1, QuarterOf(3))
	assert.Equal(t, 2, QuarterOf(4))
	assert.Equal(t, 4, QuarterOf(12))
	assert.Equal(t, "Q3", QuarterLabel(3))
	assert.Equal(t, "", QuarterLabel(0))
	assert.Equal(t, []int{10, 11, 12}, MonthsInQuarter(4))
	assert.Nil(t, MonthsInQuarter(5))
}
