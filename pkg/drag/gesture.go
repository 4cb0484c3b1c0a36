package drag

import (
	"tableflip.dev/roadmap/pkg/roadmap"
	"tableflip.dev/roadmap/pkg/timeline"
)

// Kind is the type of gesture.
type Kind int

const (
	// Move shifts the whole feature, keeping its duration.
	Move Kind = iota + 1
	// ResizeStart drags the start edge.
	ResizeStart
	// ResizeEnd drags the end edge.
	ResizeEnd
)

// Valid reports whether k is a known gesture kind.
func (k Kind) Valid() bool {
	return k >= Move && k <= ResizeEnd
}

func (k Kind) String() string {
	switch k {
	case Move:
		return "move"
	case ResizeStart:
		return "resize-start"
	case ResizeEnd:
		return "resize-end"
	default:
		return "unknown"
	}
}

// Gesture records how to interpret pointer positions for one drag.
type Gesture struct {
	Kind      Kind
	FeatureID string
	// StartX is the pointer position when the gesture began.
	StartX float64
	// Width is the container width pointer positions are measured against.
	Width float64
	// Start is the feature's range when the gesture began.
	Start timeline.Bounds
	// Lane is the theme id of the lane the feature was drawn in when the
	// gesture began; "" for the ungrouped lane.
	Lane string
}

// Delta is the whole-month distance from the gesture's starting pointer to x.
func (g Gesture) Delta(x float64) int {
	return timeline.MonthDelta(g.StartX, x, g.Width)
}

// Candidate computes the bounds the gesture proposes after delta months,
// given the feature's current bounds. The result is always a valid range:
//
//   - Move keeps the starting duration and slides the start within
//     [1, 12-duration].
//   - ResizeStart moves the start within [1, current end].
//   - ResizeEnd moves the end within [current start, 12].
func (g Gesture) Candidate(current timeline.Bounds, delta int) timeline.Bounds {
	var out timeline.Bounds
	switch g.Kind {
	case Move:
		d := g.Start.Duration()
		start := timeline.Clamp(g.Start.Start+delta, timeline.FirstMonth, timeline.LastMonth-d)
		out = timeline.Bounds{Start: start, End: start + d}
	case ResizeStart:
		out = timeline.Bounds{
			Start: timeline.Clamp(g.Start.Start+delta, timeline.FirstMonth, current.End),
			End:   current.End,
		}
	case ResizeEnd:
		out = timeline.Bounds{
			Start: current.Start,
			End:   timeline.Clamp(g.Start.End+delta, current.Start, timeline.LastMonth),
		}
	default:
		return current
	}
	// stored data can be off the axis; never hand one back
	return out.Clamped()
}

func (g Gesture) patch(b timeline.Bounds) roadmap.Patch {
	switch g.Kind {
	case ResizeStart:
		return roadmap.StartPatch(b.Start)
	case ResizeEnd:
		return roadmap.EndPatch(b.End)
	default:
		return roadmap.BoundsPatch(b)
	}
}
