package board

import (
	"tableflip.dev/roadmap/pkg/drag"
	"tableflip.dev/roadmap/pkg/swimlane"
	"tableflip.dev/roadmap/pkg/timeline"
)

const (
	labelWidth = 22
	minCell    = 3
	// headerLines are the title, month and quarter lines above the lanes.
	headerLines = 3
)

const (
	rowHeader      = -1
	rowPlaceholder = -2
)

// line maps one screen line below the header to a lane and packed row.
type line struct {
	lane int
	row  int
}

// cellWidth splits what is left of the terminal after the label column
// evenly across the months.
func cellWidth(termWidth int) int {
	c := (termWidth - labelWidth) / timeline.Months
	if c < minCell {
		return minCell
	}
	return c
}

func buildLines(layout swimlane.Layout) []line {
	var out []line
	for i, lane := range layout.Lanes {
		out = append(out, line{lane: i, row: rowHeader})
		if len(lane.Rows) == 0 {
			out = append(out, line{lane: i, row: rowPlaceholder})
			continue
		}
		for r := range lane.Rows {
			out = append(out, line{lane: i, row: r})
		}
	}
	return out
}

// hit is the feature and handle under a screen position.
type hit struct {
	featureID string
	kind      drag.Kind
}

func (m *Model) lineAt(y int) (line, bool) {
	i := y - headerLines
	if i < 0 || i >= len(m.lines) {
		return line{}, false
	}
	return m.lines[i], true
}

// hitAt resolves a press. The first cell of a box grabs the start edge, the
// last cell grabs the end edge, anything between moves the feature.
func (m *Model) hitAt(x, y int) (hit, bool) {
	ln, ok := m.lineAt(y)
	if !ok || ln.row < 0 {
		return hit{}, false
	}
	col := x - labelWidth
	if col < 0 || col >= m.cell*timeline.Months {
		return hit{}, false
	}
	month := col/m.cell + 1
	for _, f := range m.layout.Lanes[ln.lane].Rows[ln.row] {
		b := f.Bounds().Clamped()
		if !b.Contains(month) {
			continue
		}
		from := (b.Start - 1) * m.cell
		to := b.End*m.cell - 1
		switch col {
		case from:
			return hit{featureID: f.ID, kind: drag.ResizeStart}, true
		case to:
			return hit{featureID: f.ID, kind: drag.ResizeEnd}, true
		default:
			return hit{featureID: f.ID, kind: drag.Move}, true
		}
	}
	return hit{}, false
}

// dropAt names the lane under y, or nil when y is outside every lane.
func (m *Model) dropAt(y int) *drag.Drop {
	ln, ok := m.lineAt(y)
	if !ok {
		return nil
	}
	return &drag.Drop{ThemeID: m.layout.Lanes[ln.lane].ThemeID}
}

func (m *Model) pointerX(x int) float64 {
	return float64(x - labelWidth)
}

func (m *Model) containerWidth() float64 {
	return float64(m.cell * timeline.Months)
}
