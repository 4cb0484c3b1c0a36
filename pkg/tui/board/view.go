package board

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"tableflip.dev/roadmap/pkg/swimlane"
	"tableflip.dev/roadmap/pkg/timeline"
	"tableflip.dev/roadmap/pkg/tui/theme"
)

const help = "drag box: move · drag edge: resize · [ ] year · s packing · r reload · q quit"

// View renders the board. The line order must match lineAt: title, months,
// quarters, then one line per entry of m.lines.
func (m *Model) View() string {
	bt := m.theme.Board
	out := make([]string, 0, headerLines+len(m.lines)+2)

	out = append(out, bt.Title.Render(m.title)+"  "+fmt.Sprint(m.year)+bt.Quarter.Render("  packing:"+m.order.String()))

	var months strings.Builder
	months.WriteString(pad("", labelWidth))
	for mo := timeline.FirstMonth; mo <= timeline.LastMonth; mo++ {
		months.WriteString(bt.Month.Render(pad(timeline.MonthLabel(mo), m.cell)))
	}
	out = append(out, months.String())

	var quarters strings.Builder
	quarters.WriteString(pad("", labelWidth))
	for q := 1; q <= len(timeline.QuarterLabels); q++ {
		quarters.WriteString(bt.Quarter.Render(pad(timeline.QuarterLabel(q), m.cell*3)))
	}
	out = append(out, quarters.String())

	active, dragging := m.ctrl.Active()
	for _, ln := range m.lines {
		lane := m.layout.Lanes[ln.lane]
		switch ln.row {
		case rowHeader:
			dot := lipgloss.NewStyle().Foreground(theme.LaneColor(lane.Color())).Render("●")
			name := pad(lane.Name(), labelWidth-2)
			out = append(out, dot+" "+bt.LaneTitle.Render(name)+bt.LaneCount.Render(fmt.Sprintf("%d", lane.Count())))
		case rowPlaceholder:
			out = append(out, pad("", labelWidth)+bt.Placeholder.Render(pad("no features", m.cell*timeline.Months)))
		default:
			activeID := ""
			if dragging {
				activeID = active.FeatureID
			}
			out = append(out, pad("", labelWidth)+m.renderRow(lane, lane.Rows[ln.row], activeID))
		}
	}

	status := m.theme.Footer.Status.Render(m.status)
	if m.statusErr {
		status = m.theme.Footer.Error.Render(m.status)
	}
	out = append(out, status, m.theme.Footer.Help.Render(help))
	return strings.Join(out, "\n")
}

func (m *Model) renderRow(lane swimlane.Lane, row swimlane.Row, activeID string) string {
	bt := m.theme.Board
	sorted := append(swimlane.Row(nil), row...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartMonth < sorted[j].StartMonth
	})

	box := bt.Box.Background(theme.LaneColor(lane.Color()))
	activeBox := bt.BoxActive.Background(theme.LaneColor(lane.Color()))

	var b strings.Builder
	col := 0
	for _, f := range sorted {
		bounds := f.Bounds().Clamped()
		from := (bounds.Start - 1) * m.cell
		width := bounds.Span() * m.cell
		if from < col {
			continue
		}
		if from > col {
			b.WriteString(bt.Empty.Render(strings.Repeat("·", from-col)))
		}
		style := box
		if f.ID == activeID {
			style = activeBox
		}
		b.WriteString(style.Render(boxLabel(f.Name, width)))
		col = from + width
	}
	if end := m.cell * timeline.Months; col < end {
		b.WriteString(bt.Empty.Render(strings.Repeat("·", end-col)))
	}
	return b.String()
}

// boxLabel draws a feature exactly width cells wide with its edges marked.
func boxLabel(name string, width int) string {
	if width < 2 {
		return strings.Repeat("█", width)
	}
	return "[" + pad(name, width-2) + "]"
}

// pad fits s into exactly width terminal cells, cutting it when too long.
// Wide characters count as two cells.
func pad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	t := ansi.Truncate(s, width, "")
	return t + strings.Repeat(" ", width-lipgloss.Width(t))
}
