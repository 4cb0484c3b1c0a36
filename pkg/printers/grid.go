package printers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"tableflip.dev/roadmap/pkg/swimlane"
	"tableflip.dev/roadmap/pkg/timeline"
)

// GridOptions sizes the month grid.
type GridOptions struct {
	LabelWidth int
	CellWidth  int
}

// DefaultGridOptions fits the grid in 80 columns.
func DefaultGridOptions() GridOptions {
	return GridOptions{LabelWidth: 20, CellWidth: 5}
}

// Grid renders the layout as plain text: a month header, a quarter header,
// then per lane a title line and one line per packed row. Each feature is
// drawn as [name===] across the cells of its months.
func Grid(layout swimlane.Layout, opts GridOptions) []string {
	if opts.CellWidth < 3 {
		opts.CellWidth = 3
	}
	label := func(s string) string {
		return pad(s, opts.LabelWidth)
	}

	var months, quarters strings.Builder
	months.WriteString(label(fmt.Sprint(layout.Year)))
	quarters.WriteString(label(""))
	for m := timeline.FirstMonth; m <= timeline.LastMonth; m++ {
		months.WriteString(pad(timeline.MonthLabel(m), opts.CellWidth))
	}
	for q := 1; q <= len(timeline.QuarterLabels); q++ {
		quarters.WriteString(pad(timeline.QuarterLabel(q), opts.CellWidth*3))
	}

	lines := []string{
		strings.TrimRight(months.String(), " "),
		strings.TrimRight(quarters.String(), " "),
	}
	for _, lane := range layout.Lanes {
		lines = append(lines, label(fmt.Sprintf("%s (%d)", lane.Name(), lane.Count())))
		if len(lane.Rows) == 0 {
			lines = append(lines, label("")+strings.Repeat(".", opts.CellWidth*timeline.Months))
			continue
		}
		for _, row := range lane.Rows {
			lines = append(lines, label("")+GridRow(row, opts.CellWidth))
		}
	}
	return lines
}

// GridRow draws one packed row, cellWidth columns per month. Names are cut
// by display width, so wide characters never push later months out of line.
func GridRow(row swimlane.Row, cellWidth int) string {
	boxes := make([]timeline.Bounds, len(row))
	order := make([]int, len(row))
	for i, f := range row {
		boxes[i] = f.Bounds().Clamped()
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return boxes[order[a]].Start < boxes[order[b]].Start
	})

	var b strings.Builder
	col := 0
	for _, i := range order {
		from := (boxes[i].Start - 1) * cellWidth
		to := boxes[i].End * cellWidth
		if from < col {
			continue
		}
		b.WriteString(strings.Repeat(".", from-col))
		b.WriteString("[" + fill(row[i].Name, to-from-2, "=") + "]")
		col = to
	}
	b.WriteString(strings.Repeat(".", cellWidth*timeline.Months-col))
	return b.String()
}

// fill fits s into exactly width columns, padding with filler.
func fill(s string, width int, filler string) string {
	if width <= 0 {
		return ""
	}
	t := ansi.Truncate(s, width, "")
	return t + strings.Repeat(filler, width-ansi.StringWidth(t))
}

// pad fits s into width columns, keeping at least one trailing space when
// s has to be cut.
func pad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) < width {
		return fill(s, width, " ")
	}
	if width == 1 {
		return fill(s, width, " ")
	}
	return fill(s, width-1, " ") + " "
}
