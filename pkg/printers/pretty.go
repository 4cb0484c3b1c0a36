package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/roadmap"
	"tableflip.dev/roadmap/pkg/swimlane"
	"tableflip.dev/roadmap/pkg/timeline"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

var (
	spacing = strings.Repeat(" ", len("171dff69f8b99dca  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " feature")
	default:
		_, _ = c.Fprintln(pp.out(), " features")
	}
}

// Layout prints every lane with its packed rows.
func (pp *PrettyPrint) Layout(layout swimlane.Layout) {
	for _, lane := range layout.Lanes {
		pp.Lane(lane)
	}
}

func (pp *PrettyPrint) Lane(lane swimlane.Lane) {
	pp.TitleWithCount(lane.Name(), lane.Count())
	if lane.Count() == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(pp.out(), spacing)
		}
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	t := color.New()
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	r := color.New(color.Faint)

	for i, row := range lane.Rows {
		for _, f := range row {
			if pp.ShowID {
				_, _ = y.Fprint(pp.out(), f.ID)
				_, _ = y.Fprint(pp.out(), strings.Repeat(" ", max(1, len(spacing)-len(f.ID))))
			}
			_, _ = r.Fprintf(pp.out(), "%d ", i+1)
			_, _ = t.Fprintf(pp.out(), "%-9s %s\n", f.Bounds(), f.Name)
		}
	}
	_, _ = t.Fprintln(pp.out(), "")
}

// Table prints features as a table, resolving theme names.
func (pp *PrettyPrint) Table(features []*roadmap.Feature, themes []*roadmap.Theme) {
	names := make(map[string]string, len(themes))
	for _, t := range themes {
		names[t.ID] = t.Name
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Name"), bold.Sprint("Year"), bold.Sprint("Months"), bold.Sprint("Quarter"), bold.Sprint("Theme"))
	for _, f := range features {
		theme, ok := names[f.ThemeID]
		if !ok {
			theme = swimlane.UngroupedName
		}
		tbl.AddRow(f.ID, f.Name, f.Year, f.Bounds(), timeline.QuarterLabel(f.Quarter()), theme)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Themes prints themes as a table.
func (pp *PrettyPrint) Themes(themes []*roadmap.Theme) {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Name"), bold.Sprint("Color"), bold.Sprint("Description"))
	for _, t := range themes {
		tbl.AddRow(t.ID, t.Name, t.Color, t.Description)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Roadmaps prints the roadmap catalog, marking current.
func (pp *PrettyPrint) Roadmaps(metas []roadmap.Meta, current string) {
	if len(metas) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(pp.out(), " none")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, m := range metas {
		mark := " "
		if m.Name == current {
			mark = "*"
		}
		tbl.AddRow(mark, m.Name, m.Created, m.Description)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Project prints the project details followed by its people.
func (pp *PrettyPrint) Project(p *roadmap.Project) {
	pp.Title(p.Name)
	faint := color.New(color.Faint)
	if p.Description != "" {
		_, _ = fmt.Fprintln(pp.out(), p.Description)
	}
	_, _ = faint.Fprintf(pp.out(), "%s", p.Team)
	if !p.Updated.IsZero() {
		_, _ = faint.Fprintf(pp.out(), ", updated %s", p.Updated)
	}
	pp.NewLine()
	pp.NewLine()
	pp.People("Team Members", p.Members)
	pp.People("Stakeholders", p.Stakeholders)
}

// People prints one people list under title.
func (pp *PrettyPrint) People(title string, people []roadmap.Person) {
	pp.Title(title)
	if len(people) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprint(pp.out(), " none\n\n")
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Name"), bold.Sprint("Role"), bold.Sprint("Email"))
	for _, person := range people {
		tbl.AddRow(person.ID, person.Name, person.Role, person.Email)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Summary prints the statistics of a roadmap year.
func (pp *PrettyPrint) Summary(sum app.Summary) {
	pp.Title(fmt.Sprintf("%s %d", sum.Roadmap, sum.Year))
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Total"), sum.Total)
	for i, n := range sum.Quarters {
		tbl.AddRow(timeline.QuarterLabel(i+1), n)
	}
	for _, t := range sum.Themes {
		tbl.AddRow(t.Name, t.Count)
	}
	tbl.AddRow(swimlane.UngroupedName, sum.Unassigned)
	tbl.AddRow(bold.Sprint("Coverage"), fmt.Sprintf("%d%%", sum.Coverage))
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Grid prints the layout as a month grid.
func (pp *PrettyPrint) Grid(layout swimlane.Layout) {
	bold := color.New(color.Bold)
	for i, line := range Grid(layout, DefaultGridOptions()) {
		if i < 2 {
			_, _ = bold.Fprintln(pp.out(), line)
			continue
		}
		_, _ = fmt.Fprintln(pp.out(), line)
	}
}
