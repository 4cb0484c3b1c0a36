// Package get prints a roadmap year laid out in swimlanes.
package get

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/printers"
	"tableflip.dev/roadmap/pkg/swimlane"
	"tableflip.dev/roadmap/pkg/timeline"
)

type Get struct {
	Service *app.Service
	Year    int
	Order   timeline.Order
	// Format is one of printers.FormatTable, FormatJSON or FormatYAML.
	Format string
	// Grid draws the lanes on a month grid instead of listing them.
	Grid   bool
	ShowID bool
	Out    io.Writer
}

func (g *Get) Do(ctx context.Context) error {
	if g.Service == nil {
		return errors.New("can not get, no service")
	}
	layout, err := g.Service.Layout(ctx, g.Year, swimlane.WithOrder(g.Order))
	if err != nil {
		return err
	}

	out := g.Out
	if out == nil {
		out = color.Output
	}
	switch g.Format {
	case "", printers.FormatTable:
	default:
		return printers.Encode(out, g.Format, layout)
	}

	pp := printers.PrettyPrint{ShowID: g.ShowID, Out: out}
	pp.NewLine()
	if g.Grid {
		pp.Grid(layout)
		pp.NewLine()
		return nil
	}
	pp.Layout(layout)
	return nil
}
