// Package summary prints statistics for a roadmap year.
package summary

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/printers"
)

type Summary struct {
	Service *app.Service
	Year    int
	Format  string
	Out     io.Writer
}

func (s *Summary) Do(ctx context.Context) error {
	if s.Service == nil {
		return errors.New("can not summarize, no service")
	}
	sum, err := s.Service.Summary(ctx, s.Year)
	if err != nil {
		return err
	}
	out := s.Out
	if out == nil {
		out = color.Output
	}
	if s.Format != "" && s.Format != printers.FormatTable {
		return printers.Encode(out, s.Format, sum)
	}
	pp := printers.PrettyPrint{Out: out}
	pp.NewLine()
	pp.Summary(sum)
	return nil
}
