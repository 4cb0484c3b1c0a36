// Package seed fills a roadmap with sample themes and features.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/printers"
	"tableflip.dev/roadmap/pkg/swimlane"
)

type Seed struct {
	Service *app.Service
	// File is a YAML seed file. Empty uses the built-in sample roadmap.
	File string
	Year int
	Out  io.Writer
}

func (s *Seed) Do(ctx context.Context) error {
	if s.Service == nil {
		return errors.New("can not seed, no service")
	}
	sf := app.DefaultSeed()
	if s.File != "" {
		data, err := os.ReadFile(s.File)
		if err != nil {
			return fmt.Errorf("read seed: %w", err)
		}
		if sf, err = app.ParseSeed(data); err != nil {
			return err
		}
	}

	snap, err := s.Service.Seed(ctx, sf, s.Year)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: s.Out}
	pp.NewLine()
	pp.Grid(swimlane.Build(snap.Themes, snap.Features, s.Year))
	return nil
}
