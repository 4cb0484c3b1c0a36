// Package edit changes stored features and themes.
package edit

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/printers"
	"tableflip.dev/roadmap/pkg/roadmap"
)

type Feature struct {
	Service *app.Service
	ID      string
	Edit    app.FeatureEdit
	Out     io.Writer
}

func (e *Feature) Do(ctx context.Context) error {
	if e.Service == nil {
		return errors.New("can not edit, no service")
	}
	f, err := e.Service.EditFeature(ctx, e.ID, e.Edit)
	if err != nil {
		return err
	}
	themes, err := e.Service.Themes(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: e.Out}
	pp.Table([]*roadmap.Feature{f}, themes)
	return nil
}

type Theme struct {
	Service *app.Service
	ID      string
	Edit    app.ThemeEdit
	Out     io.Writer
}

func (e *Theme) Do(ctx context.Context) error {
	if e.Service == nil {
		return errors.New("can not edit, no service")
	}
	t, err := e.Service.EditTheme(ctx, e.ID, e.Edit)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: e.Out}
	pp.Themes([]*roadmap.Theme{t})
	return nil
}
