// Package add creates features and themes.
package add

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
	Input   app.FeatureInput
	Out     io.Writer
}

func (n *Feature) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}
	f, err := n.Service.AddFeature(ctx, n.Input)
	if err != nil {
		return err
	}
	themes, err := n.Service.Themes(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Title(n.Service.Name())
	pp.Table([]*roadmap.Feature{f}, themes)
	return nil
}

type Theme struct {
	Service     *app.Service
	Name        string
	Color       string
	Description string
	Out         io.Writer
}

func (n *Theme) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}
	t, err := n.Service.AddTheme(ctx, n.Name, n.Color, n.Description)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Title(n.Service.Name())
	pp.Themes([]*roadmap.Theme{t})
	return nil
}
