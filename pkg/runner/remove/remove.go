// Package remove deletes features and themes.
package remove

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/roadmap/pkg/app"
)

type Kind string

const (
	Feature Kind = "feature"
	Theme   Kind = "theme"
)

type Remove struct {
	Service *app.Service
	Kind    Kind
	ID      string
	Out     io.Writer
}

func (r *Remove) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("can not delete, no service")
	}
	var err error
	switch r.Kind {
	case Feature:
		err = r.Service.DeleteFeature(ctx, r.ID)
	case Theme:
		err = r.Service.DeleteTheme(ctx, r.ID)
	default:
		return fmt.Errorf("can not delete %q", r.Kind)
	}
	if err != nil {
		return err
	}
	out := r.Out
	if out == nil {
		out = color.Output
	}
	_, _ = color.New(color.Faint).Fprintf(out, "deleted %s %s\n", r.Kind, r.ID)
	return nil
}
