// Package roadmaps lists, creates, edits and deletes roadmaps.
package roadmaps

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/printers"
)

type Roadmaps struct {
	Service *app.Service
	Create  string
	Delete  string
	// Edit is applied to the service's roadmap when it changes anything.
	Edit app.RoadmapEdit
	Out  io.Writer
}

func (r *Roadmaps) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("can not list roadmaps, no service")
	}
	if r.Create != "" {
		if err := r.Service.EnsureRoadmap(ctx, r.Create); err != nil {
			return err
		}
	}
	if r.Edit.Name != nil || r.Edit.Description != nil {
		if _, err := r.Service.EditRoadmap(ctx, r.Service.Name(), r.Edit); err != nil {
			return err
		}
	}
	if r.Delete != "" {
		if err := r.Service.DeleteRoadmap(ctx, r.Delete); err != nil {
			return err
		}
	}

	metas, err := r.Service.Roadmaps(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: r.Out}
	pp.NewLine()
	pp.Title("Roadmaps")
	pp.Roadmaps(metas, r.Service.Name())
	return nil
}
