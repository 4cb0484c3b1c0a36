// Package ui opens the interactive board.
package ui

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/timeline"
	"tableflip.dev/roadmap/pkg/tui/board"
)

type UI struct {
	Service *app.Service
	Year    int
	Order   timeline.Order
	Log     zerolog.Logger
}

func (u *UI) Do(ctx context.Context) error {
	if u.Service == nil {
		return errors.New("can not open ui, no service")
	}
	if err := u.Service.EnsureRoadmap(ctx, u.Service.Name()); err != nil {
		return err
	}
	return board.Run(ctx, u.Service,
		board.WithYear(u.Year),
		board.WithOrder(u.Order),
		board.WithLogger(u.Log),
	)
}
