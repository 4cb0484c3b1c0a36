// Package mcp provides the Model Context Protocol server integration for
// roadmaps.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/drag"
	"tableflip.dev/roadmap/pkg/roadmap"
	"tableflip.dev/roadmap/pkg/swimlane"
	"tableflip.dev/roadmap/pkg/timeline"
)

// Service adapts app.Service to transport-friendly values for the MCP server.
type Service struct {
	App *app.Service
	// Year is used when a request names no year.
	Year int
	Log  zerolog.Logger
}

// FeatureDTO is a transport-friendly projection of a feature.
type FeatureDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Year        int    `json:"year"`
	StartMonth  int    `json:"startMonth"`
	EndMonth    int    `json:"endMonth"`
	Months      string `json:"months"`
	Quarter     string `json:"quarter"`
	ThemeID     string `json:"themeId,omitempty"`
	Theme       string `json:"theme"`
	CreatedISO  string `json:"created"`
}

// LaneDTO is one swimlane with its packed rows.
type LaneDTO struct {
	ThemeID string         `json:"themeId,omitempty"`
	Name    string         `json:"name"`
	Color   string         `json:"color"`
	Count   int            `json:"count"`
	Rows    [][]FeatureDTO `json:"rows"`
}

// LayoutDTO is a roadmap year arranged into swimlanes.
type LayoutDTO struct {
	Roadmap string    `json:"roadmap"`
	Year    int       `json:"year"`
	Lanes   []LaneDTO `json:"lanes"`
}

// DragResult reports a move or resize.
type DragResult struct {
	Feature   FeatureDTO `json:"feature"`
	From      string     `json:"from"`
	Committed bool       `json:"committed"`
}

// NewService builds a service wrapper around svc.
func NewService(svc *app.Service, year int) *Service {
	return &Service{App: svc, Year: year, Log: svc.Log}
}

func (s *Service) year(v int) int {
	if v != 0 {
		return v
	}
	return s.Year
}

func (s *Service) check() error {
	if s == nil || s.App == nil {
		return errors.New("roadmap service is not configured")
	}
	return nil
}

// ListFeatures returns the features of year, or of every year when year is 0.
func (s *Service) ListFeatures(ctx context.Context, year int) ([]FeatureDTO, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	snap, err := s.App.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]FeatureDTO, 0, len(snap.Features))
	for _, f := range snap.Features {
		if year != 0 && f.Year != year {
			continue
		}
		out = append(out, toFeatureDTO(f, snap))
	}
	return out, nil
}

// FeatureByID returns one feature.
func (s *Service) FeatureByID(ctx context.Context, id string) (FeatureDTO, error) {
	if err := s.check(); err != nil {
		return FeatureDTO{}, err
	}
	snap, err := s.App.Snapshot(ctx)
	if err != nil {
		return FeatureDTO{}, err
	}
	f, ok := snap.Feature(id)
	if !ok {
		return FeatureDTO{}, fmt.Errorf("%w: feature %q", app.ErrNotFound, id)
	}
	return toFeatureDTO(f, snap), nil
}

// Layout arranges year into swimlanes.
func (s *Service) Layout(ctx context.Context, year int, order timeline.Order) (LayoutDTO, error) {
	if err := s.check(); err != nil {
		return LayoutDTO{}, err
	}
	snap, err := s.App.Snapshot(ctx)
	if err != nil {
		return LayoutDTO{}, err
	}
	layout := swimlane.Build(snap.Themes, snap.Features, year, swimlane.WithOrder(order))
	out := LayoutDTO{Roadmap: s.App.Name(), Year: year, Lanes: make([]LaneDTO, 0, len(layout.Lanes))}
	for _, lane := range layout.Lanes {
		l := LaneDTO{
			ThemeID: lane.ThemeID,
			Name:    lane.Name(),
			Color:   lane.Color(),
			Count:   lane.Count(),
			Rows:    make([][]FeatureDTO, 0, len(lane.Rows)),
		}
		for _, row := range lane.Rows {
			r := make([]FeatureDTO, 0, len(row))
			for _, f := range row {
				r = append(r, toFeatureDTO(f, snap))
			}
			l.Rows = append(l.Rows, r)
		}
		out.Lanes = append(out.Lanes, l)
	}
	return out, nil
}

// Summary reports statistics for year.
func (s *Service) Summary(ctx context.Context, year int) (app.Summary, error) {
	if err := s.check(); err != nil {
		return app.Summary{}, err
	}
	return s.App.Summary(ctx, year)
}

// Themes lists the themes in lane order.
func (s *Service) Themes(ctx context.Context) ([]*roadmap.Theme, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return s.App.Themes(ctx)
}

// AddFeature creates a feature.
func (s *Service) AddFeature(ctx context.Context, in app.FeatureInput) (FeatureDTO, error) {
	if err := s.check(); err != nil {
		return FeatureDTO{}, err
	}
	f, err := s.App.AddFeature(ctx, in)
	if err != nil {
		return FeatureDTO{}, err
	}
	return s.FeatureByID(ctx, f.ID)
}

// AddTheme creates a theme.
func (s *Service) AddTheme(ctx context.Context, name, color, description string) (*roadmap.Theme, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return s.App.AddTheme(ctx, name, color, description)
}

// DeleteFeature removes a feature.
func (s *Service) DeleteFeature(ctx context.Context, id string) error {
	if err := s.check(); err != nil {
		return err
	}
	return s.App.DeleteFeature(ctx, id)
}

// Drag shifts a feature or one of its edges by delta months, with the same
// clamping as a board gesture. themeID, when not nil, regroups a move.
func (s *Service) Drag(ctx context.Context, kind drag.Kind, id string, delta int, themeID *string) (DragResult, error) {
	if err := s.check(); err != nil {
		return DragResult{}, err
	}
	live, err := s.App.Live(ctx)
	if err != nil {
		return DragResult{}, err
	}
	var drop *drag.Drop
	if themeID != nil {
		if *themeID != "" {
			if _, ok := live.Snapshot().Theme(*themeID); !ok {
				return DragResult{}, fmt.Errorf("%w: theme %q", app.ErrNotFound, *themeID)
			}
		}
		drop = &drag.Drop{ThemeID: *themeID}
	}
	var from string
	if f, ok := live.Feature(id); ok {
		from = f.Bounds().String()
	}

	ctrl := drag.New(live, live, drag.WithLogger(s.Log))
	up, err := ctrl.Nudge(ctx, kind, id, delta, drop)
	if errors.Is(err, drag.ErrNoGesture) {
		return DragResult{}, fmt.Errorf("%w: feature %q", app.ErrNotFound, id)
	}
	if err != nil {
		return DragResult{}, err
	}
	snap := live.Snapshot()
	f, _ := snap.Feature(id)
	return DragResult{Feature: toFeatureDTO(f, snap), From: from, Committed: up.Committed}, nil
}

func toFeatureDTO(f *roadmap.Feature, snap *roadmap.Snapshot) FeatureDTO {
	dto := FeatureDTO{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Notes:       f.Notes,
		Year:        f.Year,
		StartMonth:  f.StartMonth,
		EndMonth:    f.EndMonth,
		Months:      f.Bounds().String(),
		Quarter:     timeline.QuarterLabel(f.Quarter()),
		ThemeID:     f.ThemeID,
		Theme:       swimlane.UngroupedName,
	}
	if t, ok := snap.Theme(f.ThemeID); ok {
		dto.Theme = t.Name
	}
	if !f.Created.IsZero() {
		dto.CreatedISO = roadmap.FormatTime(f.Created.Time)
	}
	return dto
}

// ParseKind maps a tool argument to a gesture kind.
func ParseKind(value string) (drag.Kind, error) {
	switch value {
	case "", "move":
		return drag.Move, nil
	case "start", "resize-start":
		return drag.ResizeStart, nil
	case "end", "resize-end":
		return drag.ResizeEnd, nil
	}
	return 0, fmt.Errorf("unknown edge %q (expected start or end)", value)
}
