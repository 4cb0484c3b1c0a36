package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/roadmap/pkg/roadmap"
)

// ThemeEdit lists the fields to change on a theme. Nil fields are left alone.
type ThemeEdit struct {
	Name        *string
	Description *string
	Color       *string
}

// Themes lists the themes of the current roadmap in display order.
func (s *Service) Themes(ctx context.Context) ([]*roadmap.Theme, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Themes(ctx, s.name()), nil
}

// AddTheme stores a new theme. An empty color picks the next palette color.
func (s *Service) AddTheme(ctx context.Context, name, color, description string) (*roadmap.Theme, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("app: theme name required")
	}
	existing := s.Persistence.Themes(ctx, s.name())
	t := roadmap.NewTheme(s.name(), name, color, len(existing))
	t.Description = description
	if err := s.Persistence.EnsureRoadmap(s.name()); err != nil {
		return nil, err
	}
	if err := s.Persistence.StoreTheme(t); err != nil {
		return nil, err
	}
	return t, nil
}

// EditTheme applies edit to the theme with the given id.
func (s *Service) EditTheme(ctx context.Context, id string, edit ThemeEdit) (*roadmap.Theme, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	t, ok := s.findTheme(ctx, id)
	if !ok {
		return nil, fmt.Errorf("%w: theme %q", ErrNotFound, id)
	}
	if edit.Name != nil {
		name := strings.TrimSpace(*edit.Name)
		if name == "" {
			return nil, errors.New("app: theme name required")
		}
		t.Name = name
	}
	if edit.Description != nil {
		t.Description = *edit.Description
	}
	if edit.Color != nil && strings.TrimSpace(*edit.Color) != "" {
		t.Color = strings.TrimSpace(*edit.Color)
	}
	if err := s.Persistence.StoreTheme(t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTheme removes a theme. Its features are kept and become ungrouped.
func (s *Service) DeleteTheme(ctx context.Context, id string) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	t, ok := s.findTheme(ctx, id)
	if !ok {
		return fmt.Errorf("%w: theme %q", ErrNotFound, id)
	}
	for _, f := range s.Persistence.Features(ctx, s.name()) {
		if f.ThemeID != id {
			continue
		}
		f.ThemeID = ""
		if err := s.Persistence.StoreFeature(f); err != nil {
			return err
		}
	}
	return s.Persistence.DeleteTheme(t)
}
