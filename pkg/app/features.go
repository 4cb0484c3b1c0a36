package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/roadmap/pkg/roadmap"
	"tableflip.dev/roadmap/pkg/timeline"
)

// FeatureInput describes a feature to create.
type FeatureInput struct {
	Name        string
	Description string
	Notes       string
	Year        int
	StartMonth  int
	EndMonth    int
	ThemeID     string
}

// FeatureEdit lists the fields to change on a feature. Nil fields are left
// alone; a ThemeID of "" moves the feature to the ungrouped lane.
type FeatureEdit struct {
	Name        *string
	Description *string
	Notes       *string
	Year        *int
	StartMonth  *int
	EndMonth    *int
	ThemeID     *string
}

// Feature returns the feature with the given id.
func (s *Service) Feature(ctx context.Context, id string) (*roadmap.Feature, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	f, ok := s.findFeature(ctx, id)
	if !ok {
		return nil, fmt.Errorf("%w: feature %q", ErrNotFound, id)
	}
	return f, nil
}

// Features lists the features of the current roadmap in creation order.
func (s *Service) Features(ctx context.Context) ([]*roadmap.Feature, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Features(ctx, s.name()), nil
}

// AddFeature validates and stores a new feature.
func (s *Service) AddFeature(ctx context.Context, in FeatureInput) (*roadmap.Feature, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.New("app: feature name required")
	}
	f := roadmap.New(s.name(), in.Name, in.Year, timeline.Bounds{Start: in.StartMonth, End: in.EndMonth})
	f.Description = in.Description
	f.Notes = in.Notes
	f.ThemeID = in.ThemeID
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if f.ThemeID != "" {
		if _, ok := s.findTheme(ctx, f.ThemeID); !ok {
			return nil, fmt.Errorf("%w: theme %q", ErrNotFound, f.ThemeID)
		}
	}
	if err := s.Persistence.EnsureRoadmap(s.name()); err != nil {
		return nil, err
	}
	if err := s.Persistence.StoreFeature(f); err != nil {
		return nil, err
	}
	return f, nil
}

// EditFeature applies edit to the feature with the given id.
func (s *Service) EditFeature(ctx context.Context, id string, edit FeatureEdit) (*roadmap.Feature, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	f, ok := s.findFeature(ctx, id)
	if !ok {
		return nil, fmt.Errorf("%w: feature %q", ErrNotFound, id)
	}
	if edit.Name != nil {
		name := strings.TrimSpace(*edit.Name)
		if name == "" {
			return nil, errors.New("app: feature name required")
		}
		f.Name = name
	}
	if edit.Description != nil {
		f.Description = *edit.Description
	}
	if edit.Notes != nil {
		f.Notes = *edit.Notes
	}
	if edit.Year != nil {
		f.Year = *edit.Year
	}
	f.Apply(roadmap.Patch{StartMonth: edit.StartMonth, EndMonth: edit.EndMonth, ThemeID: edit.ThemeID})
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if f.ThemeID != "" && edit.ThemeID != nil {
		if _, ok := s.findTheme(ctx, f.ThemeID); !ok {
			return nil, fmt.Errorf("%w: theme %q", ErrNotFound, f.ThemeID)
		}
	}
	if err := s.Persistence.StoreFeature(f); err != nil {
		return nil, err
	}
	return f, nil
}

// DeleteFeature removes a feature permanently.
func (s *Service) DeleteFeature(ctx context.Context, id string) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	f, ok := s.findFeature(ctx, id)
	if !ok {
		return fmt.Errorf("%w: feature %q", ErrNotFound, id)
	}
	return s.Persistence.DeleteFeature(f)
}
