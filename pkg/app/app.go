package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"tableflip.dev/roadmap/pkg/roadmap"
	"tableflip.dev/roadmap/pkg/store"
	"tableflip.dev/roadmap/pkg/swimlane"
)

// Service provides high-level operations for roadmaps, features and themes.
// It wraps persistence so UIs and CLIs can share logic.
type Service struct {
	Persistence store.Persistence
	// Roadmap is the roadmap operations apply to. Empty means
	// store.DefaultRoadmap.
	Roadmap string
	Log     zerolog.Logger
}

var (
	ErrNotFound  = errors.New("app: not found")
	ErrNoRoadmap = errors.New("app: roadmap does not exist")

	errNoPersistence = errors.New("app: no persistence configured")
)

func (s *Service) name() string {
	if n := strings.TrimSpace(s.Roadmap); n != "" {
		return n
	}
	return store.DefaultRoadmap
}

// Name is the roadmap the service operates on.
func (s *Service) Name() string {
	return s.name()
}

// Roadmaps lists the known roadmaps in creation order.
func (s *Service) Roadmaps(ctx context.Context) ([]roadmap.Meta, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Roadmaps(ctx), nil
}

// EnsureRoadmap creates the named roadmap if it does not exist yet.
func (s *Service) EnsureRoadmap(ctx context.Context, name string) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	return s.Persistence.EnsureRoadmap(name)
}

// DeleteRoadmap removes a roadmap along with its features and themes.
func (s *Service) DeleteRoadmap(ctx context.Context, name string) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	if !s.exists(ctx, name) {
		return fmt.Errorf("%w: %q", ErrNoRoadmap, name)
	}
	if err := s.Persistence.DeleteRoadmap(ctx, name); err != nil {
		s.Log.Error().Err(err).Str("roadmap", name).Msg("app: delete roadmap")
		return err
	}
	return nil
}

// RoadmapEdit lists roadmap fields to change; nil fields are left alone.
type RoadmapEdit struct {
	Name        *string
	Description *string
}

// EditRoadmap renames the named roadmap or changes its description. A
// service bound to the renamed roadmap follows it.
func (s *Service) EditRoadmap(ctx context.Context, name string, edit RoadmapEdit) (roadmap.Meta, error) {
	if s.Persistence == nil {
		return roadmap.Meta{}, errNoPersistence
	}
	var meta roadmap.Meta
	found := false
	for _, m := range s.Persistence.Roadmaps(ctx) {
		if m.Name == name {
			meta, found = m, true
			break
		}
	}
	if !found {
		return roadmap.Meta{}, fmt.Errorf("%w: %q", ErrNoRoadmap, name)
	}
	if edit.Name != nil {
		n := strings.TrimSpace(*edit.Name)
		if n == "" {
			return roadmap.Meta{}, errors.New("app: roadmap name required")
		}
		meta.Name = n
	}
	if edit.Description != nil {
		meta.Description = strings.TrimSpace(*edit.Description)
	}
	if err := s.Persistence.UpdateRoadmap(ctx, name, meta); err != nil {
		s.Log.Error().Err(err).Str("roadmap", name).Msg("app: edit roadmap")
		return roadmap.Meta{}, err
	}
	if s.name() == name {
		s.Roadmap = meta.Name
	}
	s.Log.Debug().Str("roadmap", name).Str("name", meta.Name).Msg("app: edit roadmap")
	return meta, nil
}

func (s *Service) exists(ctx context.Context, name string) bool {
	for _, m := range s.Persistence.Roadmaps(ctx) {
		if m.Name == name {
			return true
		}
	}
	return false
}

// Snapshot loads the current roadmap.
func (s *Service) Snapshot(ctx context.Context) (*roadmap.Snapshot, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Snapshot(ctx, s.name()), nil
}

// Layout loads the current roadmap and arranges year into swimlanes.
func (s *Service) Layout(ctx context.Context, year int, opts ...swimlane.Option) (swimlane.Layout, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return swimlane.Layout{}, err
	}
	return swimlane.Build(snap.Themes, snap.Features, year, opts...), nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// ApplyBoundsChange merges p into the feature with the given id and stores
// it. Unknown ids and empty patches are ignored. The months are not
// validated; callers are expected to hand in clamped values.
func (s *Service) ApplyBoundsChange(ctx context.Context, id string, p roadmap.Patch) error {
	_, err := s.applyBoundsChange(ctx, id, p)
	return err
}

// applyBoundsChange is ApplyBoundsChange that also reports whether the
// feature still exists in storage.
func (s *Service) applyBoundsChange(ctx context.Context, id string, p roadmap.Patch) (bool, error) {
	if s.Persistence == nil {
		return false, errNoPersistence
	}
	if p.Empty() {
		return true, nil
	}
	f, ok := s.findFeature(ctx, id)
	if !ok {
		s.Log.Debug().Str("feature", id).Str("patch", p.Describe()).Msg("app: commit for unknown feature")
		return false, nil
	}
	if !f.Apply(p) {
		s.Log.Debug().Str("feature", id).Str("patch", p.Describe()).Msg("app: commit changed nothing")
		return true, nil
	}
	if err := s.Persistence.StoreFeature(f); err != nil {
		s.Log.Error().Err(err).Str("feature", id).Msg("app: store commit")
		return true, err
	}
	s.Log.Debug().Str("feature", id).Str("patch", p.Describe()).Str("bounds", f.Bounds().String()).Msg("app: commit")
	return true, nil
}

func (s *Service) findFeature(ctx context.Context, id string) (*roadmap.Feature, bool) {
	for _, f := range s.Persistence.Features(ctx, s.name()) {
		if f.ID == id {
			return f, true
		}
	}
	return nil, false
}

func (s *Service) findTheme(ctx context.Context, id string) (*roadmap.Theme, bool) {
	for _, t := range s.Persistence.Themes(ctx, s.name()) {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}
