package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"tableflip.dev/roadmap/pkg/roadmap"
)

// SeedFile is the YAML document accepted by `roadmap seed`.
type SeedFile struct {
	Description string        `yaml:"description,omitempty"`
	Themes      []SeedTheme   `yaml:"themes"`
	Features    []SeedFeature `yaml:"features"`
}

// SeedTheme is a theme in a seed file. Features refer to it by Key, or by
// Name when Key is empty.
type SeedTheme struct {
	Key         string `yaml:"key,omitempty"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Color       string `yaml:"color,omitempty"`
}

// SeedFeature is a feature in a seed file. A zero Year means the year passed
// to Seed.
type SeedFeature struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Notes       string `yaml:"notes,omitempty"`
	Year        int    `yaml:"year,omitempty"`
	StartMonth  int    `yaml:"startMonth"`
	EndMonth    int    `yaml:"endMonth"`
	Theme       string `yaml:"theme,omitempty"`
}

// DefaultSeed is the sample roadmap: two themes and five features.
func DefaultSeed() SeedFile {
	return SeedFile{
		Description: "Annual product roadmap",
		Themes: []SeedTheme{
			{Key: "core", Name: "Core Platform", Description: "Foundational platform features", Color: "#3B82F6"},
			{Key: "analytics", Name: "Analytics & Insights", Description: "Data-driven features and reporting", Color: "#10B981"},
		},
		Features: []SeedFeature{
			{Name: "User Authentication", Description: "Complete user login and registration system", StartMonth: 1, EndMonth: 2, Theme: "core"},
			{Name: "Dashboard Analytics", Description: "Real-time analytics and reporting dashboard", StartMonth: 3, EndMonth: 4, Theme: "analytics"},
			{Name: "Mobile App", Description: "iOS and Android mobile applications", StartMonth: 4, EndMonth: 6, Theme: "core"},
			{Name: "API Integration", Description: "Third-party API integrations", StartMonth: 2, EndMonth: 4, Theme: "core"},
			{Name: "Performance Optimization", Description: "System performance improvements", StartMonth: 1, EndMonth: 3, Theme: "analytics"},
		},
	}
}

// ParseSeed decodes a YAML seed file.
func ParseSeed(data []byte) (SeedFile, error) {
	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return SeedFile{}, fmt.Errorf("app: parse seed: %w", err)
	}
	if len(seed.Themes) == 0 && len(seed.Features) == 0 {
		return SeedFile{}, errors.New("app: seed has no themes or features")
	}
	return seed, nil
}

// Seed adds the themes and features of seed to the current roadmap. All
// features are validated before anything is written.
func (s *Service) Seed(ctx context.Context, seed SeedFile, year int) (*roadmap.Snapshot, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	keys := make(map[string]int, len(seed.Themes))
	for i, t := range seed.Themes {
		if strings.TrimSpace(t.Name) == "" {
			return nil, fmt.Errorf("app: seed theme %d has no name", i)
		}
		key := t.Key
		if key == "" {
			key = t.Name
		}
		keys[key] = i
	}
	for _, f := range seed.Features {
		if f.Theme != "" {
			if _, ok := keys[f.Theme]; !ok {
				return nil, fmt.Errorf("%w: seed theme %q", ErrNotFound, f.Theme)
			}
		}
		bounds := roadmap.Feature{StartMonth: f.StartMonth, EndMonth: f.EndMonth}
		if err := bounds.Validate(); err != nil {
			return nil, fmt.Errorf("app: seed feature %q: %w", f.Name, err)
		}
	}

	if err := s.Persistence.EnsureRoadmap(s.name()); err != nil {
		return nil, err
	}

	ids := make([]string, len(seed.Themes))
	for i, st := range seed.Themes {
		t, err := s.AddTheme(ctx, st.Name, st.Color, st.Description)
		if err != nil {
			return nil, err
		}
		ids[i] = t.ID
	}
	for _, sf := range seed.Features {
		in := FeatureInput{
			Name:        sf.Name,
			Description: sf.Description,
			Notes:       sf.Notes,
			Year:        sf.Year,
			StartMonth:  sf.StartMonth,
			EndMonth:    sf.EndMonth,
		}
		if in.Year == 0 {
			in.Year = year
		}
		if sf.Theme != "" {
			in.ThemeID = ids[keys[sf.Theme]]
		}
		if _, err := s.AddFeature(ctx, in); err != nil {
			return nil, err
		}
	}
	s.Log.Info().
		Str("roadmap", s.name()).
		Int("themes", len(seed.Themes)).
		Int("features", len(seed.Features)).
		Msg("app: seeded")
	return s.Snapshot(ctx)
}
