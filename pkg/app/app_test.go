package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/roadmap/pkg/drag"
	"tableflip.dev/roadmap/pkg/roadmap"
	"tableflip.dev/roadmap/pkg/store"
	"tableflip.dev/roadmap/pkg/timeline"
)

type memoryPersistence struct {
	mu       sync.Mutex
	counter  int
	writes   int
	roadmaps []roadmap.Meta
	features map[string][]*roadmap.Feature
	themes   map[string][]*roadmap.Theme
	project  *roadmap.Project
}

func newMemoryPersistence() *memoryPersistence {
	return &memoryPersistence{
		features: make(map[string][]*roadmap.Feature),
		themes:   make(map[string][]*roadmap.Theme),
	}
}

func (m *memoryPersistence) newID() string {
	m.counter++
	return fmt.Sprintf("id-%d", m.counter)
}

func (m *memoryPersistence) Roadmaps(_ context.Context) []roadmap.Meta {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]roadmap.Meta(nil), m.roadmaps...)
}

func (m *memoryPersistence) EnsureRoadmap(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("roadmap required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.roadmaps {
		if r.Name == name {
			return nil
		}
	}
	m.roadmaps = append(m.roadmaps, roadmap.Meta{Name: name})
	return nil
}

func (m *memoryPersistence) DeleteRoadmap(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.roadmaps[:0]
	for _, r := range m.roadmaps {
		if r.Name != name {
			kept = append(kept, r)
		}
	}
	m.roadmaps = kept
	delete(m.features, name)
	delete(m.themes, name)
	return nil
}

func (m *memoryPersistence) UpdateRoadmap(_ context.Context, name string, meta roadmap.Meta) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	at := -1
	for i, r := range m.roadmaps {
		if r.Name == meta.Name && meta.Name != name {
			return store.ErrRoadmapExists
		}
		if r.Name == name {
			at = i
		}
	}
	if at < 0 {
		return fmt.Errorf("no roadmap %q", name)
	}
	m.roadmaps[at] = meta
	if meta.Name != name {
		for _, f := range m.features[name] {
			f.Roadmap = meta.Name
		}
		for _, t := range m.themes[name] {
			t.Roadmap = meta.Name
		}
		m.features[meta.Name], m.themes[meta.Name] = m.features[name], m.themes[name]
		delete(m.features, name)
		delete(m.themes, name)
	}
	return nil
}

func (m *memoryPersistence) Project(context.Context) *roadmap.Project {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.project.Clone()
}

func (m *memoryPersistence) StoreProject(p *roadmap.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	m.project = p.Clone()
	return nil
}

func (m *memoryPersistence) Snapshot(ctx context.Context, name string) *roadmap.Snapshot {
	return &roadmap.Snapshot{
		Meta:     roadmap.Meta{Name: name},
		Themes:   m.Themes(ctx, name),
		Features: m.Features(ctx, name),
	}
}

func (m *memoryPersistence) Features(_ context.Context, name string) []*roadmap.Feature {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*roadmap.Feature, 0, len(m.features[name]))
	for _, f := range m.features[name] {
		out = append(out, f.Clone())
	}
	return out
}

func (m *memoryPersistence) Themes(_ context.Context, name string) []*roadmap.Theme {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*roadmap.Theme, 0, len(m.themes[name]))
	for _, t := range m.themes[name] {
		out = append(out, t.Clone())
	}
	return out
}

func (m *memoryPersistence) StoreFeature(f *roadmap.Feature) error {
	if f == nil {
		return errors.New("nil feature")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if f.Roadmap == "" {
		return errors.New("missing roadmap")
	}
	if f.ID == "" {
		f.ID = m.newID()
	}
	m.writes++
	list := m.features[f.Roadmap]
	for i, existing := range list {
		if existing.ID == f.ID {
			list[i] = f.Clone()
			return nil
		}
	}
	m.features[f.Roadmap] = append(list, f.Clone())
	return nil
}

func (m *memoryPersistence) DeleteFeature(f *roadmap.Feature) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.features[f.Roadmap]
	for i, existing := range list {
		if existing.ID == f.ID {
			m.features[f.Roadmap] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memoryPersistence) StoreTheme(t *roadmap.Theme) error {
	if t == nil {
		return errors.New("nil theme")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == "" {
		t.ID = m.newID()
	}
	m.writes++
	list := m.themes[t.Roadmap]
	for i, existing := range list {
		if existing.ID == t.ID {
			list[i] = t.Clone()
			return nil
		}
	}
	m.themes[t.Roadmap] = append(list, t.Clone())
	return nil
}

func (m *memoryPersistence) DeleteTheme(t *roadmap.Theme) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.themes[t.Roadmap]
	for i, existing := range list {
		if existing.ID == t.ID {
			m.themes[t.Roadmap] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memoryPersistence) Watch(context.Context) (<-chan store.Event, error) {
	return nil, nil
}

func newService() (*Service, *memoryPersistence) {
	mp := newMemoryPersistence()
	return &Service{Persistence: mp, Roadmap: "Plan"}, mp
}

func TestAddFeatureValidatesBounds(t *testing.T) {
	svc, mp := newService()
	ctx := context.Background()

	for _, in := range []FeatureInput{
		{Name: "zero", StartMonth: 0, EndMonth: 2},
		{Name: "past", StartMonth: 3, EndMonth: 13},
		{Name: "reversed", StartMonth: 5, EndMonth: 4},
	} {
		_, err := svc.AddFeature(ctx, in)
		assert.ErrorIs(t, err, roadmap.ErrInvalidBounds, in.Name)
	}
	_, err := svc.AddFeature(ctx, FeatureInput{Name: "  ", StartMonth: 1, EndMonth: 1})
	assert.Error(t, err)
	_, err = svc.AddFeature(ctx, FeatureInput{Name: "ghost", StartMonth: 1, EndMonth: 1, ThemeID: "nope"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, mp.writes)

	f, err := svc.AddFeature(ctx, FeatureInput{Name: "Auth", Year: 2025, StartMonth: 1, EndMonth: 2})
	require.NoError(t, err)
	assert.NotEmpty(t, f.ID)
	assert.Equal(t, "Plan", f.Roadmap)
	assert.Equal(t, 1, f.Quarter())

	metas, err := svc.Roadmaps(ctx)
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, "Plan", metas[0].Name)
}

func TestApplyBoundsChange(t *testing.T) {
	svc, mp := newService()
	ctx := context.Background()
	f, err := svc.AddFeature(ctx, FeatureInput{Name: "Auth", Year: 2025, StartMonth: 1, EndMonth: 2})
	require.NoError(t, err)
	theme, err := svc.AddTheme(ctx, "Core", "", "")
	require.NoError(t, err)
	writes := mp.writes

	require.NoError(t, svc.ApplyBoundsChange(ctx, "missing", roadmap.StartPatch(3)))
	require.NoError(t, svc.ApplyBoundsChange(ctx, f.ID, roadmap.Patch{}))
	require.NoError(t, svc.ApplyBoundsChange(ctx, f.ID, roadmap.StartPatch(1)))
	assert.Equal(t, writes, mp.writes, "no-op commits are not written")

	require.NoError(t, svc.ApplyBoundsChange(ctx, f.ID, roadmap.BoundsPatch(timeline.Bounds{Start: 4, End: 6}).WithTheme(theme.ID)))
	got, err := svc.Feature(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, timeline.Bounds{Start: 4, End: 6}, got.Bounds())
	assert.Equal(t, theme.ID, got.ThemeID)
	assert.Equal(t, "Auth", got.Name, "fields outside the patch are untouched")
}

func TestEditFeature(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	f, err := svc.AddFeature(ctx, FeatureInput{Name: "Auth", Year: 2025, StartMonth: 2, EndMonth: 4})
	require.NoError(t, err)

	end := 1
	_, err = svc.EditFeature(ctx, f.ID, FeatureEdit{EndMonth: &end})
	assert.ErrorIs(t, err, roadmap.ErrInvalidBounds)

	name, start, year := "Login", 1, 2026
	got, err := svc.EditFeature(ctx, f.ID, FeatureEdit{Name: &name, StartMonth: &start, EndMonth: &end, Year: &year})
	require.NoError(t, err)
	assert.Equal(t, "Login", got.Name)
	assert.Equal(t, timeline.Bounds{Start: 1, End: 1}, got.Bounds())
	assert.Equal(t, 2026, got.Year)

	_, err = svc.EditFeature(ctx, "nope", FeatureEdit{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteThemeUngroupsFeatures(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	core, err := svc.AddTheme(ctx, "Core", "", "")
	require.NoError(t, err)
	data, err := svc.AddTheme(ctx, "Data", "", "")
	require.NoError(t, err)
	assert.Equal(t, roadmap.PaletteColor(0), core.Color)
	assert.Equal(t, roadmap.PaletteColor(1), data.Color)

	a, err := svc.AddFeature(ctx, FeatureInput{Name: "a", Year: 2025, StartMonth: 1, EndMonth: 1, ThemeID: core.ID})
	require.NoError(t, err)
	b, err := svc.AddFeature(ctx, FeatureInput{Name: "b", Year: 2025, StartMonth: 1, EndMonth: 1, ThemeID: data.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTheme(ctx, core.ID))
	themes, err := svc.Themes(ctx)
	require.NoError(t, err)
	require.Len(t, themes, 1)

	got, err := svc.Feature(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, got.Ungrouped())
	got, err = svc.Feature(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, data.ID, got.ThemeID)

	assert.ErrorIs(t, svc.DeleteTheme(ctx, core.ID), ErrNotFound)
}

func TestDeleteRoadmap(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	assert.ErrorIs(t, svc.DeleteRoadmap(ctx, "Plan"), ErrNoRoadmap)

	_, err := svc.AddFeature(ctx, FeatureInput{Name: "a", Year: 2025, StartMonth: 1, EndMonth: 1})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteRoadmap(ctx, "Plan"))
	features, err := svc.Features(ctx)
	require.NoError(t, err)
	assert.Empty(t, features)
}

func TestSeedAndSummary(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	snap, err := svc.Seed(ctx, DefaultSeed(), 2025)
	require.NoError(t, err)
	require.Len(t, snap.Themes, 2)
	require.Len(t, snap.Features, 5)

	layout, err := svc.Layout(ctx, 2025)
	require.NoError(t, err)
	require.Len(t, layout.Lanes, 3)
	assert.Equal(t, "Core Platform", layout.Lanes[0].Name())
	assert.Len(t, layout.Lanes[0].Rows, 2, "auth and mobile share a row, api overlaps auth")

	sum, err := svc.Summary(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 5, sum.Total)
	assert.Equal(t, [4]int{4, 1, 0, 0}, sum.Quarters)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, sum.CoveredMonths)
	assert.Equal(t, 50, sum.Coverage)
	assert.Zero(t, sum.Unassigned)
	require.Len(t, sum.Themes, 2)
	assert.Equal(t, 3, sum.Themes[0].Count)
	assert.Equal(t, 2, sum.Themes[1].Count)

	empty, err := svc.Summary(ctx, 2030)
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
	assert.Zero(t, empty.Coverage)
}

func TestSeedRejectsBadFeatureBeforeWriting(t *testing.T) {
	svc, mp := newService()
	seed := DefaultSeed()
	seed.Features = append(seed.Features, SeedFeature{Name: "broken", StartMonth: 9, EndMonth: 2})

	_, err := svc.Seed(context.Background(), seed, 2025)
	assert.ErrorIs(t, err, roadmap.ErrInvalidBounds)
	assert.Zero(t, mp.writes)

	seed = DefaultSeed()
	seed.Features[0].Theme = "unknown"
	_, err = svc.Seed(context.Background(), seed, 2025)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParseSeed(t *testing.T) {
	seed, err := ParseSeed([]byte(`
themes:
  - name: Platform
    color: "#123456"
features:
  - name: Billing
    startMonth: 7
    endMonth: 9
    theme: Platform
  - name: Launch
    year: 2026
    startMonth: 1
    endMonth: 1
`))
	require.NoError(t, err)
	require.Len(t, seed.Themes, 1)
	require.Len(t, seed.Features, 2)
	assert.Equal(t, "Platform", seed.Features[0].Theme)
	assert.Equal(t, 2026, seed.Features[1].Year)

	svc, _ := newService()
	snap, err := svc.Seed(context.Background(), seed, 2025)
	require.NoError(t, err)
	require.Len(t, snap.Features, 2)
	assert.Equal(t, snap.Themes[0].ID, snap.Features[0].ThemeID)
	assert.Equal(t, 2025, snap.Features[0].Year)
	assert.Equal(t, "#123456", snap.Themes[0].Color)

	_, err = ParseSeed([]byte("themes: []\n"))
	assert.Error(t, err)
	_, err = ParseSeed([]byte("features: [oops"))
	assert.Error(t, err)
}

func TestLiveFollowsDragCommits(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	core, err := svc.AddTheme(ctx, "Core", "", "")
	require.NoError(t, err)
	f, err := svc.AddFeature(ctx, FeatureInput{Name: "a", Year: 2025, StartMonth: 3, EndMonth: 5})
	require.NoError(t, err)

	live, err := svc.Live(ctx)
	require.NoError(t, err)
	c := drag.New(live, live)

	_, err = c.Nudge(ctx, drag.Move, f.ID, 10, &drag.Drop{ThemeID: core.ID})
	require.NoError(t, err)

	loaded, ok := live.Feature(f.ID)
	require.True(t, ok)
	assert.Equal(t, timeline.Bounds{Start: 10, End: 12}, loaded.Bounds())
	assert.Equal(t, core.ID, loaded.ThemeID)

	stored, err := svc.Feature(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, loaded.Bounds(), stored.Bounds())
	assert.Equal(t, core.ID, stored.ThemeID)

	// edits made elsewhere show up after a reload
	name := "renamed"
	_, err = svc.EditFeature(ctx, f.ID, FeatureEdit{Name: &name})
	require.NoError(t, err)
	require.NoError(t, live.Reload(ctx))
	loaded, _ = live.Feature(f.ID)
	assert.Equal(t, "renamed", loaded.Name)
}

func TestLiveDropsFeatureDeletedMidGesture(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	f, err := svc.AddFeature(ctx, FeatureInput{Name: "a", Year: 2025, StartMonth: 3, EndMonth: 5})
	require.NoError(t, err)

	live, err := svc.Live(ctx)
	require.NoError(t, err)
	c := drag.New(live, live)
	require.True(t, c.Begin(drag.Move, f.ID, 0, 12))

	require.NoError(t, svc.DeleteFeature(ctx, f.ID))

	up, ok := c.Move(ctx, 2)
	require.True(t, ok)
	assert.True(t, up.Missing)
	assert.False(t, up.Committed)
	_, ok = live.Feature(f.ID)
	assert.False(t, ok, "the loaded copy forgets the feature")

	up, _ = c.Move(ctx, 4)
	assert.True(t, up.Missing)
	up, _ = c.Release(ctx, 4, nil)
	assert.True(t, up.Missing)

	_, err = svc.Feature(ctx, f.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLiveOrphanedFeatureStaysInUngroupedLane(t *testing.T) {
	svc, mp := newService()
	ctx := context.Background()
	core, err := svc.AddTheme(ctx, "Core", "", "")
	require.NoError(t, err)
	orphan := &roadmap.Feature{Roadmap: "Plan", Name: "orphan", Year: 2025, StartMonth: 3, EndMonth: 5, ThemeID: "gone"}
	require.NoError(t, mp.StoreFeature(orphan))

	live, err := svc.Live(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", live.Lane(orphan.ID))
	c := drag.New(live, live)

	// a click with no motion in its own lane commits nothing
	require.True(t, c.Begin(drag.Move, orphan.ID, 5, 12))
	up, ok := c.Release(ctx, 5, &drag.Drop{ThemeID: ""})
	require.True(t, ok)
	assert.False(t, up.Committed)
	stored, err := svc.Feature(ctx, orphan.ID)
	require.NoError(t, err)
	assert.Equal(t, "gone", stored.ThemeID)

	require.True(t, c.Begin(drag.Move, orphan.ID, 5, 12))
	up, _ = c.Release(ctx, 5, &drag.Drop{ThemeID: core.ID})
	assert.True(t, up.Committed)
	stored, err = svc.Feature(ctx, orphan.ID)
	require.NoError(t, err)
	assert.Equal(t, core.ID, stored.ThemeID)
	assert.Equal(t, core.ID, live.Lane(orphan.ID))
}
