package drag

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/roadmap/pkg/roadmap"
	"tableflip.dev/roadmap/pkg/timeline"
)

// width gives every month ten units, so month m starts at (m-1)*10.
const width = 120.0

func at(month int) float64 { return float64(month-1) * 10 }

type call struct {
	id    string
	patch roadmap.Patch
}

type fakeStore struct {
	features map[string]*roadmap.Feature
	calls    []call
	fail     error
}

func newFakeStore(features ...*roadmap.Feature) *fakeStore {
	s := &fakeStore{features: make(map[string]*roadmap.Feature)}
	for _, f := range features {
		s.features[f.ID] = f
	}
	return s
}

func (s *fakeStore) Feature(id string) (*roadmap.Feature, bool) {
	f, ok := s.features[id]
	return f, ok
}

func (s *fakeStore) ApplyBoundsChange(_ context.Context, id string, p roadmap.Patch) error {
	s.calls = append(s.calls, call{id: id, patch: p})
	if s.fail != nil {
		return s.fail
	}
	if f, ok := s.features[id]; ok {
		f.Apply(p)
	}
	return nil
}

func feat(id string, start, end int, theme string) *roadmap.Feature {
	return &roadmap.Feature{ID: id, Name: id, Year: 2025, StartMonth: start, EndMonth: end, ThemeID: theme}
}

func TestMoveClampsAtAxisEnd(t *testing.T) {
	f := feat("f", 3, 5, "")
	store := newFakeStore(f)
	c := New(store, store)

	require.True(t, c.Begin(Move, "f", at(1), width))
	up, ok := c.Move(context.Background(), at(11))
	require.True(t, ok)
	assert.True(t, up.Committed)
	assert.Equal(t, timeline.Bounds{Start: 10, End: 12}, up.Bounds)
	assert.Equal(t, timeline.Bounds{Start: 10, End: 12}, f.Bounds())

	_, ok = c.Release(context.Background(), at(11), nil)
	require.True(t, ok)
	_, active := c.Active()
	assert.False(t, active)
	assert.Len(t, store.calls, 1, "release at the same position commits nothing new")
}

func TestMoveClampsAtAxisStart(t *testing.T) {
	f := feat("f", 4, 6, "")
	store := newFakeStore(f)
	c := New(store, store)

	require.True(t, c.Begin(Move, "f", at(12), width))
	_, _ = c.Move(context.Background(), at(1))
	assert.Equal(t, timeline.Bounds{Start: 1, End: 3}, f.Bounds())
}

func TestResizeEndCannotCrossStart(t *testing.T) {
	f := feat("f", 6, 6, "")
	store := newFakeStore(f)
	c := New(store, store)

	require.True(t, c.Begin(ResizeEnd, "f", at(6), width))
	up, ok := c.Move(context.Background(), at(3))
	require.True(t, ok)
	assert.False(t, up.Committed, "candidate equals current bounds")
	assert.Equal(t, timeline.Bounds{Start: 6, End: 6}, up.Bounds)
	assert.Empty(t, store.calls)
}

func TestResizeStartCannotCrossEnd(t *testing.T) {
	f := feat("f", 2, 4, "")
	store := newFakeStore(f)
	c := New(store, store)

	require.True(t, c.Begin(ResizeStart, "f", at(2), width))
	up, _ := c.Move(context.Background(), at(9))
	assert.Equal(t, timeline.Bounds{Start: 4, End: 4}, up.Bounds)
	require.Len(t, store.calls, 1)
	require.NotNil(t, store.calls[0].patch.StartMonth)
	assert.Nil(t, store.calls[0].patch.EndMonth, "resize-start only touches the start month")
	assert.Nil(t, store.calls[0].patch.ThemeID)
}

func TestDeltasAreRelativeToGestureStart(t *testing.T) {
	f := feat("f", 1, 2, "")
	store := newFakeStore(f)
	c := New(store, store)
	ctx := context.Background()

	require.True(t, c.Begin(Move, "f", at(1), width))
	_, _ = c.Move(ctx, at(3))
	assert.Equal(t, timeline.Bounds{Start: 3, End: 4}, f.Bounds())
	_, _ = c.Move(ctx, at(4))
	assert.Equal(t, timeline.Bounds{Start: 4, End: 5}, f.Bounds(), "delta is +3 from the start, not +3 from the last move")
	_, _ = c.Move(ctx, at(4)+2) // small jitter inside the same month
	_, _ = c.Move(ctx, at(1))
	assert.Equal(t, timeline.Bounds{Start: 1, End: 2}, f.Bounds())
	assert.Len(t, store.calls, 3, "only moves that change the range are committed")
}

func TestDropOnOtherLaneReassignsThemeInOneCommit(t *testing.T) {
	f := feat("f", 2, 3, "core")
	store := newFakeStore(f)
	c := New(store, store)

	require.True(t, c.Begin(Move, "f", at(2), width))
	up, ok := c.Release(context.Background(), at(5), &Drop{ThemeID: "data"})
	require.True(t, ok)
	require.True(t, up.Committed)
	require.Len(t, store.calls, 1)

	p := store.calls[0].patch
	require.NotNil(t, p.StartMonth)
	require.NotNil(t, p.EndMonth)
	require.NotNil(t, p.ThemeID)
	assert.Equal(t, 5, *p.StartMonth)
	assert.Equal(t, 6, *p.EndMonth)
	assert.Equal(t, "data", *p.ThemeID)
	assert.Equal(t, "data", f.ThemeID)
}

func TestDropOnUngroupedLaneClearsTheme(t *testing.T) {
	f := feat("f", 2, 3, "core")
	store := newFakeStore(f)
	c := New(store, store)

	require.True(t, c.Begin(Move, "f", at(2), width))
	_, _ = c.Release(context.Background(), at(2), &Drop{ThemeID: ""})
	require.Len(t, store.calls, 1)
	assert.True(t, f.Ungrouped())
	assert.Equal(t, timeline.Bounds{Start: 2, End: 3}, f.Bounds())
}

func TestDropOnSameLaneOnlyMoves(t *testing.T) {
	f := feat("f", 2, 3, "core")
	store := newFakeStore(f)
	c := New(store, store)

	require.True(t, c.Begin(Move, "f", at(2), width))
	_, _ = c.Release(context.Background(), at(4), &Drop{ThemeID: "core"})
	require.Len(t, store.calls, 1)
	assert.Nil(t, store.calls[0].patch.ThemeID)
	assert.Equal(t, timeline.Bounds{Start: 4, End: 5}, f.Bounds())
}

// laneStore draws features whose theme is unknown in the ungrouped lane.
type laneStore struct {
	*fakeStore
	themes map[string]bool
}

func (s laneStore) Lane(id string) string {
	if f, ok := s.features[id]; ok && s.themes[f.ThemeID] {
		return f.ThemeID
	}
	return ""
}

func TestDropOnOwnLaneKeepsOrphanedTheme(t *testing.T) {
	f := feat("f", 3, 5, "gone")
	store := laneStore{fakeStore: newFakeStore(f), themes: map[string]bool{"core": true}}
	c := New(store, store)

	require.True(t, c.Begin(Move, "f", at(3), width))
	g, _ := c.Active()
	assert.Equal(t, "", g.Lane)
	up, ok := c.Release(context.Background(), at(3), &Drop{ThemeID: ""})
	require.True(t, ok)
	assert.False(t, up.Committed)
	assert.Empty(t, store.calls)
	assert.Equal(t, "gone", f.ThemeID)

	require.True(t, c.Begin(Move, "f", at(3), width))
	_, _ = c.Release(context.Background(), at(3), &Drop{ThemeID: "core"})
	require.Len(t, store.calls, 1)
	assert.Equal(t, "core", f.ThemeID)
}

func TestResizeReleaseIgnoresDrop(t *testing.T) {
	f := feat("f", 2, 3, "core")
	store := newFakeStore(f)
	c := New(store, store)

	require.True(t, c.Begin(ResizeEnd, "f", at(3), width))
	_, _ = c.Release(context.Background(), at(5), &Drop{ThemeID: "data"})
	require.Len(t, store.calls, 1)
	assert.Equal(t, "core", f.ThemeID)
	assert.Equal(t, timeline.Bounds{Start: 2, End: 5}, f.Bounds())
}

func TestFeatureDeletedMidGesture(t *testing.T) {
	f := feat("f", 2, 3, "")
	store := newFakeStore(f)
	c := New(store, store)

	require.True(t, c.Begin(Move, "f", at(2), width))
	delete(store.features, "f")

	up, ok := c.Move(context.Background(), at(6))
	require.True(t, ok)
	assert.True(t, up.Missing)
	assert.False(t, up.Committed)

	up, ok = c.Release(context.Background(), at(6), &Drop{ThemeID: "x"})
	require.True(t, ok)
	assert.True(t, up.Missing)
	assert.Empty(t, store.calls)

	_, active := c.Active()
	assert.False(t, active)
}

// vanishingStore drops features from the source when a commit finds them
// gone from storage, like app.Live.
type vanishingStore struct {
	*fakeStore
	deleted map[string]bool
}

func (s vanishingStore) ApplyBoundsChange(ctx context.Context, id string, p roadmap.Patch) error {
	if s.deleted[id] {
		delete(s.features, id)
		return nil
	}
	return s.fakeStore.ApplyBoundsChange(ctx, id, p)
}

func TestCommitToDeletedFeatureReportsMissing(t *testing.T) {
	f := feat("f", 2, 3, "")
	store := vanishingStore{fakeStore: newFakeStore(f), deleted: map[string]bool{}}
	c := New(store, store)

	require.True(t, c.Begin(Move, "f", at(2), width))
	store.deleted["f"] = true

	up, ok := c.Move(context.Background(), at(4))
	require.True(t, ok)
	assert.True(t, up.Missing)
	assert.False(t, up.Committed)

	up, _ = c.Move(context.Background(), at(6))
	assert.True(t, up.Missing)
	assert.False(t, up.Committed)
}

func TestBeginUnknownFeatureStaysIdle(t *testing.T) {
	store := newFakeStore()
	c := New(store, store)
	assert.False(t, c.Begin(Move, "nope", 0, width))
	assert.False(t, c.Begin(Kind(42), "nope", 0, width))

	_, ok := c.Move(context.Background(), 50)
	assert.False(t, ok)
	_, ok = c.Release(context.Background(), 50, nil)
	assert.False(t, ok)
}

func TestBeginReplacesActiveGesture(t *testing.T) {
	a := feat("a", 1, 1, "")
	b := feat("b", 5, 6, "")
	store := newFakeStore(a, b)
	c := New(store, store)

	require.True(t, c.Begin(Move, "a", at(1), width))
	require.True(t, c.Begin(ResizeEnd, "b", at(6), width))
	g, ok := c.Active()
	require.True(t, ok)
	assert.Equal(t, "b", g.FeatureID)
	assert.Equal(t, ResizeEnd, g.Kind)

	_, _ = c.Move(context.Background(), at(8))
	assert.Equal(t, timeline.Bounds{Start: 1, End: 1}, a.Bounds())
	assert.Equal(t, timeline.Bounds{Start: 5, End: 8}, b.Bounds())
}

func TestGatewayFailureDoesNotEndGesture(t *testing.T) {
	f := feat("f", 1, 1, "")
	store := newFakeStore(f)
	store.fail = errors.New("disk full")
	c := New(store, store)

	require.True(t, c.Begin(Move, "f", at(1), width))
	up, ok := c.Move(context.Background(), at(3))
	require.True(t, ok)
	assert.False(t, up.Committed)
	_, active := c.Active()
	assert.True(t, active)
}

func TestSetWidthRescalesDeltas(t *testing.T) {
	f := feat("f", 1, 1, "")
	store := newFakeStore(f)
	c := New(store, store)

	require.True(t, c.Begin(Move, "f", 0, width))
	c.SetWidth(width * 2)
	_, _ = c.Move(context.Background(), 40) // two months at twenty units each
	assert.Equal(t, timeline.Bounds{Start: 3, End: 3}, f.Bounds())
}

func TestGesturesNeverLeaveTheAxis(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	ctx := context.Background()
	for round := 0; round < 400; round++ {
		start := r.Intn(12) + 1
		end := start + r.Intn(13-start)
		f := feat("f", start, end, "")
		store := newFakeStore(f)
		c := New(store, store)

		kind := Kind(r.Intn(3) + 1)
		require.True(t, c.Begin(kind, "f", r.Float64()*width, width))
		for step := 0; step < 20; step++ {
			x := (r.Float64()*3 - 1) * width // wander well outside the container
			up, _ := c.Move(ctx, x)

			b := f.Bounds()
			require.True(t, b.Valid(), "round %d %s produced %v", round, kind, b)
			require.True(t, up.Bounds.Valid())
			switch kind {
			case Move:
				require.Equal(t, end-start, b.Duration(), "move keeps the duration")
			case ResizeStart:
				require.Equal(t, end, b.End, "resize-start keeps the end")
			case ResizeEnd:
				require.Equal(t, start, b.Start, "resize-end keeps the start")
			}
		}
		_, _ = c.Release(ctx, r.Float64()*width, nil)
		require.True(t, f.Bounds().Valid())
	}
}

func TestCandidateClampsCorruptBounds(t *testing.T) {
	g := Gesture{Kind: ResizeStart, Start: timeline.Bounds{Start: 3, End: 15}}
	got := g.Candidate(timeline.Bounds{Start: 3, End: 15}, 20)
	assert.True(t, got.Valid(), "got %v", got)

	g = Gesture{Kind: Move, Start: timeline.Bounds{Start: 0, End: 14}}
	got = g.Candidate(timeline.Bounds{Start: 0, End: 14}, 0)
	assert.True(t, got.Valid(), "got %v", got)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "move", Move.String())
	assert.Equal(t, "resize-start", ResizeStart.String())
	assert.Equal(t, "resize-end", ResizeEnd.String())
	assert.Equal(t, "unknown", Kind(0).String())
}

func TestNudge(t *testing.T) {
	f := feat("f", 3, 5, "core")
	store := newFakeStore(f)
	c := New(store, store)
	ctx := context.Background()

	up, err := c.Nudge(ctx, Move, "f", 4, nil)
	require.NoError(t, err)
	assert.True(t, up.Committed)
	assert.Equal(t, timeline.Bounds{Start: 7, End: 9}, f.Bounds())

	_, err = c.Nudge(ctx, Move, "f", -40, nil)
	require.NoError(t, err)
	assert.Equal(t, timeline.Bounds{Start: 1, End: 3}, f.Bounds())

	_, err = c.Nudge(ctx, ResizeEnd, "f", 20, nil)
	require.NoError(t, err)
	assert.Equal(t, timeline.Bounds{Start: 1, End: 12}, f.Bounds())

	_, err = c.Nudge(ctx, ResizeStart, "f", -1, nil)
	require.NoError(t, err)
	assert.Equal(t, timeline.Bounds{Start: 1, End: 12}, f.Bounds())

	_, err = c.Nudge(ctx, Move, "f", 0, &Drop{ThemeID: "data"})
	require.NoError(t, err)
	assert.Equal(t, "data", f.ThemeID)

	_, active := c.Active()
	assert.False(t, active)

	_, err = c.Nudge(ctx, Move, "missing", 1, nil)
	assert.ErrorIs(t, err, ErrNoGesture)
}
