package drag

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/drag"
	"tableflip.dev/roadmap/pkg/store"
	"tableflip.dev/roadmap/pkg/timeline"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func init() {
	color.NoColor = true
}

func newService(t *testing.T) (*app.Service, string, string) {
	t.Helper()
	p, err := store.Load(testConfig{path: t.TempDir()})
	require.NoError(t, err)
	svc := &app.Service{Persistence: p, Roadmap: "Plan"}
	ctx := context.Background()
	th, err := svc.AddTheme(ctx, "Core", "", "")
	require.NoError(t, err)
	f, err := svc.AddFeature(ctx, app.FeatureInput{Name: "Auth", Year: 2025, StartMonth: 3, EndMonth: 5})
	require.NoError(t, err)
	return svc, th.ID, f.ID
}

func TestMove(t *testing.T) {
	svc, _, id := newService(t)
	var out bytes.Buffer

	d := Drag{Service: svc, Kind: drag.Move, ID: id, Delta: 9, Out: &out}
	require.NoError(t, d.Do(context.Background()))

	f, err := svc.Feature(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, timeline.Bounds{Start: 10, End: 12}, f.Bounds(), "clamped to the end of the year")
	assert.Equal(t, "Auth Mar-May → Oct-Dec\n", out.String())
}

func TestResizeAndAssign(t *testing.T) {
	svc, themeID, id := newService(t)
	ctx := context.Background()

	r := Drag{Service: svc, Kind: drag.ResizeStart, ID: id, Delta: 5, Out: &bytes.Buffer{}}
	require.NoError(t, r.Do(ctx))
	f, err := svc.Feature(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, timeline.Bounds{Start: 5, End: 5}, f.Bounds())

	var out bytes.Buffer
	a := Drag{Service: svc, Kind: drag.Move, ID: id, ThemeID: &themeID, Out: &out}
	require.NoError(t, a.Do(ctx))
	f, err = svc.Feature(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, themeID, f.ThemeID)
	assert.Contains(t, out.String(), "in Core")

	out.Reset()
	again := Drag{Service: svc, Kind: drag.Move, ID: id, ThemeID: &themeID, Out: &out}
	require.NoError(t, again.Do(ctx))
	assert.Equal(t, "Auth unchanged at May\n", out.String())
}

func TestErrors(t *testing.T) {
	svc, _, id := newService(t)
	ctx := context.Background()

	err := (&Drag{Service: svc, Kind: drag.Move, ID: "nope", Delta: 1}).Do(ctx)
	assert.ErrorIs(t, err, app.ErrNotFound)

	missing := "nope"
	err = (&Drag{Service: svc, Kind: drag.Move, ID: id, ThemeID: &missing}).Do(ctx)
	assert.ErrorIs(t, err, app.ErrNotFound)

	none := ""
	err = (&Drag{Service: svc, Kind: drag.ResizeEnd, ID: id, ThemeID: &none}).Do(ctx)
	assert.Error(t, err)
}
