package project

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/printers"
	"tableflip.dev/roadmap/pkg/roadmap"
	"tableflip.dev/roadmap/pkg/store"
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

func service(t *testing.T) *app.Service {
	t.Helper()
	p, err := store.Load(testConfig{path: t.TempDir()})
	require.NoError(t, err)
	return &app.Service{Persistence: p, Roadmap: "Plan"}
}

func TestShowDefaultProject(t *testing.T) {
	svc := service(t)
	var out bytes.Buffer
	require.NoError(t, (&Show{Service: svc, Out: &out}).Do(context.Background()))
	assert.Contains(t, out.String(), "Product Roadmap")
	assert.Contains(t, out.String(), "Product Team")
	assert.Contains(t, out.String(), "Team Members")
	assert.Contains(t, out.String(), "none")
}

func TestPeopleLifecycle(t *testing.T) {
	svc := service(t)
	ctx := context.Background()
	var out bytes.Buffer

	add := AddPerson{Service: svc, Group: roadmap.Stakeholders, Input: app.PersonInput{Name: "Grace", Role: "VP"}, Out: &out}
	require.NoError(t, add.Do(ctx))
	assert.Contains(t, out.String(), "Grace")

	p, err := svc.Project(ctx)
	require.NoError(t, err)
	require.Len(t, p.Stakeholders, 1)
	id := p.Stakeholders[0].ID

	out.Reset()
	edit := EditPerson{Service: svc, Group: roadmap.Stakeholders, ID: id, Input: app.PersonInput{Name: "Grace H.", Role: "CTO"}, Out: &out}
	require.NoError(t, edit.Do(ctx))
	assert.Contains(t, out.String(), "CTO")

	out.Reset()
	require.NoError(t, (&Show{Service: svc, Format: printers.FormatJSON, Out: &out}).Do(ctx))
	var shown roadmap.Project
	require.NoError(t, json.Unmarshal(out.Bytes(), &shown))
	require.Len(t, shown.Stakeholders, 1)
	assert.Equal(t, "Grace H.", shown.Stakeholders[0].Name)

	out.Reset()
	require.NoError(t, (&RemovePerson{Service: svc, Group: roadmap.Stakeholders, ID: id, Out: &out}).Do(ctx))
	assert.Contains(t, out.String(), "removed stakeholder "+id)
	assert.ErrorIs(t, (&RemovePerson{Service: svc, Group: roadmap.Stakeholders, ID: id, Out: &out}).Do(ctx), app.ErrNotFound)
}

func TestEditProject(t *testing.T) {
	svc := service(t)
	team := "Platform Team"
	var out bytes.Buffer
	require.NoError(t, (&Edit{Service: svc, Edit: app.ProjectEdit{Team: &team}, Out: &out}).Do(context.Background()))
	assert.Contains(t, out.String(), "Platform Team")
	assert.Contains(t, out.String(), "updated")
}
