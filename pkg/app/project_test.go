package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/roadmap/pkg/roadmap"
	"tableflip.dev/roadmap/pkg/store"
)

func strPtr(s string) *string { return &s }

func TestEditRoadmapRenamesAndDescribes(t *testing.T) {
	svc, mp := newService()
	ctx := context.Background()
	require.NoError(t, svc.EnsureRoadmap(ctx, "Plan"))
	f, err := svc.AddFeature(ctx, FeatureInput{Name: "a", Year: 2025, StartMonth: 1, EndMonth: 2})
	require.NoError(t, err)

	meta, err := svc.EditRoadmap(ctx, "Plan", RoadmapEdit{Name: strPtr("  Next  "), Description: strPtr(" Q3 bets ")})
	require.NoError(t, err)
	assert.Equal(t, "Next", meta.Name)
	assert.Equal(t, "Q3 bets", meta.Description)
	assert.Equal(t, "Next", svc.Name(), "the service follows its renamed roadmap")

	got, err := svc.Feature(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "Next", got.Roadmap)
	assert.Empty(t, mp.Features(ctx, "Plan"))

	// description alone keeps the name
	meta, err = svc.EditRoadmap(ctx, "Next", RoadmapEdit{Description: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "Next", meta.Name)
	assert.Empty(t, meta.Description)
}

func TestEditRoadmapErrors(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	require.NoError(t, svc.EnsureRoadmap(ctx, "Plan"))
	require.NoError(t, svc.EnsureRoadmap(ctx, "Other"))

	_, err := svc.EditRoadmap(ctx, "Missing", RoadmapEdit{Description: strPtr("x")})
	assert.ErrorIs(t, err, ErrNoRoadmap)

	_, err = svc.EditRoadmap(ctx, "Plan", RoadmapEdit{Name: strPtr("Other")})
	assert.ErrorIs(t, err, store.ErrRoadmapExists)

	_, err = svc.EditRoadmap(ctx, "Plan", RoadmapEdit{Name: strPtr("   ")})
	assert.Error(t, err)
	assert.Equal(t, "Plan", svc.Name())
}

func TestProjectDefaultsUntilEdited(t *testing.T) {
	svc, mp := newService()
	ctx := context.Background()

	p, err := svc.Project(ctx)
	require.NoError(t, err)
	assert.Equal(t, roadmap.DefaultProject(), p)
	assert.Zero(t, mp.writes, "reading the default writes nothing")

	p, err = svc.EditProject(ctx, ProjectEdit{Name: strPtr("Platform"), Team: strPtr(" Infra ")})
	require.NoError(t, err)
	assert.Equal(t, "Platform", p.Name)
	assert.Equal(t, "Infra", p.Team)
	assert.Equal(t, roadmap.DefaultProject().Description, p.Description)
	assert.False(t, p.Updated.IsZero())

	again, err := svc.Project(ctx)
	require.NoError(t, err)
	assert.Equal(t, p, again)

	_, err = svc.EditProject(ctx, ProjectEdit{Name: strPtr("")})
	assert.Error(t, err)
}

func TestProjectPeople(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	ada, err := svc.AddPerson(ctx, roadmap.Members, PersonInput{Name: " Ada ", Role: "Engineer"})
	require.NoError(t, err)
	grace, err := svc.AddPerson(ctx, roadmap.Stakeholders, PersonInput{Name: "Grace", Role: "VP", Email: "grace@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", ada.Name)
	assert.NotEqual(t, ada.ID, grace.ID, "ids are unique across groups")

	_, err = svc.AddPerson(ctx, roadmap.Members, PersonInput{Name: "Nobody"})
	assert.Error(t, err, "role is required")
	_, err = svc.AddPerson(ctx, roadmap.Members, PersonInput{Name: "Bad", Role: "QA", Email: "not an email"})
	assert.Error(t, err)

	edited, err := svc.EditPerson(ctx, roadmap.Members, ada.ID, PersonInput{Name: "Ada L.", Role: "Lead"})
	require.NoError(t, err)
	assert.Equal(t, ada.ID, edited.ID)

	// someone is only found in their own group
	_, err = svc.EditPerson(ctx, roadmap.Stakeholders, ada.ID, PersonInput{Name: "x", Role: "y"})
	assert.ErrorIs(t, err, ErrNotFound)

	p, err := svc.Project(ctx)
	require.NoError(t, err)
	require.Len(t, p.Members, 1)
	assert.Equal(t, "Lead", p.Members[0].Role)
	require.Len(t, p.Stakeholders, 1)

	require.NoError(t, svc.RemovePerson(ctx, roadmap.Stakeholders, grace.ID))
	assert.ErrorIs(t, svc.RemovePerson(ctx, roadmap.Stakeholders, grace.ID), ErrNotFound)
	p, err = svc.Project(ctx)
	require.NoError(t, err)
	assert.Empty(t, p.Stakeholders)
	assert.Len(t, p.Members, 1)
}
