package app

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"tableflip.dev/roadmap/pkg/roadmap"
)

// ProjectEdit lists project fields to change; nil fields are left alone.
type ProjectEdit struct {
	Name        *string
	Description *string
	Team        *string
}

// PersonInput describes a team member or stakeholder. Name and role are
// required; email is optional.
type PersonInput struct {
	Name  string
	Role  string
	Email string
}

func (in PersonInput) clean() (roadmap.Person, error) {
	p := roadmap.Person{
		Name:  strings.TrimSpace(in.Name),
		Role:  strings.TrimSpace(in.Role),
		Email: strings.TrimSpace(in.Email),
	}
	if p.Name == "" || p.Role == "" {
		return roadmap.Person{}, errors.New("app: name and role are required")
	}
	if p.Email != "" {
		if _, err := mail.ParseAddress(p.Email); err != nil {
			return roadmap.Person{}, fmt.Errorf("app: email %q: %w", p.Email, err)
		}
	}
	return p, nil
}

// Project returns the project, or the default one when it was never edited.
func (s *Service) Project(ctx context.Context) (*roadmap.Project, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	if p := s.Persistence.Project(ctx); p != nil {
		return p, nil
	}
	return roadmap.DefaultProject(), nil
}

// EditProject changes project fields and stamps the update time.
func (s *Service) EditProject(ctx context.Context, edit ProjectEdit) (*roadmap.Project, error) {
	return s.updateProject(ctx, func(p *roadmap.Project) error {
		if edit.Name != nil {
			n := strings.TrimSpace(*edit.Name)
			if n == "" {
				return errors.New("app: project name required")
			}
			p.Name = n
		}
		if edit.Description != nil {
			p.Description = strings.TrimSpace(*edit.Description)
		}
		if edit.Team != nil {
			p.Team = strings.TrimSpace(*edit.Team)
		}
		return nil
	})
}

// AddPerson appends someone to group and returns them with their new id.
func (s *Service) AddPerson(ctx context.Context, group roadmap.Group, in PersonInput) (roadmap.Person, error) {
	person, err := in.clean()
	if err != nil {
		return roadmap.Person{}, err
	}
	var added roadmap.Person
	_, err = s.updateProject(ctx, func(p *roadmap.Project) error {
		people := p.People(group)
		person.ID = nextPersonID(p)
		p.SetPeople(group, append(people, person))
		added = person
		return nil
	})
	return added, err
}

// EditPerson replaces the details of someone in group.
func (s *Service) EditPerson(ctx context.Context, group roadmap.Group, id string, in PersonInput) (roadmap.Person, error) {
	person, err := in.clean()
	if err != nil {
		return roadmap.Person{}, err
	}
	person.ID = id
	_, err = s.updateProject(ctx, func(p *roadmap.Project) error {
		_, i, ok := p.Person(group, id)
		if !ok {
			return fmt.Errorf("%w: %s %q", ErrNotFound, group, id)
		}
		p.People(group)[i] = person
		return nil
	})
	return person, err
}

// RemovePerson drops someone from group.
func (s *Service) RemovePerson(ctx context.Context, group roadmap.Group, id string) error {
	_, err := s.updateProject(ctx, func(p *roadmap.Project) error {
		_, i, ok := p.Person(group, id)
		if !ok {
			return fmt.Errorf("%w: %s %q", ErrNotFound, group, id)
		}
		people := p.People(group)
		p.SetPeople(group, append(people[:i:i], people[i+1:]...))
		return nil
	})
	return err
}

func (s *Service) updateProject(ctx context.Context, change func(*roadmap.Project) error) (*roadmap.Project, error) {
	p, err := s.Project(ctx)
	if err != nil {
		return nil, err
	}
	p = p.Clone()
	if err := change(p); err != nil {
		return nil, err
	}
	p.Updated = roadmap.Now()
	if err := s.Persistence.StoreProject(p); err != nil {
		s.Log.Error().Err(err).Msg("app: store project")
		return nil, err
	}
	return p, nil
}

// nextPersonID numbers people across both groups so ids stay unique within
// the project.
func nextPersonID(p *roadmap.Project) string {
	taken := make(map[string]bool)
	for _, g := range []roadmap.Group{roadmap.Members, roadmap.Stakeholders} {
		for _, person := range p.People(g) {
			taken[person.ID] = true
		}
	}
	for n := len(taken) + 1; ; n++ {
		id := fmt.Sprintf("p%d", n)
		if !taken[id] {
			return id
		}
	}
}
