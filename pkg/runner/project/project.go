// Package project shows and edits the project the roadmaps belong to.
package project

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/printers"
	"tableflip.dev/roadmap/pkg/roadmap"
)

type Show struct {
	Service *app.Service
	// Format is one of printers.FormatTable, FormatJSON or FormatYAML.
	Format string
	Out    io.Writer
}

func (s *Show) Do(ctx context.Context) error {
	if s.Service == nil {
		return errors.New("can not show project, no service")
	}
	p, err := s.Service.Project(ctx)
	if err != nil {
		return err
	}
	return printProject(s.Out, s.Format, p)
}

type Edit struct {
	Service *app.Service
	Edit    app.ProjectEdit
	Out     io.Writer
}

func (e *Edit) Do(ctx context.Context) error {
	if e.Service == nil {
		return errors.New("can not edit project, no service")
	}
	p, err := e.Service.EditProject(ctx, e.Edit)
	if err != nil {
		return err
	}
	return printProject(e.Out, "", p)
}

type AddPerson struct {
	Service *app.Service
	Group   roadmap.Group
	Input   app.PersonInput
	Out     io.Writer
}

func (a *AddPerson) Do(ctx context.Context) error {
	if a.Service == nil {
		return errors.New("can not add, no service")
	}
	person, err := a.Service.AddPerson(ctx, a.Group, a.Input)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: a.Out}
	pp.People(groupTitle(a.Group), []roadmap.Person{person})
	return nil
}

type EditPerson struct {
	Service *app.Service
	Group   roadmap.Group
	ID      string
	Input   app.PersonInput
	Out     io.Writer
}

func (e *EditPerson) Do(ctx context.Context) error {
	if e.Service == nil {
		return errors.New("can not edit, no service")
	}
	person, err := e.Service.EditPerson(ctx, e.Group, e.ID, e.Input)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: e.Out}
	pp.People(groupTitle(e.Group), []roadmap.Person{person})
	return nil
}

type RemovePerson struct {
	Service *app.Service
	Group   roadmap.Group
	ID      string
	Out     io.Writer
}

func (r *RemovePerson) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("can not delete, no service")
	}
	if err := r.Service.RemovePerson(ctx, r.Group, r.ID); err != nil {
		return err
	}
	_, _ = color.New(color.Faint).Fprintf(output(r.Out), "removed %s %s\n", r.Group, r.ID)
	return nil
}

func printProject(out io.Writer, format string, p *roadmap.Project) error {
	out = output(out)
	switch format {
	case "", printers.FormatTable:
	default:
		return printers.Encode(out, format, p)
	}
	pp := printers.PrettyPrint{Out: out}
	pp.NewLine()
	pp.Project(p)
	return nil
}

func output(out io.Writer) io.Writer {
	if out == nil {
		return color.Output
	}
	return out
}

func groupTitle(g roadmap.Group) string {
	if g == roadmap.Stakeholders {
		return "Stakeholders"
	}
	return "Team Members"
}
