package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/commands/options"
	"tableflip.dev/roadmap/pkg/roadmap"
	"tableflip.dev/roadmap/pkg/runner/project"
	"tableflip.dev/roadmap/pkg/snake"
)

var groupArgs = []string{string(roadmap.Members), string(roadmap.Stakeholders)}

func addProject(topLevel *cobra.Command) {
	fo := &options.FormatOptions{}

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Show or edit the project, its team and stakeholders",
		Example: `
roadmap project
roadmap project edit --team "Platform Team"
roadmap project add member --name "Ada Lovelace" --role Engineer
roadmap project remove stakeholder <id>
`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return fo.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			p := project.Show{Service: s.svc, Format: fo.Output}
			return oo.HandleError(p.Do(cmd.Context()))
		},
	}
	options.AddFormatArg(cmd, fo)

	addProjectEdit(cmd)
	addProjectAdd(cmd)
	addProjectEditPerson(cmd)
	addProjectRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addProjectEdit(topLevel *cobra.Command) {
	var name, description, team string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "edit the project name, description or team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()

			flags := cmd.Flags()
			var ed app.ProjectEdit
			if flags.Changed("name") {
				ed.Name = &name
			}
			if flags.Changed("description") {
				ed.Description = &description
			}
			if flags.Changed("team") {
				ed.Team = &team
			}
			e := project.Edit{Service: s.svc, Edit: ed}
			return oo.HandleError(e.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name.")
	cmd.Flags().StringVar(&description, "description", "", "Project description.")
	cmd.Flags().StringVar(&team, "team", "", "Team that owns the project.")

	topLevel.AddCommand(cmd)
}

func addPersonFlags(cmd *cobra.Command, in *app.PersonInput) {
	cmd.Flags().StringVar(&in.Name, "name", "", "Full name.")
	cmd.Flags().StringVar(&in.Role, "role", "", "Role, such as Engineer or VP Product.")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email address.")
}

// parseGroup reads the group from the first positional argument.
func parseGroup(args []string) (roadmap.Group, error) {
	g, ok := roadmap.ParseGroup(args[0])
	if !ok {
		return "", fmt.Errorf("unknown group %q, expected member or stakeholder", args[0])
	}
	return g, nil
}

func addProjectAdd(topLevel *cobra.Command) {
	in := app.PersonInput{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:       "add <member|stakeholder>",
		Short:     "add a team member or stakeholder",
		Args:      cobra.ExactArgs(1),
		ValidArgs: groupArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !i.Interactive {
				return nil
			}
			return snake.PromptFlags(cmd, "name", "role", "email")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := parseGroup(args)
			if err != nil {
				return oo.HandleError(err)
			}
			s, err := openSession(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			a := project.AddPerson{Service: s.svc, Group: g, Input: in}
			return oo.HandleError(a.Do(cmd.Context()))
		},
	}

	addPersonFlags(cmd, &in)
	options.InteractiveArgs(cmd, i)

	topLevel.AddCommand(cmd)
}

func addProjectEditPerson(topLevel *cobra.Command) {
	in := app.PersonInput{}

	cmd := &cobra.Command{
		Use:               "edit-person <member|stakeholder> <id>",
		Short:             "change the details of a team member or stakeholder",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: personCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := parseGroup(args)
			if err != nil {
				return oo.HandleError(err)
			}
			s, err := openSession(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()

			// unset flags keep their stored values
			if p, err := s.svc.Project(cmd.Context()); err == nil {
				if current, _, ok := p.Person(g, args[1]); ok {
					flags := cmd.Flags()
					if !flags.Changed("name") {
						in.Name = current.Name
					}
					if !flags.Changed("role") {
						in.Role = current.Role
					}
					if !flags.Changed("email") {
						in.Email = current.Email
					}
				}
			}
			e := project.EditPerson{Service: s.svc, Group: g, ID: args[1], Input: in}
			return oo.HandleError(e.Do(cmd.Context()))
		},
	}

	addPersonFlags(cmd, &in)

	topLevel.AddCommand(cmd)
}

func addProjectRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "remove <member|stakeholder> <id>",
		Aliases:           []string{"rm"},
		Short:             "remove a team member or stakeholder",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: personCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := parseGroup(args)
			if err != nil {
				return oo.HandleError(err)
			}
			s, err := openSession(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			r := project.RemovePerson{Service: s.svc, Group: g, ID: args[1]}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}

// personCompletions offers the group first, then the ids in that group.
func personCompletions(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return groupArgs, cobra.ShellCompDirectiveNoFileComp
	case 1:
	default:
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	g, ok := roadmap.ParseGroup(args[0])
	if !ok {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	svc, ok := completionService()
	if !ok {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	p, err := svc.Project(context.Background())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	out := make([]string, 0, len(p.People(g)))
	for _, person := range p.People(g) {
		out = append(out, fmt.Sprintf("%s\t%s (%s)", person.ID, person.Name, person.Role))
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
