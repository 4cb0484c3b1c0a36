package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/commands/options"
	"tableflip.dev/roadmap/pkg/runner/add"
	"tableflip.dev/roadmap/pkg/snake"
)

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a feature or theme",
		Example: `
roadmap add theme "Core Platform" --color "#3B82F6"
roadmap add feature "User Authentication" --start 1 --end 2 --theme <theme id>
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addAddFeature(cmd)
	addAddTheme(cmd)

	topLevel.AddCommand(cmd)
}

// nameArgs joins the positional arguments into a name. In interactive mode a
// missing name is asked for in PreRunE instead.
func nameArgs(name *string, i *options.InteractiveOptions) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		*name = strings.TrimSpace(strings.Join(args, " "))
		if *name == "" && !i.Interactive {
			return errors.New("requires a name")
		}
		return nil
	}
}

func promptMissing(cmd *cobra.Command, name *string, flags ...string) error {
	if *name == "" {
		v, err := snake.PromptValue(cmd, "name")
		if err != nil {
			return err
		}
		*name = v
	}
	return snake.PromptFlags(cmd, flags...)
}

func addAddFeature(topLevel *cobra.Command) {
	fo := &options.FeatureOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:     "feature <name>",
		Aliases: []string{"f"},
		Short:   "add a feature",
		Example: `
roadmap add feature "Mobile App" --start 4 --end 6
roadmap add feature -i
`,
		Args: nameArgs(&fo.Name, i),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !i.Interactive {
				return nil
			}
			return promptMissing(cmd, &fo.Name, "start", "end", "theme", "description")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			end := fo.End
			if end == 0 {
				end = fo.Start
			}
			a := add.Feature{
				Service: s.svc,
				Input: app.FeatureInput{
					Name:        fo.Name,
					Description: fo.Description,
					Notes:       fo.Notes,
					Year:        s.year(fo.Year),
					StartMonth:  fo.Start,
					EndMonth:    end,
					ThemeID:     fo.ThemeID(),
				},
			}
			return oo.HandleError(a.Do(cmd.Context()))
		},
	}

	options.AddFeatureArgs(cmd, fo)
	options.InteractiveArgs(cmd, i)
	_ = cmd.RegisterFlagCompletionFunc("theme", themeCompletions)

	topLevel.AddCommand(cmd)
}

func addAddTheme(topLevel *cobra.Command) {
	to := &options.ThemeOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:     "theme <name>",
		Aliases: []string{"t"},
		Short:   "add a theme",
		Example: `
roadmap add theme "Analytics & Insights" --color "#10B981"
`,
		Args: nameArgs(&to.Name, i),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !i.Interactive {
				return nil
			}
			return promptMissing(cmd, &to.Name, "color", "description")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			a := add.Theme{
				Service:     s.svc,
				Name:        to.Name,
				Color:       to.Color,
				Description: to.Description,
			}
			return oo.HandleError(a.Do(cmd.Context()))
		},
	}

	options.AddThemeArgs(cmd, to)
	options.InteractiveArgs(cmd, i)

	topLevel.AddCommand(cmd)
}
