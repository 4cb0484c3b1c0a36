package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/commands/options"
	"tableflip.dev/roadmap/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a feature or theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addEditFeature(cmd)
	addEditTheme(cmd)

	topLevel.AddCommand(cmd)
}

func addEditFeature(topLevel *cobra.Command) {
	fo := &options.FeatureOptions{}

	cmd := &cobra.Command{
		Use:   "feature <id>",
		Short: "edit a feature",
		Example: `
roadmap edit feature <id> --start 3 --end 5
roadmap edit feature <id> --theme -
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: featureCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()

			flags := cmd.Flags()
			var ed app.FeatureEdit
			if flags.Changed("name") {
				ed.Name = &fo.Name
			}
			if flags.Changed("description") {
				ed.Description = &fo.Description
			}
			if flags.Changed("notes") {
				ed.Notes = &fo.Notes
			}
			if flags.Changed("year") {
				ed.Year = &fo.Year
			}
			if flags.Changed("start") {
				ed.StartMonth = &fo.Start
			}
			if flags.Changed("end") {
				ed.EndMonth = &fo.End
			}
			if flags.Changed("theme") {
				id := fo.ThemeID()
				ed.ThemeID = &id
			}
			e := edit.Feature{Service: s.svc, ID: args[0], Edit: ed}
			return oo.HandleError(e.Do(cmd.Context()))
		},
	}

	options.AddFeatureArgs(cmd, fo)
	options.AddNameArg(cmd, fo)
	_ = cmd.RegisterFlagCompletionFunc("theme", themeCompletions)

	topLevel.AddCommand(cmd)
}

func addEditTheme(topLevel *cobra.Command) {
	to := &options.ThemeOptions{}

	cmd := &cobra.Command{
		Use:   "theme <id>",
		Short: "edit a theme",
		Example: `
roadmap edit theme <id> --color "#F59E0B"
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: themeCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()

			flags := cmd.Flags()
			var ed app.ThemeEdit
			if flags.Changed("name") {
				ed.Name = &to.Name
			}
			if flags.Changed("color") {
				ed.Color = &to.Color
			}
			if flags.Changed("description") {
				ed.Description = &to.Description
			}
			e := edit.Theme{Service: s.svc, ID: args[0], Edit: ed}
			return oo.HandleError(e.Do(cmd.Context()))
		},
	}

	options.AddThemeArgs(cmd, to)
	cmd.Flags().StringVar(&to.Name, "name", "", "New name.")

	topLevel.AddCommand(cmd)
}
