package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete",
		Aliases: []string{"rm"},
		Short:   "Delete a feature or theme",
		Long:    "Delete a feature or theme. Features of a deleted theme move to the Unassigned lane.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addDeleteKind(cmd, remove.Feature, featureCompletions)
	addDeleteKind(cmd, remove.Theme, themeCompletions)

	topLevel.AddCommand(cmd)
}

func addDeleteKind(topLevel *cobra.Command, kind remove.Kind, complete func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective)) {
	cmd := &cobra.Command{
		Use:               string(kind) + " <id>",
		Short:             "delete a " + string(kind),
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: complete,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			r := remove.Remove{Service: s.svc, Kind: kind, ID: args[0]}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
