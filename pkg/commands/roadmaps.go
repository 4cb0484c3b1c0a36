package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/runner/roadmaps"
)

func addRoadmaps(topLevel *cobra.Command) {
	r := &roadmaps.Roadmaps{}
	var rename, description string

	cmd := &cobra.Command{
		Use:   "roadmaps",
		Short: "list, create, edit or delete roadmaps",
		Example: `
roadmap roadmaps
roadmap roadmaps --create Platform
roadmap roadmaps --delete Platform
roadmap roadmaps -r Platform --rename Infrastructure --description "Shared services"
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			r.Service = s.svc
			if cmd.Flags().Changed("rename") {
				r.Edit.Name = &rename
			}
			if cmd.Flags().Changed("description") {
				r.Edit.Description = &description
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&r.Create, "create", "", "Create a roadmap with this name.")
	cmd.Flags().StringVar(&rename, "rename", "", "Rename the current roadmap.")
	cmd.Flags().StringVar(&description, "description", "", "Set the description of the current roadmap.")
	cmd.Flags().StringVar(&r.Delete, "delete", "", "Delete this roadmap with its features and themes.")

	topLevel.AddCommand(cmd)
}
