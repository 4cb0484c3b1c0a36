package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/commands/options"
)

var (
	oo = &options.OutputOptions{}
	ro = &options.RoadmapOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "roadmap",
		Short: options.Wrap80("Plan features on a twelve month timeline, grouped into themed swimlanes."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}
	options.AddOutputArg(cmd, oo)
	options.AddRoadmapArgs(cmd, ro)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addGet(topLevel)
	addSummary(topLevel)
	addAdd(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addMove(topLevel)
	addResize(topLevel)
	addAssign(topLevel)
	addRoadmaps(topLevel)
	addProject(topLevel)
	addSeed(topLevel)
	addMCP(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}
