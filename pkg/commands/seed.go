package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/commands/options"
	"tableflip.dev/roadmap/pkg/runner/seed"
)

func addSeed(topLevel *cobra.Command) {
	yo := &options.YearOptions{}

	cmd := &cobra.Command{
		Use:   "seed [file]",
		Short: "fill the roadmap with sample themes and features",
		Long: options.Wrap80("Add the themes and features of a YAML seed file to the roadmap. " +
			"Without a file, a sample roadmap with two themes and five features is added."),
		Example: `
roadmap seed
roadmap seed plan.yaml --year 2026
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			r := seed.Seed{Service: s.svc, Year: s.year(yo.Year)}
			if len(args) == 1 {
				r.File = args[0]
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddYearArgs(cmd, yo)

	topLevel.AddCommand(cmd)
}
