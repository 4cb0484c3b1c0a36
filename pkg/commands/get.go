package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/commands/options"
	"tableflip.dev/roadmap/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	yo := &options.YearOptions{}
	fo := &options.FormatOptions{}
	io := &options.IDOptions{}
	grid := false

	cmd := &cobra.Command{
		Use:   "get",
		Short: "print the roadmap as swimlanes",
		Example: `
roadmap get
roadmap get --grid
roadmap get --year 2026 -o yaml
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
			g := get.Get{
				Service: s.svc,
				Year:    s.year(yo.Year),
				Order:   s.order(yo.SortByStart),
				Format:  fo.Output,
				Grid:    grid,
				ShowID:  io.ShowID,
			}
			return oo.HandleError(g.Do(cmd.Context()))
		},
	}

	options.AddYearArgs(cmd, yo)
	options.AddSortArgs(cmd, yo)
	options.AddFormatArg(cmd, fo)
	options.AddShowIDArgs(cmd, io)
	cmd.Flags().BoolVar(&grid, "grid", false, "Draw the lanes on a month grid.")

	topLevel.AddCommand(cmd)
}
