package options

import (
	"github.com/spf13/cobra"
)

// RoadmapOptions select the roadmap and logging for every command.
type RoadmapOptions struct {
	Roadmap  string
	LogLevel string
}

func AddRoadmapArgs(cmd *cobra.Command, o *RoadmapOptions) {
	cmd.PersistentFlags().StringVarP(&o.Roadmap, "roadmap", "r", "",
		"Roadmap to work on. Defaults to the 'roadmap' config value.")
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "",
		"Log level: debug, info, warn, error or off.")
}

// YearOptions
type YearOptions struct {
	Year        int
	SortByStart bool
}

func AddYearArgs(cmd *cobra.Command, o *YearOptions) {
	cmd.Flags().IntVarP(&o.Year, "year", "y", 0,
		"Year to show. Defaults to the 'year' config value.")
}

func AddSortArgs(cmd *cobra.Command, o *YearOptions) {
	cmd.Flags().BoolVar(&o.SortByStart, "sort-by-start", false,
		"Pack lanes by start month instead of creation order.")
}
