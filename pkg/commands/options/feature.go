package options

import (
	"github.com/spf13/cobra"
)

// Ungrouped is the --theme value that removes a feature from its theme.
const Ungrouped = "-"

// FeatureOptions
type FeatureOptions struct {
	Name        string
	Description string
	Notes       string
	Year        int
	Start       int
	End         int
	Theme       string
}

func AddFeatureArgs(cmd *cobra.Command, o *FeatureOptions) {
	cmd.Flags().IntVar(&o.Start, "start", 0,
		"Start month, 1-12.")
	cmd.Flags().IntVar(&o.End, "end", 0,
		"End month, 1-12. Defaults to the start month.")
	cmd.Flags().IntVarP(&o.Year, "year", "y", 0,
		"Year of the feature. Defaults to the 'year' config value.")
	cmd.Flags().StringVarP(&o.Theme, "theme", "t", "",
		`Theme id, or "-" for none.`)
	cmd.Flags().StringVarP(&o.Description, "description", "d", "",
		"Description of the feature.")
	cmd.Flags().StringVar(&o.Notes, "notes", "",
		"Free form notes.")
}

func AddNameArg(cmd *cobra.Command, o *FeatureOptions) {
	cmd.Flags().StringVar(&o.Name, "name", "",
		"New name.")
}

// ThemeID maps the --theme value to a theme id.
func (o *FeatureOptions) ThemeID() string {
	if o.Theme == Ungrouped {
		return ""
	}
	return o.Theme
}

// ThemeOptions
type ThemeOptions struct {
	Name        string
	Color       string
	Description string
}

func AddThemeArgs(cmd *cobra.Command, o *ThemeOptions) {
	cmd.Flags().StringVarP(&o.Color, "color", "c", "",
		"Hex color, like #3B82F6. Defaults to the next palette color.")
	cmd.Flags().StringVarP(&o.Description, "description", "d", "",
		"Description of the theme.")
}
