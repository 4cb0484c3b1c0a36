package roadmap

import "strings"

// UngroupedColor paints features that carry no theme.
const UngroupedColor = "#64748B"

// DefaultColors is the palette handed out to themes created without a color.
var DefaultColors = []string{
	"#3B82F6", // blue
	"#10B981", // green
	"#F59E0B", // amber
	"#EF4444", // red
	"#8B5CF6", // violet
	"#EC4899", // pink
	"#14B8A6", // teal
	"#F97316", // orange
}

// Theme groups features into a colored swimlane.
type Theme struct {
	ID          string    `json:"id" yaml:"id"`
	Roadmap     string    `json:"roadmap" yaml:"roadmap"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Color       string    `json:"color" yaml:"color"`
	Created     Timestamp `json:"created" yaml:"created"`
}

// NewTheme returns a theme for the given roadmap. An empty color is filled
// from DefaultColors based on how many themes already exist.
func NewTheme(roadmapName, name, color string, existing int) *Theme {
	color = strings.TrimSpace(color)
	if color == "" {
		color = PaletteColor(existing)
	}
	return &Theme{
		Roadmap: roadmapName,
		Name:    strings.TrimSpace(name),
		Color:   color,
	}
}

// PaletteColor cycles through DefaultColors.
func PaletteColor(i int) string {
	if i < 0 {
		i = -i
	}
	return DefaultColors[i%len(DefaultColors)]
}

// Clone returns a copy that shares no state with t.
func (t *Theme) Clone() *Theme {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}
