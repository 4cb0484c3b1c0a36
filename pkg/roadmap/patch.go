package roadmap

import (
	"fmt"
	"strings"

	"tableflip.dev/roadmap/pkg/timeline"
)

// Patch is a partial update of a feature's placement. Nil fields are left
// untouched. A ThemeID pointing at "" moves the feature to the ungrouped lane.
type Patch struct {
	StartMonth *int    `json:"startMonth,omitempty"`
	EndMonth   *int    `json:"endMonth,omitempty"`
	ThemeID    *string `json:"themeId,omitempty"`
}

// BoundsPatch sets both months.
func BoundsPatch(b timeline.Bounds) Patch {
	start, end := b.Start, b.End
	return Patch{StartMonth: &start, EndMonth: &end}
}

// StartPatch sets only the start month.
func StartPatch(month int) Patch {
	return Patch{StartMonth: &month}
}

// EndPatch sets only the end month.
func EndPatch(month int) Patch {
	return Patch{EndMonth: &month}
}

// WithTheme returns a copy of p that also reassigns the theme.
func (p Patch) WithTheme(themeID string) Patch {
	p.ThemeID = &themeID
	return p
}

// Empty reports whether no field is set.
func (p Patch) Empty() bool {
	return p.StartMonth == nil && p.EndMonth == nil && p.ThemeID == nil
}

// Describe renders the patch for logs and status lines.
func (p Patch) Describe() string {
	var parts []string
	if p.StartMonth != nil {
		parts = append(parts, fmt.Sprintf("start:%s", timeline.MonthLabel(*p.StartMonth)))
	}
	if p.EndMonth != nil {
		parts = append(parts, fmt.Sprintf("end:%s", timeline.MonthLabel(*p.EndMonth)))
	}
	if p.ThemeID != nil {
		theme := *p.ThemeID
		if theme == "" {
			theme = "-"
		}
		parts = append(parts, fmt.Sprintf("theme:%s", theme))
	}
	if len(parts) == 0 {
		return "noop"
	}
	return strings.Join(parts, " ")
}
