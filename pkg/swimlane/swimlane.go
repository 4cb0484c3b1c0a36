// Package swimlane partitions a roadmap's features into one lane per theme
// plus a trailing ungrouped lane, and packs every lane into rows.
package swimlane

import (
	"tableflip.dev/roadmap/pkg/roadmap"
	"tableflip.dev/roadmap/pkg/timeline"
)

// UngroupedName labels the lane holding features without a known theme.
const UngroupedName = "Unassigned"

// Row is a packed row of features.
type Row = timeline.Row[*roadmap.Feature]

// Lane is one theme's section of the board.
type Lane struct {
	// ThemeID is empty for the ungrouped lane.
	ThemeID string `json:"themeId" yaml:"themeId"`
	// Theme is nil for the ungrouped lane.
	Theme *roadmap.Theme `json:"theme,omitempty" yaml:"theme,omitempty"`
	Rows  []Row          `json:"rows" yaml:"rows"`
}

// Ungrouped reports whether this is the trailing lane for features without a
// known theme.
func (l Lane) Ungrouped() bool {
	return l.Theme == nil
}

// Name is the lane's display label.
func (l Lane) Name() string {
	if l.Theme == nil {
		return UngroupedName
	}
	return l.Theme.Name
}

// Color is the lane's display color.
func (l Lane) Color() string {
	if l.Theme == nil || l.Theme.Color == "" {
		return roadmap.UngroupedColor
	}
	return l.Theme.Color
}

// Count returns the number of features placed in the lane.
func (l Lane) Count() int {
	n := 0
	for _, row := range l.Rows {
		n += len(row)
	}
	return n
}

// Layout is the result of one layout pass for a display year.
type Layout struct {
	Year  int    `json:"year" yaml:"year"`
	Lanes []Lane `json:"lanes" yaml:"lanes"`
}

// Option customises Build behaviour.
type Option func(*buildOptions)

// WithOrder selects the packing order used for every lane.
func WithOrder(o timeline.Order) Option {
	return func(opts *buildOptions) {
		opts.order = o
	}
}

type buildOptions struct {
	order timeline.Order
}

// Build lays out features for year. Themes keep their given order; features
// keep their given order within each lane. Features of other years are left
// out entirely. Features whose theme id is empty or unknown land in the
// ungrouped lane, which is always the last lane. Build never mutates its
// inputs and is recomputed from scratch on every call.
func Build(themes []*roadmap.Theme, features []*roadmap.Feature, year int, opts ...Option) Layout {
	config := &buildOptions{}
	for _, opt := range opts {
		opt(config)
	}

	known := make(map[string]int, len(themes))
	lanes := make([]Lane, 0, len(themes)+1)
	for _, th := range themes {
		if th == nil {
			continue
		}
		if _, dup := known[th.ID]; dup || th.ID == "" {
			continue
		}
		known[th.ID] = len(lanes)
		lanes = append(lanes, Lane{ThemeID: th.ID, Theme: th})
	}

	partitions := make([][]*roadmap.Feature, len(lanes)+1)
	ungrouped := len(lanes)
	for _, f := range features {
		if f == nil || f.Year != year {
			continue
		}
		idx, ok := known[f.ThemeID]
		if !ok {
			idx = ungrouped
		}
		partitions[idx] = append(partitions[idx], f)
	}

	lanes = append(lanes, Lane{})
	for i := range lanes {
		lanes[i].Rows = timeline.Pack(partitions[i], timeline.WithOrder(config.order))
	}
	return Layout{Year: year, Lanes: lanes}
}

// ByTheme returns the rows of every lane keyed by theme id. The ungrouped
// lane is keyed by "".
func (l Layout) ByTheme() map[string][]Row {
	out := make(map[string][]Row, len(l.Lanes))
	for _, lane := range l.Lanes {
		out[lane.ThemeID] = lane.Rows
	}
	return out
}

// Lane returns the lane for themeID ("" for ungrouped).
func (l Layout) Lane(themeID string) (Lane, bool) {
	for _, lane := range l.Lanes {
		if lane.ThemeID == themeID {
			return lane, true
		}
	}
	return Lane{}, false
}

// Locate finds the lane and row indices holding the feature.
func (l Layout) Locate(featureID string) (lane, row int, ok bool) {
	for li, ln := range l.Lanes {
		for ri, r := range ln.Rows {
			for _, f := range r {
				if f.ID == featureID {
					return li, ri, true
				}
			}
		}
	}
	return 0, 0, false
}

// Count returns the number of features laid out.
func (l Layout) Count() int {
	n := 0
	for _, lane := range l.Lanes {
		n += lane.Count()
	}
	return n
}
