package app

import (
	"context"
	"math"

	"tableflip.dev/roadmap/pkg/roadmap"
	"tableflip.dev/roadmap/pkg/swimlane"
	"tableflip.dev/roadmap/pkg/timeline"
)

// ThemeCount is the number of features in one lane.
type ThemeCount struct {
	ThemeID string `json:"themeId" yaml:"themeId"`
	Name    string `json:"name" yaml:"name"`
	Color   string `json:"color" yaml:"color"`
	Count   int    `json:"count" yaml:"count"`
}

// Summary aggregates a roadmap year.
type Summary struct {
	Roadmap string `json:"roadmap" yaml:"roadmap"`
	Year    int    `json:"year" yaml:"year"`
	Total   int    `json:"total" yaml:"total"`
	// Quarters counts features by the quarter of their start month.
	Quarters [4]int       `json:"quarters" yaml:"quarters"`
	Themes   []ThemeCount `json:"themes" yaml:"themes"`
	// Unassigned counts features that land in the ungrouped lane, including
	// those whose theme no longer exists.
	Unassigned int `json:"unassigned" yaml:"unassigned"`
	// CoveredMonths lists the months touched by at least one feature.
	CoveredMonths []int `json:"coveredMonths" yaml:"coveredMonths"`
	// Coverage is the share of the year covered, in whole percent.
	Coverage int `json:"coverage" yaml:"coverage"`
}

// Summary reports statistics for year of the current roadmap.
func (s *Service) Summary(ctx context.Context, year int) (Summary, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(snap, year), nil
}

// Summarize computes a Summary from a loaded roadmap.
func Summarize(snap *roadmap.Snapshot, year int) Summary {
	out := Summary{Roadmap: snap.Meta.Name, Year: year, CoveredMonths: []int{}}
	layout := swimlane.Build(snap.Themes, snap.Features, year)

	var covered [timeline.Months + 1]bool
	for _, lane := range layout.Lanes {
		if lane.Ungrouped() {
			out.Unassigned = lane.Count()
		} else {
			out.Themes = append(out.Themes, ThemeCount{
				ThemeID: lane.ThemeID,
				Name:    lane.Name(),
				Color:   lane.Color(),
				Count:   lane.Count(),
			})
		}
		for _, row := range lane.Rows {
			for _, f := range row {
				out.Total++
				out.Quarters[f.Quarter()-1]++
				b := f.Bounds().Clamped()
				for m := b.Start; m <= b.End; m++ {
					covered[m] = true
				}
			}
		}
	}
	for m := timeline.FirstMonth; m <= timeline.LastMonth; m++ {
		if covered[m] {
			out.CoveredMonths = append(out.CoveredMonths, m)
		}
	}
	out.Coverage = int(math.Round(float64(len(out.CoveredMonths)) / timeline.Months * 100))
	return out
}
