// Package roadmap defines the features, themes and roadmaps placed on the
// twelve-month timeline.
package roadmap

import (
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/roadmap/pkg/timeline"
)

// ErrInvalidBounds is returned when a feature's months are off the axis or
// its end precedes its start.
var ErrInvalidBounds = errors.New("roadmap: invalid month range")

// New returns a feature for the given roadmap covering bounds in year.
func New(roadmapName, name string, year int, bounds timeline.Bounds) *Feature {
	return &Feature{
		Roadmap:    roadmapName,
		Name:       strings.TrimSpace(name),
		Year:       year,
		StartMonth: bounds.Start,
		EndMonth:   bounds.End,
	}
}

// Feature is a named piece of work placed on a month range of one year.
type Feature struct {
	ID          string    `json:"id" yaml:"id"`
	Roadmap     string    `json:"roadmap" yaml:"roadmap"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Notes       string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	Year        int       `json:"year" yaml:"year"`
	StartMonth  int       `json:"startMonth" yaml:"startMonth"`
	EndMonth    int       `json:"endMonth" yaml:"endMonth"`
	ThemeID     string    `json:"themeId,omitempty" yaml:"themeId,omitempty"`
	Created     Timestamp `json:"created" yaml:"created"`
}

// Bounds implements timeline.Interval.
func (f *Feature) Bounds() timeline.Bounds {
	return timeline.Bounds{Start: f.StartMonth, End: f.EndMonth}
}

// SetBounds replaces the month range.
func (f *Feature) SetBounds(b timeline.Bounds) {
	f.StartMonth = b.Start
	f.EndMonth = b.End
}

// Quarter is derived from the start month.
func (f *Feature) Quarter() int {
	return timeline.QuarterOf(f.StartMonth)
}

// Ungrouped reports whether the feature carries no theme.
func (f *Feature) Ungrouped() bool {
	return f.ThemeID == ""
}

// Validate checks the month range.
func (f *Feature) Validate() error {
	if !f.Bounds().Valid() {
		return fmt.Errorf("%w: %d-%d", ErrInvalidBounds, f.StartMonth, f.EndMonth)
	}
	return nil
}

// Apply merges the set fields of p into the feature and reports whether
// anything changed. No validation is performed.
func (f *Feature) Apply(p Patch) bool {
	changed := false
	if p.StartMonth != nil && *p.StartMonth != f.StartMonth {
		f.StartMonth = *p.StartMonth
		changed = true
	}
	if p.EndMonth != nil && *p.EndMonth != f.EndMonth {
		f.EndMonth = *p.EndMonth
		changed = true
	}
	if p.ThemeID != nil && *p.ThemeID != f.ThemeID {
		f.ThemeID = *p.ThemeID
		changed = true
	}
	return changed
}

// Clone returns a copy that shares no state with f.
func (f *Feature) Clone() *Feature {
	if f == nil {
		return nil
	}
	cp := *f
	return &cp
}

func (f *Feature) String() string {
	return fmt.Sprintf("%s %s %d", f.Name, f.Bounds(), f.Year)
}
