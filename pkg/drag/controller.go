// Package drag turns pointer movement into month changes on a feature.
//
// A Controller runs one gesture at a time. A gesture starts when the host
// reports a press on a feature box or one of its edges, and ends when the host
// reports a release anywhere. Every move that snaps to a different month range
// is committed through the Gateway immediately, so observers see the feature
// travel with the pointer. Deltas are always measured from the pointer and
// bounds captured when the gesture began, which keeps rounding from
// compounding over a long drag.
//
// The controller never reports drag problems to the user: out of range
// candidates are clamped, a feature deleted mid-gesture turns later moves into
// no-ops, and gateway failures are logged and skipped.
package drag

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"tableflip.dev/roadmap/pkg/roadmap"
	"tableflip.dev/roadmap/pkg/timeline"
)

// ErrNoGesture is returned by Nudge when no gesture could be started.
var ErrNoGesture = errors.New("drag: no gesture")

// Source resolves the current state of a feature.
type Source interface {
	Feature(id string) (*roadmap.Feature, bool)
}

// LaneSource is a Source that knows which lane a feature is drawn in. A
// feature whose theme no longer exists is drawn in the ungrouped lane, so
// its lane differs from its ThemeID. Without it the ThemeID is used.
type LaneSource interface {
	Source
	Lane(id string) string
}

// Gateway persists an accepted change. Unknown ids are a silent no-op.
type Gateway interface {
	ApplyBoundsChange(ctx context.Context, id string, p roadmap.Patch) error
}

// Drop identifies the lane under the pointer on release.
type Drop struct {
	// ThemeID is "" for the ungrouped lane.
	ThemeID string
}

// Update describes the outcome of a pointer event.
type Update struct {
	FeatureID string
	Kind      Kind
	Bounds    timeline.Bounds
	Patch     roadmap.Patch
	// Committed is true when Patch was handed to the gateway.
	Committed bool
	// Missing is true when the feature no longer exists.
	Missing bool
}

// Option customises a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for gesture tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// Controller is the gesture state machine. It is not safe for concurrent use;
// the host drives it from its single event loop.
type Controller struct {
	source  Source
	gateway Gateway
	log     zerolog.Logger

	active *Gesture
}

// New returns an idle controller.
func New(source Source, gateway Gateway, opts ...Option) *Controller {
	c := &Controller{
		source:  source,
		gateway: gateway,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Active returns the gesture in progress.
func (c *Controller) Active() (Gesture, bool) {
	if c.active == nil {
		return Gesture{}, false
	}
	return *c.active, true
}

// Begin starts a gesture on featureID with the pointer at x inside a
// container width units wide. Any gesture still active is ended first, as if
// its release had been received. Begin reports false when the feature does
// not exist or kind is unknown, leaving the controller idle.
func (c *Controller) Begin(kind Kind, featureID string, x, width float64) bool {
	if c.active != nil {
		c.log.Debug().Str("feature", c.active.FeatureID).Msg("drag: implicit end")
		c.active = nil
	}
	if !kind.Valid() {
		return false
	}
	f, ok := c.source.Feature(featureID)
	if !ok {
		return false
	}
	c.active = &Gesture{
		Kind:      kind,
		FeatureID: featureID,
		StartX:    x,
		Width:     width,
		Start:     f.Bounds(),
		Lane:      c.laneOf(f),
	}
	c.log.Debug().
		Str("feature", featureID).
		Str("kind", kind.String()).
		Str("bounds", f.Bounds().String()).
		Float64("x", x).
		Float64("width", width).
		Msg("drag: begin")
	return true
}

// SetWidth updates the container width used for the rest of the gesture,
// for hosts whose container resizes mid-drag.
func (c *Controller) SetWidth(width float64) {
	if c.active != nil && width > 0 {
		c.active.Width = width
	}
}

// Move reports the pointer at x. When the snapped candidate differs from the
// feature's current bounds it is committed at once.
func (c *Controller) Move(ctx context.Context, x float64) (Update, bool) {
	if c.active == nil {
		return Update{}, false
	}
	g := *c.active
	f, ok := c.source.Feature(g.FeatureID)
	if !ok {
		return Update{FeatureID: g.FeatureID, Kind: g.Kind, Missing: true}, true
	}

	current := f.Bounds()
	candidate := g.Candidate(current, g.Delta(x))
	up := Update{FeatureID: g.FeatureID, Kind: g.Kind, Bounds: candidate}
	if candidate == current {
		return up, true
	}
	up.Patch = g.patch(candidate)
	c.commitUpdate(ctx, &up)
	return up, true
}

// Release ends the gesture with the pointer at x. For move gestures drop names
// the lane under the pointer; when it is not the lane the feature was drawn
// in at Begin, the theme change is committed together with the final bounds.
// A nil drop leaves the theme alone.
func (c *Controller) Release(ctx context.Context, x float64, drop *Drop) (Update, bool) {
	if c.active == nil {
		return Update{}, false
	}
	g := *c.active
	c.active = nil
	c.log.Debug().Str("feature", g.FeatureID).Float64("x", x).Msg("drag: end")

	f, ok := c.source.Feature(g.FeatureID)
	if !ok {
		return Update{FeatureID: g.FeatureID, Kind: g.Kind, Missing: true}, true
	}

	current := f.Bounds()
	candidate := g.Candidate(current, g.Delta(x))
	up := Update{FeatureID: g.FeatureID, Kind: g.Kind, Bounds: candidate}

	regroup := g.Kind == Move && drop != nil && drop.ThemeID != g.Lane
	switch {
	case regroup:
		up.Patch = roadmap.BoundsPatch(candidate).WithTheme(drop.ThemeID)
	case candidate != current:
		up.Patch = g.patch(candidate)
	default:
		return up, true
	}
	c.commitUpdate(ctx, &up)
	return up, true
}

func (c *Controller) laneOf(f *roadmap.Feature) string {
	if ls, ok := c.source.(LaneSource); ok {
		return ls.Lane(f.ID)
	}
	return f.ThemeID
}

// commitUpdate hands up.Patch to the gateway. A gateway may find the feature
// gone from storage; when the source agrees afterwards the update is
// reported as missing instead of committed.
func (c *Controller) commitUpdate(ctx context.Context, up *Update) {
	up.Committed = c.commit(ctx, up.FeatureID, up.Patch)
	if _, ok := c.source.Feature(up.FeatureID); !ok {
		up.Committed = false
		up.Missing = true
	}
}

func (c *Controller) commit(ctx context.Context, id string, p roadmap.Patch) bool {
	if err := c.gateway.ApplyBoundsChange(ctx, id, p); err != nil {
		c.log.Warn().Err(err).Str("feature", id).Str("patch", p.Describe()).Msg("drag: commit failed")
		return false
	}
	c.log.Debug().Str("feature", id).Str("patch", p.Describe()).Msg("drag: commit")
	return true
}

// nudgeWidth gives every month one unit, so month m sits at m-1.
const nudgeWidth = float64(timeline.Months)

// Nudge runs a complete gesture that shifts featureID by delta months, as if
// the pointer were pressed and released delta months apart. It lets callers
// without a pointer share the clamping rules of a real drag.
func (c *Controller) Nudge(ctx context.Context, kind Kind, featureID string, delta int, drop *Drop) (Update, error) {
	delta = timeline.Clamp(delta, -(timeline.Months - 1), timeline.Months-1)
	from := 0.0
	if delta < 0 {
		from = float64(timeline.Months - 1)
	}
	if !c.Begin(kind, featureID, from, nudgeWidth) {
		return Update{}, fmt.Errorf("%w: %s %q", ErrNoGesture, kind, featureID)
	}
	up, _ := c.Release(ctx, from+float64(delta), drop)
	return up, nil
}
