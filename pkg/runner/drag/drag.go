// Package drag moves and resizes features from the command line through the
// same controller the board uses for mouse gestures.
package drag

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/drag"
	"tableflip.dev/roadmap/pkg/roadmap"
	"tableflip.dev/roadmap/pkg/swimlane"
)

type Drag struct {
	Service *app.Service
	Kind    drag.Kind
	ID      string
	// Delta is the number of months to shift by.
	Delta int
	// ThemeID, when set, names the lane the feature is dropped on. An empty
	// string drops it on the ungrouped lane. Only moves regroup.
	ThemeID *string
	Log     zerolog.Logger
	Out     io.Writer
}

func (d *Drag) Do(ctx context.Context) error {
	if d.Service == nil {
		return errors.New("can not drag, no service")
	}
	if d.ThemeID != nil && d.Kind != drag.Move {
		return fmt.Errorf("can not change theme while resizing")
	}

	live, err := d.Service.Live(ctx)
	if err != nil {
		return err
	}
	var drop *drag.Drop
	if d.ThemeID != nil {
		if *d.ThemeID != "" {
			if _, ok := live.Snapshot().Theme(*d.ThemeID); !ok {
				return fmt.Errorf("%w: theme %q", app.ErrNotFound, *d.ThemeID)
			}
		}
		drop = &drag.Drop{ThemeID: *d.ThemeID}
	}

	before, _ := live.Feature(d.ID)
	var from string
	if before != nil {
		from = before.Bounds().String()
	}

	ctrl := drag.New(live, live, drag.WithLogger(d.Log))
	up, err := ctrl.Nudge(ctx, d.Kind, d.ID, d.Delta, drop)
	if errors.Is(err, drag.ErrNoGesture) {
		return fmt.Errorf("%w: feature %q", app.ErrNotFound, d.ID)
	}
	if err != nil {
		return err
	}

	out := d.Out
	if out == nil {
		out = color.Output
	}
	f, _ := live.Feature(d.ID)
	name := color.New(color.Bold)
	faint := color.New(color.Faint)
	if !up.Committed {
		_, _ = name.Fprint(out, f.Name)
		_, _ = faint.Fprintf(out, " unchanged at %s\n", from)
		return nil
	}
	_, _ = name.Fprint(out, f.Name)
	_, _ = fmt.Fprintf(out, " %s → %s", from, f.Bounds())
	if up.Patch.ThemeID != nil {
		_, _ = faint.Fprintf(out, " in %s", laneName(live.Snapshot(), f))
	}
	_, _ = fmt.Fprintln(out)
	return nil
}

func laneName(snap *roadmap.Snapshot, f *roadmap.Feature) string {
	if t, ok := snap.Theme(f.ThemeID); ok {
		return t.Name
	}
	return swimlane.UngroupedName
}
