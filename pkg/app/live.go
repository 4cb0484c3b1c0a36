package app

import (
	"context"
	"sync"

	"tableflip.dev/roadmap/pkg/roadmap"
)

// Live holds a loaded roadmap and keeps it in step with the changes committed
// through it, so a drag controller can use one value as both its source and
// its gateway.
type Live struct {
	svc *Service

	mu   sync.RWMutex
	snap *roadmap.Snapshot
}

// Live loads the current roadmap.
func (s *Service) Live(ctx context.Context) (*Live, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &Live{svc: s, snap: snap}, nil
}

// Snapshot returns a copy of the loaded roadmap.
func (l *Live) Snapshot() *roadmap.Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snap.Clone()
}

// Feature returns the loaded feature. The returned value is shared; callers
// must not modify it.
func (l *Live) Feature(id string) (*roadmap.Feature, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snap.Feature(id)
}

// Lane is the theme id of the lane the feature is drawn in: its own theme,
// or "" when it has none or the theme no longer exists.
func (l *Live) Lane(id string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	f, ok := l.snap.Feature(id)
	if !ok {
		return ""
	}
	if _, ok := l.snap.Theme(f.ThemeID); !ok {
		return ""
	}
	return f.ThemeID
}

// ApplyBoundsChange persists p and, once stored, applies it to the loaded
// copy. A feature that is gone from storage is dropped from the loaded copy
// too, so later lookups miss.
func (l *Live) ApplyBoundsChange(ctx context.Context, id string, p roadmap.Patch) error {
	found, err := l.svc.applyBoundsChange(ctx, id, p)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !found {
		l.snap.RemoveFeature(id)
		return nil
	}
	if f, ok := l.snap.Feature(id); ok {
		f.Apply(p)
	}
	return nil
}

// Reload replaces the loaded copy with what is stored now.
func (l *Live) Reload(ctx context.Context) error {
	snap, err := l.svc.Snapshot(ctx)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.snap = snap
	l.mu.Unlock()
	return nil
}
