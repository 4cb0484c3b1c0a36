package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventRoadmapChanged indicates features or themes of the given roadmap
	// were added, edited, or removed.
	EventRoadmapChanged EventType = iota

	// EventRoadmapsInvalidated signals that the roadmap catalog changed or the
	// change could not be attributed; callers should reload everything.
	EventRoadmapsInvalidated
)

func (t EventType) String() string {
	switch t {
	case EventRoadmapChanged:
		return "roadmap-changed"
	case EventRoadmapsInvalidated:
		return "roadmaps-invalidated"
	default:
		return "unknown"
	}
}

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type    EventType
	Roadmap string
}

const watchThrottle = 100 * time.Millisecond

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel to avoid blocking the watcher. The channel is closed once
// ctx is done or the watcher encounters an unrecoverable error.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				p.log.Warn().Err(err).Msg("store: watcher close")
			}
		})
	}

	dirs, err := collectDirs(p.basePath)
	if err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: enumerate directories: %w", err)
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Consumer is busy; the next event reloads anyway.
			}
		}

		throttle := newEventThrottle(watchThrottle)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				p.log.Debug().Err(err).Msg("store: watcher error")
				throttle.Enqueue(Event{Type: EventRoadmapsInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if evt.Op&fsnotify.Create == fsnotify.Create {
					// Roadmap and kind directories appear lazily; watch them
					// as they are created so later writes are seen.
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						p.watchTree(watcher, filepath.Clean(evt.Name), watched)
						throttle.Enqueue(Event{Type: EventRoadmapsInvalidated}, send)
						continue
					}
				}

				name := p.roadmapForPath(evt.Name)
				if name == "" {
					throttle.Enqueue(Event{Type: EventRoadmapsInvalidated}, send)
					continue
				}

				throttle.Enqueue(Event{Type: EventRoadmapChanged, Roadmap: name}, send)
			}
		}
	}()

	return events, nil
}

// watchTree adds root and every directory below it that is not yet watched.
// diskv creates roadmap/kind in one MkdirAll, so the child may exist before
// the create event for the parent is handled.
func (p *persistence) watchTree(watcher *fsnotify.Watcher, root string, watched map[string]struct{}) {
	dirs, err := collectDirs(root)
	if err != nil {
		p.log.Debug().Err(err).Str("dir", root).Msg("store: enumerate new directory")
		return
	}
	for _, dir := range dirs {
		if _, found := watched[dir]; found {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			p.log.Warn().Err(err).Str("dir", dir).Msg("store: watch")
			continue
		}
		watched[dir] = struct{}{}
	}
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// roadmapForPath derives the roadmap name from a diskv path.
func (p *persistence) roadmapForPath(path string) string {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	encoded := parts[0]
	if encoded == "" || strings.HasPrefix(encoded, roadmapsIndexFile) {
		return ""
	}
	if len(parts) == 1 {
		// the roadmap directory itself
		return ""
	}
	return fromRoadmap(encoded)
}

// eventThrottle coalesces a burst of filesystem activity into one event per
// roadmap. An invalidation in the burst replaces all of them, since receivers
// reload everything for it anyway.
type eventThrottle struct {
	mu          sync.Mutex
	timer       *time.Timer
	delay       time.Duration
	changed     map[string]struct{}
	invalidated bool
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		changed: make(map[string]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if ev.Type == EventRoadmapChanged {
		t.changed[ev.Roadmap] = struct{}{}
	} else {
		t.invalidated = true
	}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
}

func (t *eventThrottle) take() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timer = nil
	if t.invalidated {
		t.invalidated = false
		t.changed = make(map[string]struct{})
		return []Event{{Type: EventRoadmapsInvalidated}}
	}
	names := make([]string, 0, len(t.changed))
	for name := range t.changed {
		names = append(names, name)
	}
	t.changed = make(map[string]struct{})
	sort.Strings(names)
	out := make([]Event, len(names))
	for i, name := range names {
		out[i] = Event{Type: EventRoadmapChanged, Roadmap: name}
	}
	return out
}

func (t *eventThrottle) flush(send func(Event)) {
	for _, ev := range t.take() {
		send(ev)
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
