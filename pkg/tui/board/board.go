// Package board is the Bubble Tea host for the drag controller: it draws the
// swimlanes on a month grid and turns terminal mouse events into gestures.
package board

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/rs/zerolog"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/drag"
	"tableflip.dev/roadmap/pkg/store"
	"tableflip.dev/roadmap/pkg/swimlane"
	"tableflip.dev/roadmap/pkg/timeline"
	"tableflip.dev/roadmap/pkg/tui/events"
	"tableflip.dev/roadmap/pkg/tui/theme"
)

const componentID events.ComponentID = "board"

// Option customises the board.
type Option func(*Model)

// WithYear selects the year shown first.
func WithYear(year int) Option {
	return func(m *Model) {
		if year > 0 {
			m.year = year
		}
	}
}

// WithOrder selects how lanes are packed.
func WithOrder(o timeline.Order) Option {
	return func(m *Model) {
		m.order = o
	}
}

// WithLogger sets the logger for board and drag tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Model) {
		m.log = l
	}
}

// WithTheme overrides the default styles.
func WithTheme(t theme.Theme) Option {
	return func(m *Model) {
		m.theme = t
	}
}

// Model is the board state.
type Model struct {
	ctx   context.Context
	svc   *app.Service
	live  *app.Live
	ctrl  *drag.Controller
	log   zerolog.Logger
	theme theme.Theme

	year   int
	order  timeline.Order
	title  string
	layout swimlane.Layout
	lines  []line

	width  int
	height int
	cell   int

	status    string
	statusErr bool
	// pendingReload defers storage reloads until the gesture ends.
	pendingReload bool

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// New loads the service's roadmap and returns a board ready to run.
func New(ctx context.Context, svc *app.Service, opts ...Option) (*Model, error) {
	live, err := svc.Live(ctx)
	if err != nil {
		return nil, err
	}
	m := &Model{
		ctx:   ctx,
		svc:   svc,
		live:  live,
		log:   zerolog.Nop(),
		theme: theme.Default(),
		year:  time.Now().Year(),
		cell:  minCell,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.ctrl = drag.New(live, live, drag.WithLogger(m.log))
	m.arrange()
	return m, nil
}

// Run opens the board full screen with mouse tracking.
func Run(ctx context.Context, svc *app.Service, opts ...Option) error {
	m, err := New(ctx, svc, opts...)
	if err != nil {
		return err
	}
	defer m.stopWatch()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// Init starts watching storage.
func (m *Model) Init() tea.Cmd {
	return startWatchCmd(m.ctx, m.svc)
}

// Update handles a message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.log.GetLevel() <= zerolog.DebugLevel {
		if d := describeMsg(msg); d != "" {
			m.log.Debug().Str("msg", d).Msg("board: update")
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.cell = cellWidth(msg.Width)
		m.ctrl.SetWidth(m.containerWidth())
		return m, nil
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	case tea.MouseClickMsg:
		return m, m.handlePress(tea.Mouse(msg))
	case tea.MouseMotionMsg:
		return m, m.handleMotion(tea.Mouse(msg))
	case tea.MouseReleaseMsg:
		return m, m.handleRelease(tea.Mouse(msg))

	case events.GestureMsg:
		if msg.Phase == events.GestureBegin {
			m.setStatus(fmt.Sprintf("%s %s", msg.Kind, msg.Feature))
		}
		return m, nil
	case events.CommitMsg:
		s := fmt.Sprintf("%s → %s", msg.Feature, msg.Bounds)
		if msg.Theme != "" {
			s += " in " + msg.Theme
		}
		m.setStatus(s)
		return m, nil
	case events.ReloadMsg:
		m.reload(msg.Reason)
		return m, nil

	case watchStartedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("board: watch unavailable")
			return m, nil
		}
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		return m, m.waitForWatch()
	case watchEventMsg:
		m.handleWatchEvent(msg.event)
		return m, m.waitForWatch()
	case watchStoppedMsg:
		m.watchCh = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "q" || key == "ctrl+c" {
		m.stopWatch()
		return m, tea.Quit
	}
	if _, active := m.ctrl.Active(); active {
		return m, nil
	}
	switch key {
	case "[", "h", "left":
		m.year--
		m.arrange()
	case "]", "l", "right":
		m.year++
		m.arrange()
	case "s":
		if m.order == timeline.StartOrder {
			m.order = timeline.InputOrder
		} else {
			m.order = timeline.StartOrder
		}
		m.arrange()
		m.setStatus("packing by " + m.order.String())
	case "r":
		return m, events.ReloadCmd(componentID, m.svc.Name(), "key")
	}
	return m, nil
}

func (m *Model) handlePress(mouse tea.Mouse) tea.Cmd {
	if mouse.Button != tea.MouseLeft {
		return nil
	}
	h, ok := m.hitAt(mouse.X, mouse.Y)
	if !ok {
		return nil
	}
	if !m.ctrl.Begin(h.kind, h.featureID, m.pointerX(mouse.X), m.containerWidth()) {
		return nil
	}
	return m.gestureCmd(events.GestureBegin, h.featureID, h.kind)
}

func (m *Model) handleMotion(mouse tea.Mouse) tea.Cmd {
	up, ok := m.ctrl.Move(m.ctx, m.pointerX(mouse.X))
	if !ok {
		return nil
	}
	if up.Missing {
		m.arrange()
		m.setStatus("feature no longer exists")
		return nil
	}
	if !up.Committed {
		return nil
	}
	m.arrange()
	return m.commitCmd(up)
}

func (m *Model) handleRelease(mouse tea.Mouse) tea.Cmd {
	up, ok := m.ctrl.Release(m.ctx, m.pointerX(mouse.X), m.dropAt(mouse.Y))
	if !ok {
		return nil
	}
	m.arrange()
	cmds := []tea.Cmd{m.gestureCmd(events.GestureEnd, up.FeatureID, up.Kind)}
	if up.Committed {
		cmds = append(cmds, m.commitCmd(up))
	}
	if m.pendingReload {
		cmds = append(cmds, events.ReloadCmd(componentID, m.svc.Name(), "deferred"))
	}
	return tea.Batch(cmds...)
}

func (m *Model) gestureCmd(phase events.GesturePhase, featureID string, kind drag.Kind) tea.Cmd {
	msg := events.GestureMsg{
		Component: componentID,
		Phase:     phase,
		FeatureID: featureID,
		Feature:   m.featureName(featureID),
		Kind:      kind.String(),
	}
	return func() tea.Msg { return msg }
}

func (m *Model) commitCmd(up drag.Update) tea.Cmd {
	msg := events.CommitMsg{
		Component: componentID,
		FeatureID: up.FeatureID,
		Feature:   m.featureName(up.FeatureID),
		Bounds:    up.Bounds,
		Patch:     up.Patch,
	}
	if up.Patch.ThemeID != nil {
		if lane, ok := m.layout.Lane(*up.Patch.ThemeID); ok {
			msg.Theme = lane.Name()
		}
	}
	return events.CommitCmd(msg)
}

func (m *Model) featureName(id string) string {
	if f, ok := m.live.Feature(id); ok {
		return f.Name
	}
	return id
}

func (m *Model) arrange() {
	snap := m.live.Snapshot()
	m.title = snap.Meta.Name
	m.layout = swimlane.Build(snap.Themes, snap.Features, m.year, swimlane.WithOrder(m.order))
	m.lines = buildLines(m.layout)
}

func (m *Model) reload(reason string) {
	m.pendingReload = false
	if err := m.live.Reload(m.ctx); err != nil {
		m.log.Error().Err(err).Msg("board: reload")
		m.statusErr = true
		m.status = err.Error()
		return
	}
	m.log.Debug().Str("reason", reason).Msg("board: reloaded")
	m.arrange()
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

// describeMsg summarises a message for debug logs.
func describeMsg(msg tea.Msg) string {
	switch v := msg.(type) {
	case events.Describer:
		return fmt.Sprintf("%T %s", msg, v.Describe())
	case tea.WindowSizeMsg:
		return fmt.Sprintf("size=%dx%d", v.Width, v.Height)
	case tea.MouseMsg:
		return fmt.Sprintf("mouse=%s", v)
	case tea.KeyPressMsg:
		return fmt.Sprintf("key=%s", v.String())
	default:
		return ""
	}
}
