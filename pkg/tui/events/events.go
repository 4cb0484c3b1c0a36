// Package events defines the messages exchanged between the board and its
// helpers inside the Bubble Tea loop.
package events

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/roadmap/pkg/roadmap"
	"tableflip.dev/roadmap/pkg/timeline"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// GesturePhase names the point in a drag a GestureMsg reports.
type GesturePhase string

const (
	GestureBegin GesturePhase = "begin"
	GestureEnd   GesturePhase = "end"
)

// GestureMsg is emitted when a drag starts or ends on a feature.
type GestureMsg struct {
	Component ComponentID
	Phase     GesturePhase
	FeatureID string
	Feature   string
	Kind      string
}

// Describe renders the gesture in a human-friendly format for logs.
func (m GestureMsg) Describe() string {
	return fmt.Sprintf(`phase:%q kind:%q feature:%q`, m.Phase, m.Kind, m.Feature)
}

// CommitMsg announces a change accepted by the gateway.
type CommitMsg struct {
	Component ComponentID
	FeatureID string
	Feature   string
	Bounds    timeline.Bounds
	Patch     roadmap.Patch
	// Theme is the lane name the feature now belongs to, when the commit
	// changed it.
	Theme string
}

// Describe implements the logging helper.
func (m CommitMsg) Describe() string {
	return fmt.Sprintf(`feature:%q bounds:%q patch:%q`, m.Feature, m.Bounds, m.Patch.Describe())
}

// CommitCmd wraps CommitMsg into a tea.Cmd.
func CommitCmd(msg CommitMsg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

// ReloadMsg asks the board to reload the roadmap from storage.
type ReloadMsg struct {
	Component ComponentID
	Roadmap   string
	Reason    string
}

// Describe implements the logging helper.
func (m ReloadMsg) Describe() string {
	return fmt.Sprintf(`roadmap:%q reason:%q`, m.Roadmap, m.Reason)
}

// ReloadCmd wraps ReloadMsg into a tea.Cmd.
func ReloadCmd(component ComponentID, name, reason string) tea.Cmd {
	return func() tea.Msg {
		return ReloadMsg{Component: component, Roadmap: name, Reason: reason}
	}
}

// Describer is implemented by messages that can describe themselves for logs.
type Describer interface {
	Describe() string
}
