package theme

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer FooterTheme
	Board  BoardTheme
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// BoardTheme styles the month grid and feature boxes.
type BoardTheme struct {
	Title       lipgloss.Style
	Month       lipgloss.Style
	Quarter     lipgloss.Style
	LaneTitle   lipgloss.Style
	LaneCount   lipgloss.Style
	Placeholder lipgloss.Style
	Empty       lipgloss.Style
	// Box is the base style of a feature; the lane color is applied as
	// background on top of it.
	Box       lipgloss.Style
	BoxActive lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	box := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))

	return Theme{
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		},
		Board: BoardTheme{
			Title:       lipgloss.NewStyle().Bold(true).Underline(true),
			Month:       lipgloss.NewStyle().Bold(true),
			Quarter:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			LaneTitle:   lipgloss.NewStyle().Bold(true),
			LaneCount:   lipgloss.NewStyle().Faint(true),
			Placeholder: lipgloss.NewStyle().Faint(true).Italic(true),
			Empty:       lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
			Box:         box,
			BoxActive:   box.Bold(true).Reverse(true),
		},
	}
}

// LaneColor parses a theme color, falling back to gray for empty values.
func LaneColor(hex string) color.Color {
	if hex == "" {
		return lipgloss.Color("#64748B")
	}
	return lipgloss.Color(hex)
}
