package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds all the lipgloss styles for the device view.
type Styles struct {
	// Layout
	Frame     lipgloss.Style
	Header    lipgloss.Style
	StatusBar lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style

	// Review fields
	FieldName  lipgloss.Style
	FieldValue lipgloss.Style

	// Buttons
	Confirm lipgloss.Style
	Cancel  lipgloss.Style

	// Switches
	SwitchOn  lipgloss.Style
	SwitchOff lipgloss.Style

	// Banners
	Success lipgloss.Style
	Failure lipgloss.Style
	Warning lipgloss.Style

	// Misc
	Muted lipgloss.Style
}

// DefaultStyles returns the default style configuration.
func DefaultStyles() Styles {
	return Styles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2),
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")),
		Body: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),

		FieldName: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		FieldValue: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")),

		Confirm: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("71")).
			Padding(0, 1),
		Cancel: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")).
			Padding(0, 1),

		SwitchOn: lipgloss.NewStyle().
			Foreground(lipgloss.Color("71")), // Muted green
		SwitchOff: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")), // Gray

		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("71")),
		Failure: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		Warning: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220")),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
	}
}
