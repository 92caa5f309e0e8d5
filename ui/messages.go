package ui

import (
	"github.com/drake/syncux/toolkit"
)

// ScreenMsg replaces the displayed screen.
type ScreenMsg screenView

// TuneMsg shows the name of the last tune played.
type TuneMsg string

// refreshMsg asks the model to re-render the current screen.
type refreshMsg struct{}

// copiedMsg reports the result of copying an address to the clipboard.
type copiedMsg struct {
	Err error
}

// gesture is a user response tagged with the screen it was made on.
// Responses for a screen that has since been replaced are dropped.
type gesture struct {
	Gen      int
	Response toolkit.Response
}
