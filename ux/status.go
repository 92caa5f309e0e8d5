package ux

import (
	"github.com/drake/syncux/event"
	"github.com/drake/syncux/toolkit"
)

// ReviewStatus is the banner that follows a review.
type ReviewStatus struct {
	b *Bridge
}

// ReviewStatus starts a banner concluding a review.
func (b *Bridge) ReviewStatus() *ReviewStatus {
	return &ReviewStatus{b: b}
}

// Show displays the banner for kind and blocks until it dismisses itself.
func (s *ReviewStatus) Show(kind StatusKind, success bool) {
	s.b.run(toolkit.ReviewStatusScreen{
		Status: StatusCode(kind, success),
		OnQuit: s.b.onQuit,
	}, false)
}

// Status is a banner with free text.
type Status struct {
	b *Bridge
}

// Status starts a free-text banner.
func (b *Bridge) Status() *Status {
	return &Status{b: b}
}

// Show displays message and blocks until the banner dismisses itself.
func (s *Status) Show(message string, success bool) {
	s.b.run(toolkit.StatusScreen{
		Message: message,
		Success: success,
		OnQuit:  s.b.onQuit,
	}, false)
}

// Spinner shows a progress screen and returns at once. The next flow
// replaces it.
func (b *Bridge) Spinner(text string) {
	b.enter()
	defer b.leave()
	b.display(toolkit.SpinnerScreen{Text: text})
	b.emit(event.Event{Type: event.WaitEnded, Screen: toolkit.KindSpinner.String()})
}
