// Package toolkit describes the boundary to the device's presentation
// engine: screen descriptions with the callbacks that conclude them, the
// engine's wire constants, and the Toolkit interface every backend
// implements.
//
// A backend never runs a callback on its own goroutine. Callbacks fire
// inside Pump, on the goroutine that is waiting for the screen's outcome.
package toolkit

import (
	"context"
	"errors"
	"fmt"
)

// Toolkit is a callback-driven, non-reentrant presentation engine.
type Toolkit interface {
	// Show displays a screen. It does not block; the screen is concluded
	// later by exactly one of its callbacks firing inside Pump.
	Show(s Screen)

	// Refresh redraws the current screen.
	Refresh()

	// PlayTune plays a sound cue.
	PlayTune(t Tune)

	// Pump runs one turn of the engine's internal loop. It may invoke a
	// callback of the current screen before returning. Backends that need
	// to wait for input return early when ctx is done or wake fires.
	Pump(ctx context.Context, wake <-chan struct{})
}

// Action is a user gesture that a backend turns into a callback.
type Action uint8

const (
	ActionConfirm Action = iota
	ActionReject
	ActionQuit
	ActionDismiss
	ActionToggle
	ActionIdle
)

// String returns the lower-case name of the action.
func (a Action) String() string {
	switch a {
	case ActionConfirm:
		return "confirm"
	case ActionReject:
		return "reject"
	case ActionQuit:
		return "quit"
	case ActionDismiss:
		return "dismiss"
	case ActionToggle:
		return "toggle"
	case ActionIdle:
		return "idle"
	default:
		return "unknown"
	}
}

// ParseAction is the inverse of Action.String.
func ParseAction(s string) (Action, error) {
	for a := ActionConfirm; a <= ActionIdle; a++ {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// Response is one user gesture addressed to the current screen. Index
// selects the switch for ActionToggle.
type Response struct {
	Action Action
	Index  int
}

// Common responses.
var (
	Confirm = Response{Action: ActionConfirm}
	Reject  = Response{Action: ActionReject}
	Quit    = Response{Action: ActionQuit}
	Dismiss = Response{Action: ActionDismiss}
	Idle    = Response{Action: ActionIdle}
)

// Toggle returns a response that flips the home screen switch at index.
func Toggle(index int) Response {
	return Response{Action: ActionToggle, Index: index}
}

var (
	ErrUnsupportedResponse = errors.New("response not supported by screen")
	ErrUnknownAction       = errors.New("unknown action")
	ErrSwitchIndex         = errors.New("switch index out of range")
	ErrSwitchNotSaved      = errors.New("switch not saved")
)

// Respond fires the callback of s that matches r. It reports whether the
// response concluded the screen; toggles and idle turns do not.
func Respond(s Screen, r Response) (concluded bool, err error) {
	if r.Action == ActionIdle {
		return false, nil
	}

	switch sc := s.(type) {
	case HomeScreen:
		return respondHome(sc, r)
	case *HomeScreen:
		return respondHome(*sc, r)
	case ReviewScreen:
		return respondChoice(s, sc.OnChoice, r)
	case ChoiceScreen:
		return respondChoice(s, sc.OnChoice, r)
	case AddressReviewScreen:
		return respondChoice(s, sc.OnChoice, r)
	case StreamingScreen:
		return respondChoice(s, sc.OnChoice, r)
	case ReviewStatusScreen:
		return respondBanner(s, sc.OnQuit, r)
	case StatusScreen:
		return respondBanner(s, sc.OnQuit, r)
	}
	return false, fmt.Errorf("%w: %s on %s", ErrUnsupportedResponse, r.Action, kindOf(s))
}

func respondHome(h HomeScreen, r Response) (bool, error) {
	switch r.Action {
	case ActionQuit:
		if h.OnQuit != nil {
			h.OnQuit()
		}
		return true, nil
	case ActionToggle:
		if r.Index < 0 || r.Index >= len(h.Switches) {
			return false, fmt.Errorf("%w: %d of %d", ErrSwitchIndex, r.Index, len(h.Switches))
		}
		sw := &h.Switches[r.Index]
		sw.On = !sw.On
		if h.OnSwitch != nil {
			if err := h.OnSwitch(r.Index, sw.On); err != nil {
				sw.On = !sw.On
				return false, fmt.Errorf("%w: %d: %w", ErrSwitchNotSaved, r.Index, err)
			}
		}
		return false, nil
	}
	return false, fmt.Errorf("%w: %s on home", ErrUnsupportedResponse, r.Action)
}

func respondChoice(s Screen, cb func(bool), r Response) (bool, error) {
	switch r.Action {
	case ActionConfirm, ActionReject:
		if cb != nil {
			cb(r.Action == ActionConfirm)
		}
		return true, nil
	}
	return false, fmt.Errorf("%w: %s on %s", ErrUnsupportedResponse, r.Action, s.Kind())
}

func respondBanner(s Screen, cb func(), r Response) (bool, error) {
	// A banner has a single way out; any concluding gesture dismisses it.
	switch r.Action {
	case ActionDismiss, ActionQuit, ActionConfirm:
		if cb != nil {
			cb()
		}
		return true, nil
	}
	return false, fmt.Errorf("%w: %s on %s", ErrUnsupportedResponse, r.Action, s.Kind())
}

func kindOf(s Screen) string {
	if s == nil {
		return "no screen"
	}
	return s.Kind().String()
}

// Interactive reports whether the screen waits for a callback at all.
func Interactive(s Screen) bool {
	if s == nil {
		return false
	}
	return s.Kind() != KindSpinner
}

// AutoDismiss reports whether the screen is a banner that a backend
// should conclude on its own after a short delay.
func AutoDismiss(s Screen) bool {
	if s == nil {
		return false
	}
	k := s.Kind()
	return k == KindReviewStatus || k == KindStatus
}
