// Package event defines what the UI bridge reports to observers while it
// drives screens: display requests, callbacks, wait results and tunes.
package event

// Type identifies the kind of bridge activity.
type Type int

const (
	ScreenShown   Type = iota // A display request was issued
	CallbackFired             // A completion callback recorded an outcome
	WaitEnded                 // The wait loop returned
	TunePlayed
	TuneIgnored  // An out-of-range tune code was swallowed
	DecodeFailed // Home flow rejected an instruction
)

// String returns the snake_case name used in transcripts.
func (t Type) String() string {
	switch t {
	case ScreenShown:
		return "screen_shown"
	case CallbackFired:
		return "callback_fired"
	case WaitEnded:
		return "wait_ended"
	case TunePlayed:
		return "tune_played"
	case TuneIgnored:
		return "tune_ignored"
	case DecodeFailed:
		return "decode_failed"
	default:
		return "unknown"
	}
}

// Event is one observed step.
type Event struct {
	Type    Type
	Screen  string // Screen kind, when relevant
	Outcome string // Outcome name for CallbackFired and WaitEnded
	Detail  string // Free text: title, tune name, status word
	Turns   int    // Poll turns spent, for WaitEnded
}

// Observer receives events synchronously on the bridge goroutine.
type Observer func(Event)

// Multi fans one event out to several observers, skipping nil ones.
func Multi(obs ...Observer) Observer {
	return func(e Event) {
		for _, o := range obs {
			if o != nil {
				o(e)
			}
		}
	}
}
