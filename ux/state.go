package ux

// Outcome is how a wait ended.
type Outcome uint8

const (
	Approved       Outcome = 0x00
	Rejected       Outcome = 0x01
	Quitted        Outcome = 0x02
	CommandArrived Outcome = 0x03
	Error          Outcome = 0xFF
)

// OutcomeFromByte maps a raw outcome code back to an Outcome. Unknown
// codes are Error.
func OutcomeFromByte(b uint8) Outcome {
	switch o := Outcome(b); o {
	case Approved, Rejected, Quitted, CommandArrived:
		return o
	default:
		return Error
	}
}

// String returns the snake_case name of the outcome.
func (o Outcome) String() string {
	switch o {
	case Approved:
		return "approved"
	case Rejected:
		return "rejected"
	case Quitted:
		return "quitted"
	case CommandArrived:
		return "command_arrived"
	default:
		return "error"
	}
}

// DecisionState records the outcome of the most recent interaction.
//
// It is written only by screen callbacks and read only by the wait loop.
// Both run on the goroutine blocked in the wait, so it carries no lock.
type DecisionState struct {
	last      Outcome
	completed bool
}

// Reset marks a new interaction as pending.
func (d *DecisionState) Reset() {
	d.last = Error
	d.completed = false
}

// Complete records the outcome of the pending interaction.
func (d *DecisionState) Complete(o Outcome) {
	d.last = o
	d.completed = true
}

// Peek returns the recorded outcome once the interaction completed. It
// does not clear anything; Reset does.
func (d *DecisionState) Peek() (Outcome, bool) {
	if !d.completed {
		return Error, false
	}
	return d.last, true
}

// Completed reports whether the pending interaction has concluded.
func (d *DecisionState) Completed() bool {
	return d.completed
}
