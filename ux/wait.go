package ux

import (
	"context"
	"time"

	"github.com/drake/syncux/event"
)

// wait spins until the pending interaction completes or, when
// interruptible, a command is ahead on the channel. A command wins a tie
// and leaves the decision state untouched so the screen can be resumed.
func (b *Bridge) wait(interruptible bool, budget time.Duration) Outcome {
	c := b.channel()

	ctx := b.ctx
	if budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}

	var wake <-chan struct{}
	if interruptible {
		wake = c.Arrived()
	}

	b.waits.Add(1)
	turns := 0
	for {
		if interruptible && c.Ahead() {
			b.interrupts.Add(1)
			return b.ended(CommandArrived, turns)
		}
		if o, ok := b.state.Peek(); ok {
			return b.ended(o, turns)
		}
		if err := ctx.Err(); err != nil {
			if b.ctx.Err() != nil {
				b.log.Debug("wait cancelled", "screen", b.current.String(), "turns", turns)
			} else {
				b.log.Warn("wait budget exhausted", "screen", b.current.String(), "budget", budget, "turns", turns)
			}
			return b.ended(Error, turns)
		}

		b.tk.Pump(ctx, wake)
		turns++
		b.turns.Add(1)
	}
}

func (b *Bridge) ended(o Outcome, turns int) Outcome {
	b.log.Debug("wait ended", "screen", b.current.String(), "outcome", o.String(), "turns", turns)
	b.emit(event.Event{Type: event.WaitEnded, Screen: b.current.String(), Outcome: o.String(), Turns: turns})
	return o
}
