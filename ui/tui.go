// Package ui is a terminal backend for the device UI toolkit, built on
// Bubble Tea. The Bubble Tea program runs on its own goroutine and only
// renders and collects key presses; callbacks run inside Pump on the
// goroutine waiting for the screen.
package ui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/drake/syncux/internal/logger"
	"github.com/drake/syncux/timer"
	"github.com/drake/syncux/toolkit"
)

const dismissTag = "dismiss"

// BubbleTeaUI implements toolkit.Toolkit in a terminal.
type BubbleTeaUI struct {
	program  *tea.Program
	gestures chan gesture
	fired    chan timer.Event
	timers   *timer.Service
	log      *logger.Logger
	banner   time.Duration
	opts     []tea.ProgramOption

	// Synchronization for startup
	ready     chan struct{}
	readyOnce sync.Once

	// Shutdown coordination
	done     chan struct{}
	doneOnce sync.Once

	// Messages queued before the program starts
	pendingMsgs  []tea.Msg
	pendingMsgMu sync.Mutex

	// Owned by the goroutine calling Show and Pump
	current   toolkit.Screen
	gen       int
	concluded bool
	dismissID int
}

// Option configures a BubbleTeaUI.
type Option func(*BubbleTeaUI)

// WithBannerDuration sets how long status banners stay up.
func WithBannerDuration(d time.Duration) Option {
	return func(b *BubbleTeaUI) { b.banner = d }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(b *BubbleTeaUI) { b.log = l }
}

// WithProgramOptions passes options through to tea.NewProgram.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(b *BubbleTeaUI) { b.opts = append(b.opts, opts...) }
}

// NewBubbleTeaUI creates a terminal toolkit. Nothing is drawn until Run.
func NewBubbleTeaUI(opts ...Option) *BubbleTeaUI {
	fired := make(chan timer.Event, 8)
	b := &BubbleTeaUI{
		gestures: make(chan gesture, 16),
		fired:    fired,
		timers:   timer.NewService(fired),
		log:      logger.GetDefault(),
		banner:   1500 * time.Millisecond,
		ready:    make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// sendOrQueue sends a message to the program, or queues it if not ready yet.
func (b *BubbleTeaUI) sendOrQueue(msg tea.Msg) {
	b.pendingMsgMu.Lock()
	select {
	case <-b.ready:
		b.pendingMsgMu.Unlock()
		b.program.Send(msg)
	default:
		b.pendingMsgs = append(b.pendingMsgs, msg)
		b.pendingMsgMu.Unlock()
	}
}

// flushPending delivers queued messages in order, then marks the program
// ready so later messages go straight through.
func (b *BubbleTeaUI) flushPending() {
	for {
		b.pendingMsgMu.Lock()
		msgs := b.pendingMsgs
		b.pendingMsgs = nil
		if len(msgs) == 0 {
			b.readyOnce.Do(func() {
				close(b.ready)
			})
			b.pendingMsgMu.Unlock()
			return
		}
		b.pendingMsgMu.Unlock()

		for _, msg := range msgs {
			b.program.Send(msg)
		}
	}
}

// Show implements toolkit.Toolkit.
func (b *BubbleTeaUI) Show(s toolkit.Screen) {
	if b.dismissID != 0 {
		b.timers.Cancel(b.dismissID)
		b.dismissID = 0
	}
	b.current = s
	b.gen++
	b.concluded = !toolkit.Interactive(s)
	if toolkit.AutoDismiss(s) {
		b.dismissID = b.timers.After(dismissTag, b.banner)
	}
	b.sendOrQueue(ScreenMsg(viewOf(s, b.gen)))
}

// Refresh implements toolkit.Toolkit.
func (b *BubbleTeaUI) Refresh() {
	b.sendOrQueue(refreshMsg{})
}

// PlayTune implements toolkit.Toolkit by naming the tune in the status bar.
func (b *BubbleTeaUI) PlayTune(t toolkit.Tune) {
	b.sendOrQueue(TuneMsg(fmt.Sprintf("tune %d", t)))
}

// Pump waits for one key press, banner timeout, command wake-up or
// shutdown, and applies the resulting response.
func (b *BubbleTeaUI) Pump(ctx context.Context, wake <-chan struct{}) {
	select {
	case <-ctx.Done():
	case <-wake:
	case g := <-b.gestures:
		if g.Gen != b.gen {
			b.log.Debug("stale gesture dropped", "gen", g.Gen, "current", b.gen)
			return
		}
		b.apply(g.Response)
	case ev := <-b.fired:
		if ev.Tag == dismissTag && ev.ID == b.dismissID {
			b.dismissID = 0
			b.apply(toolkit.Dismiss)
		}
	case <-b.done:
		// The terminal is gone; conclude the screen the way a user
		// walking away would, so the application can wind down.
		if b.current != nil && !b.concluded {
			b.apply(closeResponse(b.current))
			return
		}
		select {
		case <-ctx.Done():
		case <-wake:
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func (b *BubbleTeaUI) apply(r toolkit.Response) {
	if b.current == nil || b.concluded {
		return
	}
	gen := b.gen
	done, err := toolkit.Respond(b.current, r)
	if err != nil {
		b.log.Warn("response rejected", "screen", b.current.Kind().String(), "error", err)
		if errors.Is(err, toolkit.ErrSwitchNotSaved) {
			// The model flipped the switch optimistically; redraw from
			// the stored state.
			b.sendOrQueue(ScreenMsg(viewOf(b.current, b.gen)))
		}
		return
	}
	if done && b.gen == gen {
		b.concluded = true
	}
}

func closeResponse(s toolkit.Screen) toolkit.Response {
	switch s.Kind() {
	case toolkit.KindHome:
		return toolkit.Quit
	case toolkit.KindReviewStatus, toolkit.KindStatus:
		return toolkit.Dismiss
	default:
		return toolkit.Reject
	}
}

// Run starts the TUI and blocks until exit.
func (b *BubbleTeaUI) Run() error {
	opts := append([]tea.ProgramOption{tea.WithAltScreen()}, b.opts...)
	b.program = tea.NewProgram(NewModel(b.gestures), opts...)

	go b.flushPending()

	_, err := b.program.Run()

	b.timers.CancelAll()
	b.doneOnce.Do(func() {
		close(b.done)
	})
	return err
}

// Done returns a channel that closes when the UI exits.
func (b *BubbleTeaUI) Done() <-chan struct{} {
	return b.done
}

// Quit signals the TUI to exit.
func (b *BubbleTeaUI) Quit() {
	select {
	case <-b.ready:
		b.program.Quit()
	default:
		if b.program != nil {
			b.program.Quit()
			return
		}
		b.doneOnce.Do(func() {
			close(b.done)
		})
	}
}
