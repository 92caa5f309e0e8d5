// Package ux turns a callback-driven device UI toolkit into blocking calls.
//
// Every flow follows the same discipline: reset the decision state, hand a
// screen description with bound callbacks to the toolkit, then spin the
// wait loop. The loop alternates between checking for a finished decision,
// checking for an inbound command, and pumping the toolkit, which is the
// only place callbacks run. A Bridge is the single process-wide context for
// this; it is created once at startup and passed to whoever shows screens.
//
// Flows are not reentrant. Showing a screen from inside a callback, or from
// a second goroutine while a flow is waiting, panics with
// ErrReentrantDisplay.
package ux

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/drake/syncux/apdu"
	"github.com/drake/syncux/event"
	"github.com/drake/syncux/internal/logger"
	"github.com/drake/syncux/toolkit"
)

// Programming errors. The bridge panics with these; they never come back
// as return values.
var (
	ErrReentrantDisplay       = errors.New("display requested while another screen is awaiting the user")
	ErrCommNotInitialized     = errors.New("command channel not initialized")
	ErrCommAlreadyInitialized = errors.New("command channel already initialized")
	ErrNoOutstandingScreen    = errors.New("no screen awaiting the user")
	ErrAddressStatus          = errors.New("address status has no operation kind")
	ErrUnknownStatusKind      = errors.New("unknown status kind")
)

// ErrUnexpectedOutcome is returned when a flow's wait ends in an outcome
// the flow cannot produce, which happens only when a wait budget expires.
var ErrUnexpectedOutcome = errors.New("unexpected outcome")

// CommandChannel is the view of the host link the bridge needs: a
// non-consuming arrival check, an arrival signal to wake blocking
// toolkits, and enough access for the home screen to decode or refuse the
// pending command.
type CommandChannel interface {
	Ahead() bool
	Arrived() <-chan struct{}
	Header() (apdu.Header, bool)
	Discard(sw apdu.StatusWord) error
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(b *Bridge) { b.log = l }
}

// WithObserver receives every bridge event.
func WithObserver(o event.Observer) Option {
	return func(b *Bridge) { b.observe = o }
}

// WithWaitBudget bounds every wait except the home screen's. When the
// budget runs out the wait ends with Error. Without it a screen whose
// callback never fires blocks forever.
func WithWaitBudget(d time.Duration) Option {
	return func(b *Bridge) { b.budget = d }
}

// WithContext bounds every wait, the home screen's included. Once ctx is
// done the current wait ends with Error.
func WithContext(ctx context.Context) Option {
	return func(b *Bridge) { b.ctx = ctx }
}

// Stats holds bridge counters for monitoring.
type Stats struct {
	Screens    uint64
	Waits      uint64
	Turns      uint64
	Interrupts uint64
	Busy       bool
}

// Bridge owns the decision state and the binding to the command channel.
type Bridge struct {
	tk    toolkit.Toolkit
	comm  CommandChannel
	state DecisionState

	// Set for the whole display-and-wait section of a flow.
	active atomic.Bool

	shown   bool
	current toolkit.ScreenKind

	ctx     context.Context
	log     *logger.Logger
	observe event.Observer
	budget  time.Duration

	screens    atomic.Uint64
	waits      atomic.Uint64
	turns      atomic.Uint64
	interrupts atomic.Uint64
}

// New creates a bridge over tk. The command channel is bound separately
// with InitComm, once, before the first flow runs.
func New(tk toolkit.Toolkit, opts ...Option) *Bridge {
	b := &Bridge{
		tk:  tk,
		ctx: context.Background(),
		log: logger.GetDefault(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.state.Reset()
	return b
}

// InitComm binds the command channel. It may be called once.
func (b *Bridge) InitComm(c CommandChannel) {
	if c == nil {
		panic(ErrCommNotInitialized)
	}
	if b.comm != nil {
		panic(ErrCommAlreadyInitialized)
	}
	b.comm = c
}

// Refresh asks the toolkit to redraw.
func (b *Bridge) Refresh() {
	b.tk.Refresh()
}

// Stats returns current counters. Safe to call from any goroutine.
func (b *Bridge) Stats() Stats {
	return Stats{
		Screens:    b.screens.Load(),
		Waits:      b.waits.Load(),
		Turns:      b.turns.Load(),
		Interrupts: b.interrupts.Load(),
		Busy:       b.active.Load(),
	}
}

// Resume waits again for the screen a previous flow left outstanding, for
// instance after that flow returned CommandArrived. Nothing is redisplayed
// and the decision state is not reset.
func (b *Bridge) Resume(interruptible bool) Outcome {
	b.enter()
	defer b.leave()
	if !b.shown || !interactiveKind(b.current) {
		panic(ErrNoOutstandingScreen)
	}
	return b.wait(interruptible, b.budget)
}

func (b *Bridge) channel() CommandChannel {
	if b.comm == nil {
		panic(ErrCommNotInitialized)
	}
	return b.comm
}

func (b *Bridge) enter() {
	if !b.active.CompareAndSwap(false, true) {
		panic(ErrReentrantDisplay)
	}
}

func (b *Bridge) leave() {
	b.active.Store(false)
}

// run shows s and waits for its outcome.
func (b *Bridge) run(s toolkit.Screen, interruptible bool) Outcome {
	return b.runWithBudget(s, interruptible, b.budget)
}

func (b *Bridge) runWithBudget(s toolkit.Screen, interruptible bool, budget time.Duration) Outcome {
	b.enter()
	defer b.leave()
	b.channel()
	b.display(s)
	return b.wait(interruptible, budget)
}

// display must be called inside enter/leave.
func (b *Bridge) display(s toolkit.Screen) {
	b.state.Reset()
	b.shown = true
	b.current = s.Kind()
	b.screens.Add(1)
	b.log.Debug("display", "screen", s.Kind().String())
	b.emit(event.Event{Type: event.ScreenShown, Screen: s.Kind().String(), Detail: describe(s)})
	b.tk.Show(s)
}

// Callbacks handed to the toolkit. They only record.

func (b *Bridge) onChoice(confirm bool) {
	if confirm {
		b.complete(Approved)
		return
	}
	b.complete(Rejected)
}

func (b *Bridge) onQuit() {
	b.complete(Quitted)
}

func (b *Bridge) complete(o Outcome) {
	b.state.Complete(o)
	b.emit(event.Event{Type: event.CallbackFired, Screen: b.current.String(), Outcome: o.String()})
}

func (b *Bridge) emit(e event.Event) {
	if b.observe != nil {
		b.observe(e)
	}
}

func interactiveKind(k toolkit.ScreenKind) bool {
	return k != toolkit.KindSpinner
}

func describe(s toolkit.Screen) string {
	switch sc := s.(type) {
	case toolkit.HomeScreen:
		return sc.AppName
	case toolkit.ReviewScreen:
		return sc.Title
	case toolkit.ChoiceScreen:
		return sc.Message
	case toolkit.ReviewStatusScreen:
		return sc.Status.Message()
	case toolkit.StatusScreen:
		return sc.Message
	case toolkit.AddressReviewScreen:
		return sc.Address
	case toolkit.StreamingScreen:
		return sc.Title
	case toolkit.SpinnerScreen:
		return sc.Text
	}
	return ""
}
