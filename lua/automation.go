package lua

import (
	"context"
	"time"

	"github.com/drake/syncux/internal/logger"
	"github.com/drake/syncux/timer"
	"github.com/drake/syncux/toolkit"
)

const dismissTag = "dismiss"

// Automation is a Toolkit whose user is a Lua script. Each pump turn asks
// the script's on_screen for an answer; banners dismiss themselves after
// a delay. It runs entirely on the goroutine that calls Show and Pump.
type Automation struct {
	engine *Engine
	timers *timer.Service
	fired  chan timer.Event
	log    *logger.Logger

	banner time.Duration
	poll   time.Duration

	current   toolkit.Screen
	gen       int
	turn      int
	concluded bool
	dismissID int
}

// Option configures an Automation.
type Option func(*Automation)

// WithBannerDuration sets how long status banners stay up.
func WithBannerDuration(d time.Duration) Option {
	return func(a *Automation) { a.banner = d }
}

// WithPollInterval sets how long an idle turn waits before asking the
// script again.
func WithPollInterval(d time.Duration) Option {
	return func(a *Automation) { a.poll = d }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(a *Automation) { a.log = l }
}

// NewAutomation drives screens with engine, which must be initialised.
func NewAutomation(engine *Engine, opts ...Option) *Automation {
	fired := make(chan timer.Event, 8)
	a := &Automation{
		engine: engine,
		timers: timer.NewService(fired),
		fired:  fired,
		log:    logger.GetDefault(),
		banner: 500 * time.Millisecond,
		poll:   10 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Show makes s current and arms the dismissal timer for banners.
func (a *Automation) Show(s toolkit.Screen) {
	if a.dismissID != 0 {
		a.timers.Cancel(a.dismissID)
		a.dismissID = 0
	}
	a.current = s
	a.gen++
	a.turn = 0
	a.concluded = !toolkit.Interactive(s)
	if toolkit.AutoDismiss(s) {
		a.dismissID = a.timers.After(dismissTag, a.banner)
	}
	a.log.Debug("script screen", "kind", s.Kind().String())
}

func (a *Automation) Refresh() {}

func (a *Automation) PlayTune(t toolkit.Tune) {
	a.engine.OnTune(t)
}

// Pump asks the script once, then waits for a banner timer, a command
// or the poll interval.
func (a *Automation) Pump(ctx context.Context, wake <-chan struct{}) {
	if a.current != nil && !a.concluded && !toolkit.AutoDismiss(a.current) {
		a.turn++
		r, err := a.engine.OnScreen(a.current, a.turn)
		switch {
		case err != nil:
			a.log.Warn("script answer rejected", "screen", a.current.Kind().String(), "error", err)
		case r.Action != toolkit.ActionIdle:
			a.apply(r)
			return
		}
	}

	select {
	case <-ctx.Done():
	case <-wake:
	case ev := <-a.fired:
		if ev.Tag == dismissTag && ev.ID == a.dismissID && !a.concluded {
			a.dismissID = 0
			a.apply(toolkit.Dismiss)
		}
	case <-time.After(a.poll):
	}
}

// Close stops pending timers.
func (a *Automation) Close() {
	a.timers.CancelAll()
}

func (a *Automation) apply(r toolkit.Response) {
	gen := a.gen
	done, err := toolkit.Respond(a.current, r)
	if err != nil {
		a.log.Warn("script answer rejected", "screen", a.current.Kind().String(), "error", err)
		return
	}
	if done && a.gen == gen {
		a.concluded = true
	}
}
