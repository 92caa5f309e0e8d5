// Package session is a sample signing application built on the UI bridge.
// It idles on the home screen, decodes each command the host sends, and
// runs the matching review before answering.
package session

import (
	"context"
	"crypto/sha256"
	"errors"

	"github.com/drake/syncux/apdu"
	"github.com/drake/syncux/internal/logger"
	"github.com/drake/syncux/ux"
)

// Settings switch indexes.
const (
	SettingBlindSigning = 0
	SettingExpertMode   = 1
)

// Channel is the command channel as the application uses it: the bridge
// peeks, the application consumes and replies.
type Channel interface {
	ux.CommandChannel
	Next() (apdu.Command, bool)
	Reply(data []byte, sw apdu.StatusWord) error
}

// Config describes the application.
type Config struct {
	Name    string
	Tagline string
	Version string
	Author  string
	Address string

	// Settings backs the home screen switches. Nil leaves every switch off.
	Settings ux.SettingsStore
}

// Option configures an App.
type Option func(*App)

func WithLogger(l *logger.Logger) Option {
	return func(a *App) { a.log = l }
}

// WithHistoryLimit sets how many signing requests are remembered.
func WithHistoryLimit(n int) Option {
	return func(a *App) { a.history = NewHistory(n) }
}

// App orchestrates the home loop and the signing flows.
type App struct {
	b       *ux.Bridge
	c       Channel
	cfg     Config
	home    *ux.Home
	history *History
	log     *logger.Logger
}

// New creates an application and binds c to the bridge.
func New(b *ux.Bridge, c Channel, cfg Config, opts ...Option) *App {
	a := &App{
		b:       b,
		c:       c,
		cfg:     cfg,
		history: NewHistory(64),
		log:     logger.GetDefault(),
	}
	for _, opt := range opts {
		opt(a)
	}
	b.InitComm(c)

	a.home = b.Home().
		AppName(cfg.Name).
		Tagline(cfg.Tagline).
		InfoContents(cfg.Version, cfg.Author)
	if cfg.Settings != nil {
		a.home.Settings(cfg.Settings,
			ux.Setting{Text: "Blind signing", SubText: "Sign transactions that cannot be decoded"},
			ux.Setting{Text: "Expert mode", SubText: "Allow skipping review pages"},
		)
	}
	return a
}

// History returns the signing history.
func (a *App) History() *History {
	return a.history
}

// Run idles on the home screen and serves commands until the user quits
// or ctx is done. The bridge must have been created with a context that
// is cancelled along with ctx, or the home screen cannot be left.
func (a *App) Run(ctx context.Context) error {
	a.log.Info("application started", "name", a.cfg.Name, "version", a.cfg.Version)
	for {
		if ctx.Err() != nil {
			return nil
		}
		ev, err := ux.ShowHome(a.home, Decode)
		if err != nil {
			var derr *ux.DecodeError
			if errors.As(err, &derr) {
				a.log.Info("command refused", "header", derr.Header.String(), "sw", derr.SW.String(), "error", err)
				continue
			}
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if ev.Kind == ux.EventQuit {
			a.log.Info("quit from home")
			return nil
		}

		cmd, ok := a.c.Next()
		if !ok {
			continue
		}
		if err := a.handle(ev.Command, cmd); err != nil {
			a.log.Warn("reply failed", "ins", ev.Command.Ins.String(), "error", err)
		}
	}
}

func (a *App) handle(ins Instruction, cmd apdu.Command) error {
	a.log.Debug("handling command", "ins", ins.Ins.String(), "blind", ins.Blind, "len", len(cmd.Data))
	switch ins.Ins {
	case InsGetVersion:
		return a.c.Reply([]byte(a.cfg.Version), apdu.SWOk)
	case InsGetAppName:
		return a.c.Reply([]byte(a.cfg.Name), apdu.SWOk)
	case InsGetAddress:
		return a.getAddress(ins)
	case InsSignTransaction:
		return a.signTransaction(ins, cmd)
	case InsSignMessage:
		return a.signMessage(cmd)
	}
	return a.c.Reply(nil, apdu.SWBadIns)
}

func (a *App) getAddress(ins Instruction) error {
	if !ins.Display {
		return a.c.Reply([]byte(a.cfg.Address), apdu.SWOk)
	}
	ok := a.b.AddressReview().Show(a.cfg.Address)
	var err error
	if ok {
		err = a.c.Reply([]byte(a.cfg.Address), apdu.SWOk)
	} else {
		err = a.c.Reply(nil, apdu.SWDeny)
	}
	a.b.ReviewStatus().Show(ux.StatusAddress, ok)
	return err
}

func (a *App) signTransaction(ins Instruction, cmd apdu.Command) error {
	if ins.Blind && !a.setting(SettingBlindSigning) {
		err := a.c.Reply(nil, apdu.SWDeny)
		a.b.Status().Show("Blind signing disabled", false)
		a.history.Add(ins.Ins, "refused", nil)
		return err
	}

	r := a.b.Review().Kind(ux.Transaction)
	if a.setting(SettingExpertMode) {
		r.Skippable()
	}
	var fields []ux.Field
	if ins.Blind {
		r.Blind()
	} else {
		var err error
		if fields, err = ParseFields(cmd.Data); err != nil {
			a.log.Debug("bad transaction payload", "error", err)
			return a.c.Reply(nil, apdu.StatusOf(err, apdu.SWBadLen))
		}
	}
	return a.conclude(ins.Ins, ux.Transaction, r.Show(fields), cmd.Data)
}

func (a *App) signMessage(cmd apdu.Command) error {
	if len(cmd.Data) == 0 {
		return a.c.Reply(nil, apdu.SWBadLen)
	}
	o := a.b.Review().Kind(ux.Message).Show([]ux.Field{{Name: "Message", Value: string(cmd.Data)}})
	return a.conclude(InsSignMessage, ux.Message, o, cmd.Data)
}

// conclude answers a review. The reply goes out before the status banner
// so the host is not held up by it. A review cut short by the next
// command is answered as cancelled and the home loop picks that command
// up.
func (a *App) conclude(ins Ins, kind ux.OperationKind, o ux.Outcome, payload []byte) error {
	switch o {
	case ux.Approved:
		digest := sha256.Sum256(payload)
		a.history.Add(ins, o.String(), digest[:])
		err := a.c.Reply(digest[:], apdu.SWOk)
		a.b.ReviewStatus().Show(kind.Status(), true)
		return err
	case ux.Rejected:
		a.history.Add(ins, o.String(), nil)
		err := a.c.Reply(nil, apdu.SWDeny)
		a.b.ReviewStatus().Show(kind.Status(), false)
		return err
	case ux.CommandArrived:
		a.log.Info("review interrupted", "ins", ins.String())
		a.history.Add(ins, o.String(), nil)
		return a.c.Reply(nil, apdu.SWUserCancelled)
	default:
		a.log.Warn("review failed", "ins", ins.String(), "outcome", o.String())
		a.history.Add(ins, o.String(), nil)
		return a.c.Reply(nil, apdu.SWPanic)
	}
}

func (a *App) setting(index int) bool {
	return a.cfg.Settings != nil && a.cfg.Settings.Get(index)
}
