package ux

import (
	"errors"
	"fmt"

	"github.com/drake/syncux/apdu"
	"github.com/drake/syncux/event"
	"github.com/drake/syncux/glyph"
	"github.com/drake/syncux/toolkit"
)

// EventKind says why the home screen returned.
type EventKind int

const (
	EventCommand EventKind = iota
	EventQuit
)

// Event is the result of the home screen: a decoded command, or the user
// leaving the application.
type Event[T any] struct {
	Kind    EventKind
	Command T
}

// Decoder turns a pending command header into an application command. An
// error carrying an apdu.StatusError selects the status word sent back to
// the host; any other error is answered with apdu.SWBadIns.
type Decoder[T any] func(apdu.Header) (T, error)

// DecodeError reports a command the application refused. The command has
// already been answered with SW and dropped.
type DecodeError struct {
	Header apdu.Header
	SW     apdu.StatusWord
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v (sw %s)", e.Header, e.Err, e.SW)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// SettingsStore persists the home screen's switches.
type SettingsStore interface {
	Get(index int) bool
	Set(index int, on bool) error
}

// Setting labels one switch on the home screen. Its index in the list is
// its index in the store.
type Setting struct {
	Text    string
	SubText string
}

// Home builds the application's idle screen.
type Home struct {
	b        *Bridge
	appName  string
	tagline  string
	icon     *glyph.Glyph
	info     []toolkit.InfoPair
	store    SettingsStore
	settings []Setting
}

// Home starts a home screen description.
func (b *Bridge) Home() *Home {
	return &Home{b: b}
}

// AppName sets the name shown on the home page.
func (h *Home) AppName(name string) *Home {
	h.appName = name
	return h
}

// Tagline sets the line under the app name.
func (h *Home) Tagline(text string) *Home {
	h.tagline = text
	return h
}

// Glyph sets the app icon. The bitmap is borrowed, not copied.
func (h *Home) Glyph(g *glyph.Glyph) *Home {
	h.icon = g
	return h
}

// InfoContents sets the version and author shown on the info page.
func (h *Home) InfoContents(version, author string) *Home {
	h.info = []toolkit.InfoPair{
		{Name: "Version", Value: version},
		{Name: "Developer", Value: author},
	}
	return h
}

// Settings adds switches backed by store.
func (h *Home) Settings(store SettingsStore, switches ...Setting) *Home {
	h.store = store
	h.settings = switches
	return h
}

func (h *Home) screen() toolkit.HomeScreen {
	s := toolkit.HomeScreen{
		AppName: h.appName,
		Icon:    glyph.IconPtr(h.icon),
		Tagline: h.tagline,
		Info:    h.info,
		OnQuit:  h.b.onQuit,
	}
	if h.store != nil && len(h.settings) > 0 {
		s.Switches = make([]toolkit.Switch, len(h.settings))
		for i, st := range h.settings {
			s.Switches[i] = toolkit.Switch{Text: st.Text, SubText: st.SubText, On: h.store.Get(i)}
		}
		s.OnSwitch = h.toggle
	}
	return s
}

// toggle writes a switch through to the store. It does not conclude the
// home screen.
func (h *Home) toggle(index int, on bool) error {
	if err := h.store.Set(index, on); err != nil {
		h.b.log.Error("setting not saved", "index", index, "on", on, "error", err)
		return err
	}
	h.b.log.Debug("setting changed", "index", index, "on", on)
	return nil
}

// ShowHome displays the home screen until a command arrives or the user
// quits. Commands are decoded with decode; a refused command is answered
// and returned as a *DecodeError.
//
// The home screen is the idle screen, so it always waits with command
// interruption on and never applies the wait budget.
func ShowHome[T any](h *Home, decode Decoder[T]) (Event[T], error) {
	c := h.b.channel()
	for {
		o := h.b.runWithBudget(h.screen(), true, 0)
		switch o {
		case Quitted:
			return Event[T]{Kind: EventQuit}, nil
		case CommandArrived:
			hdr, ok := c.Header()
			if !ok {
				continue
			}
			cmd, err := decode(hdr)
			if err == nil {
				return Event[T]{Kind: EventCommand, Command: cmd}, nil
			}
			derr := &DecodeError{Header: hdr, SW: apdu.StatusOf(err, apdu.SWBadIns), Err: err}
			h.b.log.Debug("command refused", "header", hdr.String(), "sw", derr.SW.String(), "error", err)
			h.b.emit(event.Event{Type: event.DecodeFailed, Screen: toolkit.KindHome.String(), Detail: derr.Error()})
			if dErr := c.Discard(derr.SW); dErr != nil {
				return Event[T]{}, errors.Join(derr, dErr)
			}
			return Event[T]{}, derr
		default:
			return Event[T]{}, fmt.Errorf("%w: home screen ended %s", ErrUnexpectedOutcome, o)
		}
	}
}
