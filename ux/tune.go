package ux

import (
	"errors"
	"fmt"

	"github.com/drake/syncux/event"
	"github.com/drake/syncux/toolkit"
)

var ErrInvalidTune = errors.New("invalid tune index")

// TuneIndex is a validated sound cue.
type TuneIndex uint8

const (
	TuneReserved     = TuneIndex(toolkit.TuneReserved)
	TuneBoot         = TuneIndex(toolkit.TuneBoot)
	TuneCharging     = TuneIndex(toolkit.TuneCharging)
	TuneLedgerMoment = TuneIndex(toolkit.TuneLedgerMoment)
	TuneError        = TuneIndex(toolkit.TuneError)
	TuneNeutral      = TuneIndex(toolkit.TuneNeutral)
	TuneLock         = TuneIndex(toolkit.TuneLock)
	TuneSuccess      = TuneIndex(toolkit.TuneSuccess)
	TuneLookAtMe     = TuneIndex(toolkit.TuneLookAtMe)
	TuneTapCasual    = TuneIndex(toolkit.TuneTapCasual)
	TuneTapNext      = TuneIndex(toolkit.TuneTapNext)
)

var tuneNames = [...]string{
	"reserved", "boot", "charging", "ledger_moment", "error", "neutral",
	"lock", "success", "look_at_me", "tap_casual", "tap_next",
}

// ParseTune validates a raw tune code.
func ParseTune(raw uint8) (TuneIndex, error) {
	if int(raw) >= len(tuneNames) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidTune, raw)
	}
	return TuneIndex(raw), nil
}

// String returns the snake_case name of the tune.
func (t TuneIndex) String() string {
	if int(t) < len(tuneNames) {
		return tuneNames[t]
	}
	return fmt.Sprintf("tune(%d)", uint8(t))
}

// PlayTune is the sound-cue entry point for the rest of the firmware.
// Invalid codes are ignored without error.
func (b *Bridge) PlayTune(raw uint8) {
	t, err := ParseTune(raw)
	if err != nil {
		b.log.Debug("tune ignored", "code", raw)
		b.emit(event.Event{Type: event.TuneIgnored, Detail: fmt.Sprint(raw)})
		return
	}
	b.emit(event.Event{Type: event.TunePlayed, Detail: t.String()})
	b.tk.PlayTune(toolkit.Tune(t))
}
