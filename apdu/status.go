package apdu

import (
	"errors"
	"fmt"
)

// StatusWord is the two-byte trailer of every response.
type StatusWord uint16

const (
	SWOk              StatusWord = 0x9000
	SWNothingReceived StatusWord = 0x6982
	SWDeny            StatusWord = 0x6985
	SWBadCla          StatusWord = 0x6E00
	SWBadIns          StatusWord = 0x6E01
	SWBadP1P2         StatusWord = 0x6E02
	SWBadLen          StatusWord = 0x6E03
	SWUserCancelled   StatusWord = 0x6E04
	SWUnknown         StatusWord = 0x6D00
	SWPanic           StatusWord = 0xE000
)

// String returns the status word as four hex digits.
func (sw StatusWord) String() string {
	return fmt.Sprintf("%04X", uint16(sw))
}

// Bytes returns SW1 SW2.
func (sw StatusWord) Bytes() [2]byte {
	return [2]byte{byte(sw >> 8), byte(sw)}
}

// StatusError is an error that maps to a response status word.
type StatusError struct {
	SW  StatusWord
	Msg string
}

func (e *StatusError) Error() string {
	if e.Msg == "" {
		return "status " + e.SW.String()
	}
	return e.Msg + " (status " + e.SW.String() + ")"
}

// Errorf returns a StatusError with a formatted message.
func Errorf(sw StatusWord, format string, args ...any) error {
	return &StatusError{SW: sw, Msg: fmt.Sprintf(format, args...)}
}

// StatusOf extracts the status word carried by err, or fallback when err
// does not carry one.
func StatusOf(err error, fallback StatusWord) StatusWord {
	var se *StatusError
	if errors.As(err, &se) {
		return se.SW
	}
	return fallback
}

// Response builds a response payload: data followed by SW1 SW2.
func Response(data []byte, sw StatusWord) []byte {
	out := make([]byte, 0, len(data)+2)
	out = append(out, data...)
	b := sw.Bytes()
	return append(out, b[0], b[1])
}
