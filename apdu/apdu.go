// Package apdu parses ISO 7816-4 short command APDUs and defines the
// status words the device answers with.
package apdu

import (
	"errors"
	"fmt"
)

var (
	ErrShortCommand   = errors.New("apdu shorter than header")
	ErrLengthMismatch = errors.New("apdu data length mismatch")
	ErrDataTooLong    = errors.New("apdu data longer than 255 bytes")
)

// HeaderSize is CLA, INS, P1, P2.
const HeaderSize = 4

// Header is the fixed part of a command.
type Header struct {
	CLA byte
	INS byte
	P1  byte
	P2  byte
}

// String formats the header as hex pairs.
func (h Header) String() string {
	return fmt.Sprintf("%02X %02X %02X %02X", h.CLA, h.INS, h.P1, h.P2)
}

// Command is a parsed command APDU.
type Command struct {
	Header
	Data []byte
}

// Parse decodes a raw command. The body is either empty, a lone Le byte,
// or Lc followed by exactly Lc data bytes and an optional Le.
func Parse(raw []byte) (Command, error) {
	if len(raw) < HeaderSize {
		return Command{}, fmt.Errorf("%w: %d bytes", ErrShortCommand, len(raw))
	}
	cmd := Command{Header: Header{CLA: raw[0], INS: raw[1], P1: raw[2], P2: raw[3]}}

	body := raw[HeaderSize:]
	switch {
	case len(body) <= 1:
		// Case 1 or case 2 (Le only).
	default:
		lc := int(body[0])
		rest := body[1:]
		if len(rest) != lc && len(rest) != lc+1 {
			return Command{}, fmt.Errorf("%w: lc=%d, have %d", ErrLengthMismatch, lc, len(rest))
		}
		cmd.Data = append([]byte(nil), rest[:lc]...)
	}
	return cmd, nil
}

// Encode serializes a command with Lc when data is present.
func (c Command) Encode() ([]byte, error) {
	if len(c.Data) > 0xFF {
		return nil, fmt.Errorf("%w: %d", ErrDataTooLong, len(c.Data))
	}
	out := make([]byte, 0, HeaderSize+1+len(c.Data))
	out = append(out, c.CLA, c.INS, c.P1, c.P2)
	if len(c.Data) > 0 {
		out = append(out, byte(len(c.Data)))
		out = append(out, c.Data...)
	}
	return out, nil
}
