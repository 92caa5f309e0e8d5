package session

import (
	"fmt"

	"github.com/drake/syncux/apdu"
	"github.com/drake/syncux/ux"
)

// CLA is the instruction class the application answers to.
const CLA = 0xE0

// Ins is an instruction code.
type Ins byte

const (
	InsGetVersion      Ins = 0x03
	InsGetAppName      Ins = 0x04
	InsGetAddress      Ins = 0x05
	InsSignTransaction Ins = 0x06
	InsSignMessage     Ins = 0x07
)

func (i Ins) String() string {
	switch i {
	case InsGetVersion:
		return "get_version"
	case InsGetAppName:
		return "get_app_name"
	case InsGetAddress:
		return "get_address"
	case InsSignTransaction:
		return "sign_transaction"
	case InsSignMessage:
		return "sign_message"
	default:
		return fmt.Sprintf("ins_%02x", byte(i))
	}
}

// Instruction is a decoded command header.
type Instruction struct {
	Ins Ins

	// Blind marks a transaction whose payload cannot be shown.
	Blind bool

	// Display asks for the address to be verified on screen first.
	Display bool
}

// Decode checks a command header. Refusals carry the status word to
// answer with.
func Decode(h apdu.Header) (Instruction, error) {
	if h.CLA != CLA {
		return Instruction{}, apdu.Errorf(apdu.SWBadCla, "class %02X", h.CLA)
	}
	ins := Ins(h.INS)
	switch ins {
	case InsGetVersion, InsGetAppName, InsSignMessage:
		if h.P1 != 0 || h.P2 != 0 {
			return Instruction{}, apdu.Errorf(apdu.SWBadP1P2, "%s takes no parameters", ins)
		}
		return Instruction{Ins: ins}, nil
	case InsGetAddress, InsSignTransaction:
		if h.P1 > 1 || h.P2 != 0 {
			return Instruction{}, apdu.Errorf(apdu.SWBadP1P2, "%s: p1=%02X p2=%02X", ins, h.P1, h.P2)
		}
		flag := h.P1&1 == 1
		return Instruction{Ins: ins, Blind: ins == InsSignTransaction && flag, Display: ins == InsGetAddress && flag}, nil
	default:
		return Instruction{}, apdu.Errorf(apdu.SWBadIns, "instruction %02X", h.INS)
	}
}

// ParseFields decodes a transaction payload: repeated
// len | name | len | value, lengths one byte each.
func ParseFields(data []byte) ([]ux.Field, error) {
	var fields []ux.Field
	for len(data) > 0 {
		name, rest, err := chunk(data)
		if err != nil {
			return nil, fmt.Errorf("field %d name: %w", len(fields), err)
		}
		value, rest, err := chunk(rest)
		if err != nil {
			return nil, fmt.Errorf("field %d value: %w", len(fields), err)
		}
		fields = append(fields, ux.Field{Name: name, Value: value})
		data = rest
	}
	if len(fields) == 0 {
		return nil, apdu.Errorf(apdu.SWBadLen, "empty transaction")
	}
	return fields, nil
}

// EncodeFields is the inverse of ParseFields. Longer strings are cut to
// 255 bytes.
func EncodeFields(fields []ux.Field) []byte {
	var out []byte
	put := func(s string) {
		if len(s) > 0xFF {
			s = s[:0xFF]
		}
		out = append(out, byte(len(s)))
		out = append(out, s...)
	}
	for _, f := range fields {
		put(f.Name)
		put(f.Value)
	}
	return out
}

func chunk(data []byte) (string, []byte, error) {
	if len(data) == 0 {
		return "", nil, apdu.Errorf(apdu.SWBadLen, "missing length byte")
	}
	n := int(data[0])
	if len(data) < 1+n {
		return "", nil, apdu.Errorf(apdu.SWBadLen, "need %d bytes, have %d", n, len(data)-1)
	}
	return string(data[1 : 1+n]), data[1+n:], nil
}
