package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drake/syncux/apdu"
	"github.com/drake/syncux/ux"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		h    apdu.Header
		want Instruction
		sw   apdu.StatusWord
	}{
		{"version", apdu.Header{CLA: CLA, INS: 0x03}, Instruction{Ins: InsGetVersion}, 0},
		{"blind", apdu.Header{CLA: CLA, INS: 0x06, P1: 1}, Instruction{Ins: InsSignTransaction, Blind: true}, 0},
		{"display address", apdu.Header{CLA: CLA, INS: 0x05, P1: 1}, Instruction{Ins: InsGetAddress, Display: true}, 0},
		{"bad class", apdu.Header{CLA: 0x80, INS: 0x03}, Instruction{}, apdu.SWBadCla},
		{"bad ins", apdu.Header{CLA: CLA, INS: 0x42}, Instruction{}, apdu.SWBadIns},
		{"bad p1", apdu.Header{CLA: CLA, INS: 0x06, P1: 2}, Instruction{}, apdu.SWBadP1P2},
		{"bad p2", apdu.Header{CLA: CLA, INS: 0x07, P2: 1}, Instruction{}, apdu.SWBadP1P2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.h)
			if tt.sw != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.sw, apdu.StatusOf(err, 0))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFields(t *testing.T) {
	fields := []ux.Field{{Name: "To", Value: "crab1"}, {Name: "Memo", Value: ""}}
	got, err := ParseFields(EncodeFields(fields))
	require.NoError(t, err)
	assert.Equal(t, fields, got)

	_, err = ParseFields(nil)
	assert.Equal(t, apdu.SWBadLen, apdu.StatusOf(err, 0))

}

func TestParseFieldsTruncated(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"name without value", []byte{0x02, 'T', 'o'}},
		{"one byte name without value", []byte{0x01, 'a'}},
		{"value length without bytes", []byte{0x01, 'a', 0x03}},
		{"short value", []byte{0x01, 'a', 0x03, 'x'}},
		{"name length without bytes", []byte{0x04}},
		{"second field cut", append(EncodeFields([]ux.Field{{Name: "To", Value: "crab1"}}), 0x02, 'M')},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() { _, err = ParseFields(tt.data) })
			require.Error(t, err)
			assert.Equal(t, apdu.SWBadLen, apdu.StatusOf(err, 0))
		})
	}
}

func TestInsString(t *testing.T) {
	assert.Equal(t, "sign_message", InsSignMessage.String())
	assert.Equal(t, "ins_7f", Ins(0x7F).String())
}

func TestHistoryLimit(t *testing.T) {
	h := NewHistory(2)
	h.Add(InsSignMessage, "approved", []byte{0x01})
	h.Add(InsSignMessage, "rejected", nil)
	h.Add(InsSignTransaction, "approved", []byte{0xab})

	got := h.Get()
	require.Len(t, got, 2)
	assert.Equal(t, "rejected", got[0].Outcome)
	assert.Equal(t, "ab", got[1].Digest)
}
