package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"\x1b[31mred\x1b[0m", "red"},
		{"\x1b[1;32mbold green\x1b[0m text", "bold green text"},
		{"\x1b[2J\x1b[Hcleared", "cleared"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripANSI(tt.in))
	}
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "to�me", Sanitize("to\rme", false))
	assert.Equal(t, "a�b", Sanitize("a\nb", false))
	assert.Equal(t, "a\nb", Sanitize("a\nb", true))
	assert.Equal(t, "12 CRAB", Sanitize("\x1b[8m12 CRAB", false))
	assert.Equal(t, "日本", Sanitize("日本", false))
}
