package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name         string
		level        Level
		logFunc      func(*Logger, string)
		shouldAppear bool
	}{
		{"debug level logs debug", LevelDebug, func(l *Logger, m string) { l.Debug(m) }, true},
		{"info level filters debug", LevelInfo, func(l *Logger, m string) { l.Debug(m) }, false},
		{"warn level filters info", LevelWarn, func(l *Logger, m string) { l.Info(m) }, false},
		{"error level logs error", LevelError, func(l *Logger, m string) { l.Error(m) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(Config{Level: tt.level, Format: FormatText, Output: &buf})
			tt.logFunc(l, "probe-message")
			assert.Equal(t, tt.shouldAppear, bytes.Contains(buf.Bytes(), []byte("probe-message")))
		})
	}
}

func TestJSONFormatWithAttributes(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf}).With("screen", "review")
	l.Info("shown")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "review", rec["screen"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel(" warn "))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("chatty"))
}

func TestSetDefault(t *testing.T) {
	prev := GetDefault()
	t.Cleanup(func() { SetDefault(prev) })

	var buf bytes.Buffer
	SetDefault(New(Config{Level: LevelDebug, Output: &buf}))
	Debug("through default")
	assert.Contains(t, buf.String(), "through default")
}
