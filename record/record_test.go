package record

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drake/syncux/event"
)

func TestObserveAndEncode(t *testing.T) {
	r := New()
	r.Observe(event.Event{Type: event.ScreenShown, Screen: "review", Detail: "Review transaction"})
	r.Observe(event.Event{Type: event.WaitEnded, Screen: "review", Outcome: "approved", Turns: 4})

	var buf bytes.Buffer
	require.NoError(t, r.Encode(&buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "events:\n"))
	assert.Contains(t, out, "type: screen_shown")
	assert.Contains(t, out, "outcome: approved")
	assert.NotContains(t, out, "outcome: \"\"", "empty fields are omitted")

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, r.Entries(), got)
	assert.Equal(t, 2, got[1].Seq)
}

func TestSave(t *testing.T) {
	r := New()
	r.Observe(event.Event{Type: event.TunePlayed, Detail: "success"})

	path := filepath.Join(t.TempDir(), "transcript.yaml")
	require.NoError(t, r.Save(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	got, err := Decode(f)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "tune_played", got[0].Type)
}

func TestDecodeEmpty(t *testing.T) {
	got, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}
