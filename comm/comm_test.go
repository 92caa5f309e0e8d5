package comm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drake/syncux/apdu"
	"github.com/drake/syncux/internal/logger"
)

func newTestComm() (*Comm, *MockSender) {
	s := &MockSender{}
	return New(s, WithLogger(logger.Discard())), s
}

func TestPeekDoesNotConsume(t *testing.T) {
	c, _ := newTestComm()
	assert.False(t, c.Ahead())

	require.NoError(t, c.Push([]byte{0xE0, 0x03, 0x00, 0x00}))
	assert.True(t, c.Ahead())
	assert.True(t, c.Ahead())

	h, ok := c.Header()
	require.True(t, ok)
	assert.Equal(t, byte(0x03), h.INS)
	assert.True(t, c.Ahead())

	cmd, ok := c.Next()
	require.True(t, ok)
	assert.Equal(t, byte(0x03), cmd.INS)
	assert.False(t, c.Ahead())
}

func TestArrivedSignal(t *testing.T) {
	c, _ := newTestComm()
	require.NoError(t, c.Push([]byte{0xE0, 0x03, 0x00, 0x00}))
	require.NoError(t, c.Push([]byte{0xE0, 0x04, 0x00, 0x00}))

	select {
	case <-c.Arrived():
	default:
		t.Fatal("expected an arrival signal")
	}
	// Two arrivals collapse into one pending signal.
	select {
	case <-c.Arrived():
		t.Fatal("expected a single coalesced signal")
	default:
	}
}

func TestDiscardRepliesStatus(t *testing.T) {
	c, s := newTestComm()
	require.NoError(t, c.Push([]byte{0xE0, 0x99, 0x00, 0x00}))

	require.NoError(t, c.Discard(apdu.SWBadIns))
	assert.False(t, c.Ahead())
	assert.Equal(t, []byte{0x6E, 0x01}, s.Last())

	assert.ErrorIs(t, c.Discard(apdu.SWBadIns), ErrNoCommand)
}

func TestMalformedIsAnsweredNotQueued(t *testing.T) {
	c, s := newTestComm()
	err := c.Push([]byte{0xE0})
	assert.ErrorIs(t, err, apdu.ErrShortCommand)
	assert.False(t, c.Ahead())
	assert.Equal(t, []byte{0x6E, 0x03}, s.Last())
	assert.Equal(t, uint64(1), c.Stats().Malformed)
}

func TestReplyAndStats(t *testing.T) {
	c, s := newTestComm()
	require.NoError(t, c.Push([]byte{0xE0, 0x03, 0x00, 0x00}))
	_, _ = c.Next()
	require.NoError(t, c.Reply([]byte{1, 2}, apdu.SWOk))

	assert.Equal(t, []byte{1, 2, 0x90, 0x00}, s.Last())
	st := c.Stats()
	assert.Equal(t, uint64(1), st.Received)
	assert.Equal(t, uint64(1), st.Replied)
	assert.Equal(t, 0, st.Pending)
}

func TestReplySendError(t *testing.T) {
	s := &MockSender{Err: errors.New("link down")}
	c := New(s, WithLogger(logger.Discard()))
	err := c.Reply(nil, apdu.SWOk)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "link down")
}

func TestInboxFeedsQueue(t *testing.T) {
	c, _ := newTestComm()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := c.Inbox(ctx)
	in <- []byte{0xE0, 0x03, 0x00, 0x00}
	in <- []byte{0xE0, 0x04, 0x00, 0x00}

	require.Eventually(t, func() bool { return c.Stats().Pending == 2 }, time.Second, time.Millisecond)
	h, _ := c.Header()
	assert.Equal(t, byte(0x03), h.INS)
}
