package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterFiresOnce(t *testing.T) {
	events := make(chan Event, 4)
	s := NewService(events)

	id := s.After("dismiss", 5*time.Millisecond)
	select {
	case ev := <-events:
		assert.Equal(t, Event{ID: id, Tag: "dismiss"}, ev)
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
	assert.Zero(t, s.Pending())
}

func TestEveryRepeatsUntilCancelled(t *testing.T) {
	events := make(chan Event, 16)
	s := NewService(events)

	id := s.Every("tick", 2*time.Millisecond)
	for i := 0; i < 3; i++ {
		select {
		case ev := <-events:
			assert.True(t, ev.Repeating)
			assert.Equal(t, "tick", ev.Tag)
		case <-time.After(time.Second):
			t.Fatal("repeating timer stalled")
		}
	}
	s.Cancel(id)
	assert.Zero(t, s.Pending())
}

func TestCancelBeforeFire(t *testing.T) {
	events := make(chan Event, 1)
	s := NewService(events)

	s.Cancel(s.After("dismiss", 20*time.Millisecond))
	s.After("a", time.Hour)
	s.After("b", time.Hour)
	require.Equal(t, 2, s.Pending())
	s.CancelAll()
	assert.Zero(t, s.Pending())

	select {
	case ev := <-events:
		t.Fatalf("cancelled timer fired: %+v", ev)
	case <-time.After(40 * time.Millisecond):
	}
}
