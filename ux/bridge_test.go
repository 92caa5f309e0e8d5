package ux

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drake/syncux/comm"
	"github.com/drake/syncux/event"
	"github.com/drake/syncux/internal/logger"
	"github.com/drake/syncux/toolkit"
)

var getVersion = []byte{0xE0, 0x03, 0x00, 0x00}

type harness struct {
	b      *Bridge
	tk     *toolkit.MockToolkit
	comm   *comm.Comm
	sender *comm.MockSender
	events []event.Event
}

func newHarness(t *testing.T, script ...toolkit.Response) *harness {
	t.Helper()
	h := &harness{
		tk:     toolkit.NewMockToolkit(script...),
		sender: &comm.MockSender{},
	}
	h.tk.MaxIdle = 5000
	h.comm = comm.New(h.sender, comm.WithLogger(logger.Discard()))
	h.b = New(h.tk,
		WithLogger(logger.Discard()),
		WithObserver(func(e event.Event) { h.events = append(h.events, e) }),
	)
	h.b.InitComm(h.comm)
	return h
}

// pushOnTurn delivers a command when the toolkit reaches the given turn.
func (h *harness) pushOnTurn(t *testing.T, turn int) {
	h.tk.OnPump = func(n int) {
		if n == turn {
			require.NoError(t, h.comm.Push(getVersion))
		}
	}
}

func TestDecisionState(t *testing.T) {
	var d DecisionState
	d.Reset()
	_, ok := d.Peek()
	assert.False(t, ok)

	d.Complete(Rejected)
	o, ok := d.Peek()
	assert.True(t, ok)
	assert.Equal(t, Rejected, o)

	// Peek never clears.
	o, ok = d.Peek()
	assert.True(t, ok)
	assert.Equal(t, Rejected, o)

	d.Reset()
	assert.False(t, d.Completed())
}

func TestOutcomeFromByte(t *testing.T) {
	assert.Equal(t, Approved, OutcomeFromByte(0x00))
	assert.Equal(t, Rejected, OutcomeFromByte(0x01))
	assert.Equal(t, Quitted, OutcomeFromByte(0x02))
	assert.Equal(t, CommandArrived, OutcomeFromByte(0x03))
	assert.Equal(t, Error, OutcomeFromByte(0x04))
	assert.Equal(t, Error, OutcomeFromByte(0xFF))
	assert.Equal(t, "command_arrived", CommandArrived.String())
}

func TestWaitBeforeInitCommPanics(t *testing.T) {
	tk := toolkit.NewMockToolkit(toolkit.Confirm)
	b := New(tk, WithLogger(logger.Discard()))

	require.PanicsWithError(t, ErrCommNotInitialized.Error(), func() {
		b.Choice().Show("Proceed?", "", "Yes", "No")
	})
	assert.Empty(t, tk.Shown, "nothing is displayed before the check")
}

func TestInitCommTwicePanics(t *testing.T) {
	h := newHarness(t)
	require.PanicsWithError(t, ErrCommAlreadyInitialized.Error(), func() {
		h.b.InitComm(h.comm)
	})
}

func TestReentrantDisplayFromCallbackPanics(t *testing.T) {
	h := newHarness(t, toolkit.Toggle(0))
	store := &memStore{onSet: func() {
		h.b.Status().Show("nested", true)
	}}

	require.PanicsWithError(t, ErrReentrantDisplay.Error(), func() {
		_, _ = ShowHome(h.b.Home().AppName("App").Settings(store, Setting{Text: "Blind signing"}), decodeVersion)
	})
	assert.Equal(t, []toolkit.ScreenKind{toolkit.KindHome}, h.tk.Kinds())

	// The exclusive section was released by the unwinding flow.
	h.tk.Queue(toolkit.Confirm)
	assert.True(t, h.b.Choice().Show("Again?", "", "Yes", "No"))
}

func TestDisplayWhileWaitingPanics(t *testing.T) {
	h := newHarness(t, toolkit.Idle, toolkit.Confirm)
	var panicked bool
	h.tk.OnPump = func(turn int) {
		if turn != 1 {
			return
		}
		assert.PanicsWithError(t, ErrReentrantDisplay.Error(), func() {
			h.b.Choice().Show("Other caller", "", "Yes", "No")
		})
		panicked = true
	}

	assert.True(t, h.b.Choice().Show("First", "", "Yes", "No"))
	assert.True(t, panicked)
	assert.Len(t, h.tk.Shown, 1)
	assert.False(t, h.b.Stats().Busy)
}

func TestResumeWithoutScreenPanics(t *testing.T) {
	h := newHarness(t)
	require.PanicsWithError(t, ErrNoOutstandingScreen.Error(), func() {
		h.b.Resume(false)
	})

	h.b.Spinner("Signing...")
	require.PanicsWithError(t, ErrNoOutstandingScreen.Error(), func() {
		h.b.Resume(false)
	})
}

func TestWaitBudgetEndsWithError(t *testing.T) {
	tk := toolkit.NewMockToolkit()
	tk.MaxIdle = 0
	b := New(tk, WithLogger(logger.Discard()), WithWaitBudget(20*time.Millisecond))
	b.InitComm(comm.New(nil, comm.WithLogger(logger.Discard())))

	start := time.Now()
	assert.Equal(t, Error, b.Review().Show([]Field{{Name: "Amount", Value: "1"}}))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	assert.False(t, b.Choice().Show("Proceed?", "", "Yes", "No"))
}

func TestObserverSeesFlow(t *testing.T) {
	h := newHarness(t, toolkit.Confirm)
	require.True(t, h.b.Choice().Show("Proceed?", "", "Yes", "No"))

	require.Len(t, h.events, 3)
	assert.Equal(t, event.ScreenShown, h.events[0].Type)
	assert.Equal(t, "Proceed?", h.events[0].Detail)
	assert.Equal(t, event.CallbackFired, h.events[1].Type)
	assert.Equal(t, "approved", h.events[1].Outcome)
	assert.Equal(t, event.WaitEnded, h.events[2].Type)
	assert.Equal(t, 1, h.events[2].Turns)

	st := h.b.Stats()
	assert.Equal(t, uint64(1), st.Screens)
	assert.Equal(t, uint64(1), st.Waits)
	assert.Equal(t, uint64(1), st.Turns)
}

func TestRefreshReachesToolkit(t *testing.T) {
	h := newHarness(t)
	h.b.Refresh()
	assert.Equal(t, 1, h.tk.Refreshes)
}

type memStore struct {
	values [10]bool
	sets   int
	onSet  func()
	err    error
}

func (m *memStore) Get(i int) bool { return m.values[i] }

func (m *memStore) Set(i int, on bool) error {
	if m.err != nil {
		return m.err
	}
	m.values[i] = on
	m.sets++
	if m.onSet != nil {
		m.onSet()
	}
	return nil
}
