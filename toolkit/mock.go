package toolkit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockToolkit implements Toolkit for tests. Each Pump turn applies the next
// scripted response to the current screen, on the caller's goroutine.
type MockToolkit struct {
	mu sync.Mutex

	// Captured calls
	Shown     []Screen
	Tunes     []Tune
	Refreshes int
	Turns     int
	Errors    []error

	// Reentered counts Show calls made while a callback was running.
	Reentered int

	// OnPump runs at the start of every turn, before any response is
	// applied. Tests use it to inject command arrivals mid-wait.
	OnPump func(turn int)

	// MaxIdle bounds consecutive turns without a scripted response before
	// the mock panics, so a mis-scripted test fails instead of hanging.
	MaxIdle int

	script    []Response
	current   Screen
	gen       int
	concluded bool
	pumping   bool
	idle      int
}

// NewMockToolkit creates a mock that will answer with the given responses
// in order.
func NewMockToolkit(script ...Response) *MockToolkit {
	return &MockToolkit{
		script:  append([]Response(nil), script...),
		MaxIdle: 10000,
	}
}

// Queue appends responses to the script.
func (m *MockToolkit) Queue(r ...Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, r...)
}

// Show records the screen and makes it current.
func (m *MockToolkit) Show(s Screen) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pumping {
		m.Reentered++
	}
	m.Shown = append(m.Shown, s)
	m.current = s
	m.gen++
	m.concluded = !Interactive(s)
}

// Refresh counts redraw requests.
func (m *MockToolkit) Refresh() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Refreshes++
}

// PlayTune records the tune.
func (m *MockToolkit) PlayTune(t Tune) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tunes = append(m.Tunes, t)
}

// Pump applies at most one scripted response.
func (m *MockToolkit) Pump(ctx context.Context, wake <-chan struct{}) {
	m.mu.Lock()
	m.Turns++
	turn := m.Turns
	hook := m.OnPump
	m.mu.Unlock()

	if hook != nil {
		hook(turn)
	}

	m.mu.Lock()
	if len(m.script) == 0 || m.current == nil || m.concluded {
		m.idle++
		idle, limit, cur := m.idle, m.MaxIdle, m.current
		m.mu.Unlock()
		if limit > 0 && idle > limit {
			panic(fmt.Sprintf("mock toolkit: no scripted response for %s after %d turns", kindOf(cur), idle))
		}
		select {
		case <-ctx.Done():
		case <-wake:
		case <-time.After(time.Millisecond):
		}
		return
	}
	m.idle = 0
	r := m.script[0]
	m.script = m.script[1:]
	s, gen := m.current, m.gen
	m.pumping = true
	m.mu.Unlock()

	// Callbacks run without the lock held so a reentrant Show is recorded
	// rather than deadlocking.
	concluded, err := func() (bool, error) {
		defer func() {
			m.mu.Lock()
			m.pumping = false
			m.mu.Unlock()
		}()
		return Respond(s, r)
	}()

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.Errors = append(m.Errors, err)
		return
	}
	if concluded && m.gen == gen {
		m.concluded = true
	}
}

// Current returns the screen most recently shown.
func (m *MockToolkit) Current() Screen {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Kinds returns the kinds of every screen shown so far, in order.
func (m *MockToolkit) Kinds() []ScreenKind {
	m.mu.Lock()
	defer m.mu.Unlock()
	kinds := make([]ScreenKind, len(m.Shown))
	for i, s := range m.Shown {
		kinds[i] = s.Kind()
	}
	return kinds
}

// Remaining returns the number of unused scripted responses.
func (m *MockToolkit) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.script)
}
