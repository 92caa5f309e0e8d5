// Package timer schedules wake-ups for toolkit backends: banner
// auto-dismissal and periodic monitoring.
package timer

import (
	"sync"
	"time"
)

// Event is sent when a timer fires. Tag is whatever the scheduler passed
// in, so one channel can serve several purposes.
type Event struct {
	ID        int
	Tag       string
	Repeating bool
}

// Service owns timer IDs, scheduling and cancellation. Fired timers are
// delivered on the events channel; a full channel drops the event.
// Repeating timers reschedule at a fixed interval.
type Service struct {
	events chan<- Event
	timers map[int]*entry
	nextID int
	mu     sync.Mutex
}

type entry struct {
	tag      string
	interval time.Duration // 0 = one-shot
	stop     func() bool
}

func NewService(events chan<- Event) *Service {
	return &Service{
		events: events,
		timers: make(map[int]*entry),
	}
}

// After schedules a one-shot timer and returns its ID.
func (s *Service) After(tag string, d time.Duration) int {
	return s.schedule(tag, d, 0)
}

// Every schedules a repeating timer and returns its ID.
func (s *Service) Every(tag string, d time.Duration) int {
	return s.schedule(tag, d, d)
}

func (s *Service) schedule(tag string, d, interval time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	t := time.AfterFunc(d, func() { s.fire(id) })
	s.timers[id] = &entry{tag: tag, interval: interval, stop: t.Stop}
	return id
}

func (s *Service) fire(id int) {
	s.mu.Lock()
	e, ok := s.timers[id]
	if !ok {
		s.mu.Unlock()
		return // Cancelled before firing
	}
	repeating := e.interval > 0
	if repeating {
		t := time.AfterFunc(e.interval, func() { s.fire(id) })
		e.stop = t.Stop
	} else {
		delete(s.timers, id)
	}
	tag := e.tag
	s.mu.Unlock()

	select {
	case s.events <- Event{ID: id, Tag: tag, Repeating: repeating}:
	default:
	}
}

// Cancel stops a timer. Cancelling an unknown or fired one-shot ID is a
// no-op.
func (s *Service) Cancel(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.timers[id]; ok {
		e.stop()
		delete(s.timers, id)
	}
}

// CancelAll stops every timer.
func (s *Service) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.timers {
		e.stop()
	}
	s.timers = make(map[int]*entry)
}

// Pending returns the number of scheduled timers.
func (s *Service) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
