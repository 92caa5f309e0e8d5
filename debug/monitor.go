// Package debug provides runtime monitoring and diagnostics.
package debug

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/drake/syncux/comm"
	"github.com/drake/syncux/internal/logger"
	"github.com/drake/syncux/network"
	"github.com/drake/syncux/timer"
	"github.com/drake/syncux/ux"
)

// Enabled returns true if debug mode is active (SYNCUX_DEBUG=1).
func Enabled() bool {
	return os.Getenv("SYNCUX_DEBUG") == "1"
}

// Sources are the components whose counters the monitor reports. Nil
// entries are skipped.
type Sources struct {
	Bridge  func() ux.Stats
	Comm    func() comm.Stats
	Network func() network.Stats
}

// Monitor periodically logs component statistics.
type Monitor struct {
	src      Sources
	interval time.Duration
	log      *logger.Logger
}

// NewMonitor creates a monitor. If debug mode is not enabled, returns nil.
func NewMonitor(src Sources, log *logger.Logger) *Monitor {
	if !Enabled() {
		return nil
	}
	return newMonitor(src, 5*time.Second, log)
}

func newMonitor(src Sources, interval time.Duration, log *logger.Logger) *Monitor {
	if log == nil {
		log = logger.GetDefault()
	}
	return &Monitor{src: src, interval: interval, log: log.With("component", "monitor")}
}

// Run logs statistics every interval until ctx is done. A nil monitor
// returns at once.
func (m *Monitor) Run(ctx context.Context) error {
	if m == nil {
		return nil
	}
	ticks := make(chan timer.Event, 1)
	timers := timer.NewService(ticks)
	timers.Every("stats", m.interval)
	defer timers.CancelAll()

	m.log.Debug("monitor started", "interval", m.interval)
	for {
		select {
		case <-ctx.Done():
			m.log.Debug("monitor stopped")
			return nil
		case <-ticks:
			m.logStats()
		}
	}
}

func (m *Monitor) logStats() {
	args := []any{"goroutines", runtime.NumGoroutine()}

	if m.src.Bridge != nil {
		b := m.src.Bridge()
		args = append(args,
			"screens", b.Screens,
			"waits", b.Waits,
			"turns", b.Turns,
			"interrupts", b.Interrupts,
			"busy", b.Busy,
		)
	}
	if m.src.Comm != nil {
		c := m.src.Comm()
		args = append(args,
			"received", c.Received,
			"malformed", c.Malformed,
			"replied", c.Replied,
			"pending", c.Pending,
		)
	}
	if m.src.Network != nil {
		n := m.src.Network()
		// Format time since last network read
		lastRead := "never"
		if !n.LastReadTime.IsZero() {
			lastRead = fmt.Sprintf("%v ago", time.Since(n.LastReadTime).Round(time.Second))
		}
		args = append(args,
			"connected", n.Connected,
			"connections", n.Connections,
			"bytes_read", n.BytesRead,
			"bytes_written", n.BytesWritten,
			"frames_in", n.FramesIn,
			"frames_out", n.FramesOut,
			"last_read", lastRead,
			"send_queue", fmt.Sprintf("%d/%d", n.SendQueueLen, n.SendQueueCap),
		)
	}
	m.log.Info("stats", args...)
}
