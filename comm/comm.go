// Package comm is the device-side command channel: it queues APDUs arriving
// from the host, lets the UI bridge peek at them without consuming them,
// and sends responses back.
package comm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/drake/syncux/apdu"
	"github.com/drake/syncux/internal/buffer"
	"github.com/drake/syncux/internal/logger"
)

var ErrNoCommand = errors.New("no pending command")

// Sender delivers a response payload to the host.
type Sender interface {
	Send(payload []byte) error
}

// Stats holds command channel counters for monitoring.
type Stats struct {
	Received  uint64
	Malformed uint64
	Replied   uint64
	Pending   int
}

// Option configures a Comm.
type Option func(*Comm)

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Comm) { c.log = l }
}

// WithInboxLimit bounds how many raw frames may wait between the transport
// and the queue before the oldest are dropped.
func WithInboxLimit(n int) Option {
	return func(c *Comm) { c.inboxLimit = n }
}

// Comm is safe for concurrent use: the transport pushes from its own
// goroutine while the UI bridge peeks from the application goroutine.
type Comm struct {
	mu     sync.Mutex
	queue  []apdu.Command
	sender Sender

	// Signals each arrival. Capacity one: a pending signal already covers
	// any later arrival.
	arrived chan struct{}

	log        *logger.Logger
	inboxLimit int

	received  atomic.Uint64
	malformed atomic.Uint64
	replied   atomic.Uint64
}

// New creates a command channel answering through sender.
func New(sender Sender, opts ...Option) *Comm {
	c := &Comm{
		sender:     sender,
		arrived:    make(chan struct{}, 1),
		log:        logger.GetDefault(),
		inboxLimit: 1024,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Push parses a raw frame and queues it. A malformed frame is answered
// immediately with a length error and never reaches the queue.
func (c *Comm) Push(raw []byte) error {
	cmd, err := apdu.Parse(raw)
	if err != nil {
		c.malformed.Add(1)
		c.log.Warn("malformed command", "error", err, "len", len(raw))
		if sendErr := c.send(nil, apdu.SWBadLen); sendErr != nil {
			return errors.Join(err, sendErr)
		}
		return err
	}

	c.mu.Lock()
	c.queue = append(c.queue, cmd)
	c.mu.Unlock()
	c.received.Add(1)

	c.log.Debug("command arrived", "header", cmd.Header.String(), "len", len(cmd.Data))

	select {
	case c.arrived <- struct{}{}:
	default:
	}
	return nil
}

// Inbox returns a channel the transport can write raw frames to without
// ever blocking on the application. Frames are pushed in order until ctx is
// done or the returned channel is closed.
func (c *Comm) Inbox(ctx context.Context) chan<- []byte {
	in, out := buffer.Unbounded(16, c.inboxLimit, func(dropped []byte) {
		c.log.Warn("inbox full, dropping oldest frame", "len", len(dropped))
	})
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case raw, ok := <-out:
				if !ok {
					return
				}
				_ = c.Push(raw)
			}
		}
	}()
	return in
}

// Ahead reports whether a command is waiting. It never consumes one.
func (c *Comm) Ahead() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue) > 0
}

// Arrived returns a channel that receives after each arrival. Receivers
// must re-check Ahead, since a signal can outlive the command it announced.
func (c *Comm) Arrived() <-chan struct{} {
	return c.arrived
}

// Header returns the header of the oldest pending command.
func (c *Comm) Header() (apdu.Header, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue) == 0 {
		return apdu.Header{}, false
	}
	return c.queue[0].Header, true
}

// Next removes and returns the oldest pending command.
func (c *Comm) Next() (apdu.Command, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue) == 0 {
		return apdu.Command{}, false
	}
	cmd := c.queue[0]
	c.queue = c.queue[1:]
	return cmd, true
}

// Discard drops the oldest pending command and answers it with sw.
func (c *Comm) Discard(sw apdu.StatusWord) error {
	cmd, ok := c.Next()
	if !ok {
		return ErrNoCommand
	}
	c.log.Debug("command discarded", "header", cmd.Header.String(), "sw", sw.String())
	return c.send(nil, sw)
}

// Reply answers the command the application consumed last.
func (c *Comm) Reply(data []byte, sw apdu.StatusWord) error {
	return c.send(data, sw)
}

// Stats returns current counters.
func (c *Comm) Stats() Stats {
	c.mu.Lock()
	pending := len(c.queue)
	c.mu.Unlock()
	return Stats{
		Received:  c.received.Load(),
		Malformed: c.malformed.Load(),
		Replied:   c.replied.Load(),
		Pending:   pending,
	}
}

func (c *Comm) send(data []byte, sw apdu.StatusWord) error {
	if c.sender == nil {
		c.log.Warn("no sender, response dropped", "sw", sw.String())
		return nil
	}
	if err := c.sender.Send(apdu.Response(data, sw)); err != nil {
		return fmt.Errorf("send response: %w", err)
	}
	c.replied.Add(1)
	return nil
}
