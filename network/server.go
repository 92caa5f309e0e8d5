// Package network carries command frames between a host and the simulated
// device over TCP.
package network

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/drake/syncux/internal/logger"
)

var ErrNotConnected = errors.New("no host connected")

// Stats holds transport statistics for monitoring.
type Stats struct {
	Connected    bool
	Connections  uint64
	BytesRead    uint64
	BytesWritten uint64
	FramesIn     uint64
	FramesOut    uint64
	LastReadTime time.Time
	SendQueueLen int
	SendQueueCap int
}

// Server accepts host connections and moves frames between the current
// one and the device. Only one host is served at a time; a new connection
// replaces the old one.
type Server struct {
	log *logger.Logger

	mu      sync.Mutex
	current *connection

	// Stats (atomic for lock-free reads)
	connections  atomic.Uint64
	bytesRead    atomic.Uint64
	bytesWritten atomic.Uint64
	framesIn     atomic.Uint64
	framesOut    atomic.Uint64
	lastReadTime atomic.Int64 // Unix nano
}

// connection is a single, ephemeral host session.
type connection struct {
	conn      net.Conn
	sendQueue chan []byte

	done      chan struct{}
	closeOnce sync.Once
}

// NewServer creates a server. Nothing listens until Serve.
func NewServer(log *logger.Logger) *Server {
	if log == nil {
		log = logger.GetDefault()
	}
	return &Server{log: log}
}

// ListenAndServe listens on addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string, inbox chan<- []byte) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln, inbox)
}

// Serve accepts connections from ln, forwarding inbound payloads to
// inbox, until ctx is done. It closes ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener, inbox chan<- []byte) error {
	s.log.Info("listening for host", "addr", ln.Addr().String())

	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()
	defer s.Disconnect()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		if tcpConn, ok := conn.(*net.TCPConn); ok {
			tcpConn.SetKeepAlive(true)
			tcpConn.SetKeepAlivePeriod(30 * time.Second)
		}
		s.Handle(conn, inbox)
	}
}

// Handle adopts conn as the current host connection, closing any
// previous one.
func (s *Server) Handle(conn net.Conn, inbox chan<- []byte) {
	cx := &connection{
		conn:      conn,
		sendQueue: make(chan []byte, 64),
		done:      make(chan struct{}),
	}

	s.mu.Lock()
	if s.current != nil {
		s.log.Info("host replaced", "old", s.current.conn.RemoteAddr().String())
		s.current.close()
	}
	s.current = cx
	s.mu.Unlock()

	s.connections.Add(1)
	s.log.Info("host connected", "remote", conn.RemoteAddr().String())

	go s.readLoop(cx, inbox)
	go s.writeLoop(cx)
}

// Disconnect closes the current connection, if any.
func (s *Server) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.close()
		s.current = nil
	}
}

// Send queues a response frame for the current host. It implements the
// command channel's sender.
func (s *Server) Send(payload []byte) error {
	s.mu.Lock()
	cx := s.current
	s.mu.Unlock()

	if cx == nil {
		return ErrNotConnected
	}
	select {
	case cx.sendQueue <- payload:
		return nil
	case <-cx.done:
		return ErrNotConnected
	default:
		return fmt.Errorf("send buffer full (host stalled?)")
	}
}

// IsConnected reports whether a host is attached.
func (s *Server) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// Stats returns current transport statistics.
func (s *Server) Stats() Stats {
	s.mu.Lock()
	cx := s.current
	var qLen, qCap int
	if cx != nil {
		qLen = len(cx.sendQueue)
		qCap = cap(cx.sendQueue)
	}
	s.mu.Unlock()

	var lastRead time.Time
	if ns := s.lastReadTime.Load(); ns != 0 {
		lastRead = time.Unix(0, ns)
	}

	return Stats{
		Connected:    cx != nil,
		Connections:  s.connections.Load(),
		BytesRead:    s.bytesRead.Load(),
		BytesWritten: s.bytesWritten.Load(),
		FramesIn:     s.framesIn.Load(),
		FramesOut:    s.framesOut.Load(),
		LastReadTime: lastRead,
		SendQueueLen: qLen,
		SendQueueCap: qCap,
	}
}

// --- Worker Routines ---

func (s *Server) readLoop(cx *connection, inbox chan<- []byte) {
	r := bufio.NewReader(cx.conn)
	for {
		payload, err := ReadFrame(r)
		if err != nil {
			s.mu.Lock()
			isCurrent := s.current == cx
			if isCurrent {
				s.current = nil
			}
			s.mu.Unlock()

			if isCurrent {
				s.log.Info("host disconnected", "remote", cx.conn.RemoteAddr().String(), "error", err)
			}
			cx.close()
			return
		}

		s.bytesRead.Add(uint64(4 + len(payload)))
		s.framesIn.Add(1)
		s.lastReadTime.Store(time.Now().UnixNano())

		select {
		case inbox <- payload:
		case <-cx.done:
			return
		}
	}
}

func (s *Server) writeLoop(cx *connection) {
	for {
		select {
		case <-cx.done:
			return
		case payload := <-cx.sendQueue:
			cx.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			err := WriteFrame(cx.conn, payload)
			cx.conn.SetWriteDeadline(time.Time{})

			if err != nil {
				// Closing makes readLoop notice and clean up.
				s.log.Warn("write to host failed", "error", err)
				cx.conn.Close()
				return
			}
			s.bytesWritten.Add(uint64(4 + len(payload)))
			s.framesOut.Add(1)
		}
	}
}

func (cx *connection) close() {
	cx.closeOnce.Do(func() {
		cx.conn.Close()
		close(cx.done)
	})
}
