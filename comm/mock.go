package comm

import "sync"

// MockSender implements Sender for tests by recording every payload.
type MockSender struct {
	mu   sync.Mutex
	sent [][]byte
	Err  error
}

// Send records the payload.
func (m *MockSender) Send(payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.sent = append(m.sent, append([]byte(nil), payload...))
	return nil
}

// Sent returns a copy of the recorded payloads.
func (m *MockSender) Sent() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]byte(nil), m.sent...)
}

// Last returns the most recent payload, or nil.
func (m *MockSender) Last() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return nil
	}
	return m.sent[len(m.sent)-1]
}
