package session

import (
	"encoding/hex"
	"sync"
	"time"
)

// Record is one concluded signing request.
type Record struct {
	At      time.Time
	Ins     Ins
	Outcome string
	Digest  string // Hex SHA-256 of the payload, set when approved
}

// History keeps the most recent signing requests.
type History struct {
	mu      sync.Mutex
	records []Record
	limit   int
}

// NewHistory creates a history holding at most limit records.
func NewHistory(limit int) *History {
	return &History{
		records: make([]Record, 0, limit),
		limit:   limit,
	}
}

// Add appends a record, dropping the oldest when over the limit.
func (h *History) Add(ins Ins, outcome string, digest []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r := Record{At: time.Now(), Ins: ins, Outcome: outcome}
	if digest != nil {
		r.Digest = hex.EncodeToString(digest)
	}
	h.records = append(h.records, r)
	// Trim if over limit
	if len(h.records) > h.limit {
		h.records = h.records[len(h.records)-h.limit:]
	}
}

// Get returns a copy of the history, oldest first.
func (h *History) Get() []Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	result := make([]Record, len(h.records))
	copy(result, h.records)
	return result
}
