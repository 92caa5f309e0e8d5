// Package record keeps a transcript of bridge events and writes it as
// YAML, so a simulator session can be replayed or diffed.
package record

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/drake/syncux/event"
)

// Entry is one transcript line.
type Entry struct {
	Seq     int    `yaml:"seq"`
	Type    string `yaml:"type"`
	Screen  string `yaml:"screen,omitempty"`
	Outcome string `yaml:"outcome,omitempty"`
	Detail  string `yaml:"detail,omitempty"`
	Turns   int    `yaml:"turns,omitempty"`
}

type transcript struct {
	Events []Entry `yaml:"events"`
}

// Recorder accumulates events. Observe may be called from the bridge
// goroutine while another goroutine writes the transcript out.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func New() *Recorder {
	return &Recorder{}
}

// Observe appends e. It has the event.Observer signature.
func (r *Recorder) Observe(e event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{
		Seq:     len(r.entries) + 1,
		Type:    e.Type.String(),
		Screen:  e.Screen,
		Outcome: e.Outcome,
		Detail:  e.Detail,
		Turns:   e.Turns,
	})
}

// Entries returns a copy of the transcript so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Encode writes the transcript as YAML.
func (r *Recorder) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(transcript{Events: r.Entries()}); err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	return enc.Close()
}

// Save writes the transcript to path.
func (r *Recorder) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create transcript %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return r.Encode(f)
}

// Decode reads a transcript written by Encode.
func Decode(rd io.Reader) ([]Entry, error) {
	var t transcript
	if err := yaml.NewDecoder(rd).Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	return t.Events, nil
}
