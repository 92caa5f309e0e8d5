// Package settings persists the on/off switches an application exposes on
// its home screen.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/drake/syncux/internal/logger"
)

// Size is the number of switch slots.
const Size = 10

var ErrIndex = errors.New("setting index out of range")

type file struct {
	Switches []int `yaml:"switches"`
}

// Store holds Size switch bytes, written through to a YAML file on every
// change. An empty path keeps the store in memory.
type Store struct {
	mu     sync.Mutex
	path   string
	values [Size]uint8
	log    *logger.Logger
}

// Open loads the store at path. A missing file yields all switches off.
func Open(path string, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.GetDefault()
	}
	s := &Store{path: path, log: log}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if len(f.Switches) > Size {
		log.Warn("settings file has extra switches, ignoring", "path", path, "count", len(f.Switches))
	}
	for i, v := range f.Switches {
		if i == Size {
			break
		}
		if v != 0 {
			s.values[i] = 1
		}
	}
	return s, nil
}

// Get reports whether switch i is on. Out-of-range indexes are off.
func (s *Store) Get(i int) bool {
	if i < 0 || i >= Size {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[i] != 0
}

// Set updates switch i and persists the store.
func (s *Store) Set(i int, on bool) error {
	if i < 0 || i >= Size {
		return fmt.Errorf("%w: %d", ErrIndex, i)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.values[i]
	if on {
		s.values[i] = 1
	} else {
		s.values[i] = 0
	}
	if err := s.save(); err != nil {
		s.values[i] = prev
		return err
	}
	return nil
}

// Values returns a copy of every slot.
func (s *Store) Values() [Size]uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values
}

// save writes through a temp file and a rename so a crash never leaves a
// half-written store. Callers hold mu.
func (s *Store) save() error {
	if s.path == "" {
		return nil
	}
	f := file{Switches: make([]int, Size)}
	for i, v := range s.values {
		f.Switches[i] = int(v)
	}
	payload, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp.")
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write settings %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close settings temp file %s: %w", s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		s.log.Error("failed to replace settings file", "path", s.path, "error", err)
		return fmt.Errorf("replace settings %s: %w", s.path, err)
	}
	s.log.Debug("settings saved", "path", s.path)
	return nil
}
