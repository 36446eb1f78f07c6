// Package state persists the small amount of local client state: the device
// identifier and the preferred language.
package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	KeyDeviceID = "device_id"
	KeyLanguage = "language"

	appDir   = "ai-interviewer"
	fileName = "state.yaml"
)

var knownKeys = map[string]struct{}{
	KeyDeviceID: {},
	KeyLanguage: {},
}

// Store is a file-backed key-value store. Every Set is written through.
type Store struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

// DefaultPath returns the state file location inside the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config dir: %w", err)
	}
	return filepath.Join(dir, appDir, fileName), nil
}

// Load reads the state file at path. A missing or empty file is an empty state.
func Load(path string) (*Store, error) {
	s := &Store{path: path, values: map[string]string{}}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state file %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("parsing state file %q: %w", path, err)
	}
	if s.values == nil {
		s.values = map[string]string{}
	}

	return s, nil
}

func (s *Store) Path() string {
	return s.path
}

// Get returns the stored value or an empty string.
func (s *Store) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

// Set stores value under key and persists the whole state.
func (s *Store) Set(key, value string) error {
	if _, ok := knownKeys[key]; !ok {
		return fmt.Errorf("unknown state key %q", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, had := s.values[key]
	s.values[key] = value
	if err := s.save(); err != nil {
		if had {
			s.values[key] = previous
		} else {
			delete(s.values, key)
		}
		return err
	}

	return nil
}

// save writes to a temp file in the same directory and renames it over the
// state file, so readers never observe a partial write.
func (s *Store) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating state dir %q: %w", dir, err)
	}

	data, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	tmp, err := os.CreateTemp(dir, fileName+".*")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing state file %q: %w", s.path, err)
	}

	return nil
}
