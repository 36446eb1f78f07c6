package device

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ai-interviewer/interviewer-cli/internal/state"
)

// Fingerprinter computes an identifier for the current installation.
type Fingerprinter interface {
	Fingerprint(ctx context.Context) (string, error)
}

// Storage is the persistent key-value store holding the identifier.
type Storage interface {
	Get(key string) string
	Set(key, value string) error
}

// Store hands out the device identifier, computing and persisting it on
// first use. It has no expiry and never recomputes a stored value.
type Store struct {
	mu          sync.Mutex
	storage     Storage
	fingerprint Fingerprinter
	logger      *zap.Logger
}

func NewStore(storage Storage, fingerprint Fingerprinter, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{
		storage:     storage,
		fingerprint: fingerprint,
		logger:      logger,
	}
}

// ID returns the stored identifier or computes, persists and returns a new one.
func (s *Store) ID(ctx context.Context) (string, error) {
	if s == nil || s.storage == nil || s.fingerprint == nil {
		return "", errors.New("device store is not initialized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id := strings.TrimSpace(s.storage.Get(state.KeyDeviceID)); id != "" {
		return id, nil
	}

	id, err := s.fingerprint.Fingerprint(ctx)
	if err != nil {
		return "", fmt.Errorf("computing device fingerprint: %w", err)
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return "", errors.New("device fingerprint is empty")
	}

	if err := s.storage.Set(state.KeyDeviceID, id); err != nil {
		return "", fmt.Errorf("persisting device id: %w", err)
	}

	s.logger.Debug("generated device id", zap.String("device_id", id))

	return id, nil
}
