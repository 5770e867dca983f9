package storage

import (
	"fmt"
	"sync"

	"github.com/eugenenazirov/envprops/internal/properties"
)

// Storage holds the process-scoped local overrides consulted before the environment.
type Storage interface {
	properties.Source
	Set(key, value string) error
	Unset(key string) error
	All() map[string]string
}

// MemoryStorage keeps overrides in-memory and guards access with a RWMutex.
type MemoryStorage struct {
	mu        sync.RWMutex
	overrides map[string]string
}

// NewMemoryStorage initialises storage with a copy of initial. Every key must be valid.
func NewMemoryStorage(initial map[string]string) (*MemoryStorage, error) {
	s := &MemoryStorage{overrides: make(map[string]string, len(initial))}
	for key, value := range initial {
		if err := s.Set(key, value); err != nil {
			return nil, fmt.Errorf("seed override %q: %w", key, err)
		}
	}
	return s, nil
}

// Lookup returns the override for key, if any.
func (s *MemoryStorage) Lookup(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.overrides[key]
	return value, ok
}

func (s *MemoryStorage) Name() string {
	return properties.SourceOverride
}

// Set validates key and stores value, replacing any previous override.
func (s *MemoryStorage) Set(key, value string) error {
	if err := properties.ValidateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	s.overrides[key] = value
	s.mu.Unlock()

	return nil
}

// Unset removes the override for key. Removing an absent key is not an error.
func (s *MemoryStorage) Unset(key string) error {
	if err := properties.ValidateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.overrides, key)
	s.mu.Unlock()

	return nil
}

// All returns a defensive copy of the current overrides.
func (s *MemoryStorage) All() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.overrides))
	for k, v := range s.overrides {
		out[k] = v
	}
	return out
}
