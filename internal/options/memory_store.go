package options

import (
	"context"
	"sync"

	"storeboost/internal/settings"
)

// MemoryStore is the in-memory backend used by tests and ephemeral
// environments.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]settings.Map
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]settings.Map)}
}

func (s *MemoryStore) Get(ctx context.Context, name string) (settings.Map, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if value, ok := s.values[name]; ok {
		return settings.Clone(value), nil
	}
	return settings.Map{}, nil
}

func (s *MemoryStore) Set(ctx context.Context, name string, value settings.Map) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = settings.Clone(value)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, name)
	return nil
}
