package store

import (
	"context"
	"sync"

	"techquiz-core/models"
)

// MemoryStore is an in-process AttemptStore for anonymous sessions and
// tests.
type MemoryStore struct {
	mu       sync.RWMutex
	attempts map[string]models.Attempt
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{attempts: make(map[string]models.Attempt)}
}

func (s *MemoryStore) Save(_ context.Context, att *models.Attempt) error {
	s.mu.Lock()
	s.attempts[att.ID] = att.Clone()
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Find(_ context.Context, id string) (*models.Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	att, ok := s.attempts[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := att.Clone()
	return &out, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.attempts, id)
	s.mu.Unlock()
	return nil
}
