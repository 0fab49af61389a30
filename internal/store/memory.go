package store

import (
	"context"
	"slices"
	"sync"

	"github.com/seantiz/mxm/internal/model"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore implements Store with a map.
type MemoryStore struct {
	mu      sync.RWMutex
	threads map[string][]model.Comment
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{threads: make(map[string][]model.Comment)}
}

func (s *MemoryStore) GetThread(_ context.Context, key string) ([]model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.threads[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(t), nil
}

func (s *MemoryStore) PutThread(_ context.Context, key string, thread []model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.threads[key]; ok {
		return nil
	}
	if thread == nil {
		thread = []model.Comment{}
	}
	s.threads[key] = slices.Clone(thread)
	return nil
}

func (s *MemoryStore) Stats(_ context.Context) (CacheStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := CacheStats{Threads: len(s.threads)}
	for _, t := range s.threads {
		st.Comments += len(t)
	}
	return st, nil
}

func (s *MemoryStore) Close() error { return nil }
