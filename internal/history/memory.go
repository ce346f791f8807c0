package history

import (
	"context"
	"sync"

	"github.com/ppiankov/plainspeak/internal/model"
)

// MemoryStore keeps history for the lifetime of the process
type MemoryStore struct {
	mu    sync.RWMutex
	items []model.HistoryItem
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, item model.HistoryItem) (model.HistoryItem, error) {
	item = stamp(item)

	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()

	return item, nil
}

func (s *MemoryStore) List(_ context.Context, limit int) ([]model.HistoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.items)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]model.HistoryItem, 0, n)
	for i := len(s.items) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.items[i])
	}
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (model.HistoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ID == id {
			return item, nil
		}
	}
	return model.HistoryItem{}, ErrNotFound
}

func (s *MemoryStore) Close() error { return nil }
