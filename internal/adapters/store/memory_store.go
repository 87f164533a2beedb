package store

import (
	"context"
	"sync"
)

// MemoryStore keeps the blob in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	blob []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.blob == nil {
		return nil, nil
	}
	return append([]byte(nil), m.blob...), nil
}

func (m *MemoryStore) Save(ctx context.Context, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blob = append([]byte(nil), blob...)
	return nil
}
