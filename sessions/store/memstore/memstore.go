package memstore

import (
	"context"
	"sync"

	"github.com/jrsteele09/stitch-smart/sessions/store"
)

var _ store.Backend = (*MemStore)(nil)

// MemStore keeps values in memory; nothing survives the process
type MemStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func New() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

func (m *MemStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	val, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MemStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	val := make([]byte, len(value))
	copy(val, value)
	m.data[key] = val
	return nil
}

func (m *MemStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}
