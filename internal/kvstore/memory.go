package kvstore

import (
	"context"
	"sync"
)

// MemoryStore is a process-local Store. It also lets tests inject write failures.
type MemoryStore struct {
	mu      sync.RWMutex
	data    map[string][]byte
	failPut error
	failGet error
}

func NewMemory() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failGet != nil {
		return nil, m.failGet
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStore) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut != nil {
		return m.failPut
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// FailPuts makes every following Put return err; nil restores normal writes
func (m *MemoryStore) FailPuts(err error) {
	m.mu.Lock()
	m.failPut = err
	m.mu.Unlock()
}

// FailGets makes every following Get return err; nil restores normal reads
func (m *MemoryStore) FailGets(err error) {
	m.mu.Lock()
	m.failGet = err
	m.mu.Unlock()
}

func (m *MemoryStore) Close() error { return nil }
