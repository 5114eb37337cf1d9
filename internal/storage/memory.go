package storage

import (
	"maps"
	"slices"
	"sync"
)

// MemoryBackend keeps records in a map. It is used by tests and by
// throwaway sessions.
type MemoryBackend struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{records: make(map[string][]byte)}
}

func (b *MemoryBackend) Get(name string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.records[name]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(data), nil
}

func (b *MemoryBackend) Put(name string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records[name] = slices.Clone(data)
	return nil
}

func (b *MemoryBackend) Delete(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.records, name)
	return nil
}

func (b *MemoryBackend) List() ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Sorted(maps.Keys(b.records)), nil
}

func (b *MemoryBackend) Clean() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.records)
	return nil
}

func (b *MemoryBackend) Close() error {
	return nil
}
