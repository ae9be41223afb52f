package state

import (
	"context"
	"sync"
)

// MemoryPersister keeps snapshots in a map. Used in tests and as the
// fallback when no redis address is configured.
type MemoryPersister struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{slots: make(map[string][]byte)}
}

func (p *MemoryPersister) Load(_ context.Context, key string) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	data, ok := p.slots[key]
	if !ok {
		return nil, ErrNotFound
	}
	copied := make([]byte, len(data))
	copy(copied, data)
	return copied, nil
}

func (p *MemoryPersister) Save(_ context.Context, key string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	copied := make([]byte, len(data))
	copy(copied, data)
	p.slots[key] = copied
	return nil
}
