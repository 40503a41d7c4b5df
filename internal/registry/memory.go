package registry

import (
	"context"
	"sync"
	"time"
)

// MemoryRegistry is an in-process Registry used when no etcd endpoints
// are configured and in tests
type MemoryRegistry struct {
	mu          sync.RWMutex
	collections map[string]*Collection
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		collections: make(map[string]*Collection),
	}
}

func (r *MemoryRegistry) GetCollection(_ context.Context, name string) (*Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	coll, ok := r.collections[name]
	if !ok {
		return nil, nil
	}
	copied := *coll
	return &copied, nil
}

func (r *MemoryRegistry) ListCollections(_ context.Context) ([]*Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	collections := make([]*Collection, 0, len(r.collections))
	for _, coll := range r.collections {
		copied := *coll
		collections = append(collections, &copied)
	}
	return collections, nil
}

func (r *MemoryRegistry) RegisterCollection(_ context.Context, coll *Collection) error {
	if coll.UpdatedAt.IsZero() {
		coll.UpdatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *coll
	r.collections[coll.Name] = &copied
	return nil
}

func (r *MemoryRegistry) Close() error {
	return nil
}
