package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
)

const collectionPrefix = "/insight/collections"

// cacheTTL bounds how stale a registry read may be
const cacheTTL = 30 * time.Second

// EtcdRegistry implements Registry backed by etcd with a read-through
// TTL cache
type EtcdRegistry struct {
	client *clientv3.Client
	cache  *kvCache
}

// EtcdConfig configures the etcd connection
type EtcdConfig struct {
	Endpoints   []string
	DialTimeout time.Duration
	Username    string
	Password    string
}

// NewEtcdRegistry connects to etcd and returns a registry
func NewEtcdRegistry(cfg EtcdConfig) (*EtcdRegistry, error) {
	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 5 * time.Second
	}

	client, err := clientv3.New(clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: dialTimeout,
		Username:    cfg.Username,
		Password:    cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to etcd: %w", err)
	}

	return &EtcdRegistry{
		client: client,
		cache:  newKVCache(cacheTTL),
	}, nil
}

// GetCollection returns one collection, nil when unknown
func (r *EtcdRegistry) GetCollection(ctx context.Context, name string) (*Collection, error) {
	key := path.Join(collectionPrefix, name)

	if cached, ok := r.cache.get(key); ok {
		var coll Collection
		if err := json.Unmarshal([]byte(cached), &coll); err == nil {
			return &coll, nil
		}
	}

	resp, err := r.client.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection from etcd: %w", err)
	}
	if len(resp.Kvs) == 0 {
		return nil, nil
	}

	var coll Collection
	if err := json.Unmarshal(resp.Kvs[0].Value, &coll); err != nil {
		return nil, fmt.Errorf("failed to unmarshal collection: %w", err)
	}

	r.cache.set(key, string(resp.Kvs[0].Value))
	return &coll, nil
}

// ListCollections returns all registered collections
func (r *EtcdRegistry) ListCollections(ctx context.Context) ([]*Collection, error) {
	resp, err := r.client.Get(ctx, collectionPrefix, clientv3.WithPrefix())
	if err != nil {
		return nil, fmt.Errorf("failed to list collections from etcd: %w", err)
	}

	collections := make([]*Collection, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var coll Collection
		if err := json.Unmarshal(kv.Value, &coll); err != nil {
			continue
		}
		collections = append(collections, &coll)
	}

	return collections, nil
}

// RegisterCollection creates or replaces a collection entry
func (r *EtcdRegistry) RegisterCollection(ctx context.Context, coll *Collection) error {
	if coll.UpdatedAt.IsZero() {
		coll.UpdatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(coll)
	if err != nil {
		return fmt.Errorf("failed to marshal collection: %w", err)
	}

	key := path.Join(collectionPrefix, coll.Name)
	if _, err := r.client.Put(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to store collection in etcd: %w", err)
	}

	r.cache.set(key, string(data))
	return nil
}

// Close releases the etcd connection
func (r *EtcdRegistry) Close() error {
	r.cache.stop()
	return r.client.Close()
}
