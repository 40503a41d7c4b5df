package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soltixdb/insight/internal/analysis"
)

func TestMemoryRegistryRoundTrip(t *testing.T) {
	reg := NewMemoryRegistry()
	defer reg.Close()

	ctx := context.Background()
	err := reg.RegisterCollection(ctx, &Collection{
		Name: "http_requests",
		Fields: []Field{
			{Name: "latency_ms", Kind: analysis.MetricKindGauge},
			{Name: "requests_total", Kind: analysis.MetricKindCounter},
		},
	})
	require.NoError(t, err)

	coll, err := reg.GetCollection(ctx, "http_requests")
	require.NoError(t, err)
	require.NotNil(t, coll)
	assert.Equal(t, "http_requests", coll.Name)
	assert.Len(t, coll.Fields, 2)
	assert.False(t, coll.UpdatedAt.IsZero())

	missing, err := reg.GetCollection(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryRegistryList(t *testing.T) {
	reg := NewMemoryRegistry()
	defer reg.Close()

	ctx := context.Background()
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, reg.RegisterCollection(ctx, &Collection{Name: name}))
	}

	collections, err := reg.ListCollections(ctx)
	require.NoError(t, err)
	assert.Len(t, collections, 3)
}

func TestMemoryRegistryCopies(t *testing.T) {
	reg := NewMemoryRegistry()
	defer reg.Close()

	ctx := context.Background()
	coll := &Collection{Name: "cpu", Fields: []Field{{Name: "usage", Kind: analysis.MetricKindGauge}}}
	require.NoError(t, reg.RegisterCollection(ctx, coll))

	got, err := reg.GetCollection(ctx, "cpu")
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := reg.GetCollection(ctx, "cpu")
	require.NoError(t, err)
	assert.Equal(t, "cpu", again.Name)
}

func TestKVCacheExpiry(t *testing.T) {
	cache := newKVCache(20 * time.Millisecond)
	defer cache.stop()

	cache.set("k", "v")
	got, ok := cache.get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)

	time.Sleep(40 * time.Millisecond)
	_, ok = cache.get("k")
	assert.False(t, ok)
}
