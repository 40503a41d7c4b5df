package source

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang/snappy"
	"github.com/redis/go-redis/v9"

	"github.com/soltixdb/insight/internal/analysis"
	"github.com/soltixdb/insight/internal/logging"
)

// CachedSource decorates a Source with a Redis read-through cache.
// Series payloads are snappy-compressed JSON. Cache failures are logged
// and degrade to a direct fetch; they never fail an analysis.
type CachedSource struct {
	inner  Source
	client *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

// CacheConfig configures the Redis series cache
type CacheConfig struct {
	URL      string
	Password string
	DB       int
	TTL      time.Duration
}

// NewCachedSource wraps inner with a Redis cache
func NewCachedSource(inner Source, cfg CacheConfig, logger *logging.Logger) *CachedSource {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.URL,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &CachedSource{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// FetchBucketed serves the series from cache when possible, falling
// back to the inner source and populating the cache on miss
func (c *CachedSource) FetchBucketed(ctx context.Context, q Query) (analysis.TimeSeriesData, error) {
	key := cacheKey(q)

	if cached, err := c.client.Get(ctx, key).Bytes(); err == nil {
		if series, decodeErr := decodeSeries(cached); decodeErr == nil {
			return series, nil
		}
		// poisoned entry, drop it and refetch
		c.client.Del(ctx, key)
	} else if err != redis.Nil {
		c.logger.Warn("Series cache lookup failed, fetching directly", "key", key, "error", err)
	}

	series, err := c.inner.FetchBucketed(ctx, q)
	if err != nil {
		return nil, err
	}

	if payload, encodeErr := encodeSeries(series); encodeErr == nil {
		if setErr := c.client.Set(ctx, key, payload, c.ttl).Err(); setErr != nil {
			c.logger.Warn("Series cache write failed", "key", key, "error", setErr)
		}
	}

	return series, nil
}

// Close releases the Redis connection
func (c *CachedSource) Close() error {
	return c.client.Close()
}

// cacheKey identifies one bucketed query. Time bounds are part of the
// key, so a moving analysis window naturally misses.
func cacheKey(q Query) string {
	return fmt.Sprintf("insight:series:%s:%s:%s:%s:%d:%d:%d",
		q.Collection, q.Field, q.Aggregation, q.Pattern,
		q.Interval.Nanoseconds(), q.Start.UnixNano(), q.End.UnixNano())
}

// cachedPoint is the compact wire form of one bucket
type cachedPoint struct {
	T int64    `json:"t"`
	V *float64 `json:"v,omitempty"`
}

func encodeSeries(series analysis.TimeSeriesData) ([]byte, error) {
	points := make([]cachedPoint, len(series))
	for i, p := range series {
		points[i] = cachedPoint{T: p.Time.UnixNano(), V: p.Value}
	}

	raw, err := json.Marshal(points)
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, raw), nil
}

func decodeSeries(payload []byte) (analysis.TimeSeriesData, error) {
	raw, err := snappy.Decode(nil, payload)
	if err != nil {
		return nil, err
	}

	var points []cachedPoint
	if err := json.Unmarshal(raw, &points); err != nil {
		return nil, err
	}

	series := make(analysis.TimeSeriesData, len(points))
	for i, p := range points {
		series[i] = analysis.TimeSeriesPoint{Time: time.Unix(0, p.T).UTC(), Value: p.V}
	}
	return series, nil
}
