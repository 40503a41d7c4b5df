package utils

import "time"

// =============================================================================
// Timeout Constants
// =============================================================================

const (
	// DefaultRequestTimeout is the default timeout for HTTP requests
	DefaultRequestTimeout = 30 * time.Second

	// DefaultFetchTimeout is the default timeout for one series fetch
	DefaultFetchTimeout = 30 * time.Second

	// RegistryLookupTimeout is the timeout for field-registry lookups
	RegistryLookupTimeout = 5 * time.Second

	// AlertPublishTimeout is the timeout for publishing one alert batch
	AlertPublishTimeout = 10 * time.Second
)

// =============================================================================
// Analysis Constants
// =============================================================================

const (
	// DefaultEnrichmentWindow is the window sampled around an anomaly
	// when decorating it with context
	DefaultEnrichmentWindow = 5 * time.Minute

	// MaxSeriesPoints caps how many buckets one fetch may return
	MaxSeriesPoints = 10000
)

// =============================================================================
// Publisher Type Constants
// =============================================================================

// PublisherType represents the type of alert publisher backend
type PublisherType string

const (
	// PublisherTypeNATS represents NATS JetStream publishing (default)
	PublisherTypeNATS PublisherType = "nats"

	// PublisherTypeRedis represents Redis Streams publishing
	PublisherTypeRedis PublisherType = "redis"

	// PublisherTypeKafka represents Apache Kafka publishing
	PublisherTypeKafka PublisherType = "kafka"

	// PublisherTypeMemory represents in-memory publishing (for testing)
	PublisherTypeMemory PublisherType = "memory"
)
