package alerts

import (
	"fmt"
	"strings"

	"github.com/soltixdb/insight/internal/config"
	"github.com/soltixdb/insight/internal/utils"
)

// NewPublisher creates a Publisher based on configuration
// Default is NATS if type is not specified
func NewPublisher(cfg config.AlertsConfig) (Publisher, error) {
	publisherType := utils.PublisherType(strings.ToLower(cfg.Type))

	// Default to NATS if not specified
	if publisherType == "" {
		publisherType = utils.PublisherTypeNATS
	}

	switch publisherType {
	case utils.PublisherTypeNATS:
		return newNATSPublisher(cfg.URL, cfg.Username, cfg.Password)

	case utils.PublisherTypeRedis:
		return newRedisPublisher(RedisPublisherConfig{
			URL:      cfg.URL,
			Password: cfg.Password,
			DB:       cfg.RedisDB,
			Stream:   cfg.RedisStream,
		})

	case utils.PublisherTypeKafka:
		return newKafkaPublisher(KafkaPublisherConfig{
			Brokers: cfg.KafkaBrokers,
		})

	case utils.PublisherTypeMemory:
		return NewMemoryPublisher(), nil

	default:
		return nil, fmt.Errorf("unsupported publisher type: %s (supported: nats, redis, kafka, memory)", publisherType)
	}
}

// SubjectFor builds the event subject for one collection and field
func SubjectFor(prefix, collection, field string) string {
	if prefix == "" {
		prefix = "insight.anomalies"
	}
	return fmt.Sprintf("%s.%s.%s", prefix, collection, field)
}
