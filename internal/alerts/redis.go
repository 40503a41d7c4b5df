package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisPublisherConfig represents Redis Streams publisher configuration
type RedisPublisherConfig struct {
	URL      string // Redis URL (e.g., redis://localhost:6379) or host:port
	Password string // Optional password
	DB       int    // Database number (default: 0)
	Stream   string // Stream prefix (default: "insight")
}

// RedisPublisher publishes events to Redis Streams
type RedisPublisher struct {
	client *redis.Client
	config RedisPublisherConfig
}

// newRedisPublisher creates a Redis Streams publisher
func newRedisPublisher(cfg RedisPublisherConfig) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		// Fallback to simple options
		opts = &redis.Options{
			Addr:     cfg.URL,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if cfg.Stream == "" {
		cfg.Stream = "insight"
	}

	return &RedisPublisher{client: client, config: cfg}, nil
}

// streamName converts a subject to a Redis stream name
func (p *RedisPublisher) streamName(subject string) string {
	return fmt.Sprintf("%s:%s", p.config.Stream, subject)
}

// Publish appends one event to a Redis stream
func (p *RedisPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	stream := p.streamName(subject)

	_, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		ID:     "*",
		Values: map[string]interface{}{
			"data": data,
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to publish to Redis stream %s: %w", stream, err)
	}

	return nil
}

// PublishBatch publishes multiple events using a Redis pipeline
func (p *RedisPublisher) PublishBatch(ctx context.Context, events []BatchEvent) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	pipe := p.client.Pipeline()
	for _, ev := range events {
		pipe.XAdd(ctx, &redis.XAddArgs{
			Stream: p.streamName(ev.Subject),
			ID:     "*",
			Values: map[string]interface{}{
				"data": ev.Data,
			},
		})
	}

	cmds, err := pipe.Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to execute batch publish: %w", err)
	}

	successCount := 0
	for _, cmd := range cmds {
		if cmd.Err() == nil {
			successCount++
		}
	}

	return successCount, nil
}

// Close closes the Redis connection
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
