package alerts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisherConfig represents Apache Kafka publisher configuration
type KafkaPublisherConfig struct {
	Brokers      []string      // Kafka broker addresses
	BatchSize    int           // Batch size for producer (default: 100)
	BatchTimeout time.Duration // Batch timeout for producer (default: 10ms)
	RequiredAcks int           // Required acks: 0=none, 1=leader, -1=all (default: 1)
	MaxRetries   int           // Max attempts on failure (default: 3)
}

// KafkaPublisher publishes events to Kafka topics
type KafkaPublisher struct {
	config  KafkaPublisherConfig
	writers map[string]*kafka.Writer
	mu      sync.RWMutex
}

// newKafkaPublisher creates a Kafka publisher
func newKafkaPublisher(cfg KafkaPublisherConfig) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers not configured")
	}

	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.BatchTimeout == 0 {
		cfg.BatchTimeout = 10 * time.Millisecond
	}
	if cfg.RequiredAcks == 0 {
		cfg.RequiredAcks = int(kafka.RequireOne)
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}

	return &KafkaPublisher{
		config:  cfg,
		writers: make(map[string]*kafka.Writer),
	}, nil
}

// getOrCreateWriter returns existing writer or creates a new one for the topic
func (p *KafkaPublisher) getOrCreateWriter(topic string) *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if writer, exists := p.writers[topic]; exists {
		return writer
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(p.config.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    p.config.BatchSize,
		BatchTimeout: p.config.BatchTimeout,
		RequiredAcks: kafka.RequiredAcks(p.config.RequiredAcks),
		MaxAttempts:  p.config.MaxRetries,
	}

	p.writers[topic] = writer
	return writer
}

// Publish publishes one event to a Kafka topic
func (p *KafkaPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	writer := p.getOrCreateWriter(subject)

	err := writer.WriteMessages(ctx, kafka.Message{Value: data})
	if err != nil {
		return fmt.Errorf("failed to publish to Kafka topic %s: %w", subject, err)
	}
	return nil
}

// PublishBatch groups events by topic and writes each group in one call
func (p *KafkaPublisher) PublishBatch(ctx context.Context, events []BatchEvent) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	byTopic := make(map[string][]kafka.Message)
	for _, ev := range events {
		byTopic[ev.Subject] = append(byTopic[ev.Subject], kafka.Message{Value: ev.Data})
	}

	successCount := 0
	var lastErr error
	for topic, messages := range byTopic {
		writer := p.getOrCreateWriter(topic)
		if err := writer.WriteMessages(ctx, messages...); err != nil {
			lastErr = fmt.Errorf("failed to publish batch to topic %s: %w", topic, err)
			continue
		}
		successCount += len(messages)
	}

	return successCount, lastErr
}

// Close closes all topic writers
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var lastErr error
	for _, writer := range p.writers {
		if err := writer.Close(); err != nil {
			lastErr = err
		}
	}
	p.writers = make(map[string]*kafka.Writer)
	return lastErr
}
