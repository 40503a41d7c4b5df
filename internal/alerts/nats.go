package alerts

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
)

// NATSPublisher publishes events through NATS JetStream
type NATSPublisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// newNATSPublisher connects to NATS and enables JetStream
func newNATSPublisher(url string, username, password string) (*NATSPublisher, error) {
	opts := []nats.Option{nats.Name("insight-alerts")}
	if username != "" {
		opts = append(opts, nats.UserInfo(username, password))
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	return &NATSPublisher{conn: conn, js: js}, nil
}

// Publish publishes one event using JetStream async publish
func (p *NATSPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	_, err := p.js.PublishAsync(subject, data)
	if err != nil {
		return fmt.Errorf("failed to publish to subject %s: %w", subject, err)
	}
	return nil
}

// PublishBatch queues all events asynchronously and waits for acknowledgment
func (p *NATSPublisher) PublishBatch(ctx context.Context, events []BatchEvent) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	futures := make([]nats.PubAckFuture, 0, len(events))
	for _, ev := range events {
		future, err := p.js.PublishAsync(ev.Subject, ev.Data)
		if err != nil {
			continue
		}
		futures = append(futures, future)
	}

	select {
	case <-p.js.PublishAsyncComplete():
	case <-ctx.Done():
		return len(futures), fmt.Errorf("timeout waiting for batch publish: %w", ctx.Err())
	}

	successCount := 0
	for _, future := range futures {
		select {
		case <-future.Ok():
			successCount++
		case <-future.Err():
		default:
			// Acknowledged via PublishAsyncComplete but future not drained yet
			successCount++
		}
	}

	return successCount, nil
}

// Close closes the NATS connection
func (p *NATSPublisher) Close() error {
	p.conn.Close()
	return nil
}
