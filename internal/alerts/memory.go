package alerts

import (
	"context"
	"fmt"
	"sync"
)

// MemoryPublisher keeps published events in memory
// This is useful for testing and development without external brokers
type MemoryPublisher struct {
	mu     sync.RWMutex
	events map[string][][]byte
}

// NewMemoryPublisher creates an in-memory publisher
func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{
		events: make(map[string][][]byte),
	}
}

// Publish stores one event under its subject
func (p *MemoryPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.events[subject]) >= 10000 {
		return fmt.Errorf("event buffer full for subject: %s", subject)
	}
	p.events[subject] = append(p.events[subject], dataCopy)
	return nil
}

// PublishBatch stores multiple events
func (p *MemoryPublisher) PublishBatch(ctx context.Context, events []BatchEvent) (int, error) {
	successCount := 0
	for _, ev := range events {
		if err := p.Publish(ctx, ev.Subject, ev.Data); err != nil {
			continue
		}
		successCount++
	}
	return successCount, nil
}

// Events returns all events published to a subject
func (p *MemoryPublisher) Events(subject string) [][]byte {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([][]byte, len(p.events[subject]))
	copy(out, p.events[subject])
	return out
}

// Subjects returns every subject that received at least one event
func (p *MemoryPublisher) Subjects() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	subjects := make([]string, 0, len(p.events))
	for subject := range p.events {
		subjects = append(subjects, subject)
	}
	return subjects
}

// Close clears the stored events
func (p *MemoryPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = make(map[string][][]byte)
	return nil
}
