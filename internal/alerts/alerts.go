package alerts

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/soltixdb/insight/internal/analysis"
)

// Publisher publishes anomaly events to a broker
type Publisher interface {
	// Publish publishes one event to a subject/topic
	Publish(ctx context.Context, subject string, data []byte) error

	// PublishBatch publishes multiple events asynchronously and waits for all to complete
	// Returns the number of successfully published events and any error
	PublishBatch(ctx context.Context, events []BatchEvent) (int, error)

	// Close closes the connection
	Close() error
}

// BatchEvent represents one encoded event for batch publishing
type BatchEvent struct {
	Subject string
	Data    []byte
}

// AnomalyEvent is the wire form of one detected anomaly
type AnomalyEvent struct {
	ID            string                   `json:"id"`
	Collection    string                   `json:"collection"`
	Field         string                   `json:"field"`
	MetricKind    string                   `json:"metric_kind"`
	Time          time.Time                `json:"time"`
	Observed      float64                  `json:"observed"`
	Expected      float64                  `json:"expected"`
	Score         float64                  `json:"score"`
	ThresholdKind string                   `json:"threshold_kind"`
	Context       *analysis.AnomalyContext `json:"context,omitempty"`
	DetectedAt    time.Time                `json:"detected_at"`
}

// NewAnomalyEvent builds an event from one scored anomaly
func NewAnomalyEvent(collection, field string, kind analysis.MetricKind, a analysis.Anomaly) AnomalyEvent {
	return AnomalyEvent{
		ID:            uuid.New().String(),
		Collection:    collection,
		Field:         field,
		MetricKind:    string(kind),
		Time:          a.Time,
		Observed:      a.Observed,
		Expected:      a.Expected,
		Score:         a.Score,
		ThresholdKind: string(a.ThresholdKind),
		Context:       a.Context,
		DetectedAt:    time.Now().UTC(),
	}
}
