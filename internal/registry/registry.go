// Package registry maintains the catalog of telemetry collections and
// their analyzable fields. The catalog answers "which fields can I
// analyze" during all-field fan-outs and backs the field-discovery API;
// it is not part of the statistical core.
package registry

import (
	"context"
	"time"

	"github.com/soltixdb/insight/internal/analysis"
)

// Field describes one analyzable field of a collection
type Field struct {
	Name string              `json:"name"`
	Kind analysis.MetricKind `json:"kind"`
}

// Collection describes one telemetry collection and its fields
type Collection struct {
	Name      string    `json:"name"`
	Fields    []Field   `json:"fields"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Registry is the catalog of collections Insight can analyze
type Registry interface {
	// GetCollection returns one collection, or nil when unknown
	GetCollection(ctx context.Context, name string) (*Collection, error)

	// ListCollections returns all registered collections
	ListCollections(ctx context.Context) ([]*Collection, error)

	// RegisterCollection creates or replaces a collection entry
	RegisterCollection(ctx context.Context, coll *Collection) error

	// Close releases backend connections
	Close() error
}
