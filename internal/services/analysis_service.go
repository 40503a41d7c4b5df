package services

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/soltixdb/insight/internal/alerts"
	"github.com/soltixdb/insight/internal/analysis"
	"github.com/soltixdb/insight/internal/logging"
	"github.com/soltixdb/insight/internal/models"
	"github.com/soltixdb/insight/internal/registry"
	"github.com/soltixdb/insight/internal/source"
	"github.com/soltixdb/insight/internal/utils"
)

// AnalysisService runs anomaly detection over one field or every
// registered field of a collection
type AnalysisService struct {
	logger     *logging.Logger
	source     source.Source
	enrichment source.EnrichmentSource // Optional
	registry   registry.Registry
	publisher  alerts.Publisher // Optional

	maxConcurrency int
	defaultResults int
	subjectPrefix  string
}

// AnalysisServiceOptions configures an AnalysisService
type AnalysisServiceOptions struct {
	Enrichment     source.EnrichmentSource
	Publisher      alerts.Publisher
	MaxConcurrency int
	DefaultResults int
	SubjectPrefix  string
}

// NewAnalysisService creates a new AnalysisService
func NewAnalysisService(
	logger *logging.Logger,
	src source.Source,
	reg registry.Registry,
	opts AnalysisServiceOptions,
) *AnalysisService {
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = 4
	}
	if opts.DefaultResults <= 0 {
		opts.DefaultResults = analysis.DefaultMaxResults
	}

	return &AnalysisService{
		logger:         logger,
		source:         src,
		enrichment:     opts.Enrichment,
		registry:       reg,
		publisher:      opts.Publisher,
		maxConcurrency: opts.MaxConcurrency,
		defaultResults: opts.DefaultResults,
		subjectPrefix:  opts.SubjectPrefix,
	}
}

// FieldResult is one field's outcome of a fan-out analysis
type FieldResult struct {
	Field  string
	Kind   analysis.MetricKind
	Result *analysis.DetectionResult
	Err    error
}

// AnalyzeField runs detection for a single field
func (s *AnalysisService) AnalyzeField(ctx context.Context, collection string, req *models.ParsedAnalyze) (*analysis.DetectionResult, error) {
	started := time.Now()

	points, err := s.source.FetchBucketed(ctx, source.Query{
		Collection:  collection,
		Field:       req.Field,
		Aggregation: aggregationFor(req.Kind),
		Interval:    req.Interval,
		Start:       req.Start,
		End:         req.End,
	})
	if err != nil {
		return nil, err
	}

	maxResults := req.MaxResults
	if maxResults == 0 {
		maxResults = s.defaultResults
	}

	result, err := analysis.Detect(analysis.DetectionRequest{
		Points:     points,
		Cutoff:     req.Cutoff,
		Kind:       req.Kind,
		Threshold:  req.Threshold,
		MaxResults: maxResults,
	})
	if err != nil {
		return nil, err
	}

	s.enrich(ctx, result.Anomalies)
	s.publish(ctx, collection, req.Field, req.Kind, result.Anomalies)

	s.logger.Info("Field analysis completed",
		"collection", collection,
		"field", req.Field,
		"points", len(points),
		"anomalies", len(result.Anomalies),
		"latency_ms", time.Since(started).Milliseconds())

	return result, nil
}

// AnalyzeAllFields runs detection for every registered field of the
// collection concurrently, bounded by the configured limit. Per-field
// failures are reported per field; only registry failures abort the
// whole call.
func (s *AnalysisService) AnalyzeAllFields(ctx context.Context, collection string, req *models.ParsedAnalyze) ([]FieldResult, error) {
	coll, err := s.registry.GetCollection(ctx, collection)
	if err != nil {
		return nil, NewServiceErrorWithDetails(CodeRegistryFailed, "Failed to look up collection fields",
			map[string]interface{}{"error": err.Error()})
	}
	if coll == nil {
		return nil, NewServiceError(CodeCollectionNotFound, "Collection is not registered: "+collection)
	}
	if len(coll.Fields) == 0 {
		return nil, NewServiceError(CodeNoNumericFields, "Collection has no analyzable fields: "+collection)
	}

	results := make([]FieldResult, len(coll.Fields))
	sem := make(chan struct{}, s.maxConcurrency)
	var wg sync.WaitGroup

	for i, field := range coll.Fields {
		wg.Add(1)
		go func(i int, field registry.Field) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			fieldReq := *req
			fieldReq.Field = field.Name
			fieldReq.Kind = field.Kind
			if err := fieldReq.Threshold.Validate(field.Kind); err != nil {
				// rate_of_change only applies to counters; fall back
				// to zscore for the other kinds in a fan-out
				fieldReq.Threshold = analysis.ThresholdSpec{Kind: analysis.ThresholdZScore}
			}

			result, err := s.AnalyzeField(ctx, collection, &fieldReq)
			results[i] = FieldResult{
				Field:  field.Name,
				Kind:   field.Kind,
				Result: result,
				Err:    err,
			}
		}(i, field)
	}
	wg.Wait()

	// Fields with the most anomalies first, registry order on ties
	sort.SliceStable(results, func(a, b int) bool {
		return anomalyCount(results[a]) > anomalyCount(results[b])
	})

	return results, nil
}

func anomalyCount(r FieldResult) int {
	if r.Result == nil {
		return 0
	}
	return len(r.Result.Anomalies)
}

// aggregationFor picks the backend bucket aggregation per metric kind.
// Cumulative counters need the bucket maximum so the rate transform
// sees monotone totals; everything else averages.
func aggregationFor(kind analysis.MetricKind) source.Aggregation {
	if kind == analysis.MetricKindCounter {
		return source.AggregationMax
	}
	return source.AggregationAvg
}

// enrich decorates anomalies with sampled context when an enrichment
// source is configured
func (s *AnalysisService) enrich(ctx context.Context, anomalies []analysis.Anomaly) {
	if s.enrichment == nil {
		return
	}
	for i := range anomalies {
		anomalies[i].Context = s.enrichment.SampleContext(ctx, anomalies[i].Time, utils.DefaultEnrichmentWindow)
	}
}

// publish emits one event per anomaly; publish failures are logged and
// never affect the analysis result
func (s *AnalysisService) publish(ctx context.Context, collection, field string, kind analysis.MetricKind, anomalies []analysis.Anomaly) {
	if s.publisher == nil || len(anomalies) == 0 {
		return
	}

	events := make([]alerts.BatchEvent, 0, len(anomalies))
	subject := alerts.SubjectFor(s.subjectPrefix, collection, field)
	for _, a := range anomalies {
		data, err := json.Marshal(alerts.NewAnomalyEvent(collection, field, kind, a))
		if err != nil {
			continue
		}
		events = append(events, alerts.BatchEvent{Subject: subject, Data: data})
	}

	publishCtx, cancel := context.WithTimeout(ctx, utils.AlertPublishTimeout)
	defer cancel()

	published, err := s.publisher.PublishBatch(publishCtx, events)
	if err != nil {
		s.logger.Warn("Failed to publish anomaly events",
			"collection", collection,
			"field", field,
			"published", published,
			"total", len(events),
			"error", err)
		return
	}

	s.logger.Debug("Published anomaly events",
		"subject", subject,
		"count", published)
}
