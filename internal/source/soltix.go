package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/soltixdb/insight/internal/analysis"
	"github.com/soltixdb/insight/internal/logging"
	"github.com/soltixdb/insight/internal/utils"
)

// SoltixSource fetches bucketed series from a SoltixDB query API
type SoltixSource struct {
	baseURL  string
	database string
	apiKey   string
	client   *http.Client
	logger   *logging.Logger
}

// SoltixConfig configures the SoltixDB adapter
type SoltixConfig struct {
	BaseURL  string
	Database string
	APIKey   string
	Timeout  time.Duration
}

// NewSoltixSource creates a SoltixDB-backed series source with a shared
// pooled HTTP client
func NewSoltixSource(cfg SoltixConfig, logger *logging.Logger) *SoltixSource {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = utils.DefaultFetchTimeout
	}

	return &SoltixSource{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		database: cfg.Database,
		apiKey:   cfg.APIKey,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
}

// queryResponse mirrors the SoltixDB bucketed query response shape
type queryResponse struct {
	Points []map[string]interface{} `json:"points"`
	Count  int                      `json:"count"`
}

// FetchBucketed queries one interval-aggregated series and normalizes
// it to one point per bucket over [Start, End), with nil values for
// buckets the backend did not return
func (s *SoltixSource) FetchBucketed(ctx context.Context, q Query) (analysis.TimeSeriesData, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	reqURL := s.queryURL(q)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, analysis.NewSourceUnavailable("failed to build query request", err)
	}
	if s.apiKey != "" {
		req.Header.Set("X-API-Key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, analysis.NewSourceUnavailable("series fetch failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, analysis.NewSourceUnavailable("failed to read query response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, analysis.NewSourceUnavailable(
			fmt.Sprintf("backend returned status %d", resp.StatusCode), nil)
	}

	var parsed queryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, analysis.NewSourceUnavailable("failed to decode query response", err)
	}

	return s.bucketize(parsed, q), nil
}

// validateQuery rejects malformed queries before any network work
func validateQuery(q Query) error {
	if q.Collection == "" {
		return analysis.NewInvalidParameter("query collection is required")
	}
	if q.Interval <= 0 {
		return analysis.NewInvalidParameter("query interval must be positive")
	}
	if !q.End.After(q.Start) {
		return analysis.NewInvalidParameter("query end must be after start")
	}
	if buckets := int(q.End.Sub(q.Start) / q.Interval); buckets > utils.MaxSeriesPoints {
		return analysis.NewInvalidParameter(
			fmt.Sprintf("time range spans %d buckets, max is %d", buckets, utils.MaxSeriesPoints))
	}
	return nil
}

// queryURL builds the SoltixDB bucketed query URL
func (s *SoltixSource) queryURL(q Query) string {
	agg := q.Aggregation
	if agg == "" {
		agg = AggregationAvg
	}

	params := url.Values{}
	params.Set("start_time", q.Start.UTC().Format(time.RFC3339))
	params.Set("end_time", q.End.UTC().Format(time.RFC3339))
	params.Set("interval", formatInterval(q.Interval))
	params.Set("aggregation", string(agg))
	if q.Field != "" {
		params.Set("fields", q.Field)
	}
	if q.Pattern != "" {
		// tokenization and matching happen in the backend
		params.Set("pattern", q.Pattern)
	}

	return fmt.Sprintf("%s/v1/databases/%s/collections/%s/query?%s",
		s.baseURL, url.PathEscape(s.database), url.PathEscape(q.Collection), params.Encode())
}

// bucketize maps response points onto the requested bucket grid. The
// value key is the queried field, or "count" for count aggregations.
func (s *SoltixSource) bucketize(parsed queryResponse, q Query) analysis.TimeSeriesData {
	valueKey := q.Field
	if q.Aggregation == AggregationCount || valueKey == "" {
		valueKey = "count"
	}

	byBucket := make(map[int64]float64, len(parsed.Points))
	for _, point := range parsed.Points {
		timeStr, ok := point["time"].(string)
		if !ok {
			continue
		}
		ts, err := time.Parse(time.RFC3339, timeStr)
		if err != nil {
			s.logger.Warn("Skipping point with unparseable time",
				"collection", q.Collection, "time", timeStr)
			continue
		}

		v, ok := utils.ToFloat64(point[valueKey])
		if !ok {
			continue
		}
		byBucket[ts.Truncate(q.Interval).UnixNano()] = v
	}

	buckets := int(q.End.Sub(q.Start) / q.Interval)
	series := make(analysis.TimeSeriesData, 0, buckets)
	for t := q.Start.Truncate(q.Interval); t.Before(q.End); t = t.Add(q.Interval) {
		p := analysis.TimeSeriesPoint{Time: t}
		if v, ok := byBucket[t.UnixNano()]; ok {
			p.Value = analysis.Value(v)
		}
		series = append(series, p)
	}

	return series
}

// formatInterval renders a duration in the compact form the backend
// expects (500ms, 30s, 5m, 1h, 1d)
func formatInterval(d time.Duration) string {
	switch {
	case d%(24*time.Hour) == 0:
		return fmt.Sprintf("%dd", d/(24*time.Hour))
	case d%time.Hour == 0:
		return fmt.Sprintf("%dh", d/time.Hour)
	case d%time.Minute == 0:
		return fmt.Sprintf("%dm", d/time.Minute)
	case d%time.Second == 0:
		return fmt.Sprintf("%ds", d/time.Second)
	default:
		return fmt.Sprintf("%dms", d/time.Millisecond)
	}
}
