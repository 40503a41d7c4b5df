package handlers

import (
	"github.com/soltixdb/insight/internal/alerts"
	"github.com/soltixdb/insight/internal/config"
	"github.com/soltixdb/insight/internal/logging"
	"github.com/soltixdb/insight/internal/registry"
	"github.com/soltixdb/insight/internal/services"
	"github.com/soltixdb/insight/internal/source"
)

// Handler contains all HTTP handlers
type Handler struct {
	logger   *logging.Logger
	registry registry.Registry
	// Services
	analysisService    *services.AnalysisService
	trendService       *services.TrendService
	seasonalityService *services.SeasonalityService
	correlationService *services.CorrelationService
	logService         *services.LogAnalysisService
}

// New creates a new handler instance
func New(logger *logging.Logger, src source.Source, reg registry.Registry,
	enrichment source.EnrichmentSource, publisher alerts.Publisher,
	cfg config.AnalysisConfig, subjectPrefix string,
) *Handler {
	analysisService := services.NewAnalysisService(logger, src, reg, services.AnalysisServiceOptions{
		Enrichment:     enrichment,
		Publisher:      publisher,
		MaxConcurrency: cfg.MaxConcurrency,
		DefaultResults: cfg.MaxResults,
		SubjectPrefix:  subjectPrefix,
	})

	return &Handler{
		logger:             logger,
		registry:           reg,
		analysisService:    analysisService,
		trendService:       services.NewTrendService(logger, src),
		seasonalityService: services.NewSeasonalityService(logger, src),
		correlationService: services.NewCorrelationService(logger, src, cfg.MaxConcurrency),
		logService:         services.NewLogAnalysisService(logger, src),
	}
}
