package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soltixdb/insight/internal/analysis"
	"github.com/soltixdb/insight/internal/models"
)

// Analyze handles anomaly detection requests
// POST /v1/collections/:collection/analyze
// An empty field in the body analyzes every registered field.
func (h *Handler) Analyze(c *fiber.Ctx) error {
	collection := c.Params("collection")

	var req models.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return analysis.NewInvalidParameter("invalid request body: " + err.Error())
	}

	parsed, err := req.Parse()
	if err != nil {
		return err
	}

	if parsed.Field == "" {
		return h.analyzeAll(c, collection, parsed)
	}

	result, err := h.analysisService.AnalyzeField(c.UserContext(), collection, parsed)
	if err != nil {
		return err
	}

	return c.JSON(models.NewDetectionResponse(collection, parsed.Field, parsed.Kind, result))
}

func (h *Handler) analyzeAll(c *fiber.Ctx, collection string, parsed *models.ParsedAnalyze) error {
	results, err := h.analysisService.AnalyzeAllFields(c.UserContext(), collection, parsed)
	if err != nil {
		return err
	}

	resp := models.MultiDetectionResponse{
		Collection: collection,
		Results:    make([]models.FieldDetectionResult, 0, len(results)),
	}
	for _, r := range results {
		entry := models.FieldDetectionResult{
			Field:      r.Field,
			MetricKind: string(r.Kind),
			Anomalies:  []models.AnomalyView{},
		}
		if r.Err != nil {
			entry.Error = r.Err.Error()
		} else if r.Result != nil {
			entry.Baseline = models.NewBaselineView(r.Result.Baseline)
			entry.Threshold = models.NewThresholdView(r.Result.Threshold)
			entry.Anomalies = models.NewAnomalyViews(r.Result.Anomalies)
			entry.Message = r.Result.Message
		}
		resp.Results = append(resp.Results, entry)
	}

	return c.JSON(resp)
}
