package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soltixdb/insight/internal/analysis"
	"github.com/soltixdb/insight/internal/models"
)

// Trend handles trend analysis requests
// POST /v1/collections/:collection/trend
func (h *Handler) Trend(c *fiber.Ctx) error {
	collection := c.Params("collection")

	var req models.TrendRequest
	if err := c.BodyParser(&req); err != nil {
		return analysis.NewInvalidParameter("invalid request body: " + err.Error())
	}

	parsed, err := req.Parse()
	if err != nil {
		return err
	}

	result, err := h.trendService.Analyze(c.UserContext(), collection, parsed)
	if err != nil {
		if analysis.IsInsufficientData(err) {
			return c.JSON(models.TrendResponse{
				Collection: collection,
				Field:      parsed.Field,
				Message:    err.Error(),
			})
		}
		return err
	}

	return c.JSON(models.NewTrendResponse(collection, parsed.Field, result))
}

// Seasonality handles seasonality detection requests
// POST /v1/collections/:collection/seasonality
func (h *Handler) Seasonality(c *fiber.Ctx) error {
	collection := c.Params("collection")

	var req models.SeasonalityRequest
	if err := c.BodyParser(&req); err != nil {
		return analysis.NewInvalidParameter("invalid request body: " + err.Error())
	}

	parsed, err := req.Parse()
	if err != nil {
		return err
	}

	patterns, err := h.seasonalityService.Analyze(c.UserContext(), collection, parsed)
	if err != nil {
		if analysis.IsInsufficientData(err) {
			return c.JSON(models.SeasonalityResponse{
				Collection: collection,
				Field:      parsed.Field,
				Patterns:   []models.SeasonalPatternView{},
				Message:    err.Error(),
			})
		}
		return err
	}

	return c.JSON(models.NewSeasonalityResponse(collection, parsed.Field, patterns))
}

// Correlate handles cross-field correlation requests
// POST /v1/collections/:collection/correlate
func (h *Handler) Correlate(c *fiber.Ctx) error {
	collection := c.Params("collection")

	var req models.CorrelationRequest
	if err := c.BodyParser(&req); err != nil {
		return analysis.NewInvalidParameter("invalid request body: " + err.Error())
	}

	parsed, err := req.Parse()
	if err != nil {
		if analysis.IsInsufficientData(err) {
			return c.JSON(models.CorrelationResponse{
				Collection: collection,
				Pairs:      []models.CorrelationPairView{},
				Message:    err.Error(),
			})
		}
		return err
	}

	pairs, err := h.correlationService.Analyze(c.UserContext(), collection, parsed)
	if err != nil {
		if analysis.IsInsufficientData(err) {
			return c.JSON(models.CorrelationResponse{
				Collection: collection,
				Pairs:      []models.CorrelationPairView{},
				Message:    err.Error(),
			})
		}
		return err
	}

	return c.JSON(models.NewCorrelationResponse(collection, pairs))
}
