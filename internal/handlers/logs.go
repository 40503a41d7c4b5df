package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soltixdb/insight/internal/analysis"
	"github.com/soltixdb/insight/internal/models"
)

// LogVolume handles log-volume anomaly detection requests
// POST /v1/collections/:collection/logs/volume
func (h *Handler) LogVolume(c *fiber.Ctx) error {
	collection := c.Params("collection")

	var req models.LogVolumeRequest
	if err := c.BodyParser(&req); err != nil {
		return analysis.NewInvalidParameter("invalid request body: " + err.Error())
	}

	parsed, err := req.Parse()
	if err != nil {
		return err
	}

	result, err := h.logService.AnalyzeVolume(c.UserContext(), collection, parsed)
	if err != nil {
		return err
	}

	return c.JSON(models.NewDetectionResponse(collection, "", "", result))
}

// LogPattern handles pattern-frequency detection requests
// POST /v1/collections/:collection/logs/pattern
func (h *Handler) LogPattern(c *fiber.Ctx) error {
	collection := c.Params("collection")

	var req models.LogPatternRequest
	if err := c.BodyParser(&req); err != nil {
		return analysis.NewInvalidParameter("invalid request body: " + err.Error())
	}

	parsed, err := req.Parse()
	if err != nil {
		return err
	}

	result, err := h.logService.AnalyzePattern(c.UserContext(), collection, req.Pattern, parsed)
	if err != nil {
		return err
	}

	return c.JSON(models.NewDetectionResponse(collection, "", "", result))
}
