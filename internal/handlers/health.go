package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/soltixdb/insight/internal/models"
)

const healthProbeTimeout = 2 * time.Second

// Health handles health check requests. The field registry is probed
// so a lost etcd connection reports as degraded rather than healthy.
func (h *Handler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthProbeTimeout)
	defer cancel()

	status := "healthy"
	registryStatus := "ok"
	if _, err := h.registry.ListCollections(ctx); err != nil {
		status = "degraded"
		registryStatus = err.Error()
	}

	code := fiber.StatusOK
	if status != "healthy" {
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(models.HealthResponse{
		Status:    status,
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   "1.0.0",
		Components: map[string]string{
			"registry": registryStatus,
		},
	})
}

// NotFound handles 404 errors
func (h *Handler) NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "NOT_FOUND",
			Message: "Route not found",
			Path:    c.Path(),
		},
	})
}
