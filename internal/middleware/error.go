package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/soltixdb/insight/internal/analysis"
	"github.com/soltixdb/insight/internal/logging"
	"github.com/soltixdb/insight/internal/models"
	"github.com/soltixdb/insight/internal/services"
)

// ErrorHandler returns the app-level error handler. It maps the
// analysis error taxonomy onto HTTP: invalid parameters are client
// errors, source failures are bad-gateway, insufficient data is a
// successful response carrying a diagnostic message.
func ErrorHandler(logger *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var analysisErr *analysis.Error
		if errors.As(err, &analysisErr) {
			return handleAnalysisError(c, logger, analysisErr)
		}

		var svcErr *services.ServiceError
		if errors.As(err, &svcErr) {
			return handleServiceError(c, logger, svcErr)
		}

		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
		}

		logger.Error("Request error",
			"path", c.Path(),
			"method", c.Method(),
			"status", code,
			"error", err)

		return c.Status(code).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "ERROR",
				Message: message,
			},
		})
	}
}

func handleAnalysisError(c *fiber.Ctx, logger *logging.Logger, err *analysis.Error) error {
	switch err.Kind {
	case analysis.ErrInvalidParameter:
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_PARAMETER",
				Message: err.Message,
				Path:    c.Path(),
			},
		})

	case analysis.ErrInsufficientData:
		// Not an HTTP failure: the fetch worked, the window just
		// cannot support the computation
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"anomalies": []interface{}{},
			"message":   err.Message,
		})

	case analysis.ErrSourceUnavailable:
		logger.Error("Series source unavailable",
			"path", c.Path(),
			"error", err)
		return c.Status(fiber.StatusBadGateway).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SOURCE_UNAVAILABLE",
				Message: err.Message,
				Path:    c.Path(),
			},
		})

	default:
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "ERROR",
				Message: err.Message,
			},
		})
	}
}

func handleServiceError(c *fiber.Ctx, logger *logging.Logger, err *services.ServiceError) error {
	code := fiber.StatusInternalServerError
	switch err.Code {
	case services.CodeCollectionNotFound:
		code = fiber.StatusNotFound
	case services.CodeNoNumericFields:
		code = fiber.StatusBadRequest
	case services.CodeRegistryFailed:
		code = fiber.StatusBadGateway
	}

	logger.Warn("Service error",
		"path", c.Path(),
		"code", err.Code,
		"status", code,
		"error", err)

	return c.Status(code).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    err.Code,
			Message: err.Message,
			Details: err.Details,
		},
	})
}
