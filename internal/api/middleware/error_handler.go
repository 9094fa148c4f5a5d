package middleware

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/emotion-api/internal/domain"
)

// ErrorHandler renders every error as {"error": "<message>"}.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		// Check if it's our AppError
		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			attrs := []any{
				slog.String("code", appErr.Code),
				slog.String("path", c.Path()),
				slog.Any("request_id", c.Locals("requestid")),
			}
			if appErr.Err != nil {
				attrs = append(attrs, slog.String("error", appErr.Err.Error()))
			}

			if appErr.StatusCode >= 500 {
				logger.Error(appErr.Message, attrs...)
			} else {
				logger.Warn(appErr.Message, attrs...)
			}

			return c.Status(appErr.StatusCode).JSON(fiber.Map{
				"error": appErr.Message,
			})
		}

		// Check if it's a Fiber error
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"error": fiberErr.Message,
			})
		}

		// Unknown error: the message itself is the response body
		logger.Error("unhandled error",
			slog.Any("error", err),
			slog.String("path", c.Path()),
			slog.Any("request_id", c.Locals("requestid")),
		)

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
