package middleware

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Recover turns a handler panic into a 500 response carrying the panic value.
func Recover(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					slog.Any("panic", r),
					slog.String("path", c.Path()),
					slog.String("method", c.Method()),
					slog.Any("request_id", c.Locals("requestid")),
				)

				err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": fmt.Sprint(r),
				})
			}
		}()
		return c.Next()
	}
}
