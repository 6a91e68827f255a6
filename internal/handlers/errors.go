package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/example/clickpay/internal/logger"
)

// ErrorHandler turns handler errors into HTTP responses. Click business
// rejections never get here; they are answered with 200 by the handlers.
// fiber errors keep their status, anything else is a 500 with a generic body.
func ErrorHandler(base *zap.SugaredLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}

		log := logger.FromFiber(c, base)
		if code >= fiber.StatusInternalServerError {
			log.Errorw("request_failed", "method", c.Method(), "path", c.Path(), "err", err)
		} else {
			log.Infow("request_rejected", "method", c.Method(), "path", c.Path(), "status", code, "reason", message)
		}

		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   message,
		})
	}
}
