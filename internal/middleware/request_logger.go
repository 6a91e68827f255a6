package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"github.com/example/clickpay/internal/logger"
)

// RequestLogger attaches a logger carrying the request id to fiber locals and
// to the request's user context, and writes one access line per request.
// It expects requestid.New() to run before it.
func RequestLogger(base *zap.SugaredLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		reqID, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
		reqLogger := base.With("request_id", reqID)
		c.Locals(logger.LocalsKey, reqLogger)
		c.SetUserContext(logger.WithContext(c.UserContext(), reqLogger))

		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}

		reqLogger.Infow("http_access",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.IP(),
		)
		return err
	}
}
