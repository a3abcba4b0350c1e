package logger

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"

// RequestID ensures every request carries an X-Request-ID, generating one
// when the client didn't send any, and echoes it back on the response.
func RequestID(c *fiber.Ctx) error {
	reqID := c.Get("X-Request-ID")
	if reqID == "" {
		reqID = uuid.New().String()
	}

	c.Locals(requestIDKey, reqID)
	c.SetUserContext(WithRequestID(c.UserContext(), reqID))
	c.Set("X-Request-ID", reqID)
	return c.Next()
}

// FromFiberCtx returns the global logger with the request id attached.
func FromFiberCtx(c *fiber.Ctx) *zap.Logger {
	if reqID, ok := c.Locals(requestIDKey).(string); ok && reqID != "" {
		return L().With(zap.String("request_id", reqID))
	}
	return L()
}

// Logging records one line per completed request.
func Logging(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	FromFiberCtx(c).Info("incoming request",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
		zap.String("ip", c.IP()),
		zap.Duration("duration_ms", time.Since(start)),
	)
	return err
}
