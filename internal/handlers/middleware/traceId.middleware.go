package middleware

import (
	"emosound/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// TraceIDHeader is the HTTP header for trace ID
	TraceIDHeader = "X-Trace-ID"

	// TraceIDLocalKey is the Fiber locals key for trace ID
	TraceIDLocalKey = "traceID"
)

// TraceID middleware extracts or generates a trace ID for request tracking
func (m *Middleware) TraceID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := c.Get(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}

		c.Set(TraceIDHeader, traceID)
		c.Locals(TraceIDLocalKey, traceID)

		ctx := logger.ContextWithTraceID(c.UserContext(), traceID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// GetTraceID retrieves the trace ID from Fiber context
func GetTraceID(c *fiber.Ctx) string {
	if traceID, ok := c.Locals(TraceIDLocalKey).(string); ok {
		return traceID
	}
	return ""
}
