package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// requestIDKey is the fiber locals key the request ID is stored under.
const requestIDKey = "request_id"

// NewRequestID returns a middleware that attaches a UUID to every request,
// honoring an inbound X-Request-ID when the caller supplies one.
func NewRequestID() fiber.Handler {
	return func(c fiber.Ctx) error {
		id := c.Get(requestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Locals(requestIDKey, id)
		c.Set(requestIDHeader, id)
		return c.Next()
	}
}

// RequestID returns the request ID attached by NewRequestID, or "" when the
// middleware didn't run.
func RequestID(c fiber.Ctx) string {
	if id, ok := c.Locals(requestIDKey).(string); ok {
		return id
	}
	return ""
}
