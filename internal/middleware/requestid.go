package middleware

import (
	"github.com/bilgisen/spacetraveling/internal/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestIDKey is the fiber Locals key holding the request ID.
const RequestIDKey = "requestID"

// RequestID assigns every request an ID, reusing a valid incoming one, and
// attaches a logger carrying it to the request context.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Locals(RequestIDKey, id)
		c.Set(RequestIDHeader, id)

		l := logger.Get().With().Str("request_id", id).Logger()
		c.SetUserContext(l.WithContext(c.UserContext()))

		return c.Next()
	}
}

// GetRequestID returns the ID assigned by RequestID, or "".
func GetRequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(RequestIDKey).(string)
	return id
}
