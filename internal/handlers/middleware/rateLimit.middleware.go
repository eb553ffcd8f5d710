package middleware

import (
	"time"

	"emosound/internal/database"

	"github.com/gofiber/fiber/v2"
)

// RateLimit caps requests per client within a sliding window. The counter
// lives in the cache so limits hold across instances.
func (m *Middleware) RateLimit(prefix string, maxRequests int64, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := c.IP()
		if user := GetUser(c); user != nil {
			identifier = user.ID.String()
		}

		count, err := database.NewCacheBuilder(m.DB.Cache.General, identifier).
			WithPrefix(prefix).
			WithContext(c.UserContext()).
			Incr(window)
		if err != nil {
			// Rate limiting should not take the API down with it.
			m.log.Warn("rate limit counter unavailable", "error", err)
			return c.Next()
		}

		if count > maxRequests {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, slow down",
			})
		}

		return c.Next()
	}
}
