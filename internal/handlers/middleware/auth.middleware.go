package middleware

import (
	"context"
	"strings"

	"emosound/internal/logger"
	"emosound/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AuthContextKey is used to store auth info in context
type AuthContextKey string

const (
	UserKey         AuthContextKey = "user"
	UserKeyFiber    string         = "User"
	SessionKeyFiber string         = "SessionID"
)

// RequireAuth validates the bearer token and loads the user into the request
// context.
func (m *Middleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := logger.New("middleware").TraceFromContext(c.UserContext()).Function("RequireAuth")

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		session, err := m.controllers.Auth.ValidateSession(c.UserContext(), tokenParts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Session is invalid or expired",
			})
		}

		user, err := m.userRepo.GetByID(c.UserContext(), session.UserID)
		if err != nil {
			log.Info("user not found for session", "userID", session.UserID)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User not found",
			})
		}

		c.Locals(UserKeyFiber, user)
		c.Locals(SessionKeyFiber, session.SessionID)

		ctx := context.WithValue(c.UserContext(), UserKey, user)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// GetUser extracts the authenticated user from the Fiber context
func GetUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals(UserKeyFiber).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetSessionID extracts the session ID from the Fiber context
func GetSessionID(c *fiber.Ctx) string {
	sessionID, ok := c.Locals(SessionKeyFiber).(string)
	if !ok {
		return ""
	}
	return sessionID
}
