package handlers

import (
	"errors"
	"time"

	"emosound/internal/app"
	"emosound/internal/handlers/middleware"
	"emosound/internal/logger"
	"emosound/internal/models"

	authController "emosound/internal/controllers/auth"

	"github.com/gofiber/fiber/v2"
)

const (
	loginRateLimitPrefix = "ratelimit:login"
	loginRateLimitMax    = 20
	loginRateLimitWindow = time.Minute
)

type AuthHandler struct {
	Handler
	authController authController.AuthControllerInterface
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	log := logger.New("handlers").File("auth_handler")
	return &AuthHandler{
		authController: app.Controllers.Auth,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")

	limited := h.middleware.RateLimit(loginRateLimitPrefix, loginRateLimitMax, loginRateLimitWindow)
	auth.Post("/register", limited, h.register)
	auth.Post("/login", limited, h.login)

	protected := auth.Group("/", h.middleware.RequireAuth())
	protected.Get("/me", h.getCurrentUser)
	protected.Post("/logout", h.logout)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	log := h.log.Function("register")

	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	response, err := h.authController.Register(c.UserContext(), req)
	if err != nil {
		log.Info("registration rejected", "username", req.Username, "error", err.Error())
		if errors.Is(err, authController.ErrPasswordMismatch) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Passwords do not match",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	log := h.log.Function("login")

	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	response, err := h.authController.Login(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, authController.ErrAccountLocked) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		log.Info("login rejected", "username", req.Username)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid username or password",
		})
	}

	return c.JSON(response)
}

func (h *AuthHandler) getCurrentUser(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	return c.JSON(fiber.Map{
		"user": user.ToProfile(),
	})
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	log := h.log.Function("logout")

	sessionID := middleware.GetSessionID(c)
	if sessionID != "" {
		if err := h.authController.Logout(c.UserContext(), sessionID); err != nil {
			log.Er("failed to end session", err, "sessionID", sessionID)
		}
	}

	return c.JSON(fiber.Map{
		"message": "Logout successful",
	})
}
