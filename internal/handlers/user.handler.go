package handlers

import (
	"emosound/internal/app"
	"emosound/internal/handlers/middleware"
	"emosound/internal/logger"
	"emosound/internal/models"

	userController "emosound/internal/controllers/users"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Handler
	userController userController.UserControllerInterface
}

func NewUserHandler(app app.App, router fiber.Router) *UserHandler {
	log := logger.New("handlers").File("user_handler")
	return &UserHandler{
		userController: app.Controllers.User,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *UserHandler) Register() {
	users := h.router.Group("/users", h.middleware.RequireAuth())

	users.Get("/profile", h.getProfile)
	users.Put("/preferences", h.updatePreferences)
	users.Get("/export", h.exportData)
	users.Delete("/history", h.clearHistory)
	users.Delete("/account", h.deleteAccount)

	spotify := users.Group("/spotify")
	spotify.Get("/auth-url", h.getSpotifyAuthURL)
	spotify.Post("/callback", h.handleSpotifyCallback)
}

func (h *UserHandler) getProfile(c *fiber.Ctx) error {
	user := middleware.GetUser(c)

	profile, err := h.userController.GetProfile(c.UserContext(), user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load profile",
		})
	}

	return c.JSON(profile)
}

func (h *UserHandler) updatePreferences(c *fiber.Ctx) error {
	log := h.log.Function("updatePreferences")

	user := middleware.GetUser(c)

	var req models.UpdatePreferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	preferences, err := h.userController.UpdatePreferences(c.UserContext(), user.ID, req)
	if err != nil {
		log.Info("preferences rejected", "userID", user.ID, "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"preferences": preferences,
	})
}

func (h *UserHandler) exportData(c *fiber.Ctx) error {
	log := h.log.Function("exportData")

	user := middleware.GetUser(c)

	export, err := h.userController.ExportData(c.UserContext(), user.ID)
	if err != nil {
		log.Er("export failed", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to export data",
		})
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="emosound-export.json"`)
	return c.JSON(export)
}

func (h *UserHandler) clearHistory(c *fiber.Ctx) error {
	log := h.log.Function("clearHistory")

	user := middleware.GetUser(c)

	if err := h.userController.ClearHistory(c.UserContext(), user.ID); err != nil {
		log.Er("failed to clear history", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to clear history",
		})
	}

	return c.JSON(fiber.Map{
		"message": "History cleared",
	})
}

func (h *UserHandler) deleteAccount(c *fiber.Ctx) error {
	log := h.log.Function("deleteAccount")

	user := middleware.GetUser(c)
	sessionID := middleware.GetSessionID(c)

	if err := h.userController.DeleteAccount(c.UserContext(), user.ID); err != nil {
		log.Er("failed to delete account", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete account",
		})
	}

	if sessionID != "" {
		if err := h.middleware.EndSession(c.UserContext(), sessionID); err != nil {
			log.Warn("failed to end session after delete", "sessionID", sessionID)
		}
	}

	return c.JSON(fiber.Map{
		"message": "Account deleted",
	})
}

func (h *UserHandler) getSpotifyAuthURL(c *fiber.Ctx) error {
	user := middleware.GetUser(c)

	authURL, err := h.userController.GetSpotifyAuthURL(c.UserContext(), user.ID)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Spotify integration not configured",
		})
	}

	return c.JSON(fiber.Map{
		"authorizationUrl": authURL,
	})
}

type spotifyCallbackRequest struct {
	Code string `json:"code"`
}

func (h *UserHandler) handleSpotifyCallback(c *fiber.Ctx) error {
	log := h.log.Function("handleSpotifyCallback")

	user := middleware.GetUser(c)

	var req spotifyCallbackRequest
	if err := c.BodyParser(&req); err != nil || req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Authorization code required",
		})
	}

	if err := h.userController.HandleSpotifyCallback(c.UserContext(), user.ID, req.Code); err != nil {
		log.Info("spotify link failed", "userID", user.ID, "error", err.Error())
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to link Spotify account",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Spotify account linked",
	})
}
