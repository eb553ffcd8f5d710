package handlers

import (
	"emosound/internal/app"
	"emosound/internal/handlers/middleware"
	"emosound/internal/logger"

	recommendationController "emosound/internal/controllers/recommendation"

	"github.com/gofiber/fiber/v2"
)

type RecommendationHandler struct {
	Handler
	recommendationController recommendationController.RecommendationControllerInterface
}

func NewRecommendationHandler(app app.App, router fiber.Router) *RecommendationHandler {
	log := logger.New("handlers").File("recommendation_handler")
	return &RecommendationHandler{
		recommendationController: app.Controllers.Recommendation,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *RecommendationHandler) Register() {
	recommendations := h.router.Group("/recommendations", h.middleware.RequireAuth())

	recommendations.Get("/history/songs", h.getSongHistory)
	recommendations.Get("/history/emotions", h.getEmotionHistory)
	recommendations.Get("/:emotion", h.getForEmotion)
	recommendations.Post("/play", h.logPlay)
	recommendations.Post("/feedback", h.feedback)
}

func (h *RecommendationHandler) getForEmotion(c *fiber.Ctx) error {
	log := h.log.Function("getForEmotion")

	user := middleware.GetUser(c)
	emotion := c.Params("emotion")

	response, err := h.recommendationController.GetForEmotion(c.UserContext(), user.ID, emotion)
	if err != nil {
		log.Info("recommendation lookup failed", "emotion", emotion, "error", err.Error())
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Unknown emotion",
		})
	}

	return c.JSON(response)
}

func (h *RecommendationHandler) logPlay(c *fiber.Ctx) error {
	log := h.log.Function("logPlay")

	user := middleware.GetUser(c)

	var req recommendationController.PlayRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Title == "" || req.Artist == "" || req.Emotion == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title, artist, and emotion are required",
		})
	}

	song, err := h.recommendationController.LogPlay(c.UserContext(), user.ID, req)
	if err != nil {
		log.Info("failed to log play", "userID", user.ID, "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"song": song,
	})
}

func (h *RecommendationHandler) feedback(c *fiber.Ctx) error {
	log := h.log.Function("feedback")

	user := middleware.GetUser(c)

	var req recommendationController.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.recommendationController.Feedback(c.UserContext(), user.ID, req); err != nil {
		log.Info("feedback rejected", "userID", user.ID, "songID", req.SongID)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No play history found for this song",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Feedback recorded",
	})
}

func (h *RecommendationHandler) getSongHistory(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	limit := c.QueryInt("limit", 50)

	entries, err := h.recommendationController.GetSongHistory(c.UserContext(), user.ID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load song history",
		})
	}

	return c.JSON(fiber.Map{
		"history": entries,
	})
}

func (h *RecommendationHandler) getEmotionHistory(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	days := c.QueryInt("days", 30)

	entries, err := h.recommendationController.GetEmotionHistory(c.UserContext(), user.ID, days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load emotion history",
		})
	}

	return c.JSON(fiber.Map{
		"history": entries,
	})
}
