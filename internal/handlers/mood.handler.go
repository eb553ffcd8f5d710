package handlers

import (
	"io"
	"time"

	"emosound/internal/app"
	"emosound/internal/handlers/middleware"
	"emosound/internal/logger"
	"emosound/internal/utils"

	moodController "emosound/internal/controllers/mood"

	"github.com/gofiber/fiber/v2"
)

const (
	detectRateLimitPrefix = "ratelimit:detect"
	detectRateLimitMax    = 30
	detectRateLimitWindow = time.Minute
)

type MoodHandler struct {
	Handler
	moodController moodController.MoodControllerInterface
}

func NewMoodHandler(app app.App, router fiber.Router) *MoodHandler {
	log := logger.New("handlers").File("mood_handler")
	return &MoodHandler{
		moodController: app.Controllers.Mood,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *MoodHandler) Register() {
	mood := h.router.Group(
		"/mood",
		h.middleware.RequireAuth(),
		h.middleware.RateLimit(detectRateLimitPrefix, detectRateLimitMax, detectRateLimitWindow),
	)

	mood.Post("/text", h.detectFromText)
	mood.Post("/audio", h.detectFromAudio)
}

type detectTextRequest struct {
	Text string `json:"text"`
}

func (h *MoodHandler) detectFromText(c *fiber.Ctx) error {
	log := h.log.Function("detectFromText")

	user := middleware.GetUser(c)

	var req detectTextRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	response, err := h.moodController.DetectFromText(c.UserContext(), user.ID, req.Text)
	if err != nil {
		log.Info("text detection failed", "userID", user.ID, "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(response)
}

func (h *MoodHandler) detectFromAudio(c *fiber.Ctx) error {
	log := h.log.Function("detectFromAudio")

	user := middleware.GetUser(c)

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No audio file provided",
		})
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := utils.ValidateAudioUpload(fileHeader.Size, contentType); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return log.Err("failed to open upload", err, "userID", user.ID)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Warn("failed to close upload", "error", closeErr)
		}
	}()

	audio, err := io.ReadAll(file)
	if err != nil {
		return log.Err("failed to read upload", err, "userID", user.ID)
	}

	response, err := h.moodController.DetectFromAudio(c.UserContext(), user.ID, audio, contentType)
	if err != nil {
		log.Info("audio detection failed", "userID", user.ID, "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(response)
}
