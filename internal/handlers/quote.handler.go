package handlers

import (
	"emosound/internal/app"
	"emosound/internal/logger"
	"emosound/internal/services"

	"github.com/gofiber/fiber/v2"
)

type QuoteHandler struct {
	Handler
	quotes *services.QuoteService
}

func NewQuoteHandler(app app.App, router fiber.Router) *QuoteHandler {
	log := logger.New("handlers").File("quote_handler")
	return &QuoteHandler{
		quotes: app.Services.Quote,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *QuoteHandler) Register() {
	quotes := h.router.Group("/quotes", h.middleware.RequireAuth())

	quotes.Get("/daily", h.getDailyQuote)
	quotes.Get("/:emotion", h.getQuoteForEmotion)
}

func (h *QuoteHandler) getDailyQuote(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"quote": h.quotes.DailyQuote(c.UserContext()),
	})
}

func (h *QuoteHandler) getQuoteForEmotion(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"quote": h.quotes.GetForEmotion(c.UserContext(), c.Params("emotion")),
	})
}
