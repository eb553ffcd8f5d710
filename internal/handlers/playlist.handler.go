package handlers

import (
	"errors"

	"emosound/internal/app"
	"emosound/internal/handlers/middleware"
	"emosound/internal/logger"

	playlistController "emosound/internal/controllers/playlist"

	"github.com/gofiber/fiber/v2"
)

type PlaylistHandler struct {
	Handler
	playlistController playlistController.PlaylistControllerInterface
}

func NewPlaylistHandler(app app.App, router fiber.Router) *PlaylistHandler {
	log := logger.New("handlers").File("playlist_handler")
	return &PlaylistHandler{
		playlistController: app.Controllers.Playlist,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *PlaylistHandler) Register() {
	playlists := h.router.Group("/playlists", h.middleware.RequireAuth())

	playlists.Get("/emotions", h.getEmotions)
	playlists.Get("/emotions/:emotion", h.getCuratedPlaylist)
	playlists.Get("/spotify", h.getSpotifyPlaylists)
}

func (h *PlaylistHandler) getEmotions(c *fiber.Ctx) error {
	emotions, err := h.playlistController.GetEmotions(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load emotions",
		})
	}

	return c.JSON(fiber.Map{
		"emotions": emotions,
	})
}

func (h *PlaylistHandler) getCuratedPlaylist(c *fiber.Ctx) error {
	log := h.log.Function("getCuratedPlaylist")

	emotion := c.Params("emotion")
	response, err := h.playlistController.GetCuratedPlaylist(c.UserContext(), emotion)
	if err != nil {
		log.Info("curated playlist lookup failed", "emotion", emotion)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Unknown emotion",
		})
	}

	return c.JSON(response)
}

func (h *PlaylistHandler) getSpotifyPlaylists(c *fiber.Ctx) error {
	log := h.log.Function("getSpotifyPlaylists")

	user := middleware.GetUser(c)

	playlists, err := h.playlistController.GetSpotifyPlaylists(c.UserContext(), user.ID)
	if err != nil {
		if errors.Is(err, playlistController.ErrSpotifyNotLinked) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "No linked Spotify account",
			})
		}
		log.Info("spotify playlist lookup failed", "userID", user.ID, "error", err.Error())
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to load Spotify playlists",
		})
	}

	return c.JSON(fiber.Map{
		"playlists": playlists,
	})
}
