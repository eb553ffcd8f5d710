package playlistController

import (
	"context"
	"errors"

	"emosound/internal/logger"
	"emosound/internal/models"
	"emosound/internal/repositories"
	"emosound/internal/services"

	"github.com/google/uuid"
)

var ErrSpotifyNotLinked = errors.New("no linked spotify account")

// PlaylistController exposes the emotion catalog and curated playlists.
type PlaylistController struct {
	spotifyService *services.SpotifyService
	userRepo       repositories.UserRepository
	emotionRepo    repositories.EmotionRepository
	playlistRepo   repositories.PlaylistRepository
	log            logger.Logger
}

type PlaylistControllerInterface interface {
	GetEmotions(ctx context.Context) ([]models.Emotion, error)
	GetCuratedPlaylist(ctx context.Context, emotion string) (*CuratedPlaylistResponse, error)
	GetSpotifyPlaylists(ctx context.Context, userID uuid.UUID) ([]services.SpotifyPlaylist, error)
}

type CuratedPlaylistResponse struct {
	Emotion   string        `json:"emotion"`
	ColorCode string        `json:"colorCode"`
	Songs     []models.Song `json:"songs"`
}

const spotifyPlaylistLimit = 20

func New(
	repos repositories.Repository,
	service services.Service,
) PlaylistControllerInterface {
	return &PlaylistController{
		spotifyService: service.Spotify,
		userRepo:       repos.User,
		emotionRepo:    repos.Emotion,
		playlistRepo:   repos.Playlist,
		log:            logger.New("playlistController"),
	}
}

func (c *PlaylistController) GetEmotions(ctx context.Context) ([]models.Emotion, error) {
	return c.emotionRepo.GetAll(ctx)
}

func (c *PlaylistController) GetCuratedPlaylist(
	ctx context.Context,
	emotion string,
) (*CuratedPlaylistResponse, error) {
	emotionRecord, err := c.emotionRepo.GetByName(ctx, emotion)
	if err != nil {
		return nil, err
	}

	entries, err := c.playlistRepo.GetSongsForEmotion(ctx, emotionRecord.ID)
	if err != nil {
		return nil, err
	}

	songs := make([]models.Song, 0, len(entries))
	for _, entry := range entries {
		songs = append(songs, entry.Song)
	}

	return &CuratedPlaylistResponse{
		Emotion:   emotionRecord.Name,
		ColorCode: emotionRecord.ColorCode,
		Songs:     songs,
	}, nil
}

func (c *PlaylistController) GetSpotifyPlaylists(
	ctx context.Context,
	userID uuid.UUID,
) ([]services.SpotifyPlaylist, error) {
	user, err := c.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasSpotifyLinked() {
		return nil, ErrSpotifyNotLinked
	}

	return c.spotifyService.UserPlaylists(ctx, user, spotifyPlaylistLimit)
}
