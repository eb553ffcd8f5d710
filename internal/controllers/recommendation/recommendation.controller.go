package recommendationController

import (
	"context"
	"time"

	"emosound/internal/constants"
	"emosound/internal/database"
	"emosound/internal/logger"
	"emosound/internal/models"
	"emosound/internal/repositories"
	"emosound/internal/services"

	"github.com/google/uuid"
)

// RecommendationController serves songs for an emotion and records what the
// user played and liked.
type RecommendationController struct {
	spotifyService *services.SpotifyService
	userRepo       repositories.UserRepository
	emotionRepo    repositories.EmotionRepository
	songRepo       repositories.SongRepository
	historyRepo    repositories.HistoryRepository
	playlistRepo   repositories.PlaylistRepository
	db             database.DB
	log            logger.Logger
}

type RecommendationControllerInterface interface {
	GetForEmotion(ctx context.Context, userID uuid.UUID, emotion string) (*RecommendationResponse, error)
	LogPlay(ctx context.Context, userID uuid.UUID, req PlayRequest) (*models.Song, error)
	Feedback(ctx context.Context, userID uuid.UUID, req FeedbackRequest) error
	GetSongHistory(ctx context.Context, userID uuid.UUID, limit int) ([]models.SongHistoryEntry, error)
	GetEmotionHistory(ctx context.Context, userID uuid.UUID, days int) ([]models.EmotionLogEntry, error)
}

type RecommendationResponse struct {
	Emotion string        `json:"emotion"`
	Source  string        `json:"source"`
	Songs   []models.Song `json:"songs"`
}

type PlayRequest struct {
	Title      string  `json:"title"      validate:"required"`
	Artist     string  `json:"artist"     validate:"required"`
	Album      string  `json:"album"`
	SpotifyID  *string `json:"spotifyId"`
	PreviewURL string  `json:"previewUrl"`
	AlbumImage string  `json:"albumImage"`
	Emotion    string  `json:"emotion"    validate:"required"`
	InputType  string  `json:"inputType"`
	Confidence float64 `json:"confidence"`
}

type FeedbackRequest struct {
	SongID uuid.UUID `json:"songId" validate:"required"`
	Liked  bool      `json:"liked"`
}

const (
	sourceSpotify  = "spotify"
	sourceCurated  = "curated"
	defaultLimit   = 10
	historyDefault = 50
)

func New(
	repos repositories.Repository,
	service services.Service,
	db database.DB,
) RecommendationControllerInterface {
	return &RecommendationController{
		spotifyService: service.Spotify,
		userRepo:       repos.User,
		emotionRepo:    repos.Emotion,
		songRepo:       repos.Song,
		historyRepo:    repos.History,
		playlistRepo:   repos.Playlist,
		db:             db,
		log:            logger.New("recommendationController"),
	}
}

// GetForEmotion returns songs for an emotion. Personalized results are used
// when the user linked Spotify, catalog search otherwise, and the curated
// playlist when Spotify returns nothing.
func (c *RecommendationController) GetForEmotion(
	ctx context.Context,
	userID uuid.UUID,
	emotion string,
) (*RecommendationResponse, error) {
	log := c.log.Function("GetForEmotion")

	emotionRecord, err := c.emotionRepo.GetByName(ctx, emotion)
	if err != nil {
		return nil, err
	}

	limit := defaultLimit
	user, userErr := c.userRepo.GetByID(ctx, userID)
	if userErr == nil && user.Preferences != nil {
		limit = user.Preferences.SongsPerRecommendation
	}

	if userErr == nil && user.HasSpotifyLinked() {
		songs := c.spotifyService.RecommendForUser(ctx, user, emotionRecord.Name, limit)
		if len(songs) > 0 {
			return &RecommendationResponse{
				Emotion: emotionRecord.Name,
				Source:  sourceSpotify,
				Songs:   songs,
			}, nil
		}
	}

	if songs := c.cachedSearch(ctx, emotionRecord.Name, limit); len(songs) > 0 {
		return &RecommendationResponse{
			Emotion: emotionRecord.Name,
			Source:  sourceSpotify,
			Songs:   songs,
		}, nil
	}

	entries, err := c.playlistRepo.GetSongsForEmotion(ctx, emotionRecord.ID)
	if err != nil {
		return nil, err
	}

	songs := make([]models.Song, 0, len(entries))
	for _, entry := range entries {
		songs = append(songs, entry.Song)
		if len(songs) >= limit {
			break
		}
	}

	log.Debug("serving curated playlist", "emotion", emotionRecord.Name, "count", len(songs))
	return &RecommendationResponse{
		Emotion: emotionRecord.Name,
		Source:  sourceCurated,
		Songs:   songs,
	}, nil
}

// cachedSearch memoizes catalog searches per emotion.
func (c *RecommendationController) cachedSearch(
	ctx context.Context,
	emotion string,
	limit int,
) []models.Song {
	log := c.log.Function("cachedSearch")

	var cached []models.Song
	found, err := database.NewCacheBuilder(c.db.Cache.ClientAPI, emotion).
		WithPrefix(constants.RecommendationPrefix).
		WithContext(ctx).
		Get(&cached)
	if err == nil && found && len(cached) > 0 {
		if len(cached) > limit {
			cached = cached[:limit]
		}
		return cached
	}

	songs := c.spotifyService.SearchByEmotion(ctx, emotion, defaultLimit)
	if len(songs) == 0 {
		return nil
	}

	err = database.NewCacheBuilder(c.db.Cache.ClientAPI, emotion).
		WithPrefix(constants.RecommendationPrefix).
		WithStruct(songs).
		WithTTL(constants.RecommendationExpiry).
		WithContext(ctx).
		Set()
	if err != nil {
		log.Warn("failed to cache recommendations", "emotion", emotion, "error", err)
	}

	if len(songs) > limit {
		songs = songs[:limit]
	}
	return songs
}

// LogPlay persists the song if needed and appends a history entry.
func (c *RecommendationController) LogPlay(
	ctx context.Context,
	userID uuid.UUID,
	req PlayRequest,
) (*models.Song, error) {
	log := c.log.Function("LogPlay")

	emotion, err := c.emotionRepo.GetByName(ctx, req.Emotion)
	if err != nil {
		return nil, err
	}

	song, err := c.songRepo.AddOrGet(ctx, &models.Song{
		Title:      req.Title,
		Artist:     req.Artist,
		Album:      req.Album,
		SpotifyID:  req.SpotifyID,
		PreviewURL: req.PreviewURL,
		AlbumImage: req.AlbumImage,
	})
	if err != nil {
		return nil, err
	}

	inputType := req.InputType
	if inputType == "" {
		inputType = models.InputTypeText
	}

	entry := &models.UserSongHistory{
		UserID:     userID,
		SongID:     song.ID,
		EmotionID:  emotion.ID,
		InputType:  inputType,
		Confidence: req.Confidence,
		PlayedAt:   time.Now(),
	}
	if err := c.historyRepo.CreateSongInteraction(ctx, entry); err != nil {
		return nil, err
	}

	log.Debug("play logged", "userID", userID, "songID", song.ID)
	return song, nil
}

func (c *RecommendationController) Feedback(
	ctx context.Context,
	userID uuid.UUID,
	req FeedbackRequest,
) error {
	return c.historyRepo.UpdateSongFeedback(ctx, userID, req.SongID, req.Liked)
}

func (c *RecommendationController) GetSongHistory(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]models.SongHistoryEntry, error) {
	if limit <= 0 || limit > historyDefault {
		limit = historyDefault
	}

	records, err := c.historyRepo.GetSongHistory(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]models.SongHistoryEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, models.SongHistoryEntry{
			Title:      record.Song.Title,
			Artist:     record.Song.Artist,
			AlbumImage: record.Song.AlbumImage,
			Emotion:    record.Emotion.Name,
			ColorCode:  record.Emotion.ColorCode,
			Liked:      record.Liked,
			InputType:  record.InputType,
			PlayedAt:   record.PlayedAt,
		})
	}

	return entries, nil
}

func (c *RecommendationController) GetEmotionHistory(
	ctx context.Context,
	userID uuid.UUID,
	days int,
) ([]models.EmotionLogEntry, error) {
	if days <= 0 || days > 365 {
		days = 30
	}

	records, err := c.historyRepo.GetEmotionHistory(ctx, userID, days)
	if err != nil {
		return nil, err
	}

	entries := make([]models.EmotionLogEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, models.EmotionLogEntry{
			Emotion:    record.Emotion.Name,
			ColorCode:  record.Emotion.ColorCode,
			Confidence: record.Confidence,
			InputType:  record.InputType,
			DetectedAt: record.DetectedAt,
		})
	}

	return entries, nil
}
