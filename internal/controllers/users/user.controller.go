package userController

import (
	"context"
	"fmt"
	"time"

	"emosound/internal/database"
	"emosound/internal/events"
	"emosound/internal/logger"
	"emosound/internal/models"
	"emosound/internal/repositories"
	"emosound/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserController handles profile, preferences, data export, and account
// removal.
type UserController struct {
	userRepo    repositories.UserRepository
	historyRepo repositories.HistoryRepository
	transaction *services.TransactionService
	spotify     *services.SpotifyService
	eventBus    *events.EventBus
	db          database.DB
	validate    *validator.Validate
	log         logger.Logger
}

type UserControllerInterface interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, req models.UpdatePreferencesRequest) (*models.UserPreferences, error)
	ExportData(ctx context.Context, userID uuid.UUID) (*ExportResponse, error)
	ClearHistory(ctx context.Context, userID uuid.UUID) error
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
	GetSpotifyAuthURL(ctx context.Context, userID uuid.UUID) (string, error)
	HandleSpotifyCallback(ctx context.Context, userID uuid.UUID, code string) error
}

type ProfileResponse struct {
	User          models.UserProfile      `json:"user"`
	Preferences   *models.UserPreferences `json:"preferences,omitempty"`
	SpotifyLinked bool                    `json:"spotifyLinked"`
}

type ExportedUser struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type ExportResponse struct {
	User           ExportedUser              `json:"user"`
	EmotionHistory []models.EmotionLogEntry  `json:"emotion_history"`
	SongHistory    []models.SongHistoryEntry `json:"song_history"`
}

const (
	exportHistoryDays  = 365
	exportHistoryLimit = 1000
)

func New(
	repos repositories.Repository,
	service services.Service,
	eventBus *events.EventBus,
	db database.DB,
) UserControllerInterface {
	return &UserController{
		userRepo:    repos.User,
		historyRepo: repos.History,
		transaction: service.Transaction,
		spotify:     service.Spotify,
		eventBus:    eventBus,
		db:          db,
		validate:    validator.New(),
		log:         logger.New("userController"),
	}
}

func (c *UserController) GetProfile(
	ctx context.Context,
	userID uuid.UUID,
) (*ProfileResponse, error) {
	user, err := c.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ProfileResponse{
		User:          user.ToProfile(),
		Preferences:   user.Preferences,
		SpotifyLinked: user.HasSpotifyLinked(),
	}, nil
}

func (c *UserController) UpdatePreferences(
	ctx context.Context,
	userID uuid.UUID,
	req models.UpdatePreferencesRequest,
) (*models.UserPreferences, error) {
	log := c.log.Function("UpdatePreferences")

	if err := c.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid preferences: %w", err)
	}

	preferences := &models.UserPreferences{}
	err := c.db.SQLWithContext(ctx).
		Where("user_id = ?", userID).
		First(preferences).Error
	if err != nil {
		preferences = models.DefaultPreferences(userID)
	}

	if req.ConfidenceThreshold != nil {
		preferences.ConfidenceThreshold = *req.ConfidenceThreshold
	}
	if req.SongsPerRecommendation != nil {
		preferences.SongsPerRecommendation = *req.SongsPerRecommendation
	}
	if req.EnableNotifications != nil {
		preferences.EnableNotifications = *req.EnableNotifications
	}
	if req.AutoPlayPreviews != nil {
		preferences.AutoPlayPreviews = *req.AutoPlayPreviews
	}

	if err := c.db.SQLWithContext(ctx).Save(preferences).Error; err != nil {
		return nil, log.Err("failed to save preferences", err, "userID", userID)
	}

	if err := c.userRepo.ClearUserCache(ctx, userID); err != nil {
		log.Warn("failed to clear user cache", "userID", userID, "error", err)
	}

	return preferences, nil
}

// ExportData bundles the user's profile and histories into a single
// portable document.
func (c *UserController) ExportData(
	ctx context.Context,
	userID uuid.UUID,
) (*ExportResponse, error) {
	user, err := c.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	emotionRecords, err := c.historyRepo.GetEmotionHistory(ctx, userID, exportHistoryDays)
	if err != nil {
		return nil, err
	}
	songRecords, err := c.historyRepo.GetSongHistory(ctx, userID, exportHistoryLimit)
	if err != nil {
		return nil, err
	}

	emotionHistory := make([]models.EmotionLogEntry, 0, len(emotionRecords))
	for _, record := range emotionRecords {
		emotionHistory = append(emotionHistory, models.EmotionLogEntry{
			Emotion:    record.Emotion.Name,
			ColorCode:  record.Emotion.ColorCode,
			Confidence: record.Confidence,
			InputType:  record.InputType,
			DetectedAt: record.DetectedAt,
		})
	}

	songHistory := make([]models.SongHistoryEntry, 0, len(songRecords))
	for _, record := range songRecords {
		songHistory = append(songHistory, models.SongHistoryEntry{
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

	return &ExportResponse{
		User: ExportedUser{
			Username:  user.Username,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
		EmotionHistory: emotionHistory,
		SongHistory:    songHistory,
	}, nil
}

func (c *UserController) ClearHistory(ctx context.Context, userID uuid.UUID) error {
	log := c.log.Function("ClearHistory")

	err := c.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.historyRepo.ClearUserHistory(ctx, tx, userID)
	})
	if err != nil {
		return err
	}

	if c.eventBus != nil {
		if err := c.eventBus.PublishHistoryCleared(userID); err != nil {
			log.Warn("failed to publish history cleared event", "userID", userID, "error", err)
		}
	}

	return nil
}

func (c *UserController) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	log := c.log.Function("DeleteAccount")

	err := c.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.userRepo.Delete(ctx, tx, userID)
	})
	if err != nil {
		return err
	}

	log.Info("account deleted", "userID", userID)
	return nil
}

// GetSpotifyAuthURL builds the consent URL for linking the user's Spotify
// account. The user ID rides along as OAuth state.
func (c *UserController) GetSpotifyAuthURL(
	ctx context.Context,
	userID uuid.UUID,
) (string, error) {
	return c.spotify.AuthURL(userID.String())
}

func (c *UserController) HandleSpotifyCallback(
	ctx context.Context,
	userID uuid.UUID,
	code string,
) error {
	log := c.log.Function("HandleSpotifyCallback")

	accessToken, refreshToken, expires, err := c.spotify.ExchangeCode(ctx, code)
	if err != nil {
		return err
	}

	if err := c.userRepo.UpdateSpotifyTokens(ctx, userID, accessToken, refreshToken, expires); err != nil {
		return err
	}

	log.Info("spotify account linked", "userID", userID)
	return nil
}
