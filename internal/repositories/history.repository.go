package repositories

import (
	"context"
	"time"

	"emosound/internal/database"
	"emosound/internal/logger"
	. "emosound/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HistoryRepository interface {
	CreateEmotionLog(ctx context.Context, entry *EmotionLog) error
	CreateSongInteraction(ctx context.Context, entry *UserSongHistory) error
	UpdateSongFeedback(ctx context.Context, userID, songID uuid.UUID, liked bool) error
	GetEmotionHistory(ctx context.Context, userID uuid.UUID, days int) ([]EmotionLog, error)
	GetSongHistory(ctx context.Context, userID uuid.UUID, limit int) ([]UserSongHistory, error)
	ClearUserHistory(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type historyRepository struct {
	db  database.DB
	log logger.Logger
}

func NewHistoryRepository(db database.DB) HistoryRepository {
	return &historyRepository{
		db:  db,
		log: logger.New("historyRepository"),
	}
}

func (r *historyRepository) CreateEmotionLog(ctx context.Context, entry *EmotionLog) error {
	log := r.log.Function("CreateEmotionLog")

	if entry.DetectedAt.IsZero() {
		entry.DetectedAt = time.Now()
	}
	if err := r.db.SQLWithContext(ctx).Create(entry).Error; err != nil {
		return log.Err("failed to create emotion log", err, "userID", entry.UserID)
	}

	return nil
}

func (r *historyRepository) CreateSongInteraction(ctx context.Context, entry *UserSongHistory) error {
	log := r.log.Function("CreateSongInteraction")

	if entry.PlayedAt.IsZero() {
		entry.PlayedAt = time.Now()
	}
	if err := r.db.SQLWithContext(ctx).Create(entry).Error; err != nil {
		return log.Err("failed to create song interaction", err, "userID", entry.UserID, "songID", entry.SongID)
	}

	return nil
}

// UpdateSongFeedback sets liked on the most recent interaction between the
// user and the song. Earlier interactions keep their original feedback.
func (r *historyRepository) UpdateSongFeedback(
	ctx context.Context,
	userID, songID uuid.UUID,
	liked bool,
) error {
	log := r.log.Function("UpdateSongFeedback")

	var entry UserSongHistory
	err := r.db.SQLWithContext(ctx).
		Where("user_id = ? AND song_id = ?", userID, songID).
		Order("played_at desc").
		First(&entry).Error
	if err != nil {
		return log.Err("no interaction found for feedback", err, "userID", userID, "songID", songID)
	}

	if err := r.db.SQLWithContext(ctx).
		Model(&entry).
		Update("liked", liked).Error; err != nil {
		return log.Err("failed to update song feedback", err, "userID", userID, "songID", songID)
	}

	return nil
}

func (r *historyRepository) GetEmotionHistory(
	ctx context.Context,
	userID uuid.UUID,
	days int,
) ([]EmotionLog, error) {
	log := r.log.Function("GetEmotionHistory")

	since := time.Now().AddDate(0, 0, -days)

	var entries []EmotionLog
	if err := r.db.SQLWithContext(ctx).
		Preload("Emotion").
		Where("user_id = ? AND detected_at >= ?", userID, since).
		Order("detected_at desc").
		Find(&entries).Error; err != nil {
		return nil, log.Err("failed to get emotion history", err, "userID", userID)
	}

	return entries, nil
}

func (r *historyRepository) GetSongHistory(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]UserSongHistory, error) {
	log := r.log.Function("GetSongHistory")

	var entries []UserSongHistory
	if err := r.db.SQLWithContext(ctx).
		Preload("Song").
		Preload("Emotion").
		Where("user_id = ?", userID).
		Order("played_at desc").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, log.Err("failed to get song history", err, "userID", userID)
	}

	return entries, nil
}

// ClearUserHistory removes both emotion logs and song interactions inside the
// caller's transaction.
func (r *historyRepository) ClearUserHistory(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) error {
	log := r.log.Function("ClearUserHistory")

	if err := tx.Unscoped().
		Where("user_id = ?", userID).
		Delete(&UserSongHistory{}).Error; err != nil {
		return log.Err("failed to clear song history", err, "userID", userID)
	}

	if err := tx.Unscoped().
		Where("user_id = ?", userID).
		Delete(&EmotionLog{}).Error; err != nil {
		return log.Err("failed to clear emotion history", err, "userID", userID)
	}

	return nil
}
