package repositories

import (
	"context"

	"emosound/internal/database"
	"emosound/internal/logger"
	. "emosound/internal/models"
)

type PlaylistRepository interface {
	GetSongsForEmotion(ctx context.Context, emotionID int) ([]PredefinedPlaylist, error)
}

type playlistRepository struct {
	db  database.DB
	log logger.Logger
}

func NewPlaylistRepository(db database.DB) PlaylistRepository {
	return &playlistRepository{
		db:  db,
		log: logger.New("playlistRepository"),
	}
}

func (r *playlistRepository) GetSongsForEmotion(
	ctx context.Context,
	emotionID int,
) ([]PredefinedPlaylist, error) {
	log := r.log.Function("GetSongsForEmotion")

	var entries []PredefinedPlaylist
	if err := r.db.SQLWithContext(ctx).
		Preload("Song").
		Where("emotion_id = ?", emotionID).
		Order("priority desc").
		Find(&entries).Error; err != nil {
		return nil, log.Err("failed to get playlist songs", err, "emotionID", emotionID)
	}

	return entries, nil
}
