package repositories

import (
	"context"
	"errors"

	"emosound/internal/database"
	"emosound/internal/logger"
	. "emosound/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SongRepository interface {
	AddOrGet(ctx context.Context, song *Song) (*Song, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Song, error)
	GetBySpotifyID(ctx context.Context, spotifyID string) (*Song, error)
}

type songRepository struct {
	db  database.DB
	log logger.Logger
}

func NewSongRepository(db database.DB) SongRepository {
	return &songRepository{
		db:  db,
		log: logger.New("songRepository"),
	}
}

// AddOrGet returns the existing row when the song's Spotify ID is already
// known, otherwise inserts and returns the new row.
func (r *songRepository) AddOrGet(ctx context.Context, song *Song) (*Song, error) {
	log := r.log.Function("AddOrGet")

	if song.SpotifyID != nil && *song.SpotifyID != "" {
		existing, err := r.GetBySpotifyID(ctx, *song.SpotifyID)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.Err("failed to look up song by spotify id", err, "spotifyID", *song.SpotifyID)
		}
	}

	if err := r.db.SQLWithContext(ctx).Create(song).Error; err != nil {
		return nil, log.Err("failed to create song", err, "title", song.Title, "artist", song.Artist)
	}

	return song, nil
}

func (r *songRepository) GetByID(ctx context.Context, id uuid.UUID) (*Song, error) {
	log := r.log.Function("GetByID")

	var song Song
	if err := r.db.SQLWithContext(ctx).First(&song, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get song by id", err, "id", id)
	}

	return &song, nil
}

func (r *songRepository) GetBySpotifyID(ctx context.Context, spotifyID string) (*Song, error) {
	var song Song
	if err := r.db.SQLWithContext(ctx).
		First(&song, "spotify_id = ?", spotifyID).Error; err != nil {
		return nil, err
	}
	return &song, nil
}
