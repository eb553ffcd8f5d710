package repositories

import (
	"context"
	"strings"

	"emosound/internal/database"
	"emosound/internal/logger"
	. "emosound/internal/models"
)

const (
	emotionListCacheKey    = "emotions:all"
	emotionListCachePrefix = "emotion"
)

type EmotionRepository interface {
	GetAll(ctx context.Context) ([]Emotion, error)
	GetByName(ctx context.Context, name string) (*Emotion, error)
	GetByID(ctx context.Context, id int) (*Emotion, error)
}

type emotionRepository struct {
	db  database.DB
	log logger.Logger
}

func NewEmotionRepository(db database.DB) EmotionRepository {
	return &emotionRepository{
		db:  db,
		log: logger.New("emotionRepository"),
	}
}

func (r *emotionRepository) GetAll(ctx context.Context) ([]Emotion, error) {
	log := r.log.Function("GetAll")

	var emotions []Emotion
	found, err := database.NewCacheBuilder(r.db.Cache.General, emotionListCacheKey).
		WithPrefix(emotionListCachePrefix).
		WithContext(ctx).
		Get(&emotions)
	if err == nil && found {
		return emotions, nil
	}

	if err := r.db.SQLWithContext(ctx).Order("name asc").Find(&emotions).Error; err != nil {
		return nil, log.Err("failed to get emotions", err)
	}

	cacheErr := database.NewCacheBuilder(r.db.Cache.General, emotionListCacheKey).
		WithPrefix(emotionListCachePrefix).
		WithStruct(emotions).
		WithContext(ctx).
		Set()
	if cacheErr != nil {
		log.Warn("failed to cache emotion list", "error", cacheErr)
	}

	return emotions, nil
}

func (r *emotionRepository) GetByName(ctx context.Context, name string) (*Emotion, error) {
	log := r.log.Function("GetByName")

	var emotion Emotion
	if err := r.db.SQLWithContext(ctx).
		First(&emotion, "lower(name) = ?", strings.ToLower(name)).Error; err != nil {
		return nil, log.Err("failed to get emotion by name", err, "name", name)
	}

	return &emotion, nil
}

func (r *emotionRepository) GetByID(ctx context.Context, id int) (*Emotion, error) {
	log := r.log.Function("GetByID")

	var emotion Emotion
	if err := r.db.SQLWithContext(ctx).First(&emotion, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get emotion by id", err, "id", id)
	}

	return &emotion, nil
}
