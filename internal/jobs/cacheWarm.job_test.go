package jobs

import (
	"context"
	"testing"

	"emosound/config"
	"emosound/internal/models"
	"emosound/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmotionRepo struct {
	emotions []models.Emotion
	err      error
}

func (s *stubEmotionRepo) GetAll(_ context.Context) ([]models.Emotion, error) {
	return s.emotions, s.err
}

func (s *stubEmotionRepo) GetByName(_ context.Context, name string) (*models.Emotion, error) {
	for i := range s.emotions {
		if s.emotions[i].Name == name {
			return &s.emotions[i], nil
		}
	}
	return nil, s.err
}

func (s *stubEmotionRepo) GetByID(_ context.Context, id int) (*models.Emotion, error) {
	for i := range s.emotions {
		if s.emotions[i].ID == id {
			return &s.emotions[i], nil
		}
	}
	return nil, s.err
}

func TestCacheWarmJob(t *testing.T) {
	spotify := services.NewSpotifyService(config.Config{})
	quotes := services.NewQuoteService(config.Config{}, nil)

	t.Run("Name and schedule", func(t *testing.T) {
		job := NewCacheWarmJob(&stubEmotionRepo{}, spotify, quotes, nil, 10, services.Daily)
		assert.Equal(t, "EmotionCacheWarm", job.Name())
		assert.Equal(t, services.Daily, job.Schedule())
	})

	t.Run("Warms every emotion without spotify results", func(t *testing.T) {
		repo := &stubEmotionRepo{emotions: []models.Emotion{
			{Name: "happy"},
			{Name: "sad"},
		}}
		job := NewCacheWarmJob(repo, spotify, quotes, nil, 10, services.Daily)
		require.NoError(t, job.Execute(context.Background()))
	})

	t.Run("Fails when emotions cannot be loaded", func(t *testing.T) {
		repo := &stubEmotionRepo{err: assert.AnError}
		job := NewCacheWarmJob(repo, spotify, quotes, nil, 10, services.Daily)
		assert.Error(t, job.Execute(context.Background()))
	})
}
