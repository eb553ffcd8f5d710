package recommendationController

import (
	"context"
	"testing"
	"time"

	"emosound/internal/logger"
	"emosound/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeEmotionRepo struct {
	emotions map[string]*models.Emotion
}

func (f *fakeEmotionRepo) GetAll(_ context.Context) ([]models.Emotion, error) {
	all := make([]models.Emotion, 0, len(f.emotions))
	for _, emotion := range f.emotions {
		all = append(all, *emotion)
	}
	return all, nil
}

func (f *fakeEmotionRepo) GetByName(_ context.Context, name string) (*models.Emotion, error) {
	if emotion, ok := f.emotions[name]; ok {
		return emotion, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmotionRepo) GetByID(_ context.Context, id int) (*models.Emotion, error) {
	for _, emotion := range f.emotions {
		if emotion.ID == id {
			return emotion, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeSongRepo struct {
	songs []*models.Song
}

func (f *fakeSongRepo) AddOrGet(ctx context.Context, song *models.Song) (*models.Song, error) {
	if song.SpotifyID != nil && *song.SpotifyID != "" {
		existing, err := f.GetBySpotifyID(ctx, *song.SpotifyID)
		if err == nil {
			return existing, nil
		}
	}
	song.ID = uuid.Must(uuid.NewV7())
	f.songs = append(f.songs, song)
	return song, nil
}

func (f *fakeSongRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Song, error) {
	for _, song := range f.songs {
		if song.ID == id {
			return song, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSongRepo) GetBySpotifyID(_ context.Context, spotifyID string) (*models.Song, error) {
	for _, song := range f.songs {
		if song.SpotifyID != nil && *song.SpotifyID == spotifyID {
			return song, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeHistoryRepo struct {
	interactions []*models.UserSongHistory
}

func (f *fakeHistoryRepo) CreateEmotionLog(_ context.Context, _ *models.EmotionLog) error {
	return nil
}

func (f *fakeHistoryRepo) CreateSongInteraction(
	_ context.Context,
	entry *models.UserSongHistory,
) error {
	if entry.PlayedAt.IsZero() {
		entry.PlayedAt = time.Now()
	}
	f.interactions = append(f.interactions, entry)
	return nil
}

func (f *fakeHistoryRepo) UpdateSongFeedback(
	_ context.Context,
	userID, songID uuid.UUID,
	liked bool,
) error {
	var latest *models.UserSongHistory
	for _, entry := range f.interactions {
		if entry.UserID != userID || entry.SongID != songID {
			continue
		}
		if latest == nil || entry.PlayedAt.After(latest.PlayedAt) {
			latest = entry
		}
	}
	if latest == nil {
		return gorm.ErrRecordNotFound
	}
	latest.Liked = &liked
	return nil
}

func (f *fakeHistoryRepo) GetEmotionHistory(
	_ context.Context,
	_ uuid.UUID,
	_ int,
) ([]models.EmotionLog, error) {
	return nil, nil
}

func (f *fakeHistoryRepo) GetSongHistory(
	_ context.Context,
	userID uuid.UUID,
	limit int,
) ([]models.UserSongHistory, error) {
	var entries []models.UserSongHistory
	for _, entry := range f.interactions {
		if entry.UserID == userID && len(entries) < limit {
			entries = append(entries, *entry)
		}
	}
	return entries, nil
}

func (f *fakeHistoryRepo) ClearUserHistory(_ context.Context, _ *gorm.DB, _ uuid.UUID) error {
	return nil
}

func newTestController(songs *fakeSongRepo, history *fakeHistoryRepo) *RecommendationController {
	return &RecommendationController{
		emotionRepo: &fakeEmotionRepo{emotions: map[string]*models.Emotion{
			"happy": {BaseModel: models.BaseModel{ID: 1}, Name: "happy", ColorCode: "#FFD700"},
		}},
		songRepo:    songs,
		historyRepo: history,
		log:         logger.New("recommendationController"),
	}
}

func TestLogPlay(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	t.Run("Repeated plays reuse the same song row", func(t *testing.T) {
		songs := &fakeSongRepo{}
		history := &fakeHistoryRepo{}
		controller := newTestController(songs, history)

		spotifyID := "track-abc"
		request := PlayRequest{
			Title:     "Test Song",
			Artist:    "Test Artist",
			SpotifyID: &spotifyID,
			Emotion:   "happy",
		}

		first, err := controller.LogPlay(ctx, userID, request)
		require.NoError(t, err)
		second, err := controller.LogPlay(ctx, userID, request)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Len(t, songs.songs, 1)
		assert.Len(t, history.interactions, 2)
	})

	t.Run("Unknown emotion is rejected", func(t *testing.T) {
		controller := newTestController(&fakeSongRepo{}, &fakeHistoryRepo{})

		_, err := controller.LogPlay(ctx, userID, PlayRequest{
			Title:   "Test Song",
			Artist:  "Test Artist",
			Emotion: "bewildered",
		})
		assert.Error(t, err)
	})
}

func TestFeedback(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())
	songID := uuid.Must(uuid.NewV7())

	t.Run("Updates only the most recent interaction", func(t *testing.T) {
		liked := true
		earlier := &models.UserSongHistory{
			UserID:   userID,
			SongID:   songID,
			Liked:    &liked,
			PlayedAt: time.Now().Add(-time.Hour),
		}
		later := &models.UserSongHistory{
			UserID:   userID,
			SongID:   songID,
			PlayedAt: time.Now(),
		}
		history := &fakeHistoryRepo{interactions: []*models.UserSongHistory{earlier, later}}
		controller := newTestController(&fakeSongRepo{}, history)

		err := controller.Feedback(ctx, userID, FeedbackRequest{SongID: songID, Liked: false})
		require.NoError(t, err)

		require.NotNil(t, later.Liked)
		assert.False(t, *later.Liked)
		require.NotNil(t, earlier.Liked)
		assert.True(t, *earlier.Liked)
	})

	t.Run("Fails when the user never played the song", func(t *testing.T) {
		controller := newTestController(&fakeSongRepo{}, &fakeHistoryRepo{})

		err := controller.Feedback(ctx, userID, FeedbackRequest{SongID: songID, Liked: true})
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
