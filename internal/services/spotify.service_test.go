package services

import (
	"context"
	"testing"

	"emosound/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zmb3/spotify/v2"
)

func TestQueryForEmotion(t *testing.T) {
	t.Run("Mapped emotions use tuned queries", func(t *testing.T) {
		assert.Equal(t, "happy upbeat positive genre:pop", QueryForEmotion("happy"))
		assert.Equal(t, "sad melancholy emotional genre:indie", QueryForEmotion("sad"))
		assert.Equal(t, "calm soothing peaceful reassuring", QueryForEmotion("fear"))
		assert.Equal(t, "calm relaxing peaceful", QueryForEmotion("disgust"))
	})

	t.Run("Unmapped emotions fall back to a generic query", func(t *testing.T) {
		assert.Equal(t, "wistful music", QueryForEmotion("wistful"))
	})
}

func TestEmotionAudioTargets(t *testing.T) {
	t.Run("All seeded emotions have targets", func(t *testing.T) {
		for _, emotion := range []string{
			"happy", "sad", "angry", "excited", "calm",
			"anxious", "romantic", "energetic", "melancholic", "confident",
		} {
			targets, ok := emotionAudioTargets[emotion]
			require.True(t, ok, "emotion %s", emotion)
			assert.Greater(t, targets.energy, 0.0)
			assert.LessOrEqual(t, targets.valence, 1.0)
		}
	})

	t.Run("Happy is brighter than sad", func(t *testing.T) {
		assert.Greater(t, emotionAudioTargets["happy"].valence, emotionAudioTargets["sad"].valence)
		assert.Greater(t, emotionAudioTargets["energetic"].energy, emotionAudioTargets["calm"].energy)
	})
}

func TestSpotifyService_Disabled(t *testing.T) {
	service := NewSpotifyService(config.Config{})
	ctx := context.Background()

	t.Run("Enabled reports false without credentials", func(t *testing.T) {
		assert.False(t, service.Enabled())
	})

	t.Run("Catalog search returns nothing", func(t *testing.T) {
		assert.Nil(t, service.SearchByEmotion(ctx, "happy", 10))
	})

	t.Run("Recommendations fall through to catalog search", func(t *testing.T) {
		assert.Nil(t, service.RecommendForUser(ctx, nil, "happy", 10))
	})

	t.Run("Auth URL errors without credentials", func(t *testing.T) {
		_, err := service.AuthURL("state")
		assert.Error(t, err)
	})

	t.Run("Code exchange errors without credentials", func(t *testing.T) {
		_, _, _, err := service.ExchangeCode(ctx, "code")
		assert.Error(t, err)
	})
}

func TestSpotifyService_Configured(t *testing.T) {
	service := NewSpotifyService(config.Config{
		SpotifyClientID:     "client-id",
		SpotifyClientSecret: "client-secret",
		SpotifyRedirectURI:  "http://localhost:3000/callback",
	})

	assert.True(t, service.Enabled())

	url, err := service.AuthURL("abc123")
	require.NoError(t, err)
	assert.Contains(t, url, "client_id=client-id")
	assert.Contains(t, url, "state=abc123")
}

func TestTrackConversion(t *testing.T) {
	simple := spotify.SimpleTrack{
		ID:         "track-id",
		Name:       "Test Song",
		Duration:   215000,
		PreviewURL: "https://preview.example/clip.mp3",
		ExternalURLs: map[string]string{
			"spotify": "https://open.spotify.com/track/track-id",
		},
		Artists: []spotify.SimpleArtist{
			{Name: "First Artist"},
			{Name: "Second Artist"},
		},
		Album: spotify.SimpleAlbum{
			Name: "Test Album",
			Images: []spotify.Image{
				{URL: "https://images.example/cover.jpg"},
			},
		},
	}

	t.Run("Simple track maps all fields", func(t *testing.T) {
		song := simpleTrackToSong(simple)
		assert.Equal(t, "Test Song", song.Title)
		assert.Equal(t, "First Artist", song.Artist)
		assert.Equal(t, "Test Album", song.Album)
		require.NotNil(t, song.SpotifyID)
		assert.Equal(t, "track-id", *song.SpotifyID)
		assert.Equal(t, "https://preview.example/clip.mp3", song.PreviewURL)
		assert.Equal(t, "https://open.spotify.com/track/track-id", song.ExternalURL)
		assert.Equal(t, "https://images.example/cover.jpg", song.AlbumImage)
		require.NotNil(t, song.DurationMS)
		assert.Equal(t, 215000, *song.DurationMS)
		assert.Nil(t, song.Popularity)
	})

	t.Run("Full track adds popularity", func(t *testing.T) {
		full := spotify.FullTrack{
			SimpleTrack: simple,
			Popularity:  72,
			Album: spotify.SimpleAlbum{
				Name: "Test Album",
				Images: []spotify.Image{
					{URL: "https://images.example/cover.jpg"},
				},
			},
		}

		song := trackToSong(full)
		assert.Equal(t, "Test Song", song.Title)
		assert.Equal(t, "Test Album", song.Album)
		require.NotNil(t, song.Popularity)
		assert.Equal(t, 72, *song.Popularity)
		assert.Equal(t, "https://images.example/cover.jpg", song.AlbumImage)
	})

	t.Run("Missing artist and images stay empty", func(t *testing.T) {
		song := simpleTrackToSong(spotify.SimpleTrack{ID: "bare", Name: "Bare"})
		assert.Equal(t, "", song.Artist)
		assert.Equal(t, "", song.AlbumImage)
	})
}
