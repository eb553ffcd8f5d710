package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHasSpotifyLinked(t *testing.T) {
	token := "access-token"
	empty := ""
	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	t.Run("No tokens", func(t *testing.T) {
		user := User{}
		assert.False(t, user.HasSpotifyLinked())
	})

	t.Run("Empty access token", func(t *testing.T) {
		user := User{SpotifyAccessToken: &empty, SpotifyTokenExpires: &future}
		assert.False(t, user.HasSpotifyLinked())
	})

	t.Run("Token without expiry", func(t *testing.T) {
		user := User{SpotifyAccessToken: &token}
		assert.False(t, user.HasSpotifyLinked())
	})

	t.Run("Expired token", func(t *testing.T) {
		user := User{SpotifyAccessToken: &token, SpotifyTokenExpires: &past}
		assert.False(t, user.HasSpotifyLinked())
	})

	t.Run("Valid token", func(t *testing.T) {
		user := User{SpotifyAccessToken: &token, SpotifyTokenExpires: &future}
		assert.True(t, user.HasSpotifyLinked())
	})
}

func TestToProfile(t *testing.T) {
	token := "access-token"
	future := time.Now().Add(time.Hour)
	lastLogin := time.Now().Add(-time.Minute)

	user := User{
		BaseUUIDModel: BaseUUIDModel{
			ID:        uuid.Must(uuid.NewV7()),
			CreatedAt: time.Now().Add(-24 * time.Hour),
		},
		Username:            "ada",
		Email:               "ada@example.com",
		PasswordHash:        "never-exposed",
		LastLoginAt:         &lastLogin,
		SpotifyAccessToken:  &token,
		SpotifyTokenExpires: &future,
	}

	profile := user.ToProfile()
	assert.Equal(t, user.ID.String(), profile.ID)
	assert.Equal(t, "ada", profile.Username)
	assert.Equal(t, "ada@example.com", profile.Email)
	assert.Equal(t, user.CreatedAt, profile.CreatedAt)
	assert.Equal(t, &lastLogin, profile.LastLoginAt)
	assert.True(t, profile.SpotifyLinked)
}

func TestDefaultPreferences(t *testing.T) {
	userID := uuid.Must(uuid.NewV7())
	preferences := DefaultPreferences(userID)

	assert.Equal(t, userID, preferences.UserID)
	assert.Equal(t, 0.3, preferences.ConfidenceThreshold)
	assert.Equal(t, 10, preferences.SongsPerRecommendation)
	assert.True(t, preferences.EnableNotifications)
	assert.False(t, preferences.AutoPlayPreviews)
}
