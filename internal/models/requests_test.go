package models

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestRegisterRequestValidation(t *testing.T) {
	validate := validator.New()

	valid := RegisterRequest{
		Username:        "ada",
		Email:           "ada@example.com",
		Password:        "password",
		ConfirmPassword: "password",
	}

	t.Run("Valid request", func(t *testing.T) {
		assert.NoError(t, validate.Struct(valid))
	})

	t.Run("Username too short", func(t *testing.T) {
		request := valid
		request.Username = "ab"
		assert.Error(t, validate.Struct(request))
	})

	t.Run("Invalid email", func(t *testing.T) {
		request := valid
		request.Email = "not-an-email"
		assert.Error(t, validate.Struct(request))
	})

	t.Run("Password too short", func(t *testing.T) {
		request := valid
		request.Password = "short"
		assert.Error(t, validate.Struct(request))
	})
}

func TestUpdatePreferencesRequestValidation(t *testing.T) {
	validate := validator.New()

	t.Run("Empty update is valid", func(t *testing.T) {
		assert.NoError(t, validate.Struct(UpdatePreferencesRequest{}))
	})

	t.Run("Threshold out of range", func(t *testing.T) {
		threshold := 0.95
		assert.Error(t, validate.Struct(UpdatePreferencesRequest{ConfidenceThreshold: &threshold}))
	})

	t.Run("Song count outside allowed set", func(t *testing.T) {
		count := 7
		assert.Error(t, validate.Struct(UpdatePreferencesRequest{SongsPerRecommendation: &count}))
	})

	t.Run("Allowed song count", func(t *testing.T) {
		count := 15
		assert.NoError(t, validate.Struct(UpdatePreferencesRequest{SongsPerRecommendation: &count}))
	})
}
