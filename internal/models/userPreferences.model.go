package models

import (
	"github.com/google/uuid"
)

type UserPreferences struct {
	BaseUUIDModel
	UserID                 uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"userId"`
	ConfidenceThreshold    float64   `gorm:"type:float;default:0.3"         json:"confidenceThreshold"`
	SongsPerRecommendation int       `gorm:"type:int;default:10"            json:"songsPerRecommendation"`
	EnableNotifications    bool      `gorm:"type:bool;default:true"         json:"enableNotifications"`
	AutoPlayPreviews       bool      `gorm:"type:bool;default:false"        json:"autoPlayPreviews"`
}

type UpdatePreferencesRequest struct {
	ConfidenceThreshold    *float64 `json:"confidenceThreshold,omitempty"    validate:"omitempty,gte=0.1,lte=0.9"`
	SongsPerRecommendation *int     `json:"songsPerRecommendation,omitempty" validate:"omitempty,oneof=5 10 15 20"`
	EnableNotifications    *bool    `json:"enableNotifications,omitempty"`
	AutoPlayPreviews       *bool    `json:"autoPlayPreviews,omitempty"`
}

// DefaultPreferences returns the preference row created for new users
func DefaultPreferences(userID uuid.UUID) *UserPreferences {
	return &UserPreferences{
		UserID:                 userID,
		ConfidenceThreshold:    0.3,
		SongsPerRecommendation: 10,
		EnableNotifications:    true,
		AutoPlayPreviews:       false,
	}
}
