package models

import (
	"time"
)

type User struct {
	BaseUUIDModel
	Username     string     `gorm:"type:text;not null;uniqueIndex" json:"username"`
	Email        string     `gorm:"type:text;not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"type:text;not null"             json:"-"`
	LastLoginAt  *time.Time `gorm:"type:timestamp"                 json:"lastLoginAt,omitempty"`

	// Linked Spotify account tokens; nil until the user connects an account
	SpotifyAccessToken  *string    `gorm:"type:text"      json:"-"`
	SpotifyRefreshToken *string    `gorm:"type:text"      json:"-"`
	SpotifyTokenExpires *time.Time `gorm:"type:timestamp" json:"-"`

	Preferences *UserPreferences `gorm:"foreignKey:UserID" json:"preferences,omitempty"`
}

// HasSpotifyLinked reports whether the user has an unexpired linked Spotify account
func (u *User) HasSpotifyLinked() bool {
	if u.SpotifyAccessToken == nil || *u.SpotifyAccessToken == "" {
		return false
	}
	if u.SpotifyTokenExpires == nil {
		return false
	}
	return u.SpotifyTokenExpires.After(time.Now())
}

type RegisterRequest struct {
	Username        string `json:"username"        validate:"required,min=3,max=80"`
	Email           string `json:"email"           validate:"required,email"`
	Password        string `json:"password"        validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserProfile represents public user profile information
type UserProfile struct {
	ID            string     `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
	SpotifyLinked bool       `json:"spotifyLinked"`
}

// ToProfile converts a User to a UserProfile (public information only)
func (u *User) ToProfile() UserProfile {
	return UserProfile{
		ID:            u.ID.String(),
		Username:      u.Username,
		Email:         u.Email,
		CreatedAt:     u.CreatedAt,
		LastLoginAt:   u.LastLoginAt,
		SpotifyLinked: u.HasSpotifyLinked(),
	}
}
