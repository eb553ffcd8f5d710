package models

import (
	"gorm.io/gorm"
)

// Song is a deduplicated catalog entry. Rows are created lazily the first time
// a track shows up in a recommendation interaction and reused afterwards,
// keyed on the external Spotify ID when one is present.
type Song struct {
	BaseUUIDModel
	Title       string  `gorm:"type:text;not null"    json:"title"`
	Artist      string  `gorm:"type:text;not null"    json:"artist"`
	Album       string  `gorm:"type:text"             json:"album"`
	SpotifyID   *string `gorm:"type:text;uniqueIndex" json:"spotifyId,omitempty"`
	PreviewURL  string  `gorm:"type:text"             json:"previewUrl,omitempty"`
	ExternalURL string  `gorm:"type:text"             json:"externalUrl,omitempty"`
	AlbumImage  string  `gorm:"type:text"             json:"albumImage,omitempty"`
	DurationMS  *int    `gorm:"type:int"              json:"durationMs,omitempty"`
	Popularity  *int    `gorm:"type:int"              json:"popularity,omitempty"`
}

func (s *Song) BeforeCreate(tx *gorm.DB) error {
	if s.Title == "" {
		return gorm.ErrInvalidValue
	}
	if s.Artist == "" {
		return gorm.ErrInvalidValue
	}
	return nil
}
