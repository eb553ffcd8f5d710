package models

import (
	"time"

	"github.com/google/uuid"
)

// UserSongHistory is an append-only record of a recommendation interaction.
// The Liked field is the one exception: later feedback mutates it on the most
// recent row for the (user, song) pair.
type UserSongHistory struct {
	BaseUUIDModel
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"  json:"userId"`
	User       User      `gorm:"foreignKey:UserID"         json:"user"`
	SongID     uuid.UUID `gorm:"type:uuid;not null;index"  json:"songId"`
	Song       Song      `gorm:"foreignKey:SongID"         json:"song"`
	EmotionID  int       `gorm:"type:int;not null"         json:"emotionId"`
	Emotion    Emotion   `gorm:"foreignKey:EmotionID"      json:"emotion"`
	Liked      *bool     `gorm:"type:bool"                 json:"liked,omitempty"`
	InputType  string    `gorm:"type:varchar(20);not null" json:"inputType"`
	Confidence float64   `gorm:"type:float"                json:"confidence"`
	PlayedAt   time.Time `gorm:"not null;index"            json:"playedAt"`
}

// SongHistoryEntry is the flattened row shape used by history queries and export
type SongHistoryEntry struct {
	Title      string    `json:"title"`
	Artist     string    `json:"artist"`
	AlbumImage string    `json:"albumImage,omitempty"`
	Emotion    string    `json:"emotion"`
	ColorCode  string    `json:"colorCode"`
	Liked      *bool     `json:"liked,omitempty"`
	InputType  string    `json:"inputType"`
	PlayedAt   time.Time `json:"playedAt"`
}
