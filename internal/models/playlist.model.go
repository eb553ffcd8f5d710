package models

import (
	"github.com/google/uuid"
)

// PredefinedPlaylist joins emotions to seeded songs with a priority ordering.
// Seeded once at migrate time; higher priority rows are served first.
type PredefinedPlaylist struct {
	BaseModel
	EmotionID int       `gorm:"type:int;not null;index"  json:"emotionId"`
	Emotion   Emotion   `gorm:"foreignKey:EmotionID"     json:"emotion"`
	SongID    uuid.UUID `gorm:"type:uuid;not null;index" json:"songId"`
	Song      Song      `gorm:"foreignKey:SongID"        json:"song"`
	Priority  int       `gorm:"type:int;default:0"       json:"priority"`
}
