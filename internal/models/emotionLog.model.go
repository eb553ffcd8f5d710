package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EmotionLog is an append-only record of a single detection event.
type EmotionLog struct {
	BaseUUIDModel
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"userId"`
	User       User           `gorm:"foreignKey:UserID"        json:"user"`
	EmotionID  int            `gorm:"type:int;not null;index"  json:"emotionId"`
	Emotion    Emotion        `gorm:"foreignKey:EmotionID"     json:"emotion"`
	InputText  string         `gorm:"type:text"                json:"inputText"`
	InputType  string         `gorm:"type:varchar(20);not null" json:"inputType"`
	Confidence float64        `gorm:"type:float;not null"      json:"confidence"`
	Scores     datatypes.JSON `gorm:"type:jsonb"               json:"scores,omitempty"`
	DetectedAt time.Time      `gorm:"not null;index"           json:"detectedAt"`
}

// EmotionLogEntry is the flattened row shape used by history queries and export
type EmotionLogEntry struct {
	Emotion    string    `json:"emotion"`
	ColorCode  string    `json:"colorCode"`
	Confidence float64   `json:"confidence"`
	InputType  string    `json:"inputType"`
	DetectedAt time.Time `json:"detectedAt"`
}
