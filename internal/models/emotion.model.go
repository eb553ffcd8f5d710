package models

// Emotion is a fixed reference row seeded at migrate time. The set is closed;
// application code never creates or deletes emotions at runtime.
type Emotion struct {
	BaseModel
	Name        string `gorm:"type:text;not null;uniqueIndex" json:"name"`
	ColorCode   string `gorm:"type:varchar(7);not null"       json:"colorCode"`
	Description string `gorm:"type:text"                      json:"description"`
}

const (
	// DefaultEmotionColor is returned when an emotion has no color row
	DefaultEmotionColor = "#808080"

	InputTypeText      = "text"
	InputTypeAudioFile = "audio_file"
	InputTypeLiveAudio = "live_audio"
)

// ConfidenceIntensity maps a classifier confidence score to a display bucket
func ConfidenceIntensity(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return "Very High"
	case confidence >= 0.6:
		return "High"
	case confidence >= 0.4:
		return "Medium"
	case confidence >= 0.2:
		return "Low"
	default:
		return "Very Low"
	}
}
