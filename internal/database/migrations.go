package database

import (
	"emosound/internal/logger"

	"gorm.io/gorm"
)

// CreateIndexes creates additional indexes that GORM doesn't create automatically
func CreateIndexes(db *gorm.DB) error {
	log := logger.New("database").Function("CreateIndexes")
	log.Info("Creating additional database indexes")

	indexes := []string{
		// Feedback matching walks the most recent interaction for a user+song pair
		"CREATE INDEX IF NOT EXISTS idx_user_song_history_user_song_played ON user_song_histories(user_id, song_id, played_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_emotion_logs_user_detected ON emotion_logs(user_id, detected_at DESC)",
	}

	for _, indexSQL := range indexes {
		if err := db.Exec(indexSQL).Error; err != nil {
			log.Warn("Failed to create index", "sql", indexSQL, "error", err)
		}
	}

	return nil
}
