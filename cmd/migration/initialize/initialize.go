package initialize

import (
	"emosound/config"
	"emosound/internal/logger"
	. "emosound/internal/models"

	"gorm.io/gorm"
)

func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing essential production data")

	if err := initializeEmotions(db, log); err != nil {
		return log.Err("failed to initialize emotions", err)
	}

	if err := initializePlaylists(db, log); err != nil {
		return log.Err("failed to initialize playlists", err)
	}

	log.Info("Table initialization complete")
	return nil
}

func getEmotionData() []Emotion {
	return []Emotion{
		{Name: "happy", ColorCode: "#FFD700", Description: "Feeling joyful and content"},
		{Name: "sad", ColorCode: "#4169E1", Description: "Feeling down or melancholic"},
		{Name: "angry", ColorCode: "#FF4500", Description: "Feeling frustrated or mad"},
		{Name: "excited", ColorCode: "#FF69B4", Description: "Feeling energetic and thrilled"},
		{Name: "calm", ColorCode: "#98FB98", Description: "Feeling peaceful and relaxed"},
		{Name: "anxious", ColorCode: "#DDA0DD", Description: "Feeling worried or nervous"},
		{Name: "romantic", ColorCode: "#FF1493", Description: "Feeling loving and romantic"},
		{Name: "energetic", ColorCode: "#FF8C00", Description: "Feeling full of energy"},
		{Name: "melancholic", ColorCode: "#708090", Description: "Feeling thoughtfully sad"},
		{Name: "confident", ColorCode: "#DC143C", Description: "Feeling self-assured"},
	}
}

func initializeEmotions(db *gorm.DB, log logger.Logger) error {
	log.Info("Initializing emotion reference data")

	emotions := getEmotionData()

	for _, emotion := range emotions {
		var existing Emotion
		if err := db.First(&existing, "name = ?", emotion.Name).Error; err == nil {
			log.Debug("Emotion already exists", "name", emotion.Name)
			continue
		}
		log.Info("Initializing emotion", "name", emotion.Name)
		if err := db.Create(&emotion).Error; err != nil {
			return log.Err("failed to create emotion", err, "name", emotion.Name)
		}
	}

	log.Info("Emotion reference data initialized", "count", len(emotions))
	return nil
}

type curatedSong struct {
	title   string
	artist  string
	emotion string
}

func getCuratedSongs() []curatedSong {
	return []curatedSong{
		{"Happy", "Pharrell Williams", "happy"},
		{"Can't Stop the Feeling!", "Justin Timberlake", "happy"},
		{"Someone Like You", "Adele", "sad"},
		{"Hurt", "Johnny Cash", "sad"},
		{"Break Stuff", "Limp Bizkit", "angry"},
		{"Uptown Funk", "Mark Ronson ft. Bruno Mars", "excited"},
		{"Weightless", "Marconi Union", "calm"},
		{"Perfect", "Ed Sheeran", "romantic"},
		{"Thunder", "Imagine Dragons", "energetic"},
	}
}

func initializePlaylists(db *gorm.DB, log logger.Logger) error {
	log.Info("Initializing curated playlist data")

	for _, entry := range getCuratedSongs() {
		var emotion Emotion
		if err := db.First(&emotion, "name = ?", entry.emotion).Error; err != nil {
			return log.Err("emotion missing for curated song", err, "emotion", entry.emotion)
		}

		var song Song
		err := db.First(&song, "title = ? AND artist = ?", entry.title, entry.artist).Error
		if err != nil {
			song = Song{Title: entry.title, Artist: entry.artist}
			if err := db.Create(&song).Error; err != nil {
				return log.Err("failed to create curated song", err, "title", entry.title)
			}
		}

		var existing PredefinedPlaylist
		if err := db.First(&existing, "emotion_id = ? AND song_id = ?", emotion.ID, song.ID).Error; err == nil {
			continue
		}

		playlist := PredefinedPlaylist{
			EmotionID: emotion.ID,
			SongID:    song.ID,
			Priority:  1,
		}
		if err := db.Create(&playlist).Error; err != nil {
			return log.Err("failed to create playlist entry", err, "title", entry.title)
		}
	}

	log.Info("Curated playlist data initialized")
	return nil
}
