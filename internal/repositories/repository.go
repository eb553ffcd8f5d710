package repositories

import (
	"emosound/internal/database"
)

type Repository struct {
	User     UserRepository
	Emotion  EmotionRepository
	Song     SongRepository
	History  HistoryRepository
	Playlist PlaylistRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:     NewUserRepository(db),
		Emotion:  NewEmotionRepository(db),
		Song:     NewSongRepository(db),
		History:  NewHistoryRepository(db),
		Playlist: NewPlaylistRepository(db),
	}
}
