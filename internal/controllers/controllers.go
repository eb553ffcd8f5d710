package controllers

import (
	"emosound/config"
	"emosound/internal/database"
	"emosound/internal/events"
	"emosound/internal/repositories"
	"emosound/internal/services"

	authController "emosound/internal/controllers/auth"
	moodController "emosound/internal/controllers/mood"
	playlistController "emosound/internal/controllers/playlist"
	recommendationController "emosound/internal/controllers/recommendation"
	userController "emosound/internal/controllers/users"
)

type Controllers struct {
	Auth           authController.AuthControllerInterface
	Mood           moodController.MoodControllerInterface
	Recommendation recommendationController.RecommendationControllerInterface
	Playlist       playlistController.PlaylistControllerInterface
	User           userController.UserControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	eventBus *events.EventBus,
	config config.Config,
	db database.DB,
) Controllers {
	return Controllers{
		Auth:           authController.New(repos, services, config, db),
		Mood:           moodController.New(repos, services, eventBus, db),
		Recommendation: recommendationController.New(repos, services, db),
		Playlist:       playlistController.New(repos, services),
		User:           userController.New(repos, services, eventBus, db),
	}
}
