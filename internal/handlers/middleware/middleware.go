package middleware

import (
	"context"

	"emosound/config"
	"emosound/internal/controllers"
	"emosound/internal/database"
	"emosound/internal/events"
	"emosound/internal/logger"
	"emosound/internal/repositories"
)

type Middleware struct {
	DB          database.DB
	userRepo    repositories.UserRepository
	controllers controllers.Controllers
	Config      config.Config
	log         logger.Logger
	eventBus    *events.EventBus
}

// EndSession invalidates a session token server side.
func (m *Middleware) EndSession(ctx context.Context, sessionID string) error {
	return m.controllers.Auth.Logout(ctx, sessionID)
}

func New(
	db database.DB,
	eventBus *events.EventBus,
	config config.Config,
	repos repositories.Repository,
	ctrl controllers.Controllers,
) Middleware {
	log := logger.New("middleware")

	return Middleware{
		DB:          db,
		userRepo:    repos.User,
		controllers: ctrl,
		Config:      config,
		log:         log,
		eventBus:    eventBus,
	}
}
