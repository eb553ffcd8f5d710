package app

import (
	"context"

	"emosound/config"
	"emosound/internal/controllers"
	"emosound/internal/database"
	"emosound/internal/events"
	"emosound/internal/handlers/middleware"
	"emosound/internal/jobs"
	"emosound/internal/logger"
	"emosound/internal/repositories"
	"emosound/internal/services"
	"emosound/internal/websockets"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	Websocket   *websockets.Manager
	EventBus    *events.EventBus
	Config      config.Config
	Services    services.Service
	Repos       repositories.Repository
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events, config)

	repos := repositories.New(db)

	service, err := services.New(db, config, eventBus)
	if err != nil {
		return &App{}, log.Err("failed to create services", err)
	}

	ctrl := controllers.New(service, repos, eventBus, config, db)

	websocket, err := websockets.New(db, eventBus, config, ctrl.Auth, ctrl.Mood)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	middleware := middleware.New(db, eventBus, config, repos, ctrl)

	if config.SchedulerEnabled {
		cacheWarmJob := jobs.NewCacheWarmJob(
			repos.Emotion,
			service.Spotify,
			service.Quote,
			db.Cache.ClientAPI,
			10,
			services.Daily,
		)
		if err := service.Scheduler.AddJob(cacheWarmJob); err != nil {
			return &App{}, log.Err("failed to register cache warm job", err)
		}
		log.Info("Registered cache warm job with scheduler")

		if err := service.Scheduler.Start(context.Background()); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}
	}

	app := &App{
		Database:    db,
		Config:      config,
		Middleware:  middleware,
		Websocket:   websocket,
		EventBus:    eventBus,
		Services:    service,
		Repos:       repos,
		Controllers: ctrl,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.Services.Transaction,
		a.Services.Scheduler,
		a.Services.Emotion,
		a.Services.SpeechToText,
		a.Services.Spotify,
		a.Services.Quote,
		a.Repos.User,
		a.Repos.Emotion,
		a.Repos.Song,
		a.Repos.History,
		a.Repos.Playlist,
		a.Controllers.Auth,
		a.Controllers.Mood,
		a.Controllers.Recommendation,
		a.Controllers.Playlist,
		a.Controllers.User,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
