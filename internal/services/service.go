package services

import (
	"emosound/config"
	"emosound/internal/database"
	"emosound/internal/events"
)

type Service struct {
	Transaction  *TransactionService
	Scheduler    *SchedulerService
	Emotion      *EmotionService
	SpeechToText *SpeechToTextService
	Spotify      *SpotifyService
	Quote        *QuoteService
}

func New(db database.DB, config config.Config, eventBus *events.EventBus) (Service, error) {
	transactionService := NewTransactionService(db)
	schedulerService := NewSchedulerService()
	emotionService := NewEmotionService(config)
	speechToTextService := NewSpeechToTextService(config)
	spotifyService := NewSpotifyService(config)
	quoteService := NewQuoteService(config, db.Cache.ClientAPI)

	return Service{
		Transaction:  transactionService,
		Scheduler:    schedulerService,
		Emotion:      emotionService,
		SpeechToText: speechToTextService,
		Spotify:      spotifyService,
		Quote:        quoteService,
	}, nil
}
