package jobs

import (
	"context"

	"emosound/internal/constants"
	"emosound/internal/database"
	"emosound/internal/logger"
	"emosound/internal/repositories"
	"emosound/internal/services"
)

// CacheWarmJob refreshes the per-emotion recommendation and quote caches so
// the first request of the day does not pay the external API cost. A failure
// for one emotion does not stop the others.
type CacheWarmJob struct {
	emotionRepo repositories.EmotionRepository
	spotify     *services.SpotifyService
	quotes      *services.QuoteService
	cache       database.CacheClient
	songLimit   int
	log         logger.Logger
	schedule    services.Schedule
}

func NewCacheWarmJob(
	emotionRepo repositories.EmotionRepository,
	spotify *services.SpotifyService,
	quotes *services.QuoteService,
	cache database.CacheClient,
	songLimit int,
	schedule services.Schedule,
) *CacheWarmJob {
	return &CacheWarmJob{
		emotionRepo: emotionRepo,
		spotify:     spotify,
		quotes:      quotes,
		cache:       cache,
		songLimit:   songLimit,
		log:         logger.New("cacheWarmJob"),
		schedule:    schedule,
	}
}

func (j *CacheWarmJob) Name() string {
	return "EmotionCacheWarm"
}

func (j *CacheWarmJob) Schedule() services.Schedule {
	return j.schedule
}

func (j *CacheWarmJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	emotions, err := j.emotionRepo.GetAll(ctx)
	if err != nil {
		return log.Err("failed to load emotions", err)
	}

	warmed := 0
	for _, emotion := range emotions {
		if err := j.warmEmotion(ctx, emotion.Name); err != nil {
			log.Warn("failed to warm emotion", "emotion", emotion.Name, "error", err)
			continue
		}
		warmed++
	}

	log.Info("cache warm complete", "warmed", warmed, "total", len(emotions))
	return nil
}

func (j *CacheWarmJob) warmEmotion(ctx context.Context, emotion string) error {
	songs := j.spotify.SearchByEmotion(ctx, emotion, j.songLimit)
	if len(songs) > 0 {
		err := database.NewCacheBuilder(j.cache, emotion).
			WithPrefix(constants.RecommendationPrefix).
			WithStruct(songs).
			WithTTL(constants.RecommendationExpiry).
			WithContext(ctx).
			Set()
		if err != nil {
			return err
		}
	}

	// Quote lookups cache on read.
	_ = j.quotes.GetForEmotion(ctx, emotion)

	return nil
}
