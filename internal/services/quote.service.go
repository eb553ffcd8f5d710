package services

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"emosound/config"
	"emosound/internal/constants"
	"emosound/internal/database"
	"emosound/internal/logger"
)

// Quote is a motivational quote paired with the emotion that selected it.
type Quote struct {
	Text    string `json:"text"`
	Author  string `json:"author"`
	Emotion string `json:"emotion"`
}

// Emotions to quote API categories. Unknown emotions fall back to
// "inspirational".
var quoteCategoryMapping = map[string]string{
	"happy":       "happiness",
	"sad":         "sadness",
	"angry":       "anger",
	"excited":     "success",
	"calm":        "peace",
	"anxious":     "courage",
	"romantic":    "love",
	"energetic":   "motivational",
	"melancholic": "life",
	"confident":   "confidence",
}

var fallbackQuotes = map[string][]string{
	"happy": {
		"Happiness is not something readymade. It comes from your own actions. - Dalai Lama",
		"The purpose of our lives is to be happy. - Dalai Lama",
		"Happiness is when what you think, what you say, and what you do are in harmony. - Mahatma Gandhi",
	},
	"sad": {
		"The wound is the place where the Light enters you. - Rumi",
		"Tears are words that need to be written. - Paulo Coelho",
		"Every man has his secret sorrows which the world knows not. - Henry Wadsworth Longfellow",
	},
	"angry": {
		"Anger is an acid that can do more harm to the vessel in which it is stored than to anything on which it is poured. - Mark Twain",
		"For every minute you remain angry, you give up sixty seconds of peace of mind. - Ralph Waldo Emerson",
		"Holding on to anger is like grasping a hot coal with the intent of throwing it at someone else. - Buddha",
	},
	"excited": {
		"The way to get started is to quit talking and begin doing. - Walt Disney",
		"Life is what happens to you while you're busy making other plans. - John Lennon",
		"Enthusiasm is the mother of effort, and without it nothing great was ever achieved. - Ralph Waldo Emerson",
	},
	"calm": {
		"Peace comes from within. Do not seek it without. - Buddha",
		"Calmness is the cradle of power. - Josiah Gilbert Holland",
		"In the midst of movement and chaos, keep stillness inside of you. - Deepak Chopra",
	},
	"anxious": {
		"You have power over your mind - not outside events. Realize this, and you will find strength. - Marcus Aurelius",
		"Anxiety does not empty tomorrow of its sorrows, but only empties today of its strength. - Charles Spurgeon",
		"The present moment is the only time over which we have dominion. - Thich Nhat Hanh",
	},
	"romantic": {
		"Love is composed of a single soul inhabiting two bodies. - Aristotle",
		"The best love is the kind that awakens the soul. - Nicholas Sparks",
		"Love is not about how many days, months, or years you have been together. Love is about how much you love each other every single day. - Unknown",
	},
	"energetic": {
		"Energy and persistence conquer all things. - Benjamin Franklin",
		"The energy of the mind is the essence of life. - Aristotle",
		"Positive energy knows no boundaries. If everyone were to spread positive energy on the Internet, the world would be a much better place. - Lu Wei",
	},
	"melancholic": {
		"There is a pleasure in the pathless woods, there is a rapture in the lonely shore. - Lord Byron",
		"Melancholy is the happiness of being sad. - Victor Hugo",
		"The good times of today are the sad thoughts of tomorrow. - Bob Marley",
	},
	"confident": {
		"Confidence is the most beautiful thing you can possess. - Sabrina Carpenter",
		"With confidence, you have won before you have started. - Marcus Garvey",
		"Believe in yourself and all that you are. Know that there is something inside you that is greater than any obstacle. - Christian D. Larson",
	},
}

// QuoteService fetches quotes from an external API with a curated fallback
// set. Results are cached per emotion.
type QuoteService struct {
	client *http.Client
	cache  database.CacheClient
	url    string
	apiKey string
	log    logger.Logger
}

type quoteAPIResponse struct {
	Data []struct {
		QuoteText   string `json:"quoteText"`
		QuoteAuthor string `json:"quoteAuthor"`
	} `json:"data"`
}

func NewQuoteService(config config.Config, cache database.CacheClient) *QuoteService {
	return &QuoteService{
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		cache:  cache,
		url:    config.QuoteAPIURL,
		apiKey: config.QuoteAPIKey,
		log:    logger.New("QuoteService"),
	}
}

// GetForEmotion returns a quote matched to the emotion. API failures fall
// back to the curated set, and any unexpected failure returns a default
// quote, so callers always get something to show.
func (s *QuoteService) GetForEmotion(ctx context.Context, emotion string) Quote {
	log := s.log.Function("GetForEmotion")
	emotion = strings.ToLower(emotion)

	if s.cache != nil {
		var cached Quote
		found, err := database.NewCacheBuilder(s.cache, emotion).
			WithPrefix(constants.QuoteCachePrefix).
			WithContext(ctx).
			Get(&cached)
		if err == nil && found {
			return cached
		}
	}

	if s.url != "" {
		if quote, ok := s.fetchFromAPI(ctx, emotion); ok {
			s.cacheQuote(ctx, emotion, quote)
			return quote
		}
	}

	pool, ok := fallbackQuotes[emotion]
	if !ok {
		pool = fallbackQuotes["happy"]
	}
	if len(pool) == 0 {
		log.Warn("no fallback quotes available", "emotion", emotion)
		return defaultQuote(emotion)
	}

	return parseQuote(pool[rand.Intn(len(pool))], emotion)
}

// DailyQuote returns the quote of the day. The emotion rotates with the
// calendar date and the result is cached until the date changes, so every
// request on the same day sees the same quote.
func (s *QuoteService) DailyQuote(ctx context.Context) Quote {
	now := time.Now().UTC()

	if s.cache != nil {
		var cached Quote
		found, err := database.NewCacheBuilder(s.cache, dailyQuoteKey(now)).
			WithPrefix(constants.QuoteCachePrefix).
			WithContext(ctx).
			Get(&cached)
		if err == nil && found {
			return cached
		}
	}

	quote := s.GetForEmotion(ctx, emotionOfTheDay(now))

	if s.cache != nil {
		err := database.NewCacheBuilder(s.cache, dailyQuoteKey(now)).
			WithPrefix(constants.QuoteCachePrefix).
			WithStruct(quote).
			WithTTL(24 * time.Hour).
			WithContext(ctx).
			Set()
		if err != nil {
			s.log.Warn("failed to cache daily quote", "error", err)
		}
	}

	return quote
}

func dailyQuoteKey(now time.Time) string {
	return "daily:" + now.Format("2006-01-02")
}

func emotionOfTheDay(now time.Time) string {
	emotions := make([]string, 0, len(fallbackQuotes))
	for emotion := range fallbackQuotes {
		emotions = append(emotions, emotion)
	}
	sort.Strings(emotions)
	return emotions[now.YearDay()%len(emotions)]
}

func (s *QuoteService) fetchFromAPI(ctx context.Context, emotion string) (Quote, bool) {
	log := s.log.Function("fetchFromAPI")

	category, ok := quoteCategoryMapping[emotion]
	if !ok {
		category = "inspirational"
	}

	endpoint, err := url.Parse(s.url)
	if err != nil {
		log.Warn("invalid quote API url", "error", err)
		return Quote{}, false
	}
	query := endpoint.Query()
	query.Set("category", category)
	query.Set("count", "1")
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		log.Warn("failed to create request", "error", err)
		return Quote{}, false
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.Warn("quote API unreachable", "error", err)
		return Quote{}, false
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn("Failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		log.Warn("quote API returned non-200", "statusCode", resp.StatusCode)
		return Quote{}, false
	}

	var payload quoteAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Warn("failed to decode quote response", "error", err)
		return Quote{}, false
	}
	if len(payload.Data) == 0 || payload.Data[0].QuoteText == "" {
		return Quote{}, false
	}

	author := strings.TrimSpace(payload.Data[0].QuoteAuthor)
	if author == "" {
		author = "Unknown"
	}

	return Quote{
		Text:    strings.TrimSpace(payload.Data[0].QuoteText),
		Author:  author,
		Emotion: emotion,
	}, true
}

func (s *QuoteService) cacheQuote(ctx context.Context, emotion string, quote Quote) {
	if s.cache == nil {
		return
	}
	err := database.NewCacheBuilder(s.cache, emotion).
		WithPrefix(constants.QuoteCachePrefix).
		WithStruct(quote).
		WithTTL(constants.QuoteCacheExpiry).
		WithContext(ctx).
		Set()
	if err != nil {
		s.log.Warn("failed to cache quote", "emotion", emotion, "error", err)
	}
}

func parseQuote(raw, emotion string) Quote {
	if idx := strings.LastIndex(raw, " - "); idx >= 0 {
		return Quote{
			Text:    strings.TrimSpace(raw[:idx]),
			Author:  strings.TrimSpace(raw[idx+3:]),
			Emotion: emotion,
		}
	}
	return Quote{Text: raw, Author: "Unknown", Emotion: emotion}
}

func defaultQuote(emotion string) Quote {
	return Quote{
		Text:    "Every moment is a fresh beginning.",
		Author:  "T.S. Eliot",
		Emotion: emotion,
	}
}
