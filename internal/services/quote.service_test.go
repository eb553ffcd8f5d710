package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"emosound/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteService_Fallbacks(t *testing.T) {
	service := NewQuoteService(config.Config{}, nil)
	ctx := context.Background()

	t.Run("Every seeded emotion has fallback quotes", func(t *testing.T) {
		for emotion := range fallbackQuotes {
			quote := service.GetForEmotion(ctx, emotion)
			assert.NotEmpty(t, quote.Text, "emotion %s", emotion)
			assert.NotEmpty(t, quote.Author, "emotion %s", emotion)
			assert.Equal(t, emotion, quote.Emotion)
		}
	})

	t.Run("Unknown emotion borrows the happy pool", func(t *testing.T) {
		quote := service.GetForEmotion(ctx, "bewildered")
		assert.NotEmpty(t, quote.Text)
		assert.Equal(t, "bewildered", quote.Emotion)
	})

	t.Run("Daily quote always produces something", func(t *testing.T) {
		quote := service.DailyQuote(ctx)
		assert.NotEmpty(t, quote.Text)
		assert.NotEmpty(t, quote.Author)
	})

	t.Run("Daily quote emotion is stable within a day", func(t *testing.T) {
		first := service.DailyQuote(ctx)
		second := service.DailyQuote(ctx)
		assert.Equal(t, first.Emotion, second.Emotion)
		assert.Equal(t, emotionOfTheDay(time.Now().UTC()), first.Emotion)
	})
}

func TestQuoteService_API(t *testing.T) {
	ctx := context.Background()

	t.Run("Uses API response when available", func(t *testing.T) {
		server := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "happiness", r.URL.Query().Get("category"))
				assert.Equal(t, "1", r.URL.Query().Get("count"))
				assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
				_ = json.NewEncoder(w).Encode(map[string]any{
					"data": []map[string]string{
						{"quoteText": "Smile at the world.", "quoteAuthor": "Somebody"},
					},
				})
			}),
		)
		defer server.Close()

		service := NewQuoteService(config.Config{
			QuoteAPIURL: server.URL,
			QuoteAPIKey: "test-key",
		}, nil)

		quote := service.GetForEmotion(ctx, "happy")
		assert.Equal(t, "Smile at the world.", quote.Text)
		assert.Equal(t, "Somebody", quote.Author)
	})

	t.Run("Falls back to curated quotes on API failure", func(t *testing.T) {
		server := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}),
		)
		defer server.Close()

		service := NewQuoteService(config.Config{QuoteAPIURL: server.URL}, nil)

		quote := service.GetForEmotion(ctx, "sad")
		require.NotEmpty(t, quote.Text)
		assert.Equal(t, "sad", quote.Emotion)
	})
}

func TestParseQuote(t *testing.T) {
	t.Run("Splits text and author on the last separator", func(t *testing.T) {
		quote := parseQuote("Peace comes from within. Do not seek it without. - Buddha", "calm")
		assert.Equal(t, "Peace comes from within. Do not seek it without.", quote.Text)
		assert.Equal(t, "Buddha", quote.Author)
		assert.Equal(t, "calm", quote.Emotion)
	})

	t.Run("Missing author becomes Unknown", func(t *testing.T) {
		quote := parseQuote("Just keep going", "happy")
		assert.Equal(t, "Just keep going", quote.Text)
		assert.Equal(t, "Unknown", quote.Author)
	})
}

func TestDefaultQuote(t *testing.T) {
	quote := defaultQuote("happy")
	assert.Equal(t, "Every moment is a fresh beginning.", quote.Text)
	assert.Equal(t, "T.S. Eliot", quote.Author)
}

func TestQuoteCategoryMapping(t *testing.T) {
	expected := map[string]string{
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
	assert.Equal(t, expected, quoteCategoryMapping)
}
