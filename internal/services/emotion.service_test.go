package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"emosound/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordDetector_Detect(t *testing.T) {
	detector := NewKeywordDetector()
	ctx := context.Background()

	t.Run("Matches happy keywords", func(t *testing.T) {
		result, err := detector.Detect(ctx, "I am so happy today!")
		require.NoError(t, err)
		assert.Equal(t, "happy", result.Emotion)
		assert.Greater(t, result.Confidence, 0.0)
		assert.LessOrEqual(t, result.Confidence, 0.9)
		assert.Equal(t, "keyword", result.Detector)
	})

	t.Run("Confidence is the hit ratio", func(t *testing.T) {
		result, err := detector.Detect(ctx, "I am so happy today!")
		require.NoError(t, err)
		hits := 1.0
		total := float64(len(emotionKeywords["happy"]))
		assert.InDelta(t, hits/total, result.Confidence, 0.001)
	})

	t.Run("Returns neutral when nothing matches", func(t *testing.T) {
		result, err := detector.Detect(ctx, "the quarterly report is due on monday")
		require.NoError(t, err)
		assert.Equal(t, NeutralEmotion, result.Emotion)
		assert.Equal(t, 0.5, result.Confidence)
	})

	t.Run("Matching is case insensitive", func(t *testing.T) {
		result, err := detector.Detect(ctx, "FURIOUS and ANNOYED")
		require.NoError(t, err)
		assert.Equal(t, "angry", result.Emotion)
	})

	t.Run("More hits raise confidence", func(t *testing.T) {
		single, err := detector.Detect(ctx, "I feel calm")
		require.NoError(t, err)
		many, err := detector.Detect(ctx, "calm peaceful relaxed serene tranquil")
		require.NoError(t, err)
		assert.Greater(t, many.Confidence, single.Confidence)
	})

	t.Run("Confidence is capped", func(t *testing.T) {
		result, err := detector.Detect(
			ctx,
			"anxious nervous worried stressed tense afraid scared panicked",
		)
		require.NoError(t, err)
		assert.InDelta(t, 0.9, result.Confidence, 0.001)
	})
}

func TestClampConfidence(t *testing.T) {
	assert.Equal(t, 0.0, clampConfidence(-0.3))
	assert.Equal(t, 1.0, clampConfidence(1.7))
	assert.Equal(t, 0.42, clampConfidence(0.42))
}

func TestModelDetector_Detect(t *testing.T) {
	ctx := context.Background()

	newDetector := func(url string) *modelDetector {
		return newModelDetector(config.Config{EmotionModelURL: url})
	}

	t.Run("Maps raw labels onto application emotions", func(t *testing.T) {
		server := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode([][]modelScore{{
					{Label: "joy", Score: 0.91},
					{Label: "sadness", Score: 0.05},
				}})
			}),
		)
		defer server.Close()

		result, err := newDetector(server.URL).Detect(ctx, "what a great day")
		require.NoError(t, err)
		assert.Equal(t, "happy", result.Emotion)
		assert.InDelta(t, 0.91, result.Confidence, 0.001)
		assert.Equal(t, "model", result.Detector)
	})

	t.Run("Duplicate mapped labels keep the highest score", func(t *testing.T) {
		server := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode([][]modelScore{{
					{Label: "anger", Score: 0.3},
					{Label: "disgust", Score: 0.6},
				}})
			}),
		)
		defer server.Close()

		result, err := newDetector(server.URL).Detect(ctx, "ugh")
		require.NoError(t, err)
		assert.Equal(t, "angry", result.Emotion)
		assert.InDelta(t, 0.6, result.Scores["angry"], 0.001)
	})

	t.Run("Non-200 response reports unavailable", func(t *testing.T) {
		server := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			}),
		)
		defer server.Close()

		_, err := newDetector(server.URL).Detect(ctx, "hello")
		assert.ErrorIs(t, err, ErrDetectorUnavailable)
	})

	t.Run("Unknown vocabulary reports unavailable", func(t *testing.T) {
		server := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode([][]modelScore{{
					{Label: "bewilderment", Score: 0.99},
				}})
			}),
		)
		defer server.Close()

		_, err := newDetector(server.URL).Detect(ctx, "hello")
		assert.ErrorIs(t, err, ErrDetectorUnavailable)
	})
}

func TestEmotionService_Detect(t *testing.T) {
	ctx := context.Background()

	t.Run("Falls back to keywords when model is unreachable", func(t *testing.T) {
		service := NewEmotionService(config.Config{
			EmotionModelURL: "http://127.0.0.1:1/unreachable",
		})

		result, err := service.Detect(ctx, "I am so happy today!")
		require.NoError(t, err)
		assert.Equal(t, "happy", result.Emotion)
		assert.Equal(t, "keyword", result.Detector)
	})

	t.Run("Skips model detector when not configured", func(t *testing.T) {
		service := NewEmotionService(config.Config{})

		result, err := service.Detect(ctx, "feeling peaceful and relaxed")
		require.NoError(t, err)
		assert.Equal(t, "calm", result.Emotion)
	})
}
