package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"emosound/config"
	"emosound/internal/logger"
)

// SpeechToTextService sends recorded audio to a hosted transcription
// endpoint and returns the recognized text.
type SpeechToTextService struct {
	client *http.Client
	url    string
	apiKey string
	log    logger.Logger
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

func NewSpeechToTextService(config config.Config) *SpeechToTextService {
	return &SpeechToTextService{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		url:    config.SpeechToTextURL,
		apiKey: config.SpeechToTextKey,
		log:    logger.New("SpeechToTextService"),
	}
}

// Enabled reports whether a transcription endpoint is configured.
func (s *SpeechToTextService) Enabled() bool {
	return s.url != ""
}

func (s *SpeechToTextService) Transcribe(
	ctx context.Context,
	audio []byte,
	contentType string,
) (string, error) {
	log := s.log.Function("Transcribe")

	if !s.Enabled() {
		return "", fmt.Errorf("speech to text endpoint not configured")
	}
	if len(audio) == 0 {
		return "", fmt.Errorf("audio payload cannot be empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(audio))
	if err != nil {
		return "", log.Err("failed to create request", err)
	}
	req.Header.Set("Content-Type", contentType)
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", log.Err("failed to reach transcription endpoint", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn("Failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		_ = log.Error("transcription endpoint error", "statusCode", resp.StatusCode)
		return "", fmt.Errorf("transcription endpoint error: %d", resp.StatusCode)
	}

	var transcription transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&transcription); err != nil {
		return "", log.Err("failed to decode transcription response", err)
	}

	if transcription.Text == "" {
		return "", fmt.Errorf("no speech recognized")
	}

	log.Debug("transcription complete", "chars", len(transcription.Text))
	return transcription.Text, nil
}
