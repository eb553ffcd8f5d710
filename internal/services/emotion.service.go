package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"emosound/config"
	"emosound/internal/logger"
)

// ErrDetectorUnavailable signals that a detector could not produce a result
// and the next detector in the chain should be tried.
var ErrDetectorUnavailable = errors.New("detector unavailable")

const NeutralEmotion = "neutral"

// DetectionResult is the outcome of running text through a detector.
type DetectionResult struct {
	Emotion    string             `json:"emotion"`
	Confidence float64            `json:"confidence"`
	Scores     map[string]float64 `json:"scores,omitempty"`
	Detector   string             `json:"detector"`
}

// Detector classifies a piece of text into an emotion.
type Detector interface {
	Name() string
	Detect(ctx context.Context, text string) (*DetectionResult, error)
}

// EmotionService runs detectors in order until one succeeds. The keyword
// detector never fails, so detection always produces a result.
type EmotionService struct {
	detectors []Detector
	log       logger.Logger
}

func NewEmotionService(config config.Config) *EmotionService {
	detectors := make([]Detector, 0, 2)
	if config.EmotionModelURL != "" {
		detectors = append(detectors, newModelDetector(config))
	}
	detectors = append(detectors, NewKeywordDetector())

	return &EmotionService{
		detectors: detectors,
		log:       logger.New("EmotionService"),
	}
}

func (s *EmotionService) Detect(ctx context.Context, text string) (*DetectionResult, error) {
	log := s.log.Function("Detect")

	for _, detector := range s.detectors {
		result, err := detector.Detect(ctx, text)
		if err != nil {
			if errors.Is(err, ErrDetectorUnavailable) {
				log.Warn("detector unavailable, trying next", "detector", detector.Name())
				continue
			}
			return nil, log.Err("detection failed", err, "detector", detector.Name())
		}
		return result, nil
	}

	return nil, log.ErrMsg("no detector produced a result")
}

// modelDetector calls a hosted transformer classification endpoint. Raw model
// labels are mapped onto the application's emotion vocabulary.
type modelDetector struct {
	client *http.Client
	url    string
	apiKey string
	log    logger.Logger
}

// Raw classifier labels to application emotions.
var modelLabelMapping = map[string]string{
	"joy":       "happy",
	"happiness": "happy",
	"sadness":   "sad",
	"anger":     "angry",
	"fear":      "anxious",
	"surprise":  "excited",
	"love":      "romantic",
	"disgust":   "angry",
	"optimism":  "confident",
	"pessimism": "sad",
}

type modelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func newModelDetector(config config.Config) *modelDetector {
	return &modelDetector{
		client: &http.Client{Timeout: 10 * time.Second},
		url:    config.EmotionModelURL,
		apiKey: config.EmotionModelKey,
		log:    logger.New("modelDetector"),
	}
}

func (d *modelDetector) Name() string { return "model" }

func (d *modelDetector) Detect(ctx context.Context, text string) (*DetectionResult, error) {
	log := d.log.Function("Detect")

	payload, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return nil, log.Err("failed to marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(payload))
	if err != nil {
		return nil, log.Err("failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if d.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+d.apiKey)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		log.Warn("model endpoint unreachable", "error", err)
		return nil, ErrDetectorUnavailable
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn("Failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		log.Warn("model endpoint returned non-200", "statusCode", resp.StatusCode)
		return nil, ErrDetectorUnavailable
	}

	var batches [][]modelScore
	if err := json.NewDecoder(resp.Body).Decode(&batches); err != nil {
		log.Warn("failed to decode model response", "error", err)
		return nil, ErrDetectorUnavailable
	}
	if len(batches) == 0 || len(batches[0]) == 0 {
		return nil, ErrDetectorUnavailable
	}

	scores := make(map[string]float64, len(batches[0]))
	best := ""
	bestScore := 0.0
	for _, entry := range batches[0] {
		emotion, ok := modelLabelMapping[strings.ToLower(entry.Label)]
		if !ok {
			continue
		}
		if entry.Score > scores[emotion] {
			scores[emotion] = entry.Score
		}
		if scores[emotion] > bestScore {
			best = emotion
			bestScore = scores[emotion]
		}
	}
	if best == "" {
		// Model vocabulary does not overlap ours, let the keyword pass decide.
		return nil, ErrDetectorUnavailable
	}

	return &DetectionResult{
		Emotion:    best,
		Confidence: clampConfidence(bestScore),
		Scores:     scores,
		Detector:   d.Name(),
	}, nil
}

// KeywordDetector scores text against fixed keyword lists. It always returns
// a result and is the last detector in the chain.
type KeywordDetector struct {
	keywords map[string][]string
	log      logger.Logger
}

var emotionKeywords = map[string][]string{
	"happy":    {"happy", "joy", "excited", "great", "wonderful", "amazing", "good", "fantastic", "awesome", "love"},
	"sad":      {"sad", "down", "depressed", "unhappy", "blue", "melancholy", "disappointed", "hurt", "crying"},
	"angry":    {"angry", "mad", "furious", "irritated", "annoyed", "rage", "hate", "frustrated", "pissed"},
	"excited":  {"excited", "thrilled", "pumped", "energized", "enthusiastic", "eager", "stoked"},
	"calm":     {"calm", "peaceful", "relaxed", "serene", "tranquil", "zen", "composed", "chill"},
	"anxious":  {"anxious", "nervous", "worried", "stressed", "tense", "afraid", "scared", "panicked"},
	"romantic": {"love", "romantic", "affection", "adore", "crush", "heart", "passion", "loving"},
	"confident": {
		"confident", "sure", "certain", "strong", "proud", "bold", "empowered", "determined",
	},
}

func NewKeywordDetector() *KeywordDetector {
	return &KeywordDetector{
		keywords: emotionKeywords,
		log:      logger.New("keywordDetector"),
	}
}

func (d *KeywordDetector) Name() string { return "keyword" }

func (d *KeywordDetector) Detect(ctx context.Context, text string) (*DetectionResult, error) {
	lowered := strings.ToLower(text)

	scores := make(map[string]float64, len(d.keywords))
	best := ""
	bestScore := 0.0
	for emotion, words := range d.keywords {
		hits := 0
		for _, word := range words {
			if strings.Contains(lowered, word) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		score := float64(hits) / float64(len(words))
		scores[emotion] = score
		if score > bestScore {
			best = emotion
			bestScore = score
		}
	}

	if best == "" {
		return &DetectionResult{
			Emotion:    NeutralEmotion,
			Confidence: 0.5,
			Detector:   d.Name(),
		}, nil
	}

	// Heuristic scorer, unvalidated. Confidence is the raw hit ratio,
	// clipped so a keyword match never outranks a real classifier result.
	confidence := bestScore
	if confidence > 0.9 {
		confidence = 0.9
	}

	return &DetectionResult{
		Emotion:    best,
		Confidence: clampConfidence(confidence),
		Scores:     scores,
		Detector:   d.Name(),
	}, nil
}

func clampConfidence(confidence float64) float64 {
	switch {
	case confidence < 0:
		return 0
	case confidence > 1:
		return 1
	default:
		return confidence
	}
}
