package moodController

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"emosound/internal/database"
	"emosound/internal/events"
	"emosound/internal/logger"
	"emosound/internal/models"
	"emosound/internal/repositories"
	"emosound/internal/services"
	"emosound/internal/utils"

	"github.com/google/uuid"
)

var ErrEmptyInput = errors.New("input text cannot be empty")

// MoodController runs emotion detection over text and audio input and logs
// the result to the user's history.
type MoodController struct {
	emotionService *services.EmotionService
	sttService     *services.SpeechToTextService
	quoteService   *services.QuoteService
	emotionRepo    repositories.EmotionRepository
	historyRepo    repositories.HistoryRepository
	eventBus       *events.EventBus
	log            logger.Logger
}

type MoodControllerInterface interface {
	DetectFromText(ctx context.Context, userID uuid.UUID, text string) (*DetectionResponse, error)
	DetectFromAudio(ctx context.Context, userID uuid.UUID, audio []byte, contentType string) (*DetectionResponse, error)
	DetectFromLiveAudio(ctx context.Context, userID uuid.UUID, audio []byte, contentType string) (*DetectionResponse, error)
}

type DetectionResponse struct {
	Emotion    string             `json:"emotion"`
	ColorCode  string             `json:"colorCode"`
	Confidence float64            `json:"confidence"`
	Intensity  string             `json:"intensity"`
	Detector   string             `json:"detector"`
	InputType  string             `json:"inputType"`
	Scores     map[string]float64 `json:"scores,omitempty"`
	Transcript string             `json:"transcript,omitempty"`
	Quote      services.Quote     `json:"quote"`
	DetectedAt time.Time          `json:"detectedAt"`
}

func New(
	repos repositories.Repository,
	service services.Service,
	eventBus *events.EventBus,
	db database.DB,
) MoodControllerInterface {
	return &MoodController{
		emotionService: service.Emotion,
		sttService:     service.SpeechToText,
		quoteService:   service.Quote,
		emotionRepo:    repos.Emotion,
		historyRepo:    repos.History,
		eventBus:       eventBus,
		log:            logger.New("moodController"),
	}
}

func (c *MoodController) DetectFromText(
	ctx context.Context,
	userID uuid.UUID,
	text string,
) (*DetectionResponse, error) {
	return c.detect(ctx, userID, text, models.InputTypeText, "")
}

func (c *MoodController) DetectFromAudio(
	ctx context.Context,
	userID uuid.UUID,
	audio []byte,
	contentType string,
) (*DetectionResponse, error) {
	return c.detectAudio(ctx, userID, audio, contentType, models.InputTypeAudioFile)
}

func (c *MoodController) DetectFromLiveAudio(
	ctx context.Context,
	userID uuid.UUID,
	audio []byte,
	contentType string,
) (*DetectionResponse, error) {
	return c.detectAudio(ctx, userID, audio, contentType, models.InputTypeLiveAudio)
}

func (c *MoodController) detectAudio(
	ctx context.Context,
	userID uuid.UUID,
	audio []byte,
	contentType, inputType string,
) (*DetectionResponse, error) {
	log := c.log.Function("detectAudio")

	if err := utils.ValidateAudioUpload(int64(len(audio)), contentType); err != nil {
		return nil, err
	}

	transcript, err := c.sttService.Transcribe(ctx, audio, contentType)
	if err != nil {
		return nil, log.Err("failed to transcribe audio", err, "userID", userID)
	}

	return c.detect(ctx, userID, transcript, inputType, transcript)
}

func (c *MoodController) detect(
	ctx context.Context,
	userID uuid.UUID,
	text, inputType, transcript string,
) (*DetectionResponse, error) {
	log := c.log.Function("detect")

	text = utils.SanitizeInput(text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	result, err := c.emotionService.Detect(ctx, text)
	if err != nil {
		return nil, err
	}

	emotion, err := c.emotionRepo.GetByName(ctx, result.Emotion)
	colorCode := models.DefaultEmotionColor
	emotionID := 0
	if err != nil {
		log.Warn("detected emotion not in catalog", "emotion", result.Emotion)
	} else {
		colorCode = emotion.ColorCode
		emotionID = emotion.ID
	}

	detectedAt := time.Now()
	if emotionID != 0 {
		entry := &models.EmotionLog{
			UserID:     userID,
			EmotionID:  emotionID,
			InputText:  text,
			InputType:  inputType,
			Confidence: result.Confidence,
			DetectedAt: detectedAt,
		}
		if len(result.Scores) > 0 {
			if scores, marshalErr := json.Marshal(result.Scores); marshalErr == nil {
				entry.Scores = scores
			}
		}
		if err := c.historyRepo.CreateEmotionLog(ctx, entry); err != nil {
			log.Warn("failed to log detection", "userID", userID, "error", err)
		}
	}

	if c.eventBus != nil {
		if err := c.eventBus.PublishDetection(userID, result.Emotion, result.Confidence, inputType); err != nil {
			log.Warn("failed to publish detection event", "userID", userID, "error", err)
		}
	}

	return &DetectionResponse{
		Emotion:    result.Emotion,
		ColorCode:  colorCode,
		Confidence: result.Confidence,
		Intensity:  models.ConfidenceIntensity(result.Confidence),
		Detector:   result.Detector,
		InputType:  inputType,
		Scores:     result.Scores,
		Transcript: transcript,
		Quote:      c.quoteService.GetForEmotion(ctx, result.Emotion),
		DetectedAt: detectedAt,
	}, nil
}
