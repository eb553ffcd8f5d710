package websockets

import (
	"context"
	"encoding/json"
	"time"

	"emosound/config"
	"emosound/internal/database"
	"emosound/internal/events"
	"emosound/internal/logger"
	"emosound/internal/utils"

	authController "emosound/internal/controllers/auth"
	moodController "emosound/internal/controllers/mood"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	MESSAGE_TYPE_PING             = "ping"
	MESSAGE_TYPE_PONG             = "pong"
	MESSAGE_TYPE_ERROR            = "error"
	MESSAGE_TYPE_AUTH_REQUEST     = "auth_request"
	MESSAGE_TYPE_AUTH_RESPONSE    = "auth_response"
	MESSAGE_TYPE_AUTH_SUCCESS     = "auth_success"
	MESSAGE_TYPE_AUTH_FAILURE     = "auth_failure"
	MESSAGE_TYPE_DETECT_TEXT      = "detect_text"
	MESSAGE_TYPE_AUDIO_COMPLETE   = "audio_complete"
	MESSAGE_TYPE_DETECTION_RESULT = "detection_result"
	MESSAGE_TYPE_EMOTION_DETECTED = "emotion_detected"

	WRITE_TIMEOUT     = 10 * time.Second
	SEND_CHANNEL_SIZE = 64
)

type Message struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type Client struct {
	ID         string
	UserID     uuid.UUID
	Connection *websocket.Conn
	Manager    *Manager
	Status     int
	send       chan Message
	audio      []byte
}

type Manager struct {
	hub      *Hub
	db       database.DB
	config   config.Config
	auth     authController.AuthControllerInterface
	mood     moodController.MoodControllerInterface
	log      logger.Logger
	eventBus *events.EventBus
}

func New(
	db database.DB,
	eventBus *events.EventBus,
	config config.Config,
	auth authController.AuthControllerInterface,
	mood moodController.MoodControllerInterface,
) (*Manager, error) {
	log := logger.New("websockets")

	manager := &Manager{
		hub: &Hub{
			register:   make(chan *Client),
			unregister: make(chan *Client),
			clients:    make(map[string]*Client),
		},
		db:       db,
		config:   config,
		auth:     auth,
		mood:     mood,
		log:      log,
		eventBus: eventBus,
	}

	log.Function("New").Info("Starting websocket hub")
	go manager.hub.run(manager)
	go manager.subscribeToDetectionEvents()

	return manager, nil
}

// subscribeToDetectionEvents pushes detection events to the user's open
// connections, so a detection made over HTTP shows up in a live session too.
func (m *Manager) subscribeToDetectionEvents() {
	log := m.log.Function("subscribeToDetectionEvents")

	err := m.eventBus.Subscribe(events.DETECTION_CHANNEL, func(event events.Event) error {
		if event.Type != events.EMOTION_DETECTED || event.UserID == nil {
			return nil
		}

		for _, client := range m.clientsForUser(event.UserID.String()) {
			client.enqueue(Message{
				ID:        uuid.New().String(),
				Type:      MESSAGE_TYPE_EMOTION_DETECTED,
				Data:      event.Data,
				Timestamp: time.Now(),
			})
		}
		return nil
	})
	if err != nil {
		log.Er("failed to subscribe to detection events", err)
	}
}

func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	client := &Client{
		ID:         uuid.New().String(),
		UserID:     uuid.Nil,
		Connection: c,
		Manager:    m,
		Status:     STATUS_UNAUTHENTICATED,
		send:       make(chan Message, SEND_CHANNEL_SIZE),
	}

	authRequest := Message{
		ID:        uuid.New().String(),
		Type:      MESSAGE_TYPE_AUTH_REQUEST,
		Timestamp: time.Now(),
	}
	if err := c.WriteJSON(authRequest); err != nil {
		log.Er("failed to send auth request", err)
		_ = c.Close()
		return
	}

	m.hub.register <- client

	go client.writePump()
	client.readPump()
}

func (c *Client) enqueue(message Message) {
	defer func() {
		if r := recover(); r != nil {
			_ = r
		}
	}()

	select {
	case c.send <- message:
	default:
		// Slow consumer, drop rather than block the hub.
	}
}

func (c *Client) writePump() {
	for message := range c.send {
		_ = c.Connection.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT))
		if err := c.Connection.WriteJSON(message); err != nil {
			return
		}
	}
}

func (c *Client) readPump() {
	log := c.Manager.log.Function("readPump")

	defer func() {
		c.Status = STATUS_CLOSED
		c.Manager.hub.unregister <- c
		_ = c.Connection.Close()
	}()

	for {
		messageType, payload, err := c.Connection.ReadMessage()
		if err != nil {
			return
		}

		switch messageType {
		case websocket.BinaryMessage:
			c.appendAudio(payload)

		case websocket.TextMessage:
			var message Message
			if decodeErr := decodeMessage(payload, &message); decodeErr != nil {
				log.Warn("failed to decode message", "clientID", c.ID, "error", decodeErr)
				continue
			}
			c.Manager.handleMessage(c, message)
		}
	}
}

func (c *Client) appendAudio(payload []byte) {
	if c.Status != STATUS_AUTHENTICATED {
		return
	}
	if len(c.audio)+len(payload) > utils.MaxAudioUploadBytes {
		c.enqueue(errorMessage("audio stream too large"))
		c.audio = nil
		return
	}
	c.audio = append(c.audio, payload...)
}

func (m *Manager) handleMessage(client *Client, message Message) {
	switch message.Type {
	case MESSAGE_TYPE_PING:
		client.enqueue(Message{
			ID:        uuid.New().String(),
			Type:      MESSAGE_TYPE_PONG,
			Timestamp: time.Now(),
		})

	case MESSAGE_TYPE_AUTH_RESPONSE:
		m.handleAuth(client, message)

	case MESSAGE_TYPE_DETECT_TEXT:
		m.handleDetectText(client, message)

	case MESSAGE_TYPE_AUDIO_COMPLETE:
		m.handleAudioComplete(client, message)

	default:
		client.enqueue(errorMessage("unknown message type"))
	}
}

func (m *Manager) handleAuth(client *Client, message Message) {
	log := m.log.Function("handleAuth")

	token, _ := message.Data["token"].(string)
	session, err := m.auth.ValidateSession(contextForClient(client), token)
	if err != nil {
		client.enqueue(Message{
			ID:        uuid.New().String(),
			Type:      MESSAGE_TYPE_AUTH_FAILURE,
			Timestamp: time.Now(),
		})
		return
	}

	client.UserID = session.UserID
	client.Status = STATUS_AUTHENTICATED

	log.Info("client authenticated", "clientID", client.ID, "userID", client.UserID)
	client.enqueue(Message{
		ID:        uuid.New().String(),
		Type:      MESSAGE_TYPE_AUTH_SUCCESS,
		Data:      map[string]any{"userId": client.UserID.String()},
		Timestamp: time.Now(),
	})
}

func (m *Manager) handleDetectText(client *Client, message Message) {
	if client.Status != STATUS_AUTHENTICATED {
		client.enqueue(errorMessage("authentication required"))
		return
	}

	text, _ := message.Data["text"].(string)
	result, err := m.mood.DetectFromText(contextForClient(client), client.UserID, text)
	if err != nil {
		client.enqueue(errorMessage(err.Error()))
		return
	}

	client.enqueue(detectionMessage(result))
}

func (m *Manager) handleAudioComplete(client *Client, message Message) {
	if client.Status != STATUS_AUTHENTICATED {
		client.enqueue(errorMessage("authentication required"))
		return
	}

	contentType, _ := message.Data["contentType"].(string)
	if contentType == "" {
		contentType = "audio/webm"
	}

	audio := client.audio
	client.audio = nil

	result, err := m.mood.DetectFromLiveAudio(contextForClient(client), client.UserID, audio, contentType)
	if err != nil {
		client.enqueue(errorMessage(err.Error()))
		return
	}

	client.enqueue(detectionMessage(result))
}

func contextForClient(client *Client) context.Context {
	return logger.ContextWithTraceID(context.Background(), client.ID)
}

func decodeMessage(payload []byte, message *Message) error {
	return json.Unmarshal(payload, message)
}

func errorMessage(text string) Message {
	return Message{
		ID:        uuid.New().String(),
		Type:      MESSAGE_TYPE_ERROR,
		Data:      map[string]any{"error": text},
		Timestamp: time.Now(),
	}
}

func detectionMessage(result *moodController.DetectionResponse) Message {
	return Message{
		ID:   uuid.New().String(),
		Type: MESSAGE_TYPE_DETECTION_RESULT,
		Data: map[string]any{
			"emotion":    result.Emotion,
			"colorCode":  result.ColorCode,
			"confidence": result.Confidence,
			"intensity":  result.Intensity,
			"inputType":  result.InputType,
			"quote":      result.Quote,
			"transcript": result.Transcript,
		},
		Timestamp: time.Now(),
	}
}
