package authController

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"emosound/config"
	"emosound/internal/constants"
	"emosound/internal/database"
	"emosound/internal/logger"
	"emosound/internal/models"
	"emosound/internal/repositories"
	"emosound/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	maxLoginFailures   = 5
	loginFailureWindow = 5 * time.Minute
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountLocked      = errors.New("too many failed login attempts, try again later")
	ErrSessionInvalid     = errors.New("session is invalid or expired")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

// AuthController handles registration, login, and session lifecycle
type AuthController struct {
	userRepo    repositories.UserRepository
	transaction *services.TransactionService
	db          database.DB
	config      config.Config
	validate    *validator.Validate
	log         logger.Logger
}

type AuthControllerInterface interface {
	Register(ctx context.Context, req models.RegisterRequest) (*LoginResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, sessionID string) error
	ValidateSession(ctx context.Context, token string) (*SessionInfo, error)
}

type LoginResponse struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expiresAt"`
	User      models.UserProfile `json:"user"`
}

// SessionInfo identifies the authenticated user behind a validated token.
type SessionInfo struct {
	UserID    uuid.UUID `json:"userId"`
	SessionID string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func New(
	repos repositories.Repository,
	service services.Service,
	config config.Config,
	db database.DB,
) AuthControllerInterface {
	return &AuthController{
		userRepo:    repos.User,
		transaction: service.Transaction,
		db:          db,
		config:      config,
		validate:    validator.New(),
		log:         logger.New("authController"),
	}
}

func (c *AuthController) Register(
	ctx context.Context,
	req models.RegisterRequest,
) (*LoginResponse, error) {
	log := c.log.Function("Register")

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if err := c.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid registration request: %w", err)
	}
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	if _, err := c.userRepo.GetByUsernameOrEmail(ctx, req.Username, req.Email); err == nil {
		return nil, errors.New("username or email already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, log.Err("failed to check existing user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, log.Err("failed to hash password", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := c.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	preferences := models.DefaultPreferences(user.ID)
	user.Preferences = preferences
	if err := c.db.SQLWithContext(ctx).Create(preferences).Error; err != nil {
		log.Warn("failed to create default preferences", "userID", user.ID, "error", err)
	}

	log.Info("user registered", "userID", user.ID, "username", user.Username)
	return c.startSession(ctx, user)
}

func (c *AuthController) Login(
	ctx context.Context,
	req models.LoginRequest,
) (*LoginResponse, error) {
	log := c.log.Function("Login")

	req.Username = strings.TrimSpace(req.Username)
	if err := c.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid login request: %w", err)
	}

	locked, err := c.isLockedOut(ctx, req.Username)
	if err != nil {
		log.Warn("failed to check login failures", "username", req.Username, "error", err)
	}
	if locked {
		return nil, ErrAccountLocked
	}

	user, err := c.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		c.recordFailure(ctx, req.Username)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash),
		[]byte(req.Password),
	); err != nil {
		c.recordFailure(ctx, req.Username)
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := c.userRepo.Update(ctx, user); err != nil {
		log.Warn("failed to record last login", "userID", user.ID, "error", err)
	}

	log.Info("user logged in", "userID", user.ID)
	return c.startSession(ctx, user)
}

func (c *AuthController) Logout(ctx context.Context, sessionID string) error {
	log := c.log.Function("Logout")

	err := database.NewCacheBuilder(c.db.Cache.Session, sessionID).
		WithPrefix(constants.SessionCachePrefix).
		WithContext(ctx).
		Delete()
	if err != nil {
		return log.Err("failed to delete session", err, "sessionID", sessionID)
	}

	return nil
}

// ValidateSession parses the JWT and confirms the session record still
// exists. Sessions removed by logout fail validation even before the token
// expires.
func (c *AuthController) ValidateSession(
	ctx context.Context,
	token string,
) (*SessionInfo, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(c.config.SessionSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrSessionInvalid
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrSessionInvalid
	}

	var storedUserID string
	found, err := database.NewCacheBuilder(c.db.Cache.Session, claims.SessionID).
		WithPrefix(constants.SessionCachePrefix).
		WithContext(ctx).
		Get(&storedUserID)
	if err != nil || !found || storedUserID != claims.Subject {
		return nil, ErrSessionInvalid
	}

	return &SessionInfo{
		UserID:    userID,
		SessionID: claims.SessionID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (c *AuthController) startSession(
	ctx context.Context,
	user *models.User,
) (*LoginResponse, error) {
	log := c.log.Function("startSession")

	sessionID := uuid.New().String()
	timeout := time.Duration(c.config.SessionTimeout) * time.Second
	expiresAt := time.Now().Add(timeout)

	claims := sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(c.config.SessionSecret))
	if err != nil {
		return nil, log.Err("failed to sign session token", err, "userID", user.ID)
	}

	err = database.NewCacheBuilder(c.db.Cache.Session, sessionID).
		WithPrefix(constants.SessionCachePrefix).
		WithStruct(user.ID.String()).
		WithTTL(timeout).
		WithContext(ctx).
		Set()
	if err != nil {
		return nil, log.Err("failed to store session", err, "userID", user.ID)
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.ToProfile(),
	}, nil
}

func (c *AuthController) isLockedOut(ctx context.Context, username string) (bool, error) {
	var count int64
	found, err := database.NewCacheBuilder(c.db.Cache.Session, username).
		WithPrefix(constants.LoginFailurePrefix).
		WithContext(ctx).
		Get(&count)
	if err != nil {
		return false, err
	}
	return found && count >= maxLoginFailures, nil
}

func (c *AuthController) recordFailure(ctx context.Context, username string) {
	_, err := database.NewCacheBuilder(c.db.Cache.Session, username).
		WithPrefix(constants.LoginFailurePrefix).
		WithContext(ctx).
		Incr(loginFailureWindow)
	if err != nil {
		c.log.Warn("failed to record login failure", "username", username, "error", err)
	}
}
