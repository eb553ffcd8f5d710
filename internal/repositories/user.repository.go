package repositories

import (
	"context"
	"time"

	"emosound/internal/constants"
	"emosound/internal/database"
	"emosound/internal/logger"
	. "emosound/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	UpdateSpotifyTokens(ctx context.Context, userID uuid.UUID, accessToken, refreshToken string, expires time.Time) error
	Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	ClearUserCache(ctx context.Context, userID uuid.UUID) error
}

type userRepository struct {
	db  database.DB
	log logger.Logger
}

func NewUserRepository(db database.DB) UserRepository {
	return &userRepository{
		db:  db,
		log: logger.New("userRepository"),
	}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	log := r.log.Function("GetByID")

	var user User
	found, err := database.NewCacheBuilder(r.db.Cache.User, id).
		WithPrefix(constants.UserCachePrefix).
		WithContext(ctx).
		Get(&user)
	if err == nil && found {
		return &user, nil
	}

	if err := r.db.SQLWithContext(ctx).
		Preload("Preferences").
		First(&user, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get user by id", err, "id", id)
	}

	if err := r.addUserToCache(ctx, &user); err != nil {
		log.Warn("failed to add user to cache", "userID", id, "error", err)
	}

	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	log := r.log.Function("GetByUsername")

	var user User
	if err := r.db.SQLWithContext(ctx).
		Preload("Preferences").
		First(&user, "username = ?", username).Error; err != nil {
		return nil, log.Err("failed to get user by username", err, "username", username)
	}

	if err := r.addUserToCache(ctx, &user); err != nil {
		log.Warn("failed to add user to cache", "userID", user.ID, "error", err)
	}

	return &user, nil
}

func (r *userRepository) GetByUsernameOrEmail(
	ctx context.Context,
	username, email string,
) (*User, error) {
	var user User
	if err := r.db.SQLWithContext(ctx).
		First(&user, "username = ? OR email = ?", username, email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *User) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(user).Error; err != nil {
		return log.Err("failed to create user", err, "username", user.Username)
	}

	return nil
}

func (r *userRepository) Update(ctx context.Context, user *User) error {
	log := r.log.Function("Update")

	if err := r.db.SQLWithContext(ctx).Save(user).Error; err != nil {
		return log.Err("failed to update user", err, "userID", user.ID)
	}

	if err := r.ClearUserCache(ctx, user.ID); err != nil {
		log.Warn("failed to clear user cache after update", "userID", user.ID, "error", err)
	}

	return nil
}

func (r *userRepository) UpdateSpotifyTokens(
	ctx context.Context,
	userID uuid.UUID,
	accessToken, refreshToken string,
	expires time.Time,
) error {
	log := r.log.Function("UpdateSpotifyTokens")

	updates := map[string]any{
		"spotify_access_token":  accessToken,
		"spotify_refresh_token": refreshToken,
		"spotify_token_expires": expires,
	}
	if err := r.db.SQLWithContext(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Updates(updates).Error; err != nil {
		return log.Err("failed to update spotify tokens", err, "userID", userID)
	}

	if err := r.ClearUserCache(ctx, userID); err != nil {
		log.Warn("failed to clear user cache after token update", "userID", userID, "error", err)
	}

	return nil
}

// Delete removes the user and all dependent rows. Runs inside the provided
// transaction so a partial delete never survives.
func (r *userRepository) Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	log := r.log.Function("Delete")

	deletes := []struct {
		model any
		where string
	}{
		{&UserSongHistory{}, "user_id = ?"},
		{&EmotionLog{}, "user_id = ?"},
		{&UserPreferences{}, "user_id = ?"},
		{&User{}, "id = ?"},
	}

	for _, d := range deletes {
		if err := tx.Unscoped().Where(d.where, userID).Delete(d.model).Error; err != nil {
			return log.Err("failed to delete user rows", err, "userID", userID)
		}
	}

	if err := r.ClearUserCache(ctx, userID); err != nil {
		log.Warn("failed to clear user cache after delete", "userID", userID, "error", err)
	}

	return nil
}

func (r *userRepository) addUserToCache(ctx context.Context, user *User) error {
	return database.NewCacheBuilder(r.db.Cache.User, user.ID).
		WithPrefix(constants.UserCachePrefix).
		WithStruct(user).
		WithTTL(constants.UserCacheExpiry).
		WithContext(ctx).
		Set()
}

func (r *userRepository) ClearUserCache(ctx context.Context, userID uuid.UUID) error {
	return database.NewCacheBuilder(r.db.Cache.User, userID).
		WithPrefix(constants.UserCachePrefix).
		WithContext(ctx).
		Delete()
}
