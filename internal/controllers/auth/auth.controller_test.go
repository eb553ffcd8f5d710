package authController

import (
	"context"
	"testing"
	"time"

	"emosound/internal/logger"
	"emosound/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users []*models.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByUsernameOrEmail(
	_ context.Context,
	username, email string,
) (*models.User, error) {
	for _, user := range f.users {
		if user.Username == username || user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = uuid.Must(uuid.NewV7())
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, _ *models.User) error {
	return nil
}

func (f *fakeUserRepo) UpdateSpotifyTokens(
	_ context.Context,
	_ uuid.UUID,
	_, _ string,
	_ time.Time,
) error {
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, _ *gorm.DB, _ uuid.UUID) error {
	return nil
}

func (f *fakeUserRepo) ClearUserCache(_ context.Context, _ uuid.UUID) error {
	return nil
}

func TestRegister_Rejections(t *testing.T) {
	ctx := context.Background()

	newController := func(repo *fakeUserRepo) *AuthController {
		return &AuthController{
			userRepo: repo,
			validate: validator.New(),
			log:      logger.New("authController"),
		}
	}

	t.Run("Mismatched confirm password creates no user", func(t *testing.T) {
		repo := &fakeUserRepo{}
		controller := newController(repo)

		_, err := controller.Register(ctx, models.RegisterRequest{
			Username:        "ada",
			Email:           "ada@example.com",
			Password:        "password",
			ConfirmPassword: "different",
		})

		require.ErrorIs(t, err, ErrPasswordMismatch)
		assert.Empty(t, repo.users)
	})

	t.Run("Invalid request creates no user", func(t *testing.T) {
		repo := &fakeUserRepo{}
		controller := newController(repo)

		_, err := controller.Register(ctx, models.RegisterRequest{
			Username:        "ab",
			Email:           "ada@example.com",
			Password:        "password",
			ConfirmPassword: "password",
		})

		require.Error(t, err)
		assert.Empty(t, repo.users)
	})

	t.Run("Taken username creates no second user", func(t *testing.T) {
		repo := &fakeUserRepo{users: []*models.User{
			{Username: "ada", Email: "ada@example.com"},
		}}
		controller := newController(repo)

		_, err := controller.Register(ctx, models.RegisterRequest{
			Username:        "ada",
			Email:           "other@example.com",
			Password:        "password",
			ConfirmPassword: "password",
		})

		require.Error(t, err)
		assert.Len(t, repo.users, 1)
	})
}
