package seed

import (
	"emosound/config"
	"emosound/internal/logger"
	. "emosound/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return log.Err("failed to hash seed password", err)
	}

	users := []User{
		{
			Username:     "admin",
			Email:        "admin@example.com",
			PasswordHash: string(hash),
		},
		{
			Username:     "test",
			Email:        "test@example.com",
			PasswordHash: string(hash),
		},
		{
			Username:     "ada",
			Email:        "ada.lovelace@example.com",
			PasswordHash: string(hash),
		},
	}

	for _, user := range users {
		var existingUser User
		if err := db.First(&existingUser, "username = ?", user.Username).Error; err == nil {
			log.Info("User already exists", "username", user.Username)
			continue
		}
		log.Info("Seeding user", "username", user.Username)
		if err := db.Create(&user).Error; err != nil {
			log.Er("failed to create user", err, "username", user.Username)
			continue
		}

		preferences := DefaultPreferences(user.ID)
		if err := db.Create(preferences).Error; err != nil {
			log.Er("failed to create preferences", err, "username", user.Username)
		}
	}

	return nil
}
