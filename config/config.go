package config

import (
	"emosound/internal/logger"

	"github.com/spf13/viper"
)

type Config struct {
	GeneralVersion      string `mapstructure:"GENERAL_VERSION"`
	Environment         string `mapstructure:"ENVIRONMENT"`
	ServerPort          int    `mapstructure:"SERVER_PORT"`
	DatabaseHost        string `mapstructure:"DB_HOST"`
	DatabasePort        int    `mapstructure:"DB_PORT"`
	DatabaseName        string `mapstructure:"DB_NAME"`
	DatabaseUser        string `mapstructure:"DB_USER"`
	DatabasePassword    string `mapstructure:"DB_PASSWORD"`
	CacheAddress        string `mapstructure:"DB_CACHE_ADDRESS"`
	CachePort           int    `mapstructure:"DB_CACHE_PORT"`
	CorsAllowOrigins    string `mapstructure:"CORS_ALLOW_ORIGINS"`
	SessionSecret       string `mapstructure:"SESSION_SECRET"`
	SessionTimeout      int    `mapstructure:"SESSION_TIMEOUT"` // seconds, defaults to one hour
	SpotifyClientID     string `mapstructure:"SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret string `mapstructure:"SPOTIFY_CLIENT_SECRET"`
	SpotifyRedirectURI  string `mapstructure:"SPOTIFY_REDIRECT_URI"`
	QuoteAPIURL         string `mapstructure:"QUOTE_API_URL"`
	QuoteAPIKey         string `mapstructure:"QUOTE_API_KEY"`
	EmotionModelURL     string `mapstructure:"EMOTION_MODEL_URL"`
	EmotionModelKey     string `mapstructure:"EMOTION_MODEL_KEY"`
	SpeechToTextURL     string `mapstructure:"SPEECH_TO_TEXT_URL"`
	SpeechToTextKey     string `mapstructure:"SPEECH_TO_TEXT_KEY"`
	SchedulerEnabled    bool   `mapstructure:"SCHEDULER_ENABLED"`
}

const DefaultSessionTimeout = 3600

func InitConfig() (Config, error) {
	log := logger.New("config").Function("InitConfig")
	log.Info("Initializing config")

	viper.AutomaticEnv()

	envVars := []string{
		"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT",
		"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
		"DB_CACHE_ADDRESS", "DB_CACHE_PORT",
		"CORS_ALLOW_ORIGINS",
		"SESSION_SECRET", "SESSION_TIMEOUT",
		"SPOTIFY_CLIENT_ID", "SPOTIFY_CLIENT_SECRET", "SPOTIFY_REDIRECT_URI",
		"QUOTE_API_URL", "QUOTE_API_KEY",
		"EMOTION_MODEL_URL", "EMOTION_MODEL_KEY",
		"SPEECH_TO_TEXT_URL", "SPEECH_TO_TEXT_KEY",
		"SCHEDULER_ENABLED",
	}

	for _, env := range envVars {
		if err := viper.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	// Environment variables win; fall back to .env files for local development
	envVarsSet := viper.IsSet("SERVER_PORT") && viper.IsSet("DB_HOST")

	if envVarsSet {
		log.Info("Environment variables detected, skipping file loading")
	} else {
		log.Info("Environment variables not found, attempting to load from files")

		viper.SetConfigFile(".env")
		viper.SetConfigType("env")

		if err := viper.ReadInConfig(); err != nil {
			log.Warn("Could not find .env file", "error", err)
		} else {
			log.Info("Loaded .env file")
		}

		viper.SetConfigFile(".env.local")
		if err := viper.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		} else {
			log.Info("Loaded .env.local overrides")
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}

	if config.SessionTimeout <= 0 {
		config.SessionTimeout = DefaultSessionTimeout
	}

	if err := validateConfig(config, log); err != nil {
		return Config{}, err
	}

	log.Info("Successfully initialized config", "environment", config.Environment, "port", config.ServerPort)
	return config, nil
}

func validateConfig(config Config, log logger.Logger) error {
	if config.ServerPort <= 0 {
		return log.Error(
			"Fatal error: invalid server port",
			"port", config.ServerPort,
		)
	}

	if config.SessionSecret == "" {
		return log.ErrMsg("Fatal error: SESSION_SECRET is required")
	}

	if config.SpotifyClientID != "" && config.SpotifyClientSecret == "" {
		return log.ErrMsg(
			"Fatal error: SPOTIFY_CLIENT_SECRET required when SPOTIFY_CLIENT_ID is set",
		)
	}

	return nil
}
