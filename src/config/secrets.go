package config

import (
	"os"

	"github.com/joho/godotenv"
)

// -----------------------------------------------------------------------------
// Secrets are never part of the YAML file. They come from the environment,
// optionally seeded from a local .env file. Missing values disable the
// notifier rather than erroring.
// -----------------------------------------------------------------------------

const (
	envBotToken = "TG_BOT_TOKEN"
	envChatID   = "TG_CHAT_ID"
)

// Secrets holds the notification credentials.
type Secrets struct {
	BotToken string
	ChatID   string
}

// -----------------------------------------------------------------------------

// LoadSecrets reads the .env file (if present) and then the environment.
func LoadSecrets(envPath string) Secrets {
	if envPath != "" {
		// Ignore a missing file; env vars may be set directly.
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	return Secrets{
		BotToken: os.Getenv(envBotToken),
		ChatID:   os.Getenv(envChatID),
	}
}

// -----------------------------------------------------------------------------

// NotificationsEnabled reports whether both credentials are present.
func (s Secrets) NotificationsEnabled() bool {
	return s.BotToken != "" && s.ChatID != ""
}
