package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultMaxFilesizeMB is the Telegram Bot API limit for free bots.
	DefaultMaxFilesizeMB = 50

	DefaultPort           = 8443
	DefaultExtractTimeout = 2 * time.Minute
	DefaultYtdlpPath      = "yt-dlp"
)

// Config holds all process-wide settings. It is loaded once at startup
// and passed by reference; nothing mutates it afterwards.
type Config struct {
	BotToken       string
	TelegramAPIURL string

	MaxFilesizeMB  int
	YtdlpPath      string
	ExtractTimeout time.Duration

	LogLevel string

	WebhookMode bool
	WebhookURL  string
	ListenAddr  string
	Port        int
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		BotToken:       os.Getenv("BOT_TOKEN"),
		TelegramAPIURL: os.Getenv("TELEGRAM_API_URL"),
		MaxFilesizeMB:  envInt("MAX_FILESIZE_MB", DefaultMaxFilesizeMB),
		YtdlpPath:      envOr("YTDLP_PATH", DefaultYtdlpPath),
		ExtractTimeout: envDuration("EXTRACT_TIMEOUT", DefaultExtractTimeout),
		LogLevel:       envOr("LOG_LEVEL", "INFO"),
		WebhookMode:    envBool("WEBHOOK_MODE"),
		WebhookURL:     os.Getenv("WEBHOOK_URL"),
		ListenAddr:     envOr("LISTEN_ADDR", "0.0.0.0"),
		Port:           envInt("PORT", DefaultPort),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envBool(key string) bool {
	switch os.Getenv(key) {
	case "true", "True", "TRUE", "1", "t":
		return true
	}
	return false
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
