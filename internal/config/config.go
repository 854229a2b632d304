// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// the server, the Telegram API client, and the QR service client.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Delivery policies for the relay when a send call fails mid-list.
const (
	// DeliveryBestEffort keeps delivering remaining items and reports an
	// aggregate error; the webhook still acknowledges the update.
	DeliveryBestEffort = "best-effort"

	// DeliveryStrict aborts on the first failed send and surfaces the error
	// to the webhook, which responds with a server error.
	DeliveryStrict = "strict"
)

// Generator backends for the GenerateQR intent.
const (
	// GeneratorRemote builds an api.qrserver.com create-qr-code URL and lets
	// Telegram fetch the image.
	GeneratorRemote = "remote"

	// GeneratorLocal renders the PNG in-process and uploads the bytes.
	GeneratorLocal = "local"
)

// Config holds all application configuration
type Config struct {
	// Telegram Bot Configuration
	TelegramToken       string
	TelegramAPIEndpoint string // Override for tests; empty = api.telegram.org

	// QR Service Configuration
	QRServiceBaseURL string
	Render           RenderConfig
	Generator        string // remote or local

	// Delivery Configuration
	DeliveryPolicy string
	APITimeout     time.Duration // Per outbound call (Telegram + QR service)

	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Error Tracking (optional)
	SentryToken string
	SentryHost  string
	Environment string

	// Log Shipping (optional)
	BetterStackToken    string
	BetterStackEndpoint string
}

// RenderConfig holds the fixed rendering parameters embedded into
// create-qr-code URLs. Values are process constants, not per-request inputs.
type RenderConfig struct {
	Size    string // pixel dimensions, e.g. "300x300"
	Color   string // foreground, hex without '#'
	BgColor string // background, hex without '#'
	Margin  int
	QZone   int // quiet zone in modules
	Format  string
}

// Load reads configuration from environment variables.
// It attempts to load .env file first, then reads from env vars.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		// Telegram Bot Configuration
		TelegramToken:       getEnv("TELEGRAM_TOKEN", ""),
		TelegramAPIEndpoint: getEnv("TELEGRAM_API_ENDPOINT", ""),

		// QR Service Configuration
		QRServiceBaseURL: getEnv("QR_SERVICE_BASE_URL", "https://api.qrserver.com/v1"),
		Render: RenderConfig{
			Size:    getEnv("QR_IMAGE_SIZE", "300x300"),
			Color:   getEnv("QR_COLOR", "000000"),
			BgColor: getEnv("QR_BGCOLOR", "ffffff"),
			Margin:  getIntEnv("QR_MARGIN", 10),
			QZone:   getIntEnv("QR_QUIET_ZONE", 1),
			Format:  getEnv("QR_FORMAT", "png"),
		},
		Generator: getEnv("QR_GENERATOR", GeneratorRemote),

		// Delivery Configuration
		DeliveryPolicy: getEnv("DELIVERY_POLICY", DeliveryBestEffort),
		APITimeout:     getDurationEnv("API_TIMEOUT", OutboundCall),

		// Server Configuration
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", GracefulShutdown),

		// Error Tracking
		SentryToken: getEnv("SENTRY_TOKEN", ""),
		SentryHost:  getEnv("SENTRY_HOST", ""),
		Environment: getEnv("ENVIRONMENT", "production"),

		// Log Shipping
		BetterStackToken:    getEnv("BETTERSTACK_TOKEN", ""),
		BetterStackEndpoint: getEnv("BETTERSTACK_ENDPOINT", ""),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.TelegramToken == "" {
		errs = append(errs, errors.New("TELEGRAM_TOKEN is required"))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.QRServiceBaseURL == "" {
		errs = append(errs, errors.New("QR_SERVICE_BASE_URL is required"))
	}
	if c.DeliveryPolicy != DeliveryBestEffort && c.DeliveryPolicy != DeliveryStrict {
		errs = append(errs, fmt.Errorf("DELIVERY_POLICY must be %q or %q, got %q",
			DeliveryBestEffort, DeliveryStrict, c.DeliveryPolicy))
	}
	if c.Generator != GeneratorRemote && c.Generator != GeneratorLocal {
		errs = append(errs, fmt.Errorf("QR_GENERATOR must be %q or %q, got %q",
			GeneratorRemote, GeneratorLocal, c.Generator))
	}
	if c.APITimeout <= 0 {
		errs = append(errs, fmt.Errorf("API_TIMEOUT must be positive, got %v", c.APITimeout))
	}
	if c.Render.Margin < 0 {
		errs = append(errs, fmt.Errorf("QR_MARGIN cannot be negative, got %d", c.Render.Margin))
	}
	if c.Render.QZone < 0 {
		errs = append(errs, fmt.Errorf("QR_QUIET_ZONE cannot be negative, got %d", c.Render.QZone))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
