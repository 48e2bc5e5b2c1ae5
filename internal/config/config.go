package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type AppConfig struct {
	// WeatherAPIKey is passed to the provider as is; an empty key is not an
	// error here and surfaces later as a provider auth failure.
	WeatherAPIKey     string
	WeatherAPIBaseURL string `validate:"required,url"`

	// DefaultCity is committed when the dashboard mounts.
	DefaultCity string `validate:"required"`

	// HTTPTimeout bounds outbound provider calls (0 = no timeout).
	HTTPTimeout time.Duration `validate:"gte=0"`

	BreakerMaxFailures uint32        `validate:"gte=1"`
	BreakerOpenTimeout time.Duration `validate:"gte=0"`

	Port     string `validate:"required,numeric"`
	LogLevel string `validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// Load reads configuration from .env and the environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found or error loading it", "error", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds and validates an AppConfig from the given lookup func.
func FromEnv(getenv func(string) string) (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.WeatherAPIKey = getenv("WEATHER_API_KEY")
	if cfg.WeatherAPIKey == "" {
		// Variable name used by the Vite front-end build.
		cfg.WeatherAPIKey = getenv("VITE_WEATHER_API_KEY")
	}
	cfg.WeatherAPIBaseURL = getenvDefault(getenv, "WEATHER_API_BASE_URL", "https://api.weatherapi.com")
	cfg.DefaultCity = strings.TrimSpace(getenvDefault(getenv, "DEFAULT_CITY", "London"))

	timeout, err := time.ParseDuration(getenvDefault(getenv, "HTTP_TIMEOUT", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	maxFailures, err := strconv.ParseUint(getenvDefault(getenv, "BREAKER_MAX_FAILURES", "5"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid BREAKER_MAX_FAILURES: %w", err)
	}
	cfg.BreakerMaxFailures = uint32(maxFailures)

	openTimeout, err := time.ParseDuration(getenvDefault(getenv, "BREAKER_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid BREAKER_OPEN_TIMEOUT: %w", err)
	}
	cfg.BreakerOpenTimeout = openTimeout

	cfg.Port = getenvDefault(getenv, "PORT", "8080")
	cfg.LogLevel = strings.ToLower(getenvDefault(getenv, "LOG_LEVEL", "info"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct constraints. Call it again after applying
// command-line overrides.
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// SlogLevel maps LogLevel onto a slog.Level.
func (c *AppConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getenvDefault(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}
