package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, "", cfg.WeatherAPIKey)
	assert.Equal(t, "https://api.weatherapi.com", cfg.WeatherAPIBaseURL)
	assert.Equal(t, "London", cfg.DefaultCity)
	assert.Equal(t, time.Duration(0), cfg.HTTPTimeout)
	assert.Equal(t, uint32(5), cfg.BreakerMaxFailures)
	assert.Equal(t, 30*time.Second, cfg.BreakerOpenTimeout)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"WEATHER_API_KEY":      "secret",
		"WEATHER_API_BASE_URL": "http://localhost:9000",
		"DEFAULT_CITY":         "  Lisbon ",
		"HTTP_TIMEOUT":         "5s",
		"BREAKER_MAX_FAILURES": "3",
		"PORT":                 "9090",
		"LOG_LEVEL":            "DEBUG",
	}))
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.WeatherAPIKey)
	assert.Equal(t, "http://localhost:9000", cfg.WeatherAPIBaseURL)
	assert.Equal(t, "Lisbon", cfg.DefaultCity)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, uint32(3), cfg.BreakerMaxFailures)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestFromEnvLegacyKeyName(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{"VITE_WEATHER_API_KEY": "legacy"}))
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.WeatherAPIKey)
}

func TestFromEnvRejectsInvalidValues(t *testing.T) {
	tests := map[string]map[string]string{
		"bad timeout":      {"HTTP_TIMEOUT": "soon"},
		"negative timeout": {"HTTP_TIMEOUT": "-1s"},
		"bad base url":     {"WEATHER_API_BASE_URL": "not a url"},
		"blank city":       {"DEFAULT_CITY": "   "},
		"bad port":         {"PORT": "http"},
		"bad level":        {"LOG_LEVEL": "verbose"},
		"zero failures":    {"BREAKER_MAX_FAILURES": "0"},
		"bad failures":     {"BREAKER_MAX_FAILURES": "many"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(envMap(env))
			assert.Error(t, err)
		})
	}
}
