package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/config"
	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

type tableFetcher map[string]weather.WeatherSnapshot

func (f tableFetcher) Lookup(_ context.Context, city string) (weather.WeatherSnapshot, error) {
	snap, ok := f[city]
	if !ok {
		return weather.WeatherSnapshot{}, weather.ErrLocationNotFound
	}
	return snap, nil
}

var cities = tableFetcher{
	"London": {Temperature: 18.5, Description: "Partly cloudy", Humidity: 60, WindSpeed: 11.2},
	"Paris":  {Temperature: 21, Description: "Sunny", Humidity: 40, WindSpeed: 7.6},
}

func TestRunLookupPrintsPanel(t *testing.T) {
	var out bytes.Buffer
	err := runLookup(context.Background(), &out, dashboard.New(cities))
	require.NoError(t, err)
	assert.Equal(t, "London\n  18.5°C\n  Partly cloudy\n  Humidity: 60%\n  Wind Speed: 11.2 kph\n", out.String())
}

func TestRunLookupUnknownCity(t *testing.T) {
	var out bytes.Buffer
	err := runLookup(context.Background(), &out, dashboard.New(cities, dashboard.WithInitialCity("Pariss")))
	require.Error(t, err)
	assert.Equal(t, weather.MessageLocationNotFound, err.Error())
	assert.Equal(t, weather.MessageLocationNotFound+"\n", out.String())
}

func TestRunInteractiveEndsOnLatestCity(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("Pariss\n   \nParis\n")

	err := runInteractive(context.Background(), in, &out, dashboard.New(cities))
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Loading...\n")
	assert.True(t, strings.HasSuffix(text, "Paris\n  21°C\n  Sunny\n  Humidity: 40%\n  Wind Speed: 7.6 kph\n"), text)
}

func TestRunInteractiveEmptyInput(t *testing.T) {
	var out bytes.Buffer
	err := runInteractive(context.Background(), strings.NewReader(""), &out, dashboard.New(cities))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out.String(), "London\n  18.5°C\n  Partly cloudy\n  Humidity: 60%\n  Wind Speed: 11.2 kph\n"))
}

func TestNewDashboardBlankCityUsesConfiguredDefault(t *testing.T) {
	cfg, err := config.FromEnv(func(k string) string {
		if k == "DEFAULT_CITY" {
			return "Lisbon"
		}
		return ""
	})
	require.NoError(t, err)
	rt := newRuntime(cfg)

	assert.Equal(t, "Lisbon", rt.newDashboard("   ").View().City)
	assert.Equal(t, "Lisbon", rt.newDashboard("").View().City)
	assert.Equal(t, "Paris", rt.newDashboard(" Paris ").View().City)
}
