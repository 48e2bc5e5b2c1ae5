package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// DefaultWeatherAPIBaseURL is the public WeatherAPI.com endpoint root.
const DefaultWeatherAPIBaseURL = "https://api.weatherapi.com"

// WeatherAPIProvider implements the weather.Provider interface for WeatherAPI.com.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// WeatherAPIOptions configures a WeatherAPIProvider.
type WeatherAPIOptions struct {
	// BaseURL defaults to DefaultWeatherAPIBaseURL.
	BaseURL string
	HTTP    HTTPClientConfig
	Logger  *slog.Logger
}

// NewWeatherAPIProvider builds a provider for the given credential. The key is
// not validated here; a missing or wrong key surfaces as a provider auth error.
func NewWeatherAPIProvider(apiKey string, opts WeatherAPIOptions) *WeatherAPIProvider {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultWeatherAPIBaseURL
	}
	client := opts.HTTP.Client
	if client == nil {
		client = &http.Client{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		circuit: newCircuitBreaker("weatherapi", opts.HTTP.Breaker, logger),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

// CurrentURL returns the current-conditions request URL for city.
func (p *WeatherAPIProvider) CurrentURL(city string) string {
	values := url.Values{}
	values.Set("key", p.apiKey)
	values.Set("q", city)
	values.Set("aqi", "no")
	return fmt.Sprintf("%s/v1/current.json?%s", p.baseURL, values.Encode())
}

type currentPayload struct {
	Current *struct {
		TempC     float64 `json:"temp_c"`
		Humidity  int     `json:"humidity"`
		WindKph   float64 `json:"wind_kph"`
		Condition *struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
}

func (p *WeatherAPIProvider) Current(ctx context.Context, loc weather.Location) (weather.WeatherSnapshot, error) {
	resp, err := doRequest(ctx, p.client, p.circuit, p.CurrentURL(loc.City))
	if err != nil {
		return weather.WeatherSnapshot{}, err
	}
	defer resp.Body.Close()

	var payload currentPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.WeatherSnapshot{}, fmt.Errorf("%w: %v", weather.ErrMalformedResponse, err)
	}
	if payload.Current == nil {
		return weather.WeatherSnapshot{}, fmt.Errorf("%w: missing current", weather.ErrMalformedResponse)
	}
	if payload.Current.Condition == nil {
		return weather.WeatherSnapshot{}, fmt.Errorf("%w: missing current.condition", weather.ErrMalformedResponse)
	}

	return weather.WeatherSnapshot{
		Temperature: payload.Current.TempC,
		Description: payload.Current.Condition.Text,
		Humidity:    payload.Current.Humidity,
		WindSpeed:   payload.Current.WindKph,
	}, nil
}
