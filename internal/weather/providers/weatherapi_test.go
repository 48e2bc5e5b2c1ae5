package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

const partlyCloudy = `{"location":{"name":"London"},"current":{"temp_c":18.5,"condition":{"text":"Partly cloudy"},"humidity":60,"wind_kph":11.2}}`

func newTestProvider(t *testing.T, handler http.HandlerFunc, breaker BreakerConfig) (*WeatherAPIProvider, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p := NewWeatherAPIProvider("test-key", WeatherAPIOptions{
		BaseURL: srv.URL,
		HTTP: HTTPClientConfig{
			Client:  srv.Client(),
			Breaker: breaker,
		},
	})
	return p, srv
}

func TestWeatherAPICurrentSuccess(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/current.json", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "London", r.URL.Query().Get("q"))
		assert.Equal(t, "no", r.URL.Query().Get("aqi"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, partlyCloudy)
	}, BreakerConfig{})

	snap, err := p.Current(context.Background(), weather.Location{City: "London"})
	require.NoError(t, err)
	assert.Equal(t, weather.WeatherSnapshot{
		Temperature: 18.5,
		Description: "Partly cloudy",
		Humidity:    60,
		WindSpeed:   11.2,
	}, snap)
}

func TestWeatherAPIEncodesCity(t *testing.T) {
	p := NewWeatherAPIProvider("k&y", WeatherAPIOptions{BaseURL: "https://example.test/"})

	assert.Equal(t,
		"https://example.test/v1/current.json?aqi=no&key=k%26y&q=S%C3%A3o+Paulo%26x",
		p.CurrentURL("São Paulo&x"),
	)
}

func TestWeatherAPIStatusClassification(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		failure weather.Failure
	}{
		{name: "unknown location", status: http.StatusBadRequest, body: `{"error":{"code":1006}}`, wantErr: weather.ErrLocationNotFound, failure: weather.FailureLocationNotFound},
		{name: "bad key", status: http.StatusUnauthorized, failure: weather.FailureTransport},
		{name: "forbidden", status: http.StatusForbidden, failure: weather.FailureTransport},
		{name: "server error", status: http.StatusInternalServerError, failure: weather.FailureTransport},
		{name: "malformed body", status: http.StatusOK, body: `{"current":`, wantErr: weather.ErrMalformedResponse, failure: weather.FailureTransport},
		{name: "missing current", status: http.StatusOK, body: `{"location":{}}`, wantErr: weather.ErrMalformedResponse, failure: weather.FailureTransport},
		{name: "missing condition", status: http.StatusOK, body: `{"current":{"temp_c":1}}`, wantErr: weather.ErrMalformedResponse, failure: weather.FailureTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}, BreakerConfig{})

			_, err := p.Current(context.Background(), weather.Location{City: "Pariss"})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, tt.failure, weather.Classify(err))

			var statusErr *weather.StatusError
			if tt.status != http.StatusOK && tt.status != http.StatusBadRequest {
				require.True(t, errors.As(err, &statusErr))
				assert.Equal(t, tt.status, statusErr.Code)
			}
		})
	}
}

func TestWeatherAPINetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	p := NewWeatherAPIProvider("test-key", WeatherAPIOptions{BaseURL: baseURL})
	_, err := p.Current(context.Background(), weather.Location{City: "London"})
	require.Error(t, err)
	assert.Equal(t, weather.FailureTransport, weather.Classify(err))
}

func TestWeatherAPIUnknownCityDoesNotTripBreaker(t *testing.T) {
	var calls atomic.Int32
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}, BreakerConfig{MaxConsecutiveFailures: 2, OpenTimeout: time.Minute})

	for i := 0; i < 5; i++ {
		_, err := p.Current(context.Background(), weather.Location{City: "Pariss"})
		assert.ErrorIs(t, err, weather.ErrLocationNotFound)
	}
	assert.Equal(t, int32(5), calls.Load())
}

func TestWeatherAPIBreakerOpensOnServerErrors(t *testing.T) {
	var calls atomic.Int32
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, BreakerConfig{MaxConsecutiveFailures: 2, OpenTimeout: time.Minute})

	for i := 0; i < 2; i++ {
		_, err := p.Current(context.Background(), weather.Location{City: "London"})
		require.Error(t, err)
	}

	_, err := p.Current(context.Background(), weather.Location{City: "London"})
	assert.ErrorIs(t, err, errCircuitOpen)
	assert.Equal(t, weather.FailureTransport, weather.Classify(err))
	assert.Equal(t, int32(2), calls.Load(), "open breaker must not reach the provider")
}
