package weather

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Service resolves current weather for a city through a single provider.
type Service struct {
	provider Provider
	observer Observer
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithObserver reports every lookup outcome to o.
func WithObserver(o Observer) ServiceOption {
	return func(s *Service) { s.observer = o }
}

// WithLogger sets the logger used for lookup diagnostics. A nil logger is ignored.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a new Service.
func NewService(provider Provider, opts ...ServiceOption) *Service {
	s := &Service{
		provider: provider,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lookup fetches the current weather for city. Surrounding whitespace is
// trimmed; a blank city returns ErrEmptyQuery without contacting the provider.
func (s *Service) Lookup(ctx context.Context, city string) (WeatherSnapshot, error) {
	loc := Location{City: strings.TrimSpace(city)}
	if loc.City == "" {
		return WeatherSnapshot{}, ErrEmptyQuery
	}
	if s.provider == nil {
		return WeatherSnapshot{}, fmt.Errorf("no weather provider configured")
	}

	start := time.Now()
	snapshot, err := s.provider.Current(ctx, loc)
	elapsed := time.Since(start)

	failure := Classify(err)
	if s.observer != nil {
		s.observer.ObserveLookup(s.provider.Name(), failure, elapsed.Seconds())
	}

	if err != nil {
		s.logger.Warn("weather lookup failed",
			"provider", s.provider.Name(),
			"city", loc.Key(),
			"failure", failure.String(),
			"error", err,
		)
		return WeatherSnapshot{}, fmt.Errorf("%s lookup for %q: %w", s.provider.Name(), loc.Key(), err)
	}

	s.logger.Debug("weather lookup succeeded",
		"provider", s.provider.Name(),
		"city", loc.Key(),
		"elapsed", elapsed,
	)
	return snapshot, nil
}
