package weather

import (
	"context"
)

// Provider abstracts a current-conditions weather source (e.g. WeatherAPI).
type Provider interface {
	Name() string
	Current(ctx context.Context, loc Location) (WeatherSnapshot, error)
}

// Observer receives the outcome of every lookup performed by a Service.
type Observer interface {
	ObserveLookup(provider string, failure Failure, elapsedSeconds float64)
}
