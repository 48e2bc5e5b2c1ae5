package weather

import (
	"errors"
	"fmt"
)

// User-facing messages for failed lookups.
const (
	MessageLocationNotFound = "City not found. Please enter a valid city name."
	MessageFetchFailed      = "Failed to fetch weather data."
)

var (
	// ErrEmptyQuery is returned when a lookup is requested for a blank city.
	ErrEmptyQuery = errors.New("city must not be empty")
	// ErrLocationNotFound is the provider's "unknown location" signal (HTTP 400).
	ErrLocationNotFound = errors.New("location not found")
	// ErrMalformedResponse is returned when a 2xx body lacks the expected shape.
	ErrMalformedResponse = errors.New("malformed provider response")
)

// StatusError reports a non-2xx provider status other than 400.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider returned status %d", e.Code)
}

// Failure is the user-visible classification of a lookup error.
type Failure int

const (
	FailureNone Failure = iota
	FailureLocationNotFound
	FailureTransport
)

// Classify maps any lookup error onto the failure taxonomy.
// Everything that is not a location-not-found signal is a transport failure.
func Classify(err error) Failure {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrLocationNotFound):
		return FailureLocationNotFound
	default:
		return FailureTransport
	}
}

// Message returns the text shown to the user for f.
func (f Failure) Message() string {
	switch f {
	case FailureNone:
		return ""
	case FailureLocationNotFound:
		return MessageLocationNotFound
	default:
		return MessageFetchFailed
	}
}

func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureLocationNotFound:
		return "not_found"
	default:
		return "failed"
	}
}
