package dashboard

import (
	"fmt"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Status tags a RequestState. Exactly one status is active at any instant.
type Status int

const (
	StatusLoading Status = iota
	StatusError
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusReady:
		return "ready"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name produced by MarshalText.
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "loading":
		*s = StatusLoading
	case "error":
		*s = StatusError
	case "ready":
		*s = StatusReady
	default:
		return fmt.Errorf("unknown status %q", text)
	}
	return nil
}

// RequestState is the outcome of the latest fetch attempt.
// Message is set only for StatusError and Snapshot only for StatusReady.
type RequestState struct {
	Status   Status                   `json:"status"`
	Message  string                   `json:"error,omitempty"`
	Snapshot *weather.WeatherSnapshot `json:"weather,omitempty"`
}

// Loading is the state of an attempt whose response has not arrived.
func Loading() RequestState {
	return RequestState{Status: StatusLoading}
}

// Failed is the state of an attempt that ended with a user-facing message.
func Failed(message string) RequestState {
	return RequestState{Status: StatusError, Message: message}
}

// Ready is the state of an attempt that produced a snapshot.
func Ready(snapshot weather.WeatherSnapshot) RequestState {
	return RequestState{Status: StatusReady, Snapshot: &snapshot}
}

func (s RequestState) IsLoading() bool { return s.Status == StatusLoading }

func (s RequestState) IsError() bool { return s.Status == StatusError }

func (s RequestState) IsReady() bool { return s.Status == StatusReady }

// copyState detaches the snapshot so callers cannot mutate component state.
func copyState(s RequestState) RequestState {
	if s.Snapshot != nil {
		snap := *s.Snapshot
		s.Snapshot = &snap
	}
	return s
}
