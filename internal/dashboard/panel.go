package dashboard

import (
	"strconv"
)

// PanelKind selects which part of the display region is visible.
type PanelKind string

const (
	PanelLoading PanelKind = "loading"
	PanelError   PanelKind = "error"
	PanelData    PanelKind = "data"
)

// LoadingText is shown while a fetch is in flight.
const LoadingText = "Loading..."

// Panel is the display region derived from a View: exactly one of the
// loading indicator, the error message or the data fields.
type Panel struct {
	Kind        PanelKind `json:"kind"`
	Message     string    `json:"message,omitempty"`
	Heading     string    `json:"heading,omitempty"`
	Temperature string    `json:"temperature,omitempty"`
	Description string    `json:"description,omitempty"`
	Humidity    string    `json:"humidity,omitempty"`
	WindSpeed   string    `json:"windSpeed,omitempty"`
}

// Panel renders v's display region.
func (v View) Panel() Panel {
	switch v.State.Status {
	case StatusError:
		return Panel{Kind: PanelError, Message: v.State.Message}
	case StatusReady:
		if v.State.Snapshot == nil {
			return Panel{Kind: PanelLoading, Message: LoadingText}
		}
		s := v.State.Snapshot
		return Panel{
			Kind:        PanelData,
			Heading:     v.City,
			Temperature: formatNumber(s.Temperature) + "°C",
			Description: s.Description,
			Humidity:    "Humidity: " + strconv.Itoa(s.Humidity) + "%",
			WindSpeed:   "Wind Speed: " + formatNumber(s.WindSpeed) + " kph",
		}
	default:
		return Panel{Kind: PanelLoading, Message: LoadingText}
	}
}

// formatNumber prints the shortest decimal that round-trips: 18.5, 18, -3.25.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
