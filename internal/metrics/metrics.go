package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Fetch outcome label values.
const (
	OutcomeReady     = "ready"
	OutcomeNotFound  = "not_found"
	OutcomeFailed    = "failed"
	OutcomeDiscarded = "discarded"
)

// Recorder holds the dashboard's Prometheus collectors. It satisfies both
// weather.Observer and dashboard.Observer.
type Recorder struct {
	fetches  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_dashboard",
			Name:      "fetch_total",
			Help:      "Weather lookups by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_dashboard",
			Name:      "fetch_duration_seconds",
			Help:      "Time spent waiting on the weather provider.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
	}
	reg.MustRegister(r.fetches, r.duration)
	return r
}

func (r *Recorder) ObserveLookup(provider string, failure weather.Failure, elapsedSeconds float64) {
	r.fetches.WithLabelValues(outcome(failure)).Inc()
	r.duration.WithLabelValues(provider).Observe(elapsedSeconds)
}

func (r *Recorder) ObserveDiscarded() {
	r.fetches.WithLabelValues(OutcomeDiscarded).Inc()
}

func outcome(f weather.Failure) string {
	switch f {
	case weather.FailureNone:
		return OutcomeReady
	case weather.FailureLocationNotFound:
		return OutcomeNotFound
	default:
		return OutcomeFailed
	}
}
