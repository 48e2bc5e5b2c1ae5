package cli

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/i474232898/weather-dashboard/internal/config"
	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/metrics"
	"github.com/i474232898/weather-dashboard/internal/weather"
	"github.com/i474232898/weather-dashboard/internal/weather/providers"
)

// runtime is what every subcommand needs once configuration is loaded.
type runtime struct {
	cfg      *config.AppConfig
	logger   *slog.Logger
	registry *prometheus.Registry
	recorder *metrics.Recorder
	service  *weather.Service
}

func newRuntime(cfg *config.AppConfig) *runtime {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provider := providers.NewWeatherAPIProvider(cfg.WeatherAPIKey, providers.WeatherAPIOptions{
		BaseURL: cfg.WeatherAPIBaseURL,
		HTTP: providers.HTTPClientConfig{
			Client: httpClient,
			Breaker: providers.BreakerConfig{
				MaxConsecutiveFailures: cfg.BreakerMaxFailures,
				OpenTimeout:            cfg.BreakerOpenTimeout,
			},
		},
		Logger: logger,
	})

	registry := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(registry)

	return &runtime{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		recorder: recorder,
		service:  weather.NewService(provider, weather.WithObserver(recorder), weather.WithLogger(logger)),
	}
}

func (rt *runtime) newDashboard(city string) *dashboard.Dashboard {
	city = strings.TrimSpace(city)
	if city == "" {
		city = rt.cfg.DefaultCity
	}
	return dashboard.New(rt.service,
		dashboard.WithInitialCity(city),
		dashboard.WithObserver(rt.recorder),
		dashboard.WithLogger(rt.logger),
	)
}

// NewRootCommand builds the weather-dashboard command tree.
func NewRootCommand() *cobra.Command {
	var (
		rt   *runtime
		city string
	)

	root := &cobra.Command{
		Use:           "weather-dashboard",
		Short:         "Current weather for a city, in the browser or the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("city") {
				cfg.DefaultCity = strings.TrimSpace(city)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			rt = newRuntime(cfg)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&city, "city", "", "city committed when the dashboard mounts (overrides DEFAULT_CITY)")

	current := func() *runtime { return rt }
	root.AddCommand(
		newServeCommand(current),
		newLookupCommand(current),
		newInteractiveCommand(current),
	)
	return root
}
