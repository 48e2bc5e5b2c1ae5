package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/weather-dashboard/internal/api/http"
)

func newServeCommand(current func() *runtime) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard page and its JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := current()
			if cmd.Flags().Changed("port") {
				rt.cfg.Port = port
				if err := rt.cfg.Validate(); err != nil {
					return err
				}
			}

			// Wait for termination signal
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			board := rt.newDashboard("")
			if err := board.Mount(ctx); err != nil {
				return err
			}
			defer board.Unmount()

			app := httpapi.NewApp(board, rt.service, rt.registry)

			errCh := make(chan error, 1)
			go func() {
				rt.logger.Info("weather-dashboard started", "port", rt.cfg.Port, "city", board.View().City)
				errCh <- app.Listen(":" + rt.cfg.Port)
			}()

			select {
			case err := <-errCh:
				return fmt.Errorf("fiber server stopped: %w", err)
			case <-ctx.Done():
			}

			rt.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := httpapi.Shutdown(shutdownCtx, app, board); err != nil {
				rt.logger.Error("error during shutdown", "error", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	return cmd
}
