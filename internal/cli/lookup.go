package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
)

func newLookupCommand(current func() *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup [city]",
		Short: "Print the current weather for one city and exit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := current()
			city := ""
			if len(args) == 1 {
				city = args[0]
			}
			return runLookup(cmd.Context(), cmd.OutOrStdout(), rt.newDashboard(city))
		},
	}
}

// runLookup mounts board, waits for the first fetch to settle and prints the
// panel. An error panel is also returned as an error for the exit status.
func runLookup(ctx context.Context, out io.Writer, board *dashboard.Dashboard) error {
	if err := board.Mount(ctx); err != nil {
		return err
	}
	defer board.Unmount()
	board.Wait()

	v := board.View()
	if err := dashboard.RenderText(out, v); err != nil {
		return err
	}
	if v.State.IsError() {
		return errors.New(v.State.Message)
	}
	return nil
}
