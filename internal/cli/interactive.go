package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
)

func newInteractiveCommand(current func() *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Type a city per line; the panel re-renders on every change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := current()
			return runInteractive(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), rt.newDashboard(""))
		},
	}
}

// runInteractive treats every input line as an edit followed by a submit.
// Panels are printed as they change while input keeps being read. At EOF it
// waits for outstanding fetches so the last panel printed is the final one.
func runInteractive(ctx context.Context, in io.Reader, out io.Writer, board *dashboard.Dashboard) error {
	views, _ := board.Subscribe()

	printed := make(chan error, 1)
	go func() {
		type frame struct {
			city  string
			panel dashboard.Panel
		}
		var (
			last    frame
			lastErr error
			first   = true
		)
		for v := range views {
			f := frame{city: v.City, panel: v.Panel()}
			// Draft edits alone do not change what is rendered.
			if (!first && f == last) || lastErr != nil {
				continue
			}
			first, last = false, f
			if v.State.IsLoading() {
				_, lastErr = fmt.Fprintf(out, "[%s] ", v.City)
			}
			if lastErr == nil {
				lastErr = dashboard.RenderText(out, v)
			}
		}
		printed <- lastErr
	}()

	if err := board.Mount(ctx); err != nil {
		board.Unmount()
		<-printed
		return err
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		board.UpdateDraft(scanner.Text())
		board.Submit()
	}
	scanErr := scanner.Err()

	board.Wait()
	board.Unmount()
	if err := <-printed; err != nil {
		return err
	}
	return scanErr
}
