package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"tickets-cli/internal/api"
	"tickets-cli/internal/model"
	"tickets-cli/internal/poll"

	"github.com/spf13/cobra"
)

func newTicketsWatchCmd(app *App) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch <ticket-id>",
		Short: "Poll a ticket and print it whenever it changes (ctrl-c to stop)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSession(app); err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseID("ticket", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()

			c := app.Client()
			var last model.Ticket
			var have bool

			check := func(ctx context.Context) {
				t, err := c.Ticket(ctx, id)
				if err != nil {
					if errors.Is(err, api.ErrUnauthorized) {
						cancel()
						return
					}
					app.Log.Warn().Err(err).Int("ticket", id).Msg("poll failed")
					return
				}
				if have && !ticketChanged(last, t) {
					return
				}
				last, have = t, true
				_ = writeOut(cmd, app, map[string]any{"data": t})
			}

			check(ctx)
			stop := poll.Start(ctx, interval, check)
			defer stop()

			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 3*time.Second, "Poll interval")
	return cmd
}

func ticketChanged(a, b model.Ticket) bool {
	return a.Status != b.Status ||
		a.AssignedUserID != b.AssignedUserID ||
		a.Description != b.Description ||
		a.Title != b.Title ||
		a.Active != b.Active ||
		!timePtrEqual(a.CompletedAt, b.CompletedAt)
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
