package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newCommentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Ticket comment commands",
	}
	cmd.AddCommand(newCommentsListCmd(app))
	cmd.AddCommand(newCommentsAddCmd(app))
	return cmd
}

func newCommentsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <ticket-id>",
		Short: "List comments for a ticket, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSession(app); err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseID("ticket", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			cs, err := app.Client().Comments(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": cs,
				"meta": map[string]any{"total": len(cs)},
			})
		},
	}
}

func newCommentsAddCmd(app *App) *cobra.Command {
	var body string

	cmd := &cobra.Command{
		Use:   "add <ticket-id>",
		Short: "Add a comment to a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseID("ticket", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			body = strings.TrimSpace(body)
			if body == "" {
				return writeErr(cmd, errPermission("add comment", "empty body"))
			}
			if err := app.Client().AddComment(cmd.Context(), id, s.User.ID, body); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"ticket": id, "comment": body}})
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "Comment body")
	_ = cmd.MarkFlagRequired("body")
	return cmd
}
