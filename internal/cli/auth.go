package cli

import (
	"tickets-cli/internal/session"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := app.Client()
			token, u, err := c.Login(cmd.Context(), user, pass)
			if err != nil {
				return writeErr(cmd, err)
			}

			// Role names come from a separate catalog. A catalog failure
			// must not block login; route checks fail closed on the empty
			// map until the next successful login.
			roleMap := map[string]int{}
			if roles, err := c.Roles(cmd.Context()); err == nil {
				roleMap = session.BuildRoleMap(roles)
			} else {
				app.Log.Warn().Err(err).Msg("role catalog unavailable; saving session without role map")
			}

			if err := app.Sessions.Save(token, u, roleMap); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": u})
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Login name")
	cmd.Flags().StringVar(&pass, "pass", "", "Password")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Sessions.Clear(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "logged out"})
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": s.User,
				"meta": map[string]any{"savedAt": s.SavedAt, "roles": s.RoleMap},
			})
		},
	}
}
