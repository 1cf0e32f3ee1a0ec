package cli

import (
	"tickets-cli/internal/model"
	"tickets-cli/internal/policy"

	"github.com/spf13/cobra"
)

func newUsersCmd(app *App) *cobra.Command {
	var supportOnly bool

	cmd := &cobra.Command{
		Use:   "users",
		Short: "User directory commands",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List users (support staff only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !policy.IsSupportRole(s.User.RoleID) {
				return writeErr(cmd, errPermission("list users", "support staff only"))
			}

			c := app.Client()
			var us []model.User
			if supportOnly {
				us, err = c.SupportUsers(cmd.Context())
			} else {
				us, err = c.Users(cmd.Context())
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": us,
				"meta": map[string]any{"total": len(us)},
			})
		},
	}
	list.Flags().BoolVar(&supportOnly, "support", false, "Only users eligible for ticket assignment")

	cmd.AddCommand(list)
	return cmd
}
