package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newCatalogsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalogs",
		Short: "Reference data (roles, branches, departments, statuses, task types)",
	}

	add := func(use string, fetch func(ctx context.Context) (any, error)) {
		cmd.AddCommand(&cobra.Command{
			Use:   use,
			Short: "List the " + use + " catalog",
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := requireSession(app); err != nil {
					return writeErr(cmd, err)
				}
				v, err := fetch(cmd.Context())
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": v})
			},
		})
	}

	add("roles", func(ctx context.Context) (any, error) { return app.Client().Roles(ctx) })
	add("branches", func(ctx context.Context) (any, error) { return app.Client().Branches(ctx) })
	add("departments", func(ctx context.Context) (any, error) { return app.Client().Departments(ctx) })
	add("statuses", func(ctx context.Context) (any, error) { return app.Client().Statuses(ctx) })
	add("task-types", func(ctx context.Context) (any, error) { return app.Client().TaskTypes(ctx) })

	return cmd
}
