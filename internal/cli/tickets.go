package cli

import (
	"fmt"
	"strconv"
	"time"

	"tickets-cli/internal/api"
	"tickets-cli/internal/model"
	"tickets-cli/internal/policy"
	"tickets-cli/internal/transition"

	"github.com/spf13/cobra"
)

func newTicketsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "Ticket commands",
	}
	cmd.AddCommand(newTicketsListCmd(app))
	cmd.AddCommand(newTicketsShowCmd(app))
	cmd.AddCommand(newTicketsCreateCmd(app))
	cmd.AddCommand(newTicketsUpdateCmd(app))
	cmd.AddCommand(newTicketsAssignCmd(app))
	cmd.AddCommand(newTicketsWatchCmd(app))
	return cmd
}

func parseID(kind, arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id: %q", kind, arg)
	}
	return id, nil
}

func newTicketsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tickets",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSession(app); err != nil {
				return writeErr(cmd, err)
			}
			ts, err := app.Client().Tickets(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": ts,
				"meta": map[string]any{"total": len(ts)},
			})
		},
	}
}

func newTicketsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <ticket-id>",
		Short: "Show one ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSession(app); err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseID("ticket", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := app.Client().Ticket(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
}

func newTicketsCreateCmd(app *App) *cobra.Command {
	var title, description string
	var typeID, branchID, departmentID int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Raise a new ticket",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSession(app); err != nil {
				return writeErr(cmd, err)
			}
			in := api.CreateTicketInput{
				Title:        title,
				Description:  description,
				TypeID:       typeID,
				Status:       model.StatusPending,
				BranchID:     branchID,
				DepartmentID: departmentID,
				StartDate:    time.Now().UTC(),
			}
			t, err := app.Client().CreateTicket(cmd.Context(), in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Ticket title")
	cmd.Flags().StringVar(&description, "description", "", "Ticket description")
	cmd.Flags().IntVar(&typeID, "type", 0, "Task type id (see `tickets catalogs task-types`)")
	cmd.Flags().IntVar(&branchID, "branch", 0, "Branch id")
	cmd.Flags().IntVar(&departmentID, "department", 0, "Department id")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func newTicketsUpdateCmd(app *App) *cobra.Command {
	var description string
	var statusID int

	cmd := &cobra.Command{
		Use:   "update <ticket-id>",
		Short: "Update a ticket's description or status",
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
			c := app.Client()
			t, err := c.Ticket(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}

			// The server wants the full record back; start from the mirror.
			in := api.UpdateTicketInput{
				Title:          t.Title,
				Description:    t.Description,
				Status:         t.Status,
				BranchID:       t.BranchID,
				DepartmentID:   t.DepartmentID,
				CompletionDate: t.CompletedAt,
				Active:         t.Active,
			}

			if cmd.Flags().Changed("description") {
				if !policy.CanEditTicketContent(t, s.User.ID) {
					return writeErr(cmd, errPermission("edit ticket", "only the creator may edit an undelegated ticket"))
				}
				in.Description = description
			}
			if cmd.Flags().Changed("status") {
				next := model.StatusID(statusID)
				if !transition.SelectableID(transition.EntityTicket, next) {
					return writeErr(cmd, errPermission("set status", "status is not user-selectable for tickets"))
				}
				if !policy.CanEditTicketStatus(t, s.User.ID) {
					return writeErr(cmd, errPermission("set status", "only the assignee (or the raiser while untriaged) may move a ticket"))
				}
				in.Status = next
				in.CompletionDate = transition.CompletionDate(next)
			}

			if err := c.UpdateTicket(cmd.Context(), id, in); err != nil {
				return writeErr(cmd, err)
			}
			t, err = c.Ticket(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().IntVar(&statusID, "status", 0, "New status id")
	return cmd
}

func newTicketsAssignCmd(app *App) *cobra.Command {
	var targetUserID int

	cmd := &cobra.Command{
		Use:   "assign <ticket-id>",
		Short: "Assign a ticket to a support user",
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
			if !policy.DefaultConfig().CanAssign(s.User.ID, s.User.RoleID) {
				return writeErr(cmd, errPermission("assign ticket", "user is not on the assignment allow-list"))
			}
			if err := app.Client().AssignTicket(cmd.Context(), id, targetUserID); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]int{"ticket": id, "assignedTo": targetUserID}})
		},
	}

	cmd.Flags().IntVar(&targetUserID, "to", 0, "Target support user id (see `tickets users list --support`)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
