package cli

import (
	"time"

	"tickets-cli/internal/api"
	"tickets-cli/internal/model"
	"tickets-cli/internal/policy"
	"tickets-cli/internal/transition"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Personal and delegated task commands",
	}
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksCreateCmd(app))
	cmd.AddCommand(newTasksUpdateCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))
	cmd.AddCommand(newTasksSetStatusCmd(app))
	cmd.AddCommand(newTasksDelegateCmd(app))
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var assignedToMe, assignedByMe bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks (personal by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSession(app); err != nil {
				return writeErr(cmd, err)
			}
			c := app.Client()

			var ts []model.Task
			var err error
			switch {
			case assignedToMe:
				ts, err = c.AssignedToMe(cmd.Context())
			case assignedByMe:
				ts, err = c.AssignedByMe(cmd.Context())
			default:
				ts, err = c.PersonalTasks(cmd.Context())
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": ts,
				"meta": map[string]any{"total": len(ts)},
			})
		},
	}

	cmd.Flags().BoolVar(&assignedToMe, "assigned-to-me", false, "Tasks delegated to me")
	cmd.Flags().BoolVar(&assignedByMe, "assigned-by-me", false, "Tasks I delegated to others")
	cmd.MarkFlagsMutuallyExclusive("assigned-to-me", "assigned-by-me")
	return cmd
}

func newTasksCreateCmd(app *App) *cobra.Command {
	var title, description string
	var typeID int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a personal task",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSession(app); err != nil {
				return writeErr(cmd, err)
			}
			in := api.CreateTaskInput{
				Title:       title,
				Description: description,
				TypeID:      typeID,
				Status:      model.StatusPending,
				StartDate:   time.Now().UTC(),
			}
			t, err := app.Client().CreatePersonalTask(cmd.Context(), in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().IntVar(&typeID, "type", 0, "Task type id")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTasksDelegateCmd(app *App) *cobra.Command {
	var title, description string
	var typeID, targetUserID int

	cmd := &cobra.Command{
		Use:   "delegate",
		Short: "Create a task assigned to another user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSession(app); err != nil {
				return writeErr(cmd, err)
			}
			in := api.CreateAssignedTaskInput{
				Title:          title,
				Description:    description,
				TypeID:         typeID,
				Status:         model.StatusPending,
				StartDate:      time.Now().UTC(),
				AssignedUserID: targetUserID,
			}
			t, err := app.Client().CreateAssignedTask(cmd.Context(), in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().IntVar(&typeID, "type", 0, "Task type id")
	cmd.Flags().IntVar(&targetUserID, "to", 0, "Assignee user id")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newTasksUpdateCmd(app *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update a personal task's description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseID("task", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c := app.Client()
			t, err := findPersonalTask(cmd, c, id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !policy.CanEditTaskContent(t, s.User.ID) {
				return writeErr(cmd, errPermission("edit task", "only the creator may edit"))
			}
			in := api.UpdateTaskInput{
				Description:    description,
				Status:         t.Status,
				CompletionDate: t.CompletedAt,
				Active:         t.Active,
			}
			if err := c.UpdatePersonalTask(cmd.Context(), id, in); err != nil {
				return writeErr(cmd, err)
			}
			t.Description = description
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "New description")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a personal task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseID("task", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c := app.Client()
			t, err := findPersonalTask(cmd, c, id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !policy.CanEditTaskContent(t, s.User.ID) {
				return writeErr(cmd, errPermission("delete task", "only the creator may delete"))
			}
			if err := c.DeletePersonalTask(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]int{"deleted": id}})
		},
	}
}

func newTasksSetStatusCmd(app *App) *cobra.Command {
	var statusID int

	cmd := &cobra.Command{
		Use:   "set-status <task-id>",
		Short: "Move a task to a new status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseID("task", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			next := model.StatusID(statusID)
			if !transition.SelectableID(transition.EntityTask, next) {
				return writeErr(cmd, errPermission("set status", "status is not user-selectable for tasks"))
			}

			c := app.Client()
			t, err := findTask(cmd, c, id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !policy.CanEditTaskStatus(t, s.User.ID) {
				return writeErr(cmd, errPermission("set status", "not the responsible user for this task"))
			}

			completion := transition.CompletionDate(next)
			if t.Kind == model.TaskAssigned {
				err = c.UpdateAssignedTaskStatus(cmd.Context(), id, next, completion)
			} else {
				err = c.UpdatePersonalTask(cmd.Context(), id, api.UpdateTaskInput{
					Description:    t.Description,
					Status:         next,
					CompletionDate: completion,
					Active:         t.Active,
				})
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			t.Status = next
			t.CompletedAt = completion
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	cmd.Flags().IntVar(&statusID, "status", 0, "New status id")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}

func findPersonalTask(cmd *cobra.Command, c *api.Client, id int) (model.Task, error) {
	ts, err := c.PersonalTasks(cmd.Context())
	if err != nil {
		return model.Task{}, err
	}
	for _, t := range ts {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Task{}, errNotFound("task", id)
}

// findTask searches the three task lists the API exposes. There is no
// GET-by-id endpoint for tasks.
func findTask(cmd *cobra.Command, c *api.Client, id int) (model.Task, error) {
	lists := []func() ([]model.Task, error){
		func() ([]model.Task, error) { return c.PersonalTasks(cmd.Context()) },
		func() ([]model.Task, error) { return c.AssignedToMe(cmd.Context()) },
		func() ([]model.Task, error) { return c.AssignedByMe(cmd.Context()) },
	}
	for _, fetch := range lists {
		ts, err := fetch()
		if err != nil {
			return model.Task{}, err
		}
		for _, t := range ts {
			if t.ID == id {
				return t, nil
			}
		}
	}
	return model.Task{}, errNotFound("task", id)
}
