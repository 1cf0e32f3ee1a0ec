package tui

import (
	"context"
	"fmt"
	"strings"

	"tickets-cli/internal/api"
	"tickets-cli/internal/model"
	"tickets-cli/internal/policy"
	"tickets-cli/internal/transition"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// taskDetail mirrors ticketDetail for the my-tasks views: a staged status
// picker over the task status table, no assignment or comments.
type taskDetail struct {
	gen int
	t   model.Task

	statusCtl *transition.Controller

	picker  list.Model
	picking bool

	errMsg string
}

func (m *appModel) openTask(t model.Task) tea.Cmd {
	m.gen++
	m.taskDetail = &taskDetail{
		gen:       m.gen,
		t:         t,
		statusCtl: transition.New(int(t.Status)),
		picker:    newList(nil),
	}
	return entityTick(m.gen)
}

func (m *appModel) closeTask() tea.Cmd {
	m.gen++
	m.taskDetail = nil
	return m.navigate("/my-tasks")
}

func (m *appModel) updateTaskDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	d := m.taskDetail

	key, isKey := msg.(tea.KeyMsg)
	if !isKey {
		return m, nil
	}

	if d.picking {
		switch key.String() {
		case "esc":
			d.picking = false
			return m, nil
		case "enter":
			if it, ok := d.picker.SelectedItem().(statusOptionItem); ok {
				d.statusCtl.Stage(int(it.s.ID))
			}
			d.picking = false
			return m, nil
		}
		var cmd tea.Cmd
		d.picker, cmd = d.picker.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "esc", "backspace":
		return m, m.closeTask()
	case "s":
		if !policy.CanEditTaskStatus(d.t, m.user.ID) {
			d.errMsg = "you cannot change this task's status"
			return m, nil
		}
		opts := transition.Selectable(transition.EntityTask, m.statuses)
		items := make([]list.Item, 0, len(opts))
		for _, s := range opts {
			items = append(items, statusOptionItem{s: s})
		}
		d.picker.SetItems(items)
		d.picker.SetSize(m.width-4, pickerHeight(len(items), m.height))
		d.picking = true
		d.errMsg = ""
		return m, nil
	case "y":
		if d.statusCtl.State() == transition.PendingChange {
			return m, commitTaskStatusCmd(m.client, d)
		}
		return m, nil
	case "u":
		d.statusCtl.Abandon()
		d.errMsg = ""
		return m, nil
	}
	return m, nil
}

type taskRefreshedMsg struct {
	gen int
	t   model.Task
	ok  bool
	err error
}

// refreshTaskCmd re-reads the task from whichever list the API serves it on;
// there is no task-by-id endpoint.
func refreshTaskCmd(c *api.Client, t model.Task, userID, gen int) tea.Cmd {
	return func() tea.Msg {
		var ts []model.Task
		var err error
		switch {
		case t.Kind == model.TaskAssigned && t.AssignedUserID == userID:
			ts, err = c.AssignedToMe(context.Background())
		case t.Kind == model.TaskAssigned:
			ts, err = c.AssignedByMe(context.Background())
		default:
			ts, err = c.PersonalTasks(context.Background())
		}
		if err != nil {
			return taskRefreshedMsg{gen: gen, err: err}
		}
		for _, x := range ts {
			if x.ID == t.ID {
				return taskRefreshedMsg{gen: gen, t: x, ok: true}
			}
		}
		return taskRefreshedMsg{gen: gen}
	}
}

func (d *taskDetail) applyRefresh(t model.Task) {
	d.t = t
	d.statusCtl.Reconcile(int(t.Status))
}

func commitTaskStatusCmd(c *api.Client, d *taskDetail) tea.Cmd {
	t := d.t
	ctl := d.statusCtl
	gen := d.gen
	return func() tea.Msg {
		err := ctl.Commit(context.Background(), func(ctx context.Context, candidate int) error {
			next := model.StatusID(candidate)
			completion := transition.CompletionDate(next)
			if t.Kind == model.TaskAssigned {
				return c.UpdateAssignedTaskStatus(ctx, t.ID, next, completion)
			}
			return c.UpdatePersonalTask(ctx, t.ID, api.UpdateTaskInput{
				Description:    t.Description,
				Status:         next,
				CompletionDate: completion,
				Active:         t.Active,
			})
		})
		return commitDoneMsg{gen: gen, err: err}
	}
}

func (m *appModel) viewTaskDetail() string {
	d := m.taskDetail

	var b strings.Builder
	title := strings.TrimSpace(d.t.Title)
	if title == "" {
		title = firstLine(d.t.Description)
	}
	kind := "personal"
	if d.t.Kind == model.TaskAssigned {
		kind = "delegated"
	}
	b.WriteString(styleHeader().Render(fmt.Sprintf("#%d  %s", d.t.ID, title)) + "\n")
	b.WriteString(styleMuted().Render(kind+" task") + "\n")

	b.WriteString("status: " + renderStatusBadge(model.StatusID(d.statusCtl.Committed())))
	if d.statusCtl.State() == transition.PendingChange {
		b.WriteString("  " + styleStaged().Render("-> "+model.StatusID(d.statusCtl.Candidate()).String()+" (unsaved)"))
	} else if d.statusCtl.State() == transition.Committing {
		b.WriteString("  " + styleMuted().Render("saving..."))
	}
	b.WriteString("\n")

	b.WriteString("\n" + renderMarkdown(d.t.Description, m.width-4) + "\n")

	if d.errMsg != "" {
		b.WriteString("\n" + styleError().Render(d.errMsg) + "\n")
	}
	if d.picking {
		b.WriteString("\n" + styleHeader().Render("pick a status") + "\n" + d.picker.View())
	}
	return b.String()
}
