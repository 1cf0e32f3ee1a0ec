package tui

import (
	"context"
	"time"

	"tickets-cli/internal/api"
	"tickets-cli/internal/model"
	"tickets-cli/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	entityPollInterval  = 3 * time.Second
	commentPollInterval = 10 * time.Second
)

type loginDoneMsg struct {
	user model.User
	err  error
}

type ticketsLoadedMsg struct {
	tickets []model.Ticket
	err     error
}

type tasksLoadedMsg struct {
	tab   taskTab
	tasks []model.Task
	err   error
}

type usersLoadedMsg struct {
	users []model.User
	err   error
}

type catalogsLoadedMsg struct {
	statuses     []model.Status
	supportUsers []model.User
	err          error
}

type ticketLoadedMsg struct {
	gen    int
	ticket model.Ticket
	err    error
}

type commentsLoadedMsg struct {
	gen      int
	comments []model.Comment
	err      error
}

type filesLoadedMsg struct {
	gen   int
	files []model.FileInfo
	err   error
}

type commentPostedMsg struct {
	gen int
	err error
}

type commitDoneMsg struct {
	gen int
	err error
}

// entityTickMsg / commentTickMsg re-arm the detail-view pollers. gen ties a
// tick to the mount that scheduled it; ticks from an unmounted view are
// dropped and not re-armed, which is what stops the poller.
type entityTickMsg struct{ gen int }
type commentTickMsg struct{ gen int }

func entityTick(gen int) tea.Cmd {
	return tea.Tick(entityPollInterval, func(time.Time) tea.Msg { return entityTickMsg{gen: gen} })
}

func commentTick(gen int) tea.Cmd {
	return tea.Tick(commentPollInterval, func(time.Time) tea.Msg { return commentTickMsg{gen: gen} })
}

func loadTicketsCmd(c *api.Client) tea.Cmd {
	return func() tea.Msg {
		ts, err := c.Tickets(context.Background())
		return ticketsLoadedMsg{tickets: ts, err: err}
	}
}

func loadTasksCmd(c *api.Client, tab taskTab) tea.Cmd {
	return func() tea.Msg {
		var ts []model.Task
		var err error
		switch tab {
		case tabAssignedToMe:
			ts, err = c.AssignedToMe(context.Background())
		case tabDelegated:
			ts, err = c.AssignedByMe(context.Background())
		default:
			ts, err = c.PersonalTasks(context.Background())
		}
		return tasksLoadedMsg{tab: tab, tasks: ts, err: err}
	}
}

func loadUsersCmd(c *api.Client) tea.Cmd {
	return func() tea.Msg {
		us, err := c.Users(context.Background())
		return usersLoadedMsg{users: us, err: err}
	}
}

// loadCatalogsCmd fetches the pickers' reference data. A failure leaves the
// pickers empty rather than blocking the view.
func loadCatalogsCmd(c *api.Client) tea.Cmd {
	return func() tea.Msg {
		sts, err := c.Statuses(context.Background())
		if err != nil {
			return catalogsLoadedMsg{err: err}
		}
		sus, err := c.SupportUsers(context.Background())
		if err != nil {
			return catalogsLoadedMsg{statuses: sts, err: err}
		}
		return catalogsLoadedMsg{statuses: sts, supportUsers: sus}
	}
}

func loadTicketCmd(c *api.Client, id, gen int) tea.Cmd {
	return func() tea.Msg {
		t, err := c.Ticket(context.Background(), id)
		return ticketLoadedMsg{gen: gen, ticket: t, err: err}
	}
}

func loadCommentsCmd(c *api.Client, id, gen int) tea.Cmd {
	return func() tea.Msg {
		cs, err := c.Comments(context.Background(), id)
		return commentsLoadedMsg{gen: gen, comments: cs, err: err}
	}
}

func loadFilesCmd(c *api.Client, id, gen int) tea.Cmd {
	return func() tea.Msg {
		fs, err := c.Files(context.Background(), id)
		return filesLoadedMsg{gen: gen, files: fs, err: err}
	}
}

func postCommentCmd(c *api.Client, ticketID, authorID int, body string, gen int) tea.Cmd {
	return func() tea.Msg {
		err := c.AddComment(context.Background(), ticketID, authorID, body)
		return commentPostedMsg{gen: gen, err: err}
	}
}

// loginCmd authenticates, fetches the role catalog best-effort and persists
// the session. Role catalog failure does not block login; route checks fail
// closed on the empty map.
func loginCmd(c *api.Client, sessions *session.Store, user, pass string) tea.Cmd {
	return func() tea.Msg {
		token, u, err := c.Login(context.Background(), user, pass)
		if err != nil {
			return loginDoneMsg{err: err}
		}
		roleMap := map[string]int{}
		if roles, rerr := c.Roles(context.Background()); rerr == nil {
			roleMap = session.BuildRoleMap(roles)
		}
		if err := sessions.Save(token, u, roleMap); err != nil {
			return loginDoneMsg{err: err}
		}
		return loginDoneMsg{user: u}
	}
}
