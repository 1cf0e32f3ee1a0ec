package tui

import (
	"errors"
	"fmt"
	"strings"

	"tickets-cli/internal/api"
	"tickets-cli/internal/model"
	"tickets-cli/internal/policy"
	"tickets-cli/internal/route"
	"tickets-cli/internal/session"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// appModel is the top-level bubbletea model. Every view switch goes through
// the route guard, so an expired or stale session lands on the login form on
// the next navigation no matter which view noticed it first.
type appModel struct {
	client   *api.Client
	sessions *session.Store
	guard    *route.Guard
	log      zerolog.Logger

	width  int
	height int

	path      string
	user      model.User
	assignCfg policy.Config

	// gen ties async messages (pollers, loads, commits) to the view mount
	// that issued them; anything older is dropped.
	gen int

	statusMsg string

	login loginModel

	tickets    list.Model
	ticketRows []model.Ticket
	tasks      list.Model
	tasksTab   taskTab
	users      list.Model

	statuses     []model.Status
	supportUsers []model.User

	detail     *ticketDetail
	taskDetail *taskDetail
}

func newAppModel(client *api.Client, sessions *session.Store, log zerolog.Logger) *appModel {
	m := &appModel{
		client:    client,
		sessions:  sessions,
		guard:     route.NewGuard(sessions),
		log:       log,
		login:     newLoginModel(),
		tickets:   newList(nil),
		tasks:     newList(nil),
		users:     newList(nil),
		assignCfg: policy.DefaultConfig(),
	}
	if s, err := sessions.Load(); err == nil && s != nil {
		m.user = s.User
	}
	res := m.guard.Evaluate("/")
	m.path = res.Target
	return m
}

func (m *appModel) Init() tea.Cmd {
	return m.loadForPath()
}

// navigate runs the guard for a target path and switches to whatever the
// guard decides, loading that view's data.
func (m *appModel) navigate(path string) tea.Cmd {
	res := m.guard.Evaluate(path)
	if res.Decision == route.RedirectLogin {
		m.user = model.User{}
		m.login.reset()
	}
	m.path = res.Target
	m.statusMsg = ""
	return m.loadForPath()
}

func (m *appModel) loadForPath() tea.Cmd {
	switch m.path {
	case route.LoginPath:
		return textinput.Blink
	case "/":
		return tea.Batch(loadTicketsCmd(m.client), loadCatalogsCmd(m.client))
	case "/tickets":
		return tea.Batch(loadTicketsCmd(m.client), loadCatalogsCmd(m.client))
	case "/my-tasks":
		return tea.Batch(loadTasksCmd(m.client, m.tasksTab), loadCatalogsCmd(m.client))
	case "/users":
		return loadUsersCmd(m.client)
	}
	return nil
}

// loadErr routes a fetch failure: a 401 re-runs the guard (which clears the
// now-stale session and lands on login); anything else becomes a status-bar
// message.
func (m *appModel) loadErr(err error) tea.Cmd {
	if errors.Is(err, api.ErrUnauthorized) {
		return m.navigate(m.path)
	}
	m.statusMsg = err.Error()
	m.log.Debug().Err(err).Msg("load failed")
	return nil
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case loginDoneMsg:
		m.login.busy = false
		if msg.err != nil {
			m.login.errMsg = msg.err.Error()
			return m, nil
		}
		m.user = msg.user
		// Support staff land on the dashboard; everyone else is redirected
		// to the safe view by the guard.
		return m, m.navigate("/")

	case ticketsLoadedMsg:
		if msg.err != nil {
			return m, m.loadErr(msg.err)
		}
		m.ticketRows = msg.tickets
		items := make([]list.Item, 0, len(msg.tickets))
		for _, t := range msg.tickets {
			items = append(items, ticketItem{t: t})
		}
		m.tickets.SetItems(items)
		return m, nil

	case tasksLoadedMsg:
		if msg.err != nil {
			return m, m.loadErr(msg.err)
		}
		if msg.tab != m.tasksTab {
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.tasks))
		for _, t := range msg.tasks {
			items = append(items, taskItem{t: t})
		}
		m.tasks.SetItems(items)
		return m, nil

	case usersLoadedMsg:
		if msg.err != nil {
			return m, m.loadErr(msg.err)
		}
		items := make([]list.Item, 0, len(msg.users))
		for _, u := range msg.users {
			items = append(items, userItem{u: u})
		}
		m.users.SetItems(items)
		return m, nil

	case catalogsLoadedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("catalog load failed; pickers will be empty")
		}
		if msg.statuses != nil {
			m.statuses = msg.statuses
		}
		if msg.supportUsers != nil {
			m.supportUsers = msg.supportUsers
		}
		return m, nil

	case ticketLoadedMsg:
		if m.detail == nil || msg.gen != m.detail.gen {
			return m, nil
		}
		if msg.err != nil {
			var se *api.StatusError
			if errors.As(msg.err, &se) && se.Code == 404 {
				m.detail.notFound = true
				return m, nil
			}
			return m, m.loadErr(msg.err)
		}
		m.detail.applyTicket(msg.ticket)
		return m, nil

	case commentsLoadedMsg:
		if m.detail == nil || msg.gen != m.detail.gen {
			return m, nil
		}
		if msg.err != nil {
			return m, m.loadErr(msg.err)
		}
		m.detail.comments = msg.comments
		return m, nil

	case filesLoadedMsg:
		if m.detail == nil || msg.gen != m.detail.gen {
			return m, nil
		}
		if msg.err == nil {
			m.detail.files = msg.files
		}
		return m, nil

	case commentPostedMsg:
		if m.detail == nil || msg.gen != m.detail.gen {
			return m, nil
		}
		if msg.err != nil {
			// The draft stays in the composer for a retry.
			m.detail.errMsg = msg.err.Error()
			m.detail.composing = true
			return m, m.detail.composer.Focus()
		}
		m.detail.composer.SetValue("")
		return m, loadCommentsCmd(m.client, m.detail.id, m.detail.gen)

	case commitDoneMsg:
		return m.onCommitDone(msg)

	case entityTickMsg:
		if m.detail != nil && msg.gen == m.detail.gen {
			return m, tea.Batch(loadTicketCmd(m.client, m.detail.id, m.detail.gen), entityTick(msg.gen))
		}
		if m.taskDetail != nil && msg.gen == m.taskDetail.gen {
			return m, tea.Batch(refreshTaskCmd(m.client, m.taskDetail.t, m.user.ID, msg.gen), entityTick(msg.gen))
		}
		return m, nil

	case commentTickMsg:
		if m.detail != nil && msg.gen == m.detail.gen {
			return m, tea.Batch(loadCommentsCmd(m.client, m.detail.id, m.detail.gen), commentTick(msg.gen))
		}
		return m, nil

	case taskRefreshedMsg:
		if m.taskDetail == nil || msg.gen != m.taskDetail.gen {
			return m, nil
		}
		if msg.err != nil {
			return m, m.loadErr(msg.err)
		}
		if msg.ok {
			m.taskDetail.applyRefresh(msg.t)
		}
		return m, nil

	case tea.KeyMsg:
		return m.onKey(msg)
	}

	return m, nil
}

func (m *appModel) onCommitDone(msg commitDoneMsg) (tea.Model, tea.Cmd) {
	if m.detail != nil && msg.gen == m.detail.gen {
		if msg.err != nil {
			// The controller kept the candidate; surface the failure inline.
			m.detail.errMsg = msg.err.Error()
			if errors.Is(msg.err, api.ErrUnauthorized) {
				return m, m.navigate(m.path)
			}
			return m, nil
		}
		m.detail.errMsg = ""
		m.statusMsg = "saved"
		return m, loadTicketCmd(m.client, m.detail.id, m.detail.gen)
	}
	if m.taskDetail != nil && msg.gen == m.taskDetail.gen {
		if msg.err != nil {
			m.taskDetail.errMsg = msg.err.Error()
			if errors.Is(msg.err, api.ErrUnauthorized) {
				return m, m.navigate(m.path)
			}
			return m, nil
		}
		m.taskDetail.errMsg = ""
		m.statusMsg = "saved"
		return m, refreshTaskCmd(m.client, m.taskDetail.t, m.user.ID, m.taskDetail.gen)
	}
	return m, nil
}

func (m *appModel) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.path == route.LoginPath {
		cmd, submit := m.login.update(msg)
		if submit {
			return m, loginCmd(m.client, m.sessions, m.login.user.Value(), m.login.pass.Value())
		}
		return m, cmd
	}

	if m.detail != nil {
		return m.updateTicketDetail(msg)
	}
	if m.taskDetail != nil {
		return m.updateTaskDetail(msg)
	}

	// List views. Keep global keys out of the way while filtering.
	active := m.activeList()
	if active != nil && active.FilterState() == list.Filtering {
		var cmd tea.Cmd
		*active, cmd = active.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1":
		return m, m.navigate("/tickets")
	case "2":
		return m, m.navigate("/my-tasks")
	case "3":
		return m, m.navigate("/")
	case "4":
		return m, m.navigate("/users")
	case "L":
		_ = m.sessions.Clear()
		return m, m.navigate(route.LoginPath)
	case "r":
		return m, m.loadForPath()
	case "tab":
		if m.path == "/my-tasks" {
			m.tasksTab = (m.tasksTab + 1) % 3
			m.tasks.SetItems(nil)
			return m, loadTasksCmd(m.client, m.tasksTab)
		}
	case "enter":
		switch m.path {
		case "/tickets":
			if it, ok := m.tickets.SelectedItem().(ticketItem); ok {
				res := m.guard.Evaluate(fmt.Sprintf("/tickets/%d", it.t.ID))
				if res.Decision != route.Allow {
					return m, m.navigate(res.Target)
				}
				m.path = res.Target
				return m, m.openTicket(it.t.ID)
			}
		case "/my-tasks":
			if it, ok := m.tasks.SelectedItem().(taskItem); ok {
				res := m.guard.Evaluate(fmt.Sprintf("/my-tasks/%d", it.t.ID))
				if res.Decision != route.Allow {
					return m, m.navigate(res.Target)
				}
				m.path = res.Target
				return m, m.openTask(it.t)
			}
		}
	}

	if active != nil {
		var cmd tea.Cmd
		*active, cmd = active.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *appModel) activeList() *list.Model {
	switch m.path {
	case "/tickets":
		return &m.tickets
	case "/my-tasks":
		return &m.tasks
	case "/users":
		return &m.users
	}
	return nil
}

func (m *appModel) resizeLists() {
	h := m.height - 6
	if h < 8 {
		h = 8
	}
	w := m.width
	if w < 40 {
		w = 40
	}
	m.tickets.SetSize(w, h)
	m.tasks.SetSize(w, h)
	m.users.SetSize(w, h)
}

func (m *appModel) View() string {
	header := styleHeader().Render("Tickets")
	if m.user.ID != 0 {
		header += styleMuted().Render(fmt.Sprintf("  %s  %s", m.user.DisplayName, m.path))
	}

	var body string
	switch {
	case m.path == route.LoginPath:
		body = m.login.view(m.width)
	case m.detail != nil:
		body = m.viewTicketDetail()
	case m.taskDetail != nil:
		body = m.viewTaskDetail()
	case m.path == "/":
		body = m.viewDashboard()
	case m.path == "/tickets":
		body = m.tickets.View()
	case m.path == "/my-tasks":
		tabs := styleMuted().Render("tab: " + m.tasksTab.String())
		body = tabs + "\n" + m.tasks.View()
	case m.path == "/users":
		body = m.users.View()
	}

	footer := m.footer()
	if m.statusMsg != "" {
		footer = styleError().Render(m.statusMsg) + "\n" + footer
	}
	return strings.Join([]string{header, body, footer}, "\n\n")
}

func (m *appModel) footer() string {
	switch {
	case m.path == route.LoginPath:
		return styleMuted().Render("enter: next/submit  tab: switch field  ctrl+c: quit")
	case m.detail != nil:
		return styleMuted().Render("s: status  a: assign  y: save  u: undo  c: comment  esc: back")
	case m.taskDetail != nil:
		return styleMuted().Render("s: status  y: save  u: undo  esc: back")
	default:
		return styleMuted().Render("1: tickets  2: my tasks  3: dashboard  4: users  enter: open  tab: cycle  L: logout  q: quit")
	}
}

func (m *appModel) viewDashboard() string {
	var b strings.Builder
	b.WriteString(styleHeader().Render("Tickets by status") + "\n\n")

	counts := map[model.StatusID]int{}
	for _, t := range m.ticketRows {
		counts[t.Status]++
	}
	order := []model.StatusID{
		model.StatusPending, model.StatusOpen, model.StatusInProgress,
		model.StatusCompleted, model.StatusResolved, model.StatusCancelled,
	}
	for _, s := range order {
		bar := strings.Repeat("█", counts[s])
		b.WriteString(fmt.Sprintf("%-14s %3d  %s\n", s.String(), counts[s],
			lipgloss.NewStyle().Foreground(statusColors[s]).Render(bar)))
	}
	b.WriteString("\n" + styleMuted().Render(fmt.Sprintf("%d tickets total", len(m.ticketRows))))
	return b.String()
}
