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
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type pickerKind int

const (
	pickerNone pickerKind = iota
	pickerStatus
	pickerAssign
)

// ticketDetail is the mounted state of one ticket view. Status and assignee
// edits go through staged-commit controllers: picking stages, "y" saves,
// "u" abandons. Polling keeps the mirrored ticket fresh but never clobbers a
// staged or in-flight edit.
type ticketDetail struct {
	gen int
	id  int

	t        model.Ticket
	loaded   bool
	notFound bool

	comments []model.Comment
	files    []model.FileInfo

	statusCtl *transition.Controller
	assignCtl *transition.Controller

	picker     list.Model
	pickerKind pickerKind

	composer  textinput.Model
	composing bool

	errMsg string
}

func newTicketDetail(id, gen int) *ticketDetail {
	composer := textinput.New()
	composer.Placeholder = "write a comment"
	composer.CharLimit = 500

	return &ticketDetail{
		gen:      gen,
		id:       id,
		picker:   newList(nil),
		composer: composer,
	}
}

func (d *ticketDetail) applyTicket(t model.Ticket) {
	if d.statusCtl == nil {
		d.statusCtl = transition.New(int(t.Status))
		d.assignCtl = transition.New(t.AssignedUserID)
		d.t = t
		d.loaded = true
		return
	}
	// Poll refresh. The mirrored record is replaced wholesale; the staged
	// fields only move when their controller accepts the reconcile.
	d.t = t
	d.statusCtl.Reconcile(int(t.Status))
	d.assignCtl.Reconcile(t.AssignedUserID)
}

func (m *appModel) openTicket(id int) tea.Cmd {
	m.gen++
	m.detail = newTicketDetail(id, m.gen)
	return tea.Batch(
		loadTicketCmd(m.client, id, m.gen),
		loadCommentsCmd(m.client, id, m.gen),
		loadFilesCmd(m.client, id, m.gen),
		entityTick(m.gen),
		commentTick(m.gen),
	)
}

func (m *appModel) closeTicket() tea.Cmd {
	m.gen++ // orphans the detail pollers
	m.detail = nil
	return m.navigate("/tickets")
}

func (m *appModel) updateTicketDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	d := m.detail

	key, isKey := msg.(tea.KeyMsg)
	if !isKey {
		return m, nil
	}

	if d.composing {
		switch key.String() {
		case "esc":
			d.composing = false
			d.composer.Blur()
			return m, nil
		case "enter":
			body := strings.TrimSpace(d.composer.Value())
			if body == "" {
				return m, nil
			}
			// The draft stays in the composer until the post succeeds.
			d.composing = false
			d.composer.Blur()
			return m, postCommentCmd(m.client, d.id, m.user.ID, body, d.gen)
		}
		var cmd tea.Cmd
		d.composer, cmd = d.composer.Update(msg)
		return m, cmd
	}

	if d.pickerKind != pickerNone {
		switch key.String() {
		case "esc":
			d.pickerKind = pickerNone
			return m, nil
		case "enter":
			switch it := d.picker.SelectedItem().(type) {
			case statusOptionItem:
				d.statusCtl.Stage(int(it.s.ID))
			case assignOptionItem:
				d.assignCtl.Stage(it.u.ID)
			}
			d.pickerKind = pickerNone
			return m, nil
		}
		var cmd tea.Cmd
		d.picker, cmd = d.picker.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "esc", "backspace":
		return m, m.closeTicket()
	case "r":
		return m, tea.Batch(
			loadTicketCmd(m.client, d.id, d.gen),
			loadCommentsCmd(m.client, d.id, d.gen),
		)
	case "s":
		if !d.loaded {
			return m, nil
		}
		if !policy.CanEditTicketStatus(d.t, m.user.ID) {
			d.errMsg = "you cannot change this ticket's status"
			return m, nil
		}
		opts := transition.Selectable(transition.EntityTicket, m.statuses)
		items := make([]list.Item, 0, len(opts))
		for _, s := range opts {
			items = append(items, statusOptionItem{s: s})
		}
		d.picker.SetItems(items)
		d.picker.SetSize(m.width-4, pickerHeight(len(items), m.height))
		d.pickerKind = pickerStatus
		d.errMsg = ""
		return m, nil
	case "a":
		if !d.loaded {
			return m, nil
		}
		if !m.assignCfg.CanAssign(m.user.ID, m.user.RoleID) {
			d.errMsg = "you cannot reassign tickets"
			return m, nil
		}
		items := make([]list.Item, 0, len(m.supportUsers))
		for _, u := range m.supportUsers {
			items = append(items, assignOptionItem{u: u})
		}
		d.picker.SetItems(items)
		d.picker.SetSize(m.width-4, pickerHeight(len(items), m.height))
		d.pickerKind = pickerAssign
		d.errMsg = ""
		return m, nil
	case "y":
		if d.statusCtl != nil && d.statusCtl.State() == transition.PendingChange {
			return m, commitTicketStatusCmd(m.client, d)
		}
		if d.assignCtl != nil && d.assignCtl.State() == transition.PendingChange {
			return m, commitTicketAssignCmd(m.client, d)
		}
		return m, nil
	case "u":
		if d.statusCtl != nil {
			d.statusCtl.Abandon()
		}
		if d.assignCtl != nil {
			d.assignCtl.Abandon()
		}
		d.errMsg = ""
		return m, nil
	case "c":
		d.composing = true
		d.errMsg = ""
		return m, d.composer.Focus()
	}
	return m, nil
}

func commitTicketStatusCmd(c *api.Client, d *ticketDetail) tea.Cmd {
	t := d.t
	ctl := d.statusCtl
	gen := d.gen
	return func() tea.Msg {
		err := ctl.Commit(context.Background(), func(ctx context.Context, candidate int) error {
			next := model.StatusID(candidate)
			return c.UpdateTicket(ctx, t.ID, api.UpdateTicketInput{
				Title:          t.Title,
				Description:    t.Description,
				Status:         next,
				BranchID:       t.BranchID,
				DepartmentID:   t.DepartmentID,
				CompletionDate: transition.CompletionDate(next),
				Active:         t.Active,
			})
		})
		return commitDoneMsg{gen: gen, err: err}
	}
}

func commitTicketAssignCmd(c *api.Client, d *ticketDetail) tea.Cmd {
	id := d.t.ID
	ctl := d.assignCtl
	gen := d.gen
	return func() tea.Msg {
		err := ctl.Commit(context.Background(), func(ctx context.Context, candidate int) error {
			return c.AssignTicket(ctx, id, candidate)
		})
		return commitDoneMsg{gen: gen, err: err}
	}
}

func pickerHeight(items, screen int) int {
	h := items + 1
	if limit := screen - 8; h > limit {
		h = limit
	}
	if h < 3 {
		h = 3
	}
	return h
}

func (m *appModel) viewTicketDetail() string {
	d := m.detail
	if d.notFound {
		return lipgloss.NewStyle().Padding(2).Render(
			styleError().Render(fmt.Sprintf("ticket #%d was not found", d.id)) +
				"\n\n" + styleMuted().Render("esc: back"))
	}
	if !d.loaded {
		return styleMuted().Render("loading...")
	}

	var b strings.Builder

	title := strings.TrimSpace(d.t.Title)
	if title == "" {
		title = firstLine(d.t.Description)
	}
	b.WriteString(styleHeader().Render(fmt.Sprintf("#%d  %s", d.t.ID, title)))
	b.WriteString("\n")

	b.WriteString("status: " + renderStatusBadge(model.StatusID(d.statusCtl.Committed())))
	if d.statusCtl.State() == transition.PendingChange {
		b.WriteString("  " + styleStaged().Render("-> "+model.StatusID(d.statusCtl.Candidate()).String()+" (unsaved)"))
	} else if d.statusCtl.State() == transition.Committing {
		b.WriteString("  " + styleMuted().Render("saving..."))
	}
	b.WriteString("\n")

	assignee := "unassigned"
	if id := d.assignCtl.Committed(); id != 0 {
		assignee = m.userLabel(id)
	}
	b.WriteString("assigned: " + assignee)
	if d.assignCtl.State() == transition.PendingChange {
		b.WriteString("  " + styleStaged().Render("-> "+m.userLabel(d.assignCtl.Candidate())+" (unsaved)"))
	} else if d.assignCtl.State() == transition.Committing {
		b.WriteString("  " + styleMuted().Render("saving..."))
	}
	b.WriteString("\n")

	meta := make([]string, 0, 3)
	if d.t.BranchName != "" {
		meta = append(meta, d.t.BranchName)
	}
	if d.t.DepartmentName != "" {
		meta = append(meta, d.t.DepartmentName)
	}
	if d.t.RaisedByName != "" {
		meta = append(meta, "raised by "+d.t.RaisedByName)
	}
	if len(meta) > 0 {
		b.WriteString(styleMuted().Render(strings.Join(meta, "  ")) + "\n")
	}

	b.WriteString("\n" + renderMarkdown(d.t.Description, m.width-4) + "\n")

	if len(d.files) > 0 {
		b.WriteString("\n" + styleMuted().Render(fmt.Sprintf("%d attachment(s)", len(d.files))) + "\n")
	}

	b.WriteString("\n" + styleHeader().Render("Comments") + "\n")
	if len(d.comments) == 0 {
		b.WriteString(styleMuted().Render("no comments yet") + "\n")
	}
	for _, c := range d.comments {
		author := c.AuthorName
		if author == "" {
			author = m.userLabel(c.AuthorID)
		}
		b.WriteString(styleMuted().Render(author+"  "+c.CreatedAt.Local().Format("2006-01-02 15:04")) + "\n")
		b.WriteString(c.Body + "\n")
	}

	if d.composing {
		b.WriteString("\ncomment: " + d.composer.View() + "\n")
	}
	if d.errMsg != "" {
		b.WriteString("\n" + styleError().Render(d.errMsg) + "\n")
	}

	if d.pickerKind != pickerNone {
		label := "pick a status"
		if d.pickerKind == pickerAssign {
			label = "pick an assignee"
		}
		b.WriteString("\n" + styleHeader().Render(label) + "\n" + d.picker.View())
	}

	return b.String()
}

func (m *appModel) userLabel(id int) string {
	for _, u := range m.supportUsers {
		if u.ID == id {
			return u.DisplayName
		}
	}
	return fmt.Sprintf("user %d", id)
}
