package tui

import (
	"fmt"
	"strings"

	"tickets-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
)

type taskTab int

const (
	tabPersonal taskTab = iota
	tabAssignedToMe
	tabDelegated
)

func (t taskTab) String() string {
	switch t {
	case tabAssignedToMe:
		return "assigned to me"
	case tabDelegated:
		return "delegated"
	default:
		return "personal"
	}
}

type ticketItem struct {
	t model.Ticket
}

func (i ticketItem) FilterValue() string { return i.t.Title + " " + i.t.Description }
func (i ticketItem) Title() string {
	title := strings.TrimSpace(i.t.Title)
	if title == "" {
		title = firstLine(i.t.Description)
	}
	return fmt.Sprintf("#%d %s %s", i.t.ID, renderStatusBadge(i.t.Status), title)
}
func (i ticketItem) Description() string {
	parts := make([]string, 0, 3)
	if i.t.BranchName != "" {
		parts = append(parts, i.t.BranchName)
	}
	if i.t.DepartmentName != "" {
		parts = append(parts, i.t.DepartmentName)
	}
	if i.t.RaisedByName != "" {
		parts = append(parts, "by "+i.t.RaisedByName)
	}
	return strings.Join(parts, "  ")
}

type taskItem struct {
	t model.Task
}

func (i taskItem) FilterValue() string { return i.t.Title + " " + i.t.Description }
func (i taskItem) Title() string {
	title := strings.TrimSpace(i.t.Title)
	if title == "" {
		title = firstLine(i.t.Description)
	}
	marker := ""
	if i.t.Kind == model.TaskAssigned {
		marker = " @"
	}
	return fmt.Sprintf("#%d %s %s%s", i.t.ID, renderStatusBadge(i.t.Status), title, marker)
}
func (i taskItem) Description() string { return "" }

type userItem struct {
	u model.User
}

func (i userItem) FilterValue() string { return i.u.DisplayName }
func (i userItem) Title() string       { return i.u.DisplayName }
func (i userItem) Description() string { return fmt.Sprintf("user %d  role %d", i.u.ID, i.u.RoleID) }

type statusOptionItem struct {
	s model.Status
}

func (i statusOptionItem) FilterValue() string { return i.s.Name }
func (i statusOptionItem) Title() string       { return renderStatusBadge(i.s.ID) }
func (i statusOptionItem) Description() string { return i.s.Name }

type assignOptionItem struct {
	u model.User
}

func (i assignOptionItem) FilterValue() string { return i.u.DisplayName }
func (i assignOptionItem) Title() string       { return "@" + i.u.DisplayName }
func (i assignOptionItem) Description() string { return fmt.Sprintf("user %d", i.u.ID) }

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}

func newList(items []list.Item) list.Model {
	l := list.New(items, newRowDelegate(), 0, 0)
	// The app renders its own header and footer; keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	// ESC is "back" in this app, never quit.
	l.KeyMap.Quit.SetKeys("ctrl+c")
	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	l.KeyMap.CursorUp.SetKeys(append(cursorUpKeys, "ctrl+p")...)
	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	l.KeyMap.CursorDown.SetKeys(append(cursorDownKeys, "ctrl+n")...)
	return l
}
