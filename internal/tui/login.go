package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// loginModel is the credentials form. Submitting disables the inputs until
// loginDoneMsg lands so a slow backend can't be double-submitted.
type loginModel struct {
	user textinput.Model
	pass textinput.Model

	focusPass bool
	busy      bool
	errMsg    string
}

func newLoginModel() loginModel {
	user := textinput.New()
	user.Placeholder = "login name"
	user.CharLimit = 64
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 64
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '*'

	return loginModel{user: user, pass: pass}
}

func (m *loginModel) reset() {
	m.user.SetValue("")
	m.pass.SetValue("")
	m.user.Focus()
	m.pass.Blur()
	m.focusPass = false
	m.busy = false
	m.errMsg = ""
}

// update returns submit=true when the form was submitted with both fields
// filled; the caller issues the login command.
func (m *loginModel) update(msg tea.Msg) (cmd tea.Cmd, submit bool) {
	if m.busy {
		return nil, false
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "shift+tab", "up", "down":
			m.focusPass = !m.focusPass
			if m.focusPass {
				m.user.Blur()
				return m.pass.Focus(), false
			}
			m.pass.Blur()
			return m.user.Focus(), false
		case "enter":
			if !m.focusPass {
				m.focusPass = true
				m.user.Blur()
				return m.pass.Focus(), false
			}
			if strings.TrimSpace(m.user.Value()) == "" || m.pass.Value() == "" {
				m.errMsg = "both fields are required"
				return nil, false
			}
			m.busy = true
			m.errMsg = ""
			return nil, true
		}
	}

	if m.focusPass {
		m.pass, cmd = m.pass.Update(msg)
	} else {
		m.user, cmd = m.user.Update(msg)
	}
	return cmd, false
}

func (m loginModel) view(width int) string {
	title := styleHeader().Render("Sign in")
	lines := []string{
		title,
		"",
		"user: " + m.user.View(),
		"pass: " + m.pass.View(),
	}
	if m.busy {
		lines = append(lines, "", styleMuted().Render("signing in..."))
	}
	if m.errMsg != "" {
		lines = append(lines, "", styleError().Render(m.errMsg))
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
	if width > 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
	}
	return box
}
