package tui

import (
	"tickets-cli/internal/api"
	"tickets-cli/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

func Run(client *api.Client, sessions *session.Store, log zerolog.Logger) error {
	applyColorProfilePreference()
	applyThemePreference()
	m := newAppModel(client, sessions, log)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
