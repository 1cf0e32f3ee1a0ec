package cli

import (
	"errors"
	"fmt"
	"os"

	"tickets-cli/internal/api"
	"tickets-cli/internal/format"
	"tickets-cli/internal/logger"
	"tickets-cli/internal/session"
	"tickets-cli/internal/tui"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type App struct {
	APIURL     string
	PrettyJSON bool
	Debug      bool

	Log      zerolog.Logger
	Sessions *session.Store
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "tickets",
		Short:        "Ticketing dashboard CLI + TUI",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		app.Log = logger.New(app.Debug)
		if app.APIURL == "" {
			app.APIURL = envOr("TICKETS_API_URL", "")
		}
		st, err := session.NewStore()
		if err != nil {
			return err
		}
		app.Sessions = st
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.APIURL, "api-url", "", "API base URL (default: TICKETS_API_URL env or the built-in endpoint)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVar(&app.Debug, "debug", false, "Debug logging to stderr")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newTicketsCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newUsersCmd(app))
	cmd.AddCommand(newCatalogsCmd(app))
	cmd.AddCommand(newCommentsCmd(app))
	cmd.AddCommand(newFilesCmd(app))

	return cmd
}

func runTUI(app *App) error {
	return tui.Run(app.Client(), app.Sessions, app.Log)
}

// Client builds the API client, installing the persisted token (if any) and
// the 401 hook that marks the session stale.
func (app *App) Client() *api.Client {
	c := api.New(app.APIURL, app.Log)
	if s, err := app.Sessions.Load(); err == nil && s != nil {
		c.SetToken(s.Token)
	}
	c.OnUnauthorized(app.Sessions.MarkStale)
	return c
}

// requireSession loads the persisted session or fails with the standard
// not-logged-in error. Commands that talk to the API call this first so the
// failure mode is consistent.
func requireSession(app *App) (*session.Session, error) {
	s, err := app.Sessions.Load()
	if err != nil {
		return nil, err
	}
	if s == nil || app.Sessions.Stale() || session.Expired(s.Token) {
		return nil, errNotLoggedIn
	}
	return s, nil
}

var errNotLoggedIn = errors.New("not logged in; run `tickets login --user <name>`")

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
