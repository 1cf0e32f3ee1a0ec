package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func newFilesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Ticket attachment commands",
	}
	cmd.AddCommand(newFilesListCmd(app))
	cmd.AddCommand(newFilesUploadCmd(app))
	return cmd
}

func newFilesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <ticket-id>",
		Short: "List attachments on a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSession(app); err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseID("ticket", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			fs, err := app.Client().Files(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": fs,
				"meta": map[string]any{"total": len(fs)},
			})
		},
	}
}

func newFilesUploadCmd(app *App) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "upload <ticket-id>",
		Short: "Attach a local file to a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSession(app); err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseID("ticket", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			f, err := os.Open(path)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer f.Close()
			if err := app.Client().UploadFile(cmd.Context(), id, path, f); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"ticket": id, "uploaded": path}})
		},
	}

	cmd.Flags().StringVar(&path, "file", "", "Path to the file to upload")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
