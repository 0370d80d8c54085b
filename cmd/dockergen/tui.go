package main

import (
	"io"

	"dockergen/internal/gateway/app"
	"dockergen/internal/session"
	"dockergen/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newTUICmd(root *rootOptions) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive terminal form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := root.load(true)
			if err != nil {
				return err
			}
			// The alt screen owns stdout while the form runs.
			log.SetOutput(io.Discard)

			backends, err := app.NewBackends(cmd.Context(), cfg, log, app.Options{Fake: root.fake})
			if err != nil {
				return err
			}
			defer backends.Close()

			sess := session.New(uuid.NewString(), backends.Deps())
			p := tea.NewProgram(tui.NewApp(cmd.Context(), sess, outDir), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
	cmd.Flags().StringVar(&outDir, "out", ".", "Directory to save the Dockerfile into")
	return cmd
}
