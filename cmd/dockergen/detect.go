package main

import (
	"fmt"

	"dockergen/internal/gateway/app"

	"github.com/spf13/cobra"
)

func newDetectCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "detect <repo-url>",
		Short: "Print the detected tech stack of a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := root.load(false)
			if err != nil {
				return err
			}
			// Detection never calls the LLM; always use the fake backend here.
			backends, err := app.NewBackends(cmd.Context(), cfg, log, app.Options{Fake: true})
			if err != nil {
				return err
			}
			defer backends.Close()

			res, err := backends.Inspector.Inspect(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Description())
			return nil
		},
	}
}
