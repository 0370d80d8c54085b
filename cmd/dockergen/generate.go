package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dockergen/internal/gateway/app"
	"dockergen/internal/session"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	description string
	repo        string
	feedback    []string
	outDir      string
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a Dockerfile non-interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			desc := strings.TrimSpace(opts.description)
			repo := strings.TrimSpace(opts.repo)
			if (desc == "") == (repo == "") {
				return errors.New("exactly one of --description or --repo is required")
			}

			cfg, log, err := root.load(true)
			if err != nil {
				return err
			}
			backends, err := app.NewBackends(cmd.Context(), cfg, log, app.Options{Fake: root.fake})
			if err != nil {
				return err
			}
			defer backends.Close()

			ctx := cmd.Context()
			sess := session.New(uuid.NewString(), backends.Deps())
			if repo != "" {
				detection, err := sess.Analyze(ctx, repo)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), detection)
			} else {
				sess.Describe(desc)
			}

			if _, err := sess.Generate(ctx); err != nil {
				return err
			}
			for i, fb := range opts.feedback {
				if _, err := sess.Refine(ctx, fb); err != nil {
					return fmt.Errorf("refinement round %d: %w", i+1, err)
				}
			}

			dl, err := sess.Download()
			if err != nil {
				return err
			}
			if opts.outDir == "-" {
				fmt.Fprintln(cmd.OutOrStdout(), dl.Body)
				return nil
			}
			if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
				return err
			}
			path := filepath.Join(opts.outDir, dl.Filename)
			if err := os.WriteFile(path, []byte(dl.Body), 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.description, "description", "", "Project description to generate from")
	cmd.Flags().StringVar(&opts.repo, "repo", "", "Repository URL to analyze and generate from")
	cmd.Flags().StringArrayVar(&opts.feedback, "feedback", nil, "Refinement feedback; repeat for several rounds")
	cmd.Flags().StringVar(&opts.outDir, "out", ".", "Output directory, or - for stdout")
	return cmd
}
