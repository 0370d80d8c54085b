package main

import (
	"fmt"
	"os"

	"dockergen/internal/gateway/config"
	"dockergen/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	fake bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "dockergen",
		Short:         "Generate Dockerfiles from a repository or a project description",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVar(&opts.fake, "fake", false, "Use the offline fake backend instead of Gemini")

	cmd.AddCommand(
		newServeCmd(opts),
		newTUICmd(opts),
		newDetectCmd(opts),
		newGenerateCmd(opts),
	)
	return cmd
}

// load reads the environment and builds the process logger.
func (o *rootOptions) load(requireLLM bool) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(config.Options{RequireCredential: requireLLM && !o.fake})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, logging.New(cfg.Log.Level, cfg.Log.Format), nil
}
