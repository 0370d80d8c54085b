package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"dockergen/internal/gateway/app"

	"github.com/spf13/cobra"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := root.load(true)
			if err != nil {
				return err
			}
			if p := strings.TrimSpace(port); p != "" {
				if !strings.Contains(p, ":") {
					p = ":" + p
				}
				cfg.Port = p
			}

			a, err := app.New(cmd.Context(), cfg, log, app.Options{Fake: root.fake})
			if err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- a.Start()
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			select {
			case <-quit:
			case err := <-errCh:
				if err != nil {
					log.WithError(err).Error("server error")
					return err
				}
			}

			log.Info("shutting down server")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := a.Shutdown(ctx); err != nil {
				log.WithError(err).Error("server forced to shutdown")
				return err
			}
			log.Info("server exiting")
			return nil
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "Listen address or port (overrides PORT)")
	return cmd
}
