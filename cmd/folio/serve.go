package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eringen/folio"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(s *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := s.siteConfig()
			if cfg.SessionSecret == "" {
				return errors.New("session_secret is required (set it in folio.yaml or FOLIO_SESSION_SECRET)")
			}
			logger, err := folio.NewLogger(s.v.GetString("log_level"), s.v.GetString("log_file"))
			if err != nil {
				return err
			}

			app := folio.New(cfg,
				folio.WithLogger(logger),
				folio.WithStaticDir(s.v.GetString("static_dir")),
			)
			defer app.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- app.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := app.Shutdown(shutdownCtx); err != nil {
				logger.Error("shutdown", zap.Error(err))
				return err
			}
			return <-errCh
		},
	}
	cmd.Flags().String("addr", "", "listen address (default :3000)")
	cmd.Flags().String("static-dir", "", "directory served under /public")
	_ = s.v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	_ = s.v.BindPFlag("static_dir", cmd.Flags().Lookup("static-dir"))
	return cmd
}
