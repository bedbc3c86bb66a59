package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezBadminton/goswiss/server"
)

const shutdownTimeout = 10 * time.Second

func Serve() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}

			addr := a.config.Addr
			if cmd.Flags().Changed("addr") {
				addr, _ = cmd.Flags().GetString("addr")
			}

			logger := logrus.StandardLogger()
			srv := &http.Server{
				Addr:         addr,
				Handler:      server.New(a.manager, logger, a.config.AllowedOrigins),
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 10 * time.Second,
				IdleTimeout:  120 * time.Second,
				ErrorLog:     newErrorLog(logger),
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			serverErrors := make(chan error, 1)
			go func() {
				logger.WithField("address", addr).Info("starting server")
				serverErrors <- srv.ListenAndServe()
			}()

			select {
			case err := <-serverErrors:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
				logger.Info("shutting down server")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (overrides the config)")

	return cmd
}

func newErrorLog(logger *logrus.Logger) *log.Logger {
	return log.New(logger.WriterLevel(logrus.ErrorLevel), "", 0)
}
