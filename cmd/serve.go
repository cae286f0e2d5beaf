// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cmd

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/coastcamdb/middleware"
	"github.com/danielhkuo/coastcamdb/router"
)

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only calibration API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.inShell {
				return errors.New("serve is not available inside the shell")
			}

			// Create router
			mux := router.NewRouter(a.store, a.cfg)

			// Create server
			server := http.Server{
				Handler: middleware.CORS(mux),
				Addr:    ":" + strconv.Itoa(a.cfg.Port),
			}

			// signal.Notify requires the channel to be buffered
			ctrlc := make(chan os.Signal, 1)
			signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(ctrlc)
			go func() {
				// Wait for Ctrl-C signal
				<-ctrlc
				server.Close()
			}()

			// Start server
			slog.Info("Listening", "port", a.cfg.Port, "database", a.dialect)
			err := server.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Server closed", "error", err)
				return err
			}
			slog.Info("Server closed")
			return nil
		},
	}
}
