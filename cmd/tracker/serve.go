package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			startTime := time.Now()
			log := opts.log

			if port != "" {
				opts.cfg.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, opts.cfg, log, true)
			if err != nil {
				return err
			}
			defer a.Close()

			gin.SetMode(gin.ReleaseMode)

			srv := &http.Server{
				Addr:         ":" + opts.cfg.Port,
				Handler:      a.router(startTime),
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 10 * time.Second,
				IdleTimeout:  120 * time.Second,
			}

			serverErr := make(chan error, 1)
			go func() {
				log.Info("habit tracker listening",
					zap.String("addr", "http://localhost:"+opts.cfg.Port),
					zap.String("driver", opts.cfg.Driver),
					zap.String("timezone", opts.cfg.Location.String()),
				)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
				close(serverErr)
			}()

			select {
			case err := <-serverErr:
				if err != nil {
					return err
				}
			case <-ctx.Done():
				log.Info("stop signal received, shutting down")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}

			log.Info("server stopped gracefully")
			return nil
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port, overrides PORT")
	return cmd
}
