package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/joestump/taggable/internal/api"
	"github.com/joestump/taggable/internal/build"
	"github.com/joestump/taggable/internal/config"
	"github.com/joestump/taggable/internal/logging"
	"github.com/joestump/taggable/internal/metrics"
)

func newServeCmd(configPath *string) *cobra.Command {
	var origins []string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(*configPath, true)
			if err != nil {
				return err
			}
			defer e.Close()

			log := logging.New("serve")
			if e.cfg.Watch(func(next *config.Config) {
				logging.SetLevel(next.Log.Level)
				log.Info().Str("level", next.Log.Level).Msg("config reloaded")
			}, func(err error) {
				log.Error().Err(err).Msg("config reload failed")
			}) {
				log.Info().Str("file", e.cfg.File()).Msg("watching config")
			}

			metrics.BuildInfo.WithLabelValues(build.Version, build.Commit, build.Branch).Set(1)

			router := chi.NewRouter()
			router.Handle("/metrics", promhttp.Handler())
			router.Mount("/", api.NewRouter(api.Deps{
				DB:             e.db,
				Separator:      e.cfg.Tags.Separator,
				AllowedOrigins: origins,
				Logger:         logging.New("api"),
			}))

			srv := &http.Server{
				Addr:              e.cfg.HTTP.Addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", srv.Addr).Str("version", build.Version).Msg("listening")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringSliceVar(&origins, "cors-origin", nil, "allowed CORS origins (default any)")
	return cmd
}
