package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpgo/pension-simulator/internal/config"
	"github.com/rpgo/pension-simulator/internal/scheduler"
	"github.com/rpgo/pension-simulator/internal/server"
)

func newServeCmd(g *globalOptions) *cobra.Command {
	var (
		port     int
		schedule string
		devMode  bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulator over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := g.logger(cmd)
			log.Info().Msg("Starting pension simulator")

			store, err := config.NewStore(config.NewLoader(), g.taxConfig, g.coefficients)
			if err != nil {
				return err
			}
			for _, w := range store.Load().Warnings {
				log.Warn().Str("file", g.taxConfig).Msg(w)
			}

			sched := scheduler.New(log)
			if schedule != "" {
				if err := sched.AddJob(schedule, scheduler.NewReloadTablesJob(store, log)); err != nil {
					return err
				}
			}
			sched.Start()
			defer sched.Stop()

			srv := server.New(server.Config{
				Port:           port,
				Log:            log,
				Store:          store,
				AllowedOrigins: g.settings.AllowedOrigins,
				DevMode:        devMode,
				RateLimit:      g.settings.RateLimit,
				RateLimitBurst: g.settings.RateLimitBurst,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info().Msg("Shutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("Server forced to shutdown")
				return err
			}
			log.Info().Msg("Server stopped")
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", g.settings.Port, "HTTP port")
	cmd.Flags().StringVar(&schedule, "reload", g.settings.ReloadSchedule, "cron schedule for reloading the reference tables; empty disables")
	cmd.Flags().BoolVar(&devMode, "dev", false, "disable response compression")
	return cmd
}
