package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"punctual/internal/config"
	"punctual/internal/handlers"
	"punctual/internal/logging"
	"punctual/internal/scheduler"
	"punctual/internal/storage"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const appVersion = "0.2.0"

func main() {
	cfg := config.New()
	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	root := &cobra.Command{
		Use:           "punctual",
		Short:         "Work out when to get ready and leave, and schedule SMS reminders",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Version = appVersion
	root.SetVersionTemplate("punctual v{{.Version}}\n")

	root.AddCommand(
		serveCmd(cfg, log),
		planCmd(cfg, log),
		submitCmd(cfg, log),
		icsCmd(cfg, log),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd(cfg *config.Config, log zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API the form posts to",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg, log)
		},
	}
	cmd.Flags().StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "HTTP listen address")
	return cmd
}

func serve(parent context.Context, cfg *config.Config, log zerolog.Logger) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var journal handlers.SubmissionJournal
	if cfg.JournalEnabled() {
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return fmt.Errorf("unable to connect to db: %w", err)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			return fmt.Errorf("unable to ping db: %w", err)
		}

		submissions := storage.NewSubmissionStorage(pool)
		if err := submissions.EnsureSchema(ctx); err != nil {
			return err
		}
		journal = submissions
		log.Info().Msg("connected to db successfully")
	} else {
		log.Info().Msg("POSTGRES_DSN not set; submission journal disabled")
	}

	client := newClient(cfg, log)
	handler := handlers.NewScheduleHandler(client, journal, location(cfg, log), log)
	router := handlers.NewRouter(handler, handlers.RouterOptions{
		CORSOrigins: cfg.CORSOrigins,
		RateLimiter: handlers.NewRateLimiter(cfg.RateLimitPerMinute),
		Log:         log,
	})

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("listen", cfg.ListenAddr).Str("scheduler", client.Endpoint()).Msg("punctual listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen and serve: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newClient(cfg *config.Config, log zerolog.Logger) *scheduler.Client {
	return scheduler.NewClient(cfg.SchedulerURL, cfg.SchedulerPath,
		scheduler.WithTimeout(cfg.SchedulerTimeout),
		scheduler.WithLogger(log),
	)
}

func location(cfg *config.Config, log zerolog.Logger) *time.Location {
	loc, err := cfg.Location()
	if err != nil {
		log.Warn().Str("timezone", cfg.Timezone).Err(err).Msg("unknown timezone, using local time")
	}
	return loc
}
