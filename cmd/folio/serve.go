package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/folio"
	"github.com/dmitrymomot/folio/internal/config"
	"github.com/dmitrymomot/folio/internal/handlers"
	"github.com/dmitrymomot/folio/internal/relay"
	"github.com/dmitrymomot/folio/middlewares"
	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/mailer"
	"github.com/dmitrymomot/folio/pkg/mailer/resend"
	"github.com/dmitrymomot/folio/pkg/mailer/sendgrid"
)

const sentryFlushTimeout = 2 * time.Second

func newServeCmd() *cobra.Command {
	var (
		envFiles []string
		addr     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Run the HTTP server.

Configuration is read from a .env file (when present) and the environment.
RECEIVE_EMAIL and the provider credentials are required; the server refuses
to start without them.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(envFiles...)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringSliceVar(&envFiles, "env-file", nil, "env files to load instead of .env")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides HTTP_ADDR and PORT")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := newLogger(cfg)

	app, err := newApp(cfg, log)
	if err != nil {
		return err
	}

	return app.Run(cfg.Address(),
		folio.WithContext(ctx),
		folio.Logger(log),
		folio.ShutdownTimeout(cfg.ShutdownTimeout),
		folio.StartupHook(func(context.Context) error {
			log.Info("contact relay ready",
				slog.String("provider", string(cfg.Provider)),
				slog.Bool("strict_email", cfg.StrictEmail),
				slog.String("static_dir", cfg.StaticDir),
			)
			return nil
		}),
		folio.ShutdownHook(func(context.Context) error {
			if cfg.Sentry.Enabled() && !logger.FlushSentry(sentryFlushTimeout) {
				return fmt.Errorf("sentry: flush timed out after %s", sentryFlushTimeout)
			}
			return nil
		}),
	)
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logger.NewWithSentry(cfg.Sentry,
		logger.WithLevel(cfg.LogLevel),
		logger.WithFormat(cfg.LogFormat),
		logger.WithExtractors(middlewares.RequestIDExtractor()),
	).With("component", "folio")
}

// newApp wires the relay, middleware, health probes and the optional static site.
func newApp(cfg *config.Config, log *slog.Logger) (*folio.App, error) {
	svc, err := relay.New(newSender(cfg), relay.Config{
		To:          cfg.ReceiveEmail,
		StrictEmail: cfg.StrictEmail,
	}, relay.WithLogger(log))
	if err != nil {
		return nil, err
	}

	opts := []folio.Option{
		folio.WithCustomLogger(log),
		folio.WithMaxBodySize(cfg.MaxBodyBytes),
		folio.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Logger(),
			middlewares.Recover(),
			middlewares.CORS(middlewares.WithAllowOrigins(cfg.CORSOrigins...)),
		),
		folio.WithHandlers(handlers.NewContactHandler(svc)),
		folio.WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
		folio.WithHealthChecks(
			folio.WithReadinessCheck("mailer", svc.Healthcheck()),
		),
	}

	if cfg.StaticDir != "" {
		info, err := os.Stat(cfg.StaticDir)
		if err != nil {
			return nil, fmt.Errorf("static dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("static dir: %s is not a directory", cfg.StaticDir)
		}
		opts = append(opts, folio.WithStaticFiles("/", os.DirFS(cfg.StaticDir), "."))
	}

	return folio.New(opts...), nil
}

func newSender(cfg *config.Config) mailer.Sender {
	if cfg.Provider == config.ProviderResend {
		return resend.New(cfg.Resend)
	}
	return sendgrid.New(cfg.SendGrid)
}
