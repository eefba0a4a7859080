package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/vitrine-dev/vitrine/internal/app"
	"github.com/vitrine-dev/vitrine/internal/config"
	apperrors "github.com/vitrine-dev/vitrine/internal/errors"
	"github.com/vitrine-dev/vitrine/internal/logging"
	"github.com/vitrine-dev/vitrine/pkg/middleware"
	"github.com/vitrine-dev/vitrine/pkg/server"
	"go.uber.org/zap"
)

func serveCmd(flags *rootFlags) *cobra.Command {
	var o config.Overrides

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server.

Settings come from vitrine.json, then .env.local and .env, then the
environment (BASE_URL, VITRINE_PORT, ...), then flags.

Examples:
  vitrine serve
  vitrine serve --port 9000 --base /loja/
  BASE_URL=/loja/ vitrine serve --log-format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.BaseURL = flags.base
			cfg, err := config.Resolve(flags.dir, o)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, cfg)
		},
	}

	cmd.Flags().IntVarP(&o.Port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&o.Host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().StringVar(&o.Env, "env", "", "development or production")
	cmd.Flags().StringVar(&o.LogLevel, "log-level", "", "debug, info, warn or error")
	cmd.Flags().StringVar(&o.LogFormat, "log-format", "", "console or json")

	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return apperrors.New("V011").Wrap(err)
	}
	defer logger.Sync()

	srv, err := newServer(cfg, logger)
	if err != nil {
		return err
	}

	success(cmd.OutOrStdout(), "serving %s on http://%s%s", cfg.Name, cfg.Address(), cfg.Base()+"/")
	if err := srv.Run(ctx); err != nil {
		return apperrors.FromError(err, "V020")
	}
	return nil
}

// newServer wires the application site, metrics and tracing into a server.
func newServer(cfg *config.Config, logger *zap.Logger) (*server.Server, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(middleware.WithRegistry(reg))

	srv, err := server.New(server.Config{
		Address:         cfg.Address(),
		Base:            cfg.BaseURL,
		ReadTimeout:     cfg.Server.ReadTimeout.Std(),
		WriteTimeout:    cfg.Server.WriteTimeout.Std(),
		IdleTimeout:     cfg.Server.IdleTimeout.Std(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout.Std(),
	}, app.Site(),
		server.WithLogger(logger.With(zap.String("app", cfg.Name), zap.String("env", cfg.Env))),
		server.WithMetrics(metrics, reg),
		server.WithGuards(middleware.Tracing()),
	)
	if err != nil {
		return nil, routerError(err)
	}
	return srv, nil
}
