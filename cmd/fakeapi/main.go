package main

import (
	"context"
	"fmt"

	"github.com/andyle182810/storefront/config"
	"github.com/andyle182810/storefront/fakeapi"
	"github.com/andyle182810/storefront/logutil"
	"github.com/andyle182810/storefront/metricserver"
	"github.com/andyle182810/storefront/middleware"
	"github.com/andyle182810/storefront/runner"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const metricsNamespace = "storefront"

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Application exited with an error")
	}

	log.Info().Msg("Application shutdown complete")
}

func run() error {
	cfg, err := config.NewServer()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zerolog.SetGlobalLevel(logutil.ParseZerologLevel(cfg.LogLevel))

	logger := logutil.NewLogger(nil, cfg.LogLevel, cfg.LogPretty)
	log.Logger = logger

	opts := []runner.Option{
		runner.WithShutdownTimeout(cfg.GracefulShutdownPeriod),
		runner.WithLogger(logger),
	}

	var serverOpts []fakeapi.ServerOption

	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}), //nolint:exhaustruct
		)

		serverOpts = append(serverOpts, fakeapi.WithMetrics(middleware.NewMetrics(reg, metricsNamespace)))

		opts = append(opts, runner.WithService(metricserver.New(&metricserver.Config{
			Host:         cfg.MetricsHost,
			Port:         cfg.MetricsPort,
			ReadTimeout:  cfg.HTTPServerReadTimeout,
			WriteTimeout: cfg.HTTPServerWriteTimeout,
			GracePeriod:  cfg.GracefulShutdownPeriod,
			Logger:       &logger,
		}, reg)))
	}

	srv := fakeapi.NewServer(cfg, fakeapi.NewStore(), &logger, serverOpts...)
	opts = append(opts, runner.WithService(srv))

	logger.Info().
		Str("address", cfg.Address()).
		Str("base_path", cfg.HTTPBasePath).
		Bool("metrics", cfg.MetricsEnabled).
		Msg("Serving storefront API")

	return runner.New(opts...).Run(context.Background())
}
