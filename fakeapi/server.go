package fakeapi

import (
	"github.com/andyle182810/storefront/config"
	"github.com/andyle182810/storefront/httpserver"
	"github.com/andyle182810/storefront/middleware"
	"github.com/rs/zerolog"
)

type ServerOption func(*httpserver.Config)

func WithMetrics(metrics *middleware.Metrics) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Metrics = metrics
	}
}

// NewServer wires a Store behind an httpserver.Server configured from cfg.
func NewServer(cfg *config.Server, store *Store, logger *zerolog.Logger, opts ...ServerOption) *httpserver.Server {
	httpCfg := &httpserver.Config{
		Host:           cfg.HTTPServerHost,
		Port:           cfg.HTTPServerPort,
		BasePath:       cfg.HTTPBasePath,
		BodyLimit:      "",
		ReadTimeout:    cfg.HTTPServerReadTimeout,
		WriteTimeout:   cfg.HTTPServerWriteTimeout,
		GracePeriod:    cfg.GracefulShutdownPeriod,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Logger:         logger,
		Metrics:        nil,
	}

	for _, opt := range opts {
		opt(httpCfg)
	}

	srv := httpserver.New(httpCfg)

	New(store, []byte(cfg.JWTSecret), WithTokenTTL(cfg.JWTTTL)).Register(srv.Root)

	return srv
}
