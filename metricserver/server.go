package metricserver

import (
	"net/http"
	"time"

	"github.com/andyle182810/storefront/httpserver"
	"github.com/labstack/echo/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const (
	metricsPath = "/metrics"
	statusPath  = "/status"
)

type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	GracePeriod  time.Duration
	Logger       *zerolog.Logger
}

// Server exposes a Prometheus gatherer on its own listener, apart from the API.
type Server struct {
	*httpserver.Server
}

func New(cfg *Config, gatherer prometheus.Gatherer) *Server {
	srv := httpserver.New(&httpserver.Config{ //nolint:exhaustruct
		Host:         cfg.Host,
		Port:         cfg.Port,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		GracePeriod:  cfg.GracePeriod,
		Logger:       cfg.Logger,
	})

	srv.Echo.GET(statusPath, func(ctx *echo.Context) error {
		return ctx.JSON(http.StatusOK, map[string]any{"status": "ok"})
	})

	metrics := promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}) //nolint:exhaustruct

	srv.Echo.GET(metricsPath, func(ctx *echo.Context) error {
		metrics.ServeHTTP(ctx.Response(), ctx.Request())

		return nil
	})

	return &Server{Server: srv}
}

func (s *Server) Name() string {
	return "metric"
}
