package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/andyle182810/storefront/middleware"
	"github.com/andyle182810/storefront/validator"
	"github.com/labstack/echo/v5"
	echomiddleware "github.com/labstack/echo/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	kilobyte         = 1 << 10
	megabyte         = 1 << 20
	defaultBodyLimit = 1 * megabyte
)

var ErrServerNotRunning = errors.New("httpserver: server is not running")

type Config struct {
	Host     string
	Port     int
	BasePath string
	// BodyLimit accepts a plain byte count or a K/M suffix, e.g. "512K".
	BodyLimit      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	GracePeriod    time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	Logger         *zerolog.Logger
	// Metrics, when set, records every request.
	Metrics *middleware.Metrics
}

type Server struct {
	address      string
	gracePeriod  time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
	logger       zerolog.Logger
	Echo         *echo.Echo
	Root         *echo.Group

	mu         sync.Mutex
	httpServer *http.Server
	listener   net.Listener
}

// New builds an echo instance with the storefront middleware stack. Routes
// are registered on Root, which is mounted at cfg.BasePath.
func New(cfg *Config) *Server {
	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.ErrorHandler(nil, &middleware.ErrorHandlerConfig{
		Logger:                &logger,
		LogErrors:             true,
		IncludeInternalErrors: false,
	})

	e.Use(middleware.RequestID(echomiddleware.DefaultSkipper))
	e.Use(middleware.RequestLogger(logger))

	if cfg.Metrics != nil {
		e.Use(cfg.Metrics.Middleware())
	}

	e.Use(echomiddleware.BodyLimit(parseBodyLimit(cfg.BodyLimit)))
	e.Use(middleware.RateLimit(middleware.RateLimitConfig{ //nolint:exhaustruct
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}))

	root := e.Group(normalizeBasePath(cfg.BasePath))

	return &Server{ //nolint:exhaustruct
		address:      net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		gracePeriod:  cfg.GracePeriod,
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
		logger:       logger,
		Echo:         e,
		Root:         root,
	}
}

func normalizeBasePath(basePath string) string {
	basePath = strings.TrimRight(strings.TrimSpace(basePath), "/")
	if basePath == "" {
		return ""
	}

	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}

	return basePath
}

func parseBodyLimit(limit string) int64 {
	limit = strings.TrimSpace(limit)
	if limit == "" {
		return defaultBodyLimit
	}

	multiplier := int64(1)

	switch limit[len(limit)-1] {
	case 'K', 'k':
		multiplier = kilobyte
		limit = limit[:len(limit)-1]
	case 'M', 'm':
		multiplier = megabyte
		limit = limit[:len(limit)-1]
	}

	size, err := strconv.ParseInt(limit, 10, 64)
	if err != nil || size <= 0 {
		return defaultBodyLimit
	}

	return size * multiplier
}

// Start binds the listener before returning so address conflicts surface to
// the caller, then serves in the background.
func (s *Server) Start(_ context.Context) error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.address, err)
	}

	httpServer := &http.Server{ //nolint:exhaustruct
		Handler:      s.Echo,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}

	s.mu.Lock()
	s.httpServer = httpServer
	s.listener = listener
	s.mu.Unlock()

	s.logger.Info().
		Str("address", listener.Addr().String()).
		Msg("The HTTP server is being started")

	go func() {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("HTTP server stopped unexpectedly")
		}
	}()

	return nil
}

// Addr reports the bound address, which differs from the configured one when
// the port is 0.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return s.address
	}

	return s.listener.Addr().String()
}

func (s *Server) Stop() error {
	s.logger.Info().Msg("The graceful shutdown of HTTP server is being initiated")

	s.mu.Lock()
	httpServer := s.httpServer
	s.mu.Unlock()

	if httpServer == nil {
		return ErrServerNotRunning
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.gracePeriod)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Failed to gracefully stop HTTP server")

		return fmt.Errorf("failed to stop HTTP server: %w", err)
	}

	s.logger.Info().Msg("The HTTP server shutdown has been completed successfully")

	return nil
}

func (s *Server) Name() string {
	return "http"
}
