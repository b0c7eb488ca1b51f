package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

const DefaultAPIURL = "http://localhost:8080/api"

// Client configures the storefront CLI and anything else that talks to the
// backend through httpclient.
type Client struct {
	APIURL         string        `env:"API_URL"         envDefault:"http://localhost:8080/api"`
	LogLevel       string        `env:"LOG_LEVEL"       envDefault:"info"`
	LogPretty      bool          `env:"LOG_PRETTY"      envDefault:"false"`
	DebugRequests  bool          `env:"DEBUG_REQUESTS"  envDefault:"false"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"0s"`
	// Token is the bearer token the CLI sends when --token is not given.
	Token string `env:"STOREFRONT_TOKEN"`
}

// Server configures the in-memory backend served by cmd/fakeapi.
type Server struct {
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`

	// HTTP Server
	HTTPServerHost         string        `env:"HTTP_SERVER_HOST"          envDefault:"0.0.0.0"`
	HTTPServerPort         int           `env:"HTTP_SERVER_PORT"          envDefault:"8080"`
	HTTPBasePath           string        `env:"HTTP_BASE_PATH"            envDefault:"/api"`
	HTTPServerReadTimeout  time.Duration `env:"HTTP_SERVER_READ_TIMEOUT"  envDefault:"30s"`
	HTTPServerWriteTimeout time.Duration `env:"HTTP_SERVER_WRITE_TIMEOUT" envDefault:"30s"`

	// Metrics
	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	MetricsHost    string `env:"METRICS_HOST"    envDefault:"0.0.0.0"`
	MetricsPort    int    `env:"METRICS_PORT"    envDefault:"9090"`

	// Graceful Shutdown
	GracefulShutdownPeriod time.Duration `env:"GRACEFUL_SHUTDOWN_PERIOD" envDefault:"10s"`

	// Auth
	JWTSecret string        `env:"JWT_SECRET" envDefault:"change-me-in-production"`
	JWTTTL    time.Duration `env:"JWT_TTL"    envDefault:"24h"`

	// Rate limiting, disabled when RPS is zero.
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"0"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"20"`
}

func NewClient() (*Client, error) {
	return parseClient(env.Options{}) //nolint:exhaustruct
}

// NewClientFromMap reads the client configuration from environment instead of
// the process environment.
func NewClientFromMap(environment map[string]string) (*Client, error) {
	return parseClient(env.Options{Environment: environment}) //nolint:exhaustruct
}

func NewServer() (*Server, error) {
	return parseServer(env.Options{}) //nolint:exhaustruct
}

func NewServerFromMap(environment map[string]string) (*Server, error) {
	return parseServer(env.Options{Environment: environment}) //nolint:exhaustruct
}

func parseClient(opts env.Options) (*Client, error) {
	var cfg Client

	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if _, err := url.ParseRequestURI(cfg.APIURL); err != nil {
		return nil, fmt.Errorf("failed to parse config: invalid API_URL %q: %w", cfg.APIURL, err)
	}

	return &cfg, nil
}

func parseServer(opts env.Options) (*Server, error) {
	var cfg Server

	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

func (c *Server) Address() string {
	return fmt.Sprintf("%s:%d", c.HTTPServerHost, c.HTTPServerPort)
}
