package config_test

import (
	"testing"
	"time"

	"github.com/andyle182810/storefront/config"
	"github.com/stretchr/testify/require"
)

func TestNewClientFromMap_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.NewClientFromMap(map[string]string{})

	require.NoError(t, err)
	require.Equal(t, config.DefaultAPIURL, cfg.APIURL)
	require.Equal(t, "info", cfg.LogLevel)
	require.False(t, cfg.DebugRequests)
	require.Zero(t, cfg.RequestTimeout)
}

func TestNewClientFromMap_Overrides(t *testing.T) {
	t.Parallel()

	cfg, err := config.NewClientFromMap(map[string]string{
		"API_URL":         "https://shop.example.com/api",
		"LOG_LEVEL":       "debug",
		"DEBUG_REQUESTS":  "true",
		"REQUEST_TIMEOUT": "5s",
		"STOREFRONT_TOKEN": "tok",
	})

	require.NoError(t, err)
	require.Equal(t, "https://shop.example.com/api", cfg.APIURL)
	require.Equal(t, "debug", cfg.LogLevel)
	require.True(t, cfg.DebugRequests)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
	require.Equal(t, "tok", cfg.Token)
}

func TestNewClientFromMap_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "bad bool", env: map[string]string{"DEBUG_REQUESTS": "maybe"}},
		{name: "bad duration", env: map[string]string{"REQUEST_TIMEOUT": "soon"}},
		{name: "relative url", env: map[string]string{"API_URL": "shop/api"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.NewClientFromMap(tt.env)
			require.Error(t, err)
		})
	}
}

func TestNewServerFromMap_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.NewServerFromMap(map[string]string{})

	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:8080", cfg.Address())
	require.Equal(t, "/api", cfg.HTTPBasePath)
	require.Equal(t, 24*time.Hour, cfg.JWTTTL)
	require.Equal(t, 10*time.Second, cfg.GracefulShutdownPeriod)
	require.Zero(t, cfg.RateLimitRPS)
	require.Equal(t, 20, cfg.RateLimitBurst)
	require.True(t, cfg.MetricsEnabled)
	require.Equal(t, 9090, cfg.MetricsPort)
}

func TestNewServerFromMap_Overrides(t *testing.T) {
	t.Parallel()

	cfg, err := config.NewServerFromMap(map[string]string{
		"HTTP_SERVER_HOST": "127.0.0.1",
		"HTTP_SERVER_PORT": "9000",
		"JWT_SECRET":       "s3cret",
		"RATE_LIMIT_RPS":   "2.5",
	})

	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9000", cfg.Address())
	require.Equal(t, "s3cret", cfg.JWTSecret)
	require.InDelta(t, 2.5, cfg.RateLimitRPS, 0.0001)
}

func TestNewServerFromMap_InvalidPort(t *testing.T) {
	t.Parallel()

	_, err := config.NewServerFromMap(map[string]string{"HTTP_SERVER_PORT": "http"})

	require.Error(t, err)
}
