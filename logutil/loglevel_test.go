package logutil_test

import (
	"bytes"
	"testing"

	"github.com/andyle182810/storefront/logutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseZerologLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected zerolog.Level
	}{
		{name: "trace level", input: "trace", expected: zerolog.TraceLevel},
		{name: "debug level", input: "debug", expected: zerolog.DebugLevel},
		{name: "info level", input: "info", expected: zerolog.InfoLevel},
		{name: "warn level", input: "warn", expected: zerolog.WarnLevel},
		{name: "error level", input: "error", expected: zerolog.ErrorLevel},
		{name: "fatal level", input: "fatal", expected: zerolog.FatalLevel},
		{name: "panic level", input: "panic", expected: zerolog.PanicLevel},
		{name: "disabled", input: "disabled", expected: zerolog.Disabled},
		{name: "case and space insensitive", input: " DEBUG ", expected: zerolog.DebugLevel},
		{name: "unknown level defaults to info", input: "unknown", expected: zerolog.InfoLevel},
		{name: "empty string defaults to info", input: "", expected: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, logutil.ParseZerologLevel(tt.input))
		})
	}
}

func TestNewLogger_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logutil.NewLogger(&buf, "warn", false)
	logger.Info().Msg("hidden")
	logger.Warn().Str("endpoint", "/products").Msg("visible")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, `"endpoint":"/products"`)
	require.Contains(t, out, `"time":`)
}

func TestNewLogger_Pretty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logutil.NewLogger(&buf, "debug", true)
	logger.Debug().Msg("API request")

	require.Contains(t, buf.String(), "API request")
	require.NotContains(t, buf.String(), `"message"`)
}
