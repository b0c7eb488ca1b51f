package httpclient_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andyle182810/storefront/httpclient"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestTokenPreview(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		token    string
		expected string
	}{
		{name: "no token", token: "", expected: "none"},
		{name: "single character", token: "x", expected: "..."},
		{name: "short token shows half", token: "abcdefgh", expected: "abcd..."},
		{name: "long token capped at twenty", token: strings.Repeat("t", 64), expected: strings.Repeat("t", 20) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.expected, httpclient.TokenPreview(tt.token))
		})
	}
}

func TestTokenPreview_NeverContainsFullToken(t *testing.T) {
	t.Parallel()

	for length := 1; length <= 64; length++ {
		token := strings.Repeat("k", length)

		preview := strings.TrimSuffix(httpclient.TokenPreview(token), "...")

		require.Less(t, len(preview), length)
	}
}

func TestZerologDebugSink_NeverLogsFullTokenOrBody(t *testing.T) {
	t.Parallel()

	token := "super-secret-token-value-that-must-not-leak"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid token","secret":"body-secret"}`))
	}))
	defer server.Close()

	var buf bytes.Buffer

	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	client := httpclient.New(server.URL, httpclient.WithDebugSink(httpclient.NewZerologDebugSink(logger)))

	err := client.Get(t.Context(), "/orders", nil, httpclient.WithBearerToken(token))
	require.EqualError(t, err, "Invalid token")

	output := buf.String()
	require.Contains(t, output, `"token_preview":"super-secret-token-v..."`)
	require.Contains(t, output, `"status":401`)
	require.NotContains(t, output, token)
	require.NotContains(t, output, "body-secret")
}

func TestWithDebugSink_NilFallsBackToNop(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := httpclient.New(server.URL, httpclient.WithDebugSink(nil))

	err := client.Get(t.Context(), "/test", nil)

	require.ErrorIs(t, err, httpclient.ErrServiceError)
}
