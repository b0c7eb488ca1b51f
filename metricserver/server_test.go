package metricserver_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andyle182810/storefront/metricserver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestServer_ExposesMetricsAndStatus(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{ //nolint:exhaustruct
		Name: "storefront_orders_created_total",
		Help: "Orders created.",
	})
	reg.MustRegister(counter)
	counter.Add(3)

	logger := zerolog.Nop()
	srv := metricserver.New(&metricserver.Config{Logger: &logger}, reg) //nolint:exhaustruct
	require.Equal(t, "metric", srv.Name())

	ts := httptest.NewServer(srv.Echo)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics") //nolint:noctx
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "storefront_orders_created_total 3")

	resp, err = http.Get(ts.URL + "/status") //nolint:noctx
	require.NoError(t, err)

	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	require.JSONEq(t, `{"status":"ok"}`, string(body))
}
