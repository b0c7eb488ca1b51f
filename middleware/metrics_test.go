package middleware_test

import (
	"net/http"
	"testing"

	"github.com/andyle182810/storefront/middleware"
	"github.com/andyle182810/storefront/testutil"
	"github.com/labstack/echo/v5"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountsByHandlerAndStatus(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(reg, "storefront")

	e := testutil.NewEcho()
	e.Use(metrics.Middleware())
	e.GET("/products/:id", func(ctx *echo.Context) error {
		if ctx.Param("id") == "999" {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}

		return ctx.JSON(http.StatusOK, map[string]string{"id": ctx.Param("id")})
	}, middleware.Handler("get_product"))

	testutil.Serve(e, testutil.NewRequest(http.MethodGet, "/products/1", nil))
	testutil.Serve(e, testutil.NewRequest(http.MethodGet, "/products/2", nil))
	testutil.Serve(e, testutil.NewRequest(http.MethodGet, "/products/999", nil))
	testutil.Serve(e, testutil.NewRequest(http.MethodGet, "/nowhere", nil))

	count, err := promtestutil.GatherAndCount(reg, "storefront_http_requests_total")
	require.NoError(t, err)
	require.Equal(t, 3, count)

	families, err := reg.Gather()
	require.NoError(t, err)

	observed := map[string]float64{}

	for _, family := range families {
		if family.GetName() != "storefront_http_requests_total" {
			continue
		}

		for _, metric := range family.GetMetric() {
			labels := map[string]string{}
			for _, pair := range metric.GetLabel() {
				labels[pair.GetName()] = pair.GetValue()
			}

			observed[labels["handler"]+" "+labels["status"]] = metric.GetCounter().GetValue()
		}
	}

	require.Equal(t, map[string]float64{
		"get_product 200": 2,
		"get_product 404": 1,
		"unmatched 404":   1,
	}, observed)
}

func TestNewMetrics_PanicsOnDuplicateRegistration(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	middleware.NewMetrics(reg, "storefront")

	require.Panics(t, func() { middleware.NewMetrics(reg, "storefront") })
}
