package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/prometheus/client_golang/prometheus"
)

const unmatchedHandler = "unmatched"

// Metrics counts requests and observes their latency, labelled by the handler
// name set with Handler so that ids in paths do not explode cardinality.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{ //nolint:exhaustruct
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests served.",
			},
			[]string{"method", "handler", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{ //nolint:exhaustruct
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "handler"},
		),
	}

	reg.MustRegister(m.requests, m.duration)

	return m
}

func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx *echo.Context) error {
			start := time.Now()

			err := next(ctx)

			handler := GetHandler(ctx)
			if handler == "" {
				handler = unmatchedHandler
			}

			method := ctx.Request().Method
			status := strconv.Itoa(responseStatus(ctx, err))

			m.requests.WithLabelValues(method, handler, status).Inc()
			m.duration.WithLabelValues(method, handler).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
