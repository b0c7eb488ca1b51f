package middleware

import (
	"errors"
	"maps"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/rs/zerolog"
)

type LogFieldExtractor func(*echo.Context) map[string]any

// RequestLogger writes one line per request. Headers and bodies are never
// logged, so bearer tokens and passwords stay out of the output.
func RequestLogger(log zerolog.Logger, extraLogFieldExtractor ...LogFieldExtractor) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx *echo.Context) error {
			start := time.Now()

			err := next(ctx)

			fields := extractLogFields(ctx, start)
			fields["status"] = responseStatus(ctx, err)

			if id, ok := ctx.Get(ContextKeyRequestID).(string); ok && id != "" {
				fields["request_id"] = id
			}

			if handler := GetHandler(ctx); handler != "" {
				fields["handler"] = handler
			}

			if subject := GetSubject(ctx); subject != "" {
				fields["user"] = subject
			}

			for _, extractor := range extraLogFieldExtractor {
				maps.Copy(fields, extractor(ctx))
			}

			logRequest(log, fields, fields["status"].(int)) //nolint:forcetypeassert

			return err
		}
	}
}

func extractLogFields(ctx *echo.Context, start time.Time) map[string]any {
	req := ctx.Request()

	return map[string]any{
		"remote_ip":  ctx.RealIP(),
		"latency":    time.Since(start).String(),
		"method":     req.Method,
		"path":       req.URL.Path,
		"user_agent": req.UserAgent(),
	}
}

// responseStatus reports the status the client will see. Errors are rendered
// after the middleware chain returns, so their code is taken from the error.
func responseStatus(ctx *echo.Context, err error) int {
	if err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr.Code
		}

		var coder statusCoder
		if errors.As(err, &coder) {
			return coder.StatusCode()
		}

		return http.StatusInternalServerError
	}

	res, unwrapErr := echo.UnwrapResponse(ctx.Response())
	if unwrapErr != nil || res == nil {
		return http.StatusOK
	}

	return res.Status
}

func logRequest(log zerolog.Logger, fields map[string]any, status int) {
	logger := log.With().Fields(fields).Logger()

	switch {
	case status >= http.StatusInternalServerError:
		logger.Error().Msg("The request has resulted in a server error")
	case status >= http.StatusBadRequest:
		logger.Warn().Msg("The request has resulted in a client error")
	default:
		logger.Info().Msg("The request has completed successfully")
	}
}
