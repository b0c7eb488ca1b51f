package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/andyle182810/storefront/validator"
	"github.com/labstack/echo/v5"
	"github.com/rs/zerolog"
)

const msgInternalServerError = "Internal server error"

type ErrorHandlerConfig struct {
	Logger                *zerolog.Logger
	LogErrors             bool
	IncludeInternalErrors bool
}

// statusCoder matches router errors that carry a status without being an
// *echo.HTTPError.
type statusCoder interface {
	StatusCode() int
}

// ErrorResponse is the envelope every failed request is answered with.
type ErrorResponse struct {
	Message  string `json:"message"`
	Internal string `json:"internal,omitempty"`
}

// ErrorHandler renders errors as ErrorResponse. Validation failures become
// 400s carrying the validator's message. Other non-HTTP errors go to next
// when it is set and are otherwise answered with a generic 500.
func ErrorHandler(next echo.HTTPErrorHandler, config ...*ErrorHandlerConfig) echo.HTTPErrorHandler {
	cfg := getErrorHandlerConfig(config)

	return func(ectx *echo.Context, err error) {
		res, unwrapErr := echo.UnwrapResponse(ectx.Response())
		if unwrapErr == nil && res.Committed {
			return
		}

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			err = echo.NewHTTPError(http.StatusBadRequest, validationErrs.Error())
		}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			handleHTTPError(ectx, httpErr, cfg)

			return
		}

		var coder statusCoder
		if errors.As(err, &coder) {
			handleHTTPError(ectx, echo.NewHTTPError(coder.StatusCode(), http.StatusText(coder.StatusCode())), cfg)

			return
		}

		if cfg.LogErrors && cfg.Logger != nil {
			logError(ectx, err, cfg.Logger)
		}

		if next != nil {
			next(ectx, err)

			return
		}

		response := ErrorResponse{Message: msgInternalServerError, Internal: ""}
		if cfg.IncludeInternalErrors {
			response.Internal = err.Error()
		}

		_ = ectx.JSON(http.StatusInternalServerError, response)
	}
}

func getErrorHandlerConfig(config []*ErrorHandlerConfig) *ErrorHandlerConfig {
	if len(config) > 0 && config[0] != nil {
		return config[0]
	}

	return &ErrorHandlerConfig{} //nolint:exhaustruct
}

func handleHTTPError(ectx *echo.Context, httpErr *echo.HTTPError, cfg *ErrorHandlerConfig) {
	if cfg.LogErrors && cfg.Logger != nil {
		logHTTPError(ectx, httpErr, cfg.Logger)
	}

	response := ErrorResponse{Message: httpErrorMessage(httpErr), Internal: ""}

	if cfg.IncludeInternalErrors {
		if internal := httpErr.Unwrap(); internal != nil {
			response.Internal = internal.Error()
		}
	}

	_ = ectx.JSON(httpErr.Code, response)
}

func httpErrorMessage(httpErr *echo.HTTPError) string {
	message := fmt.Sprint(httpErr.Message)
	if message == "" {
		return http.StatusText(httpErr.Code)
	}

	return message
}

func requestFields(ectx *echo.Context) map[string]any {
	fields := map[string]any{
		"path":   ectx.Request().URL.Path,
		"method": ectx.Request().Method,
	}

	if id, ok := ectx.Get(ContextKeyRequestID).(string); ok && id != "" {
		fields["request_id"] = id
	}

	if handler := GetHandler(ectx); handler != "" {
		fields["handler"] = handler
	}

	return fields
}

func logHTTPError(ectx *echo.Context, httpErr *echo.HTTPError, logger *zerolog.Logger) {
	loggerWithFields := logger.With().
		Fields(requestFields(ectx)).
		Int("status_code", httpErr.Code).
		Str("message", httpErrorMessage(httpErr)).
		Logger()

	if internal := httpErr.Unwrap(); internal != nil {
		loggerWithFields = loggerWithFields.With().Err(internal).Logger()
	}

	if httpErr.Code >= http.StatusInternalServerError {
		loggerWithFields.Error().Msg("Request failed with server error")

		return
	}

	loggerWithFields.Warn().Msg("Request failed with client error")
}

func logError(ectx *echo.Context, err error, logger *zerolog.Logger) {
	logger.Error().
		Err(err).
		Fields(requestFields(ectx)).
		Msg("Unhandled error")
}
