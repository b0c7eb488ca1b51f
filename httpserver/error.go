package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v5"
)

// HTTPError answers with code and message and keeps err as the internal
// cause, which only reaches logs.
func HTTPError(code int, err error, message string) error {
	httpErr := echo.NewHTTPError(code, message)
	if err == nil {
		return httpErr
	}

	return httpErr.Wrap(err)
}

func BadRequest(err error, message string) error {
	return HTTPError(http.StatusBadRequest, err, message)
}

func Unauthorized(message string) error {
	return HTTPError(http.StatusUnauthorized, nil, message)
}

func NotFound(message string) error {
	return HTTPError(http.StatusNotFound, nil, message)
}

func Conflict(message string) error {
	return HTTPError(http.StatusConflict, nil, message)
}
