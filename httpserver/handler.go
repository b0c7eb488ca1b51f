package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v5"
)

// NoContent makes Handle answer 204 with an empty body.
type NoContent struct{}

type handleConfig struct {
	status int
}

type HandleOption func(*handleConfig)

// WithStatus sets the success status; the default is 200.
func WithStatus(status int) HandleOption {
	return func(c *handleConfig) {
		c.status = status
	}
}

// Handle binds the request into a REQ, validates it and passes it to
// wrapped. Bind and validation failures are returned unchanged so the error
// handler can render them.
func Handle[REQ any, RES any](
	wrapped func(*echo.Context, *REQ) (RES, error),
	opts ...HandleOption,
) echo.HandlerFunc {
	cfg := &handleConfig{status: http.StatusOK}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(ectx *echo.Context) error {
		req, err := bindAndValidate[REQ](ectx)
		if err != nil {
			return err
		}

		res, err := wrapped(ectx, req)
		if err != nil {
			return err
		}

		if _, ok := any(res).(NoContent); ok {
			return ectx.NoContent(http.StatusNoContent)
		}

		return ectx.JSON(cfg.status, res)
	}
}

func bindAndValidate[REQ any](ectx *echo.Context) (*REQ, error) {
	var req REQ

	if err := ectx.Bind(&req); err != nil {
		return nil, BadRequest(err, "Invalid request")
	}

	if err := ectx.Validate(&req); err != nil {
		return nil, err
	}

	return &req, nil
}
