package middleware_test

import (
	"net/http"

	"github.com/andyle182810/storefront/middleware"
	"github.com/labstack/echo/v5"
)

func echoSuccessHandler(ctx *echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{
		"request_id": middleware.GetRequestID(ctx),
		"user":       middleware.GetSubject(ctx),
	})
}
