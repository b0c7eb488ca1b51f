package middleware

import (
	"errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
)

const (
	ContextKeyRequestID string = "requestID"
	ContextKeyToken     string = "token"
	ContextKeyClaims    string = "claims"
	ContextKeyHandler   string = "handler"
)

const (
	HeaderXRequestID     = "X-Request-ID"
	HeaderAuthorization  = "Authorization"
	HeaderRetryAfter     = "Retry-After"
	HeaderRateLimitLimit = "X-Ratelimit-Limit"
)

const HeaderRateLimitRemaining = "X-Ratelimit-Remaining"

var (
	ErrClaimsNotFound            = errors.New("jwt claims: not found in context")
	ErrClaimsTypeAssertionFailed = errors.New("jwt claims: type assertion failed")
)

// GetRequestID returns the id set by RequestID, or a fresh one when the
// middleware did not run for this route.
func GetRequestID(c *echo.Context) string {
	if requestID, ok := c.Get(ContextKeyRequestID).(string); ok {
		return requestID
	}

	return uuid.NewString()
}

func GetToken(c *echo.Context) string {
	if token, ok := c.Get(ContextKeyToken).(string); ok {
		return token
	}

	return ""
}

func GetClaims(c *echo.Context) (*Claims, error) {
	claimsValue := c.Get(ContextKeyClaims)

	if claimsValue == nil {
		return nil, ErrClaimsNotFound
	}

	claims, ok := claimsValue.(*Claims)
	if !ok {
		return nil, ErrClaimsTypeAssertionFailed
	}

	return claims, nil
}

// GetSubject returns the authenticated user's email, or "" on public routes.
func GetSubject(c *echo.Context) string {
	claims, err := GetClaims(c)
	if err != nil {
		return ""
	}

	return claims.Subject
}

func GetHandler(c *echo.Context) string {
	if handler, ok := c.Get(ContextKeyHandler).(string); ok {
		return handler
	}

	return ""
}

// Handler tags the route so request and error logs can name it.
func Handler(name string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx *echo.Context) error {
			ctx.Set(ContextKeyHandler, name)

			return next(ctx)
		}
	}
}
