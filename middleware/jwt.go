package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v5"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultJWTContextKey = "user"

var (
	ErrTokenRequired = echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
	ErrInvalidToken  = echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")

	ErrSigningKeyRequired = errors.New("jwt: signing key is required")
)

// Claims are carried by storefront access tokens. Subject holds the user's
// email address.
type Claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

type JWTConfig struct {
	Skipper    middleware.Skipper
	Logger     *zerolog.Logger
	SigningKey []byte
	ContextKey string
}

func DefaultJWTConfig() JWTConfig {
	return JWTConfig{
		Skipper:    middleware.DefaultSkipper,
		Logger:     &log.Logger,
		SigningKey: nil,
		ContextKey: defaultJWTContextKey,
	}
}

// JWT verifies HS256 bearer tokens signed with secret.
func JWT(secret []byte) echo.MiddlewareFunc {
	config := DefaultJWTConfig()
	config.SigningKey = secret

	return JWTWithConfig(config)
}

func JWTWithConfig(config JWTConfig) echo.MiddlewareFunc {
	if len(config.SigningKey) == 0 {
		panic(ErrSigningKeyRequired)
	}

	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}

	if config.ContextKey == "" {
		config.ContextKey = defaultJWTContextKey
	}

	jwtMiddleware := echojwt.WithConfig(buildJWTConfig(config))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		verified := jwtMiddleware(next)

		return func(ctx *echo.Context) error {
			if config.Skipper(ctx) {
				return next(ctx)
			}

			return verified(ctx)
		}
	}
}

func buildJWTConfig(config JWTConfig) echojwt.Config {
	return echojwt.Config{
		Skipper:          nil,
		BeforeFunc:       nil,
		ContextKey:       config.ContextKey,
		SigningKey:       config.SigningKey,
		SigningKeys:      nil,
		SigningMethod:    jwt.SigningMethodHS256.Name,
		TokenLookup:      "header:" + HeaderAuthorization + ":Bearer ",
		TokenLookupFuncs: nil,
		ParseTokenFunc:   nil,
		KeyFunc:          nil,
		NewClaimsFunc: func(_ *echo.Context) jwt.Claims {
			return &Claims{} //nolint:exhaustruct
		},
		SuccessHandler:         createSuccessHandler(config.Logger, config.ContextKey),
		ErrorHandler:           createErrorHandler(config.Logger),
		ContinueOnIgnoredError: false,
	}
}

func createSuccessHandler(logger *zerolog.Logger, contextKey string) func(*echo.Context) error {
	return func(echoCtx *echo.Context) error {
		token, ok := echoCtx.Get(contextKey).(*jwt.Token)
		if !ok {
			jwtLogError(logger, "JWT token retrieval from context failed", nil)

			return ErrInvalidToken
		}

		claims, ok := token.Claims.(*Claims)
		if !ok || claims.Subject == "" {
			jwtLogError(logger, "JWT token carries no subject", nil)

			return ErrInvalidToken
		}

		echoCtx.Set(ContextKeyToken, token.Raw)
		echoCtx.Set(ContextKeyClaims, claims)

		if logger != nil {
			logger.Debug().Str("user", claims.Subject).Msg("JWT token verified successfully")
		}

		return nil
	}
}

func createErrorHandler(logger *zerolog.Logger) func(*echo.Context, error) error {
	return func(echoCtx *echo.Context, err error) error {
		if strings.TrimSpace(echoCtx.Request().Header.Get(HeaderAuthorization)) == "" {
			return ErrTokenRequired
		}

		jwtLogError(logger, "JWT verification failed", err)

		return ErrInvalidToken
	}
}

func jwtLogError(logger *zerolog.Logger, msg string, err error) {
	if logger == nil {
		return
	}

	event := logger.Warn()
	if err != nil {
		event = event.Err(err)
	}

	event.Msg(msg)
}

// SignToken issues an HS256 token for subject that expires after ttl.
func SignToken(secret []byte, subject, name string, ttl time.Duration, now time.Time) (string, error) {
	if len(secret) == 0 {
		return "", ErrSigningKeyRequired
	}

	claims := &Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{ //nolint:exhaustruct
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}
