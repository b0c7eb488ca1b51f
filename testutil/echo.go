package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/andyle182810/storefront/middleware"
	"github.com/andyle182810/storefront/validator"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"github.com/stretchr/testify/require"
)

type Options struct {
	Method        string            // HTTP method (GET, POST, etc.)
	Path          string            // Request path
	Body          any               // Request body, JSON encoded unless it is already []byte
	Headers       map[string]string // Custom headers
	QueryParams   map[string]string // Query parameters
	PathParams    map[string]string // Path parameters (e.g., :id)
	SkipRequestID bool              // Skip auto-generating X-Request-ID header
}

// NewEcho returns an instance configured like the storefront servers: the
// shared validator and the {"message"} error envelope.
func NewEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.ErrorHandler(nil)

	return e
}

func SetupEchoContext(t *testing.T, opts *Options) (*echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	requestPath := opts.Path

	if len(opts.QueryParams) > 0 {
		query := url.Values{}
		for key, value := range opts.QueryParams {
			query.Add(key, value)
		}

		requestPath += "?" + query.Encode()
	}

	req := httptest.NewRequest(opts.Method, requestPath, bytes.NewReader(encodeBody(t, opts.Body)))
	req.Header.Set("Content-Type", "application/json")

	if !opts.SkipRequestID {
		req.Header.Set(middleware.HeaderXRequestID, uuid.NewString())
	}

	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	ctx := NewEcho().NewContext(req, rec)

	if len(opts.PathParams) > 0 {
		pathValues := make([]echo.PathValue, 0, len(opts.PathParams))

		for name, value := range opts.PathParams {
			pathValues = append(pathValues, echo.PathValue{
				Name:  name,
				Value: value,
			})
		}

		ctx.SetPathValues(pathValues)
	}

	return ctx, rec
}

func SetupEchoContextWithAuth(t *testing.T, opts *Options, token string) (*echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	if opts.Headers == nil {
		opts.Headers = make(map[string]string)
	}

	opts.Headers[middleware.HeaderAuthorization] = "Bearer " + token

	return SetupEchoContext(t, opts)
}

func encodeBody(t *testing.T, body any) []byte {
	t.Helper()

	switch b := body.(type) {
	case nil:
		return nil
	case []byte:
		return b
	default:
		encoded, err := json.Marshal(b)
		require.NoError(t, err, "Failed to marshal JSON body")

		return encoded
	}
}

// Serve runs req through e and returns the recorded response.
func Serve(e http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

// NewRequest builds a JSON request with a fresh X-Request-ID.
func NewRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderXRequestID, uuid.NewString())

	return req
}
