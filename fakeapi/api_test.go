package fakeapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andyle182810/storefront/config"
	"github.com/andyle182810/storefront/fakeapi"
	"github.com/andyle182810/storefront/middleware"
	"github.com/andyle182810/storefront/testutil"
	"github.com/labstack/echo/v5"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T, env map[string]string) *echo.Echo {
	t.Helper()

	cfg, err := config.NewServerFromMap(env)
	require.NoError(t, err)

	logger := zerolog.Nop()

	return fakeapi.NewServer(cfg, newStore(t), &logger).Echo
}

func post(target, body, token string) *http.Request {
	req := testutil.NewRequest(http.MethodPost, target, []byte(body))
	if token != "" {
		req.Header.Set(middleware.HeaderAuthorization, "Bearer "+token)
	}

	return req
}

func get(target, token string) *http.Request {
	req := testutil.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set(middleware.HeaderAuthorization, "Bearer "+token)
	}

	return req
}

func registerToken(t *testing.T, e *echo.Echo, email string) string {
	t.Helper()

	rec := testutil.Serve(e, post("/api/auth/register",
		`{"firstName":"Jane","lastName":"Doe","email":"`+email+`","password":"secret1"}`, ""))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Token string `json:"token"`
	}

	testutil.AssertJSONResponse(t, rec, &body)
	require.NotEmpty(t, body.Token)

	return body.Token
}

func TestAPI_RegisterErrors(t *testing.T) {
	t.Parallel()

	e := newHandler(t, map[string]string{})
	registerToken(t, e, "jane@example.com")

	tests := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{
			name:    "invalid email",
			body:    `{"firstName":"A","lastName":"B","email":"nope","password":"secret1"}`,
			status:  http.StatusBadRequest,
			message: "Invalid email",
		},
		{
			name:    "short password",
			body:    `{"firstName":"A","lastName":"B","email":"a@example.com","password":"123"}`,
			status:  http.StatusBadRequest,
			message: "password must contain at least 6",
		},
		{
			name:    "duplicate",
			body:    `{"firstName":"A","lastName":"B","email":"JANE@example.com","password":"secret1"}`,
			status:  http.StatusConflict,
			message: "Email is already registered",
		},
		{
			name:    "malformed json",
			body:    `{"firstName":`,
			status:  http.StatusBadRequest,
			message: "Invalid request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := testutil.Serve(e, post("/api/auth/register", tt.body, ""))

			testutil.AssertErrorMessage(t, rec, tt.status, tt.message)
		})
	}
}

func TestAPI_Login(t *testing.T) {
	t.Parallel()

	e := newHandler(t, map[string]string{})
	registerToken(t, e, "jane@example.com")

	rec := testutil.Serve(e, post("/api/auth/authenticate", `{"email":"jane@example.com","password":"secret1"}`, ""))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"token":"`)

	rec = testutil.Serve(e, post("/api/auth/authenticate", `{"email":"jane@example.com","password":"nope"}`, ""))
	testutil.AssertErrorMessage(t, rec, http.StatusUnauthorized, "Invalid email or password")
}

func TestAPI_Catalog(t *testing.T) {
	t.Parallel()

	e := newHandler(t, map[string]string{})

	rec := testutil.Serve(e, get("/api/products", ""))
	require.Equal(t, http.StatusOK, rec.Code)

	var products []map[string]any

	testutil.AssertJSONResponse(t, rec, &products)
	require.Len(t, products, len(fakeapi.SeedProducts()))
	require.Equal(t, "Wireless Headphones", products[0]["name"])

	rec = testutil.Serve(e, get("/api/products/category/2", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "The Go Programming Language")

	rec = testutil.Serve(e, get("/api/categories", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Electronics")

	testutil.AssertErrorMessage(t, testutil.Serve(e, get("/api/products/999", "")), http.StatusNotFound, "Product not found")
	testutil.AssertErrorMessage(t, testutil.Serve(e, get("/api/products/abc", "")), http.StatusBadRequest, "Invalid product id")
	testutil.AssertErrorMessage(t, testutil.Serve(e, get("/api/products/category/77", "")),
		http.StatusNotFound, "Category not found")
}

func TestAPI_ProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()

	e := newHandler(t, map[string]string{})

	testutil.AssertErrorMessage(t, testutil.Serve(e, get("/api/orders", "")),
		http.StatusUnauthorized, "Authorization header is required")
	testutil.AssertErrorMessage(t, testutil.Serve(e, get("/api/orders", "forged")),
		http.StatusUnauthorized, "Invalid token")
	testutil.AssertErrorMessage(t, testutil.Serve(e, post("/api/payments/success?paymentIntentId=pi_1", "", "")),
		http.StatusUnauthorized, "Authorization header is required")
}

func TestAPI_TokenFromOtherSecretRejected(t *testing.T) {
	t.Parallel()

	issuer := newHandler(t, map[string]string{"JWT_SECRET": "issuer-secret"})
	verifier := newHandler(t, map[string]string{"JWT_SECRET": "verifier-secret"})

	token := registerToken(t, issuer, "jane@example.com")

	testutil.AssertErrorMessage(t, testutil.Serve(verifier, get("/api/orders", token)),
		http.StatusUnauthorized, "Invalid token")
}

func TestAPI_OrderAndPaymentFlow(t *testing.T) {
	t.Parallel()

	e := newHandler(t, map[string]string{})
	jane := registerToken(t, e, "jane@example.com")
	john := registerToken(t, e, "john@example.com")

	rec := testutil.Serve(e, post("/api/orders",
		`{"items":[{"productId":3,"quantity":1}],"shippingAddress":"1 Main St"}`, jane))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var order struct {
		ID          int64       `json:"id"`
		OrderCode   string      `json:"orderCode"`
		Status      string      `json:"status"`
		TotalAmount json.Number `json:"totalAmount"`
	}

	testutil.AssertJSONResponse(t, rec, &order)
	require.Equal(t, "PENDING", order.Status)
	require.Equal(t, json.Number("44.95"), order.TotalAmount)

	testutil.AssertErrorMessage(t, testutil.Serve(e, get("/api/orders/code/"+order.OrderCode, john)),
		http.StatusNotFound, "Order not found")

	rec = testutil.Serve(e, get("/api/orders", john))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())

	rec = testutil.Serve(e, post("/api/payments/create-payment-intent",
		`{"orderId":`+jsonNumber(order.ID)+`,"amount":44.95}`, jane))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var intent struct {
		PaymentIntentID string `json:"paymentIntentId"`
	}

	testutil.AssertJSONResponse(t, rec, &intent)

	testutil.AssertErrorMessage(t, testutil.Serve(e, post("/api/payments/success", "", jane)),
		http.StatusBadRequest, "paymentIntentId is required")

	rec = testutil.Serve(e, post("/api/payments/failure?paymentIntentId="+intent.PaymentIntentID, "", jane))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, strings.TrimSpace(rec.Body.String()))

	rec = testutil.Serve(e, get("/api/orders/"+jsonNumber(order.ID), jane))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"PAYMENT_FAILED"`)

	testutil.AssertErrorMessage(t,
		testutil.Serve(e, post("/api/payments/success?paymentIntentId="+intent.PaymentIntentID, "", jane)),
		http.StatusConflict, "Order is not awaiting payment")
}

func TestAPI_ResponsesCarryRequestID(t *testing.T) {
	t.Parallel()

	e := newHandler(t, map[string]string{})

	req := get("/api/categories", "")
	rid := req.Header.Get(middleware.HeaderXRequestID)

	rec := testutil.Serve(e, req)

	require.Equal(t, rid, rec.Header().Get(middleware.HeaderXRequestID))
}

func TestAPI_RateLimitFromConfig(t *testing.T) {
	t.Parallel()

	e := newHandler(t, map[string]string{"RATE_LIMIT_RPS": "0.001", "RATE_LIMIT_BURST": "2"})

	for range 2 {
		require.Equal(t, http.StatusOK, testutil.Serve(e, get("/api/categories", "")).Code)
	}

	testutil.AssertErrorMessage(t, testutil.Serve(e, get("/api/categories", "")),
		http.StatusTooManyRequests, "Too many requests")
}

func TestAPI_ServesOverHTTP(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(newHandler(t, map[string]string{}))
	defer server.Close()

	resp, err := server.Client().Get(server.URL + "/api/categories")
	require.NoError(t, err)

	defer resp.Body.Close()

	var categories []map[string]any

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&categories))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, categories, len(fakeapi.SeedCategories()))
}

func jsonNumber(id int64) string {
	out, _ := json.Marshal(id)

	return string(out)
}

func TestAPI_WithMetricsRecordsHandlers(t *testing.T) {
	t.Parallel()

	cfg, err := config.NewServerFromMap(map[string]string{})
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	logger := zerolog.Nop()

	e := fakeapi.NewServer(cfg, newStore(t), &logger,
		fakeapi.WithMetrics(middleware.NewMetrics(reg, "storefront"))).Echo

	rec := testutil.Serve(e, get("/api/products/1", ""))
	require.Equal(t, http.StatusOK, rec.Code)

	count, err := promtestutil.GatherAndCount(reg, "storefront_http_requests_total")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestAPI_TokensExpireAfterTTL(t *testing.T) {
	t.Parallel()

	issuedAt := time.Now().Add(-2 * time.Hour)

	e := testutil.NewEcho()
	fakeapi.New(newStore(t), []byte("ttl-secret"),
		fakeapi.WithTokenTTL(time.Hour),
		fakeapi.WithNow(func() time.Time { return issuedAt }),
	).Register(e.Group("/api"))

	token := registerToken(t, e, "late@example.com")

	testutil.AssertErrorMessage(t, testutil.Serve(e, get("/api/orders", token)),
		http.StatusUnauthorized, "Invalid token")
}
