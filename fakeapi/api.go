// Package fakeapi serves the storefront REST endpoints from memory. It backs
// the storefront CLI during development and the end-to-end client tests.
package fakeapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/andyle182810/storefront/httpserver"
	"github.com/andyle182810/storefront/middleware"
	"github.com/andyle182810/storefront/shopapi"
	"github.com/labstack/echo/v5"
)

const (
	defaultTokenTTL = 24 * time.Hour

	queryPaymentIntentID = "paymentIntentId"
)

type API struct {
	store  *Store
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*API)

func WithTokenTTL(ttl time.Duration) Option {
	return func(a *API) {
		a.ttl = ttl
	}
}

func WithNow(now func() time.Time) Option {
	return func(a *API) {
		a.now = now
	}
}

func New(store *Store, secret []byte, opts ...Option) *API {
	api := &API{
		store:  store,
		secret: secret,
		ttl:    defaultTokenTTL,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(api)
	}

	return api
}

// Register mounts every endpoint on root. Orders and payments require a
// bearer token.
func (a *API) Register(root *echo.Group) {
	auth := root.Group("/auth")
	auth.POST("/register", httpserver.Handle(a.register), middleware.Handler("auth.register"))
	auth.POST("/authenticate", httpserver.Handle(a.authenticate), middleware.Handler("auth.authenticate"))

	root.GET("/products", httpserver.Handle(a.listProducts), middleware.Handler("products.list"))
	root.GET("/products/:id", httpserver.Handle(a.getProduct), middleware.Handler("products.get"))
	root.GET("/products/category/:categoryId", httpserver.Handle(a.listProductsByCategory),
		middleware.Handler("products.category"))
	root.GET("/categories", httpserver.Handle(a.listCategories), middleware.Handler("categories.list"))

	orders := root.Group("/orders", middleware.JWT(a.secret))
	orders.POST("", httpserver.Handle(a.createOrder, httpserver.WithStatus(http.StatusCreated)),
		middleware.Handler("orders.create"))
	orders.GET("", httpserver.Handle(a.listOrders), middleware.Handler("orders.list"))
	orders.GET("/:id", httpserver.Handle(a.getOrder), middleware.Handler("orders.get"))
	orders.GET("/code/:orderCode", httpserver.Handle(a.getOrderByCode), middleware.Handler("orders.code"))

	payments := root.Group("/payments", middleware.JWT(a.secret))
	payments.POST("/create-payment-intent", httpserver.Handle(a.createPaymentIntent),
		middleware.Handler("payments.intent"))
	payments.POST("/success", httpserver.Handle(a.confirmSuccess), middleware.Handler("payments.success"))
	payments.POST("/failure", httpserver.Handle(a.confirmFailure), middleware.Handler("payments.failure"))
}

type (
	empty struct{}

	productPath struct {
		ID string `param:"id"`
	}

	categoryPath struct {
		CategoryID string `param:"categoryId"`
	}

	orderPath struct {
		ID string `param:"id"`
	}

	orderCodePath struct {
		OrderCode string `param:"orderCode"`
	}
)

func (a *API) issueToken(email, name string) (shopapi.AuthResponse, error) {
	token, err := middleware.SignToken(a.secret, email, name, a.ttl, a.now())
	if err != nil {
		return shopapi.AuthResponse{}, httpserver.HTTPError(http.StatusInternalServerError, err, "Could not issue token")
	}

	return shopapi.AuthResponse{Token: token}, nil
}

func (a *API) register(_ *echo.Context, req *shopapi.RegisterRequest) (shopapi.AuthResponse, error) {
	name, err := a.store.RegisterUser(*req)
	if err != nil {
		return shopapi.AuthResponse{}, toHTTPError(err)
	}

	return a.issueToken(normalizeEmail(req.Email), name)
}

func (a *API) authenticate(_ *echo.Context, req *shopapi.LoginRequest) (shopapi.AuthResponse, error) {
	email, name, err := a.store.Authenticate(*req)
	if err != nil {
		return shopapi.AuthResponse{}, toHTTPError(err)
	}

	return a.issueToken(email, name)
}

func (a *API) listProducts(_ *echo.Context, _ *empty) ([]shopapi.Product, error) {
	return a.store.Products(), nil
}

func (a *API) getProduct(_ *echo.Context, req *productPath) (shopapi.Product, error) {
	id, err := parseID(req.ID, "product")
	if err != nil {
		return shopapi.Product{}, err
	}

	product, err := a.store.Product(id)
	if err != nil {
		return shopapi.Product{}, toHTTPError(err)
	}

	return product, nil
}

func (a *API) listProductsByCategory(_ *echo.Context, req *categoryPath) ([]shopapi.Product, error) {
	id, err := parseID(req.CategoryID, "category")
	if err != nil {
		return nil, err
	}

	products, err := a.store.ProductsByCategory(id)
	if err != nil {
		return nil, toHTTPError(err)
	}

	return products, nil
}

func (a *API) listCategories(_ *echo.Context, _ *empty) ([]shopapi.Category, error) {
	return a.store.Categories(), nil
}

func (a *API) createOrder(ctx *echo.Context, req *shopapi.CreateOrderRequest) (shopapi.Order, error) {
	order, err := a.store.CreateOrder(middleware.GetSubject(ctx), *req)
	if err != nil {
		return shopapi.Order{}, toHTTPError(err)
	}

	return order, nil
}

func (a *API) listOrders(ctx *echo.Context, _ *empty) ([]shopapi.Order, error) {
	return a.store.Orders(middleware.GetSubject(ctx)), nil
}

func (a *API) getOrder(ctx *echo.Context, req *orderPath) (shopapi.Order, error) {
	id, err := parseID(req.ID, "order")
	if err != nil {
		return shopapi.Order{}, err
	}

	order, err := a.store.Order(middleware.GetSubject(ctx), id)
	if err != nil {
		return shopapi.Order{}, toHTTPError(err)
	}

	return order, nil
}

func (a *API) getOrderByCode(ctx *echo.Context, req *orderCodePath) (shopapi.Order, error) {
	order, err := a.store.OrderByCode(middleware.GetSubject(ctx), req.OrderCode)
	if err != nil {
		return shopapi.Order{}, toHTTPError(err)
	}

	return order, nil
}

func (a *API) createPaymentIntent(
	ctx *echo.Context,
	req *shopapi.PaymentIntentRequest,
) (shopapi.PaymentIntent, error) {
	intent, err := a.store.CreatePaymentIntent(middleware.GetSubject(ctx), *req)
	if err != nil {
		return shopapi.PaymentIntent{}, toHTTPError(err)
	}

	return intent, nil
}

func (a *API) confirmSuccess(ctx *echo.Context, _ *empty) (shopapi.PaymentConfirmation, error) {
	return a.confirm(ctx, true)
}

// confirmFailure answers 204 with no body once the order is marked failed.
func (a *API) confirmFailure(ctx *echo.Context, _ *empty) (httpserver.NoContent, error) {
	if _, err := a.confirm(ctx, false); err != nil {
		return httpserver.NoContent{}, err
	}

	return httpserver.NoContent{}, nil
}

func (a *API) confirm(ctx *echo.Context, succeeded bool) (shopapi.PaymentConfirmation, error) {
	intentID := ctx.QueryParam(queryPaymentIntentID)
	if intentID == "" {
		return shopapi.PaymentConfirmation{}, httpserver.BadRequest(nil, queryPaymentIntentID+" is required")
	}

	confirmation, err := a.store.ConfirmPayment(middleware.GetSubject(ctx), intentID, succeeded)
	if err != nil {
		return shopapi.PaymentConfirmation{}, toHTTPError(err)
	}

	return confirmation, nil
}

func parseID(raw, kind string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, httpserver.BadRequest(err, "Invalid "+kind+" id")
	}

	return id, nil
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return httpserver.Conflict("Email is already registered")
	case errors.Is(err, ErrInvalidCredentials):
		return httpserver.Unauthorized("Invalid email or password")
	case errors.Is(err, ErrProductNotFound):
		return httpserver.NotFound("Product not found")
	case errors.Is(err, ErrCategoryNotFound):
		return httpserver.NotFound("Category not found")
	case errors.Is(err, ErrOrderNotFound):
		return httpserver.NotFound("Order not found")
	case errors.Is(err, ErrPaymentIntentAbsent):
		return httpserver.NotFound("Payment intent not found")
	case errors.Is(err, ErrInsufficientStock):
		return httpserver.HTTPError(http.StatusConflict, err, "Insufficient stock")
	case errors.Is(err, ErrOrderNotPending):
		return httpserver.Conflict("Order is not awaiting payment")
	case errors.Is(err, ErrAmountMismatch):
		return httpserver.BadRequest(err, "Amount does not match order total")
	default:
		return httpserver.HTTPError(http.StatusInternalServerError, err, "Internal server error")
	}
}
