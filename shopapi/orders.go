package shopapi

import (
	"context"
	"net/url"
	"strconv"

	"github.com/andyle182810/storefront/httpclient"
)

const pathOrders = "/orders"

type OrderService struct {
	client *httpclient.Client
}

func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest, token string) (Order, error) {
	return httpclient.PostJSON[Order](ctx, s.client, pathOrders, req, httpclient.WithBearerToken(token))
}

// List returns the orders of the user the token belongs to.
func (s *OrderService) List(ctx context.Context, token string) ([]Order, error) {
	return httpclient.GetJSON[[]Order](ctx, s.client, pathOrders, httpclient.WithBearerToken(token))
}

func (s *OrderService) Get(ctx context.Context, id int64, token string) (Order, error) {
	path := pathOrders + "/" + strconv.FormatInt(id, 10)

	return httpclient.GetJSON[Order](ctx, s.client, path, httpclient.WithBearerToken(token))
}

func (s *OrderService) GetByCode(ctx context.Context, orderCode, token string) (Order, error) {
	path := pathOrders + "/code/" + url.PathEscape(orderCode)

	return httpclient.GetJSON[Order](ctx, s.client, path, httpclient.WithBearerToken(token))
}
