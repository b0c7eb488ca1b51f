package shopapi

import (
	"context"
	"net/url"

	"github.com/andyle182810/storefront/httpclient"
)

type ProductService struct {
	client *httpclient.Client
}

func (s *ProductService) List(ctx context.Context) ([]Product, error) {
	return httpclient.GetJSON[[]Product](ctx, s.client, "/products")
}

func (s *ProductService) Get(ctx context.Context, id string) (Product, error) {
	return httpclient.GetJSON[Product](ctx, s.client, "/products/"+url.PathEscape(id))
}

func (s *ProductService) ListByCategory(ctx context.Context, categoryID string) ([]Product, error) {
	return httpclient.GetJSON[[]Product](ctx, s.client, "/products/category/"+url.PathEscape(categoryID))
}

type CategoryService struct {
	client *httpclient.Client
}

func (s *CategoryService) List(ctx context.Context) ([]Category, error) {
	return httpclient.GetJSON[[]Category](ctx, s.client, "/categories")
}
