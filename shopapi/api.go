// Package shopapi binds the storefront backend's endpoints to typed calls.
// Every method fixes its endpoint and HTTP method and forwards the body and
// bearer token unchanged to the underlying httpclient.Client.
package shopapi

import (
	"github.com/andyle182810/storefront/httpclient"
)

type API struct {
	Auth       *AuthService
	Products   *ProductService
	Categories *CategoryService
	Orders     *OrderService
	Payments   *PaymentService
}

func New(client *httpclient.Client) *API {
	return &API{
		Auth:       &AuthService{client: client},
		Products:   &ProductService{client: client},
		Categories: &CategoryService{client: client},
		Orders:     &OrderService{client: client},
		Payments:   &PaymentService{client: client},
	}
}
