package shopapi

import (
	"context"

	"github.com/andyle182810/storefront/httpclient"
)

const (
	pathCreatePaymentIntent = "/payments/create-payment-intent"
	pathPaymentSuccess      = "/payments/success"
	pathPaymentFailure      = "/payments/failure"
	queryPaymentIntentID    = "paymentIntentId"
)

type PaymentService struct {
	client *httpclient.Client
}

func (s *PaymentService) CreateIntent(ctx context.Context, req PaymentIntentRequest, token string) (PaymentIntent, error) {
	return httpclient.PostJSON[PaymentIntent](ctx, s.client, pathCreatePaymentIntent, req,
		httpclient.WithBearerToken(token))
}

func (s *PaymentService) ConfirmSuccess(ctx context.Context, paymentIntentID, token string) (PaymentConfirmation, error) {
	return s.confirm(ctx, pathPaymentSuccess, paymentIntentID, token)
}

func (s *PaymentService) ConfirmFailure(ctx context.Context, paymentIntentID, token string) (PaymentConfirmation, error) {
	return s.confirm(ctx, pathPaymentFailure, paymentIntentID, token)
}

// confirm posts without a body; the intent id travels in the query string.
func (s *PaymentService) confirm(ctx context.Context, path, paymentIntentID, token string) (PaymentConfirmation, error) {
	return httpclient.PostJSON[PaymentConfirmation](ctx, s.client, path, nil,
		httpclient.WithQuery(queryPaymentIntentID, paymentIntentID),
		httpclient.WithBearerToken(token),
	)
}
