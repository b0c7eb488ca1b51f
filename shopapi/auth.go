package shopapi

import (
	"context"

	"github.com/andyle182810/storefront/httpclient"
)

const (
	pathRegister     = "/auth/register"
	pathAuthenticate = "/auth/authenticate"
)

type AuthService struct {
	client *httpclient.Client
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	return httpclient.PostJSON[AuthResponse](ctx, s.client, pathRegister, req)
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	return httpclient.PostJSON[AuthResponse](ctx, s.client, pathAuthenticate, req)
}
