//nolint:ireturn
package httpclient

import (
	"context"
	"net/http"
)

// Execute sends a request and decodes the response into a T. No-content and
// blank responses yield the empty value of T instead of an error.
func Execute[T any](ctx context.Context, c *Client, method, path string, body any, opts ...RequestOption) (T, error) {
	var result T
	err := c.Do(ctx, method, path, body, &result, opts...)

	return result, err
}

func GetJSON[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (T, error) {
	return Execute[T](ctx, c, http.MethodGet, path, nil, opts...)
}

func PostJSON[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (T, error) {
	return Execute[T](ctx, c, http.MethodPost, path, body, opts...)
}

func PutJSON[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (T, error) {
	return Execute[T](ctx, c, http.MethodPut, path, body, opts...)
}

func DeleteJSON[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (T, error) {
	return Execute[T](ctx, c, http.MethodDelete, path, nil, opts...)
}
