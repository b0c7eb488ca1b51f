package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/google/uuid"
)

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ResponseValidator checks a decoded response before it is handed back to the
// caller. It only runs when configured with WithResponseValidator.
type ResponseValidator interface {
	Validate(value any) error
}

var _ Doer = (*http.Client)(nil)

type Client struct {
	baseURL           string
	httpClient        Doer
	requestIDKey      any
	defaultHeaders    map[string]string
	debug             DebugSink
	responseValidator ResponseValidator
	maxResponseSize   int64 // 0 means no limit
}

// New builds a client rooted at baseURL. Endpoints passed to the request
// methods are appended to it verbatim.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   &http.Client{}, //nolint:exhaustruct
		requestIDKey: nil,
		defaultHeaders: map[string]string{
			HeaderContentType: ContentTypeJSON,
		},
		debug:             NopDebugSink{},
		responseValidator: nil,
		maxResponseSize:   0,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) Get(
	ctx context.Context,
	path string,
	response any,
	opts ...RequestOption,
) error {
	return c.do(ctx, http.MethodGet, path, nil, response, opts...)
}

func (c *Client) Post(
	ctx context.Context,
	path string,
	body any,
	response any,
	opts ...RequestOption,
) error {
	return c.do(ctx, http.MethodPost, path, body, response, opts...)
}

func (c *Client) Put(
	ctx context.Context,
	path string,
	body any,
	response any,
	opts ...RequestOption,
) error {
	return c.do(ctx, http.MethodPut, path, body, response, opts...)
}

func (c *Client) Delete(
	ctx context.Context,
	path string,
	response any,
	opts ...RequestOption,
) error {
	return c.do(ctx, http.MethodDelete, path, nil, response, opts...)
}

// Do sends a request with one of the supported methods (GET, POST, PUT,
// DELETE). Any other method fails with ErrUnsupportedMethod before the
// network is touched.
func (c *Client) Do(
	ctx context.Context,
	method string,
	path string,
	body any,
	response any,
	opts ...RequestOption,
) error {
	if !IsSupportedMethod(method) {
		return fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}

	return c.do(ctx, method, path, body, response, opts...)
}

func IsSupportedMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}

func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body any,
	response any,
	opts ...RequestOption,
) error {
	cfg := c.buildRequestConfig(ctx, opts...)

	reqCtx := ctx

	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	req, err := c.buildRequest(reqCtx, method, path, body, cfg)
	if err != nil {
		return err
	}

	c.debug.Request(RequestEvent{
		Method:       method,
		URL:          req.URL.String(),
		HasToken:     cfg.token != "",
		TokenPreview: TokenPreview(cfg.token),
		RequestID:    cfg.requestID,
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	return c.handleResponse(req, resp, response, cfg.requestID)
}

func (c *Client) buildRequestConfig(ctx context.Context, opts ...RequestOption) *requestConfig {
	cfg := &requestConfig{
		headers:   make(map[string]string),
		query:     nil,
		timeout:   0,
		requestID: "",
		token:     "",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.requestID == "" {
		cfg.requestID = c.extractRequestID(ctx)
	}

	return cfg
}

func (c *Client) extractRequestID(ctx context.Context) string {
	if c.requestIDKey != nil {
		if id, ok := ctx.Value(c.requestIDKey).(string); ok && id != "" {
			return id
		}
	}

	return uuid.New().String()
}

func (c *Client) buildRequest(
	ctx context.Context,
	method string,
	path string,
	body any,
	cfg *requestConfig,
) (*http.Request, error) {
	url := c.buildURL(path, cfg.query)

	var bodyReader io.Reader

	if !isAbsent(body) {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodeBody, err)
		}

		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateRequest, err)
	}

	for k, v := range c.defaultHeaders {
		req.Header.Set(k, v)
	}

	for k, v := range cfg.headers {
		req.Header.Set(k, v)
	}

	// An empty token means no header at all, never "Bearer ".
	if cfg.token != "" {
		req.Header.Set(HeaderAuthorization, BearerPrefix+cfg.token)
	}

	if cfg.requestID != "" {
		req.Header.Set(HeaderXRequestID, cfg.requestID)
	}

	return req, nil
}

func (c *Client) handleResponse(req *http.Request, resp *http.Response, response any, requestID string) error {
	respRequestID := resp.Header.Get(HeaderXRequestID)
	if respRequestID == "" {
		respRequestID = requestID
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.debug.Failure(FailureEvent{
			Method:     req.Method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			RequestID:  respRequestID,
		})

		return c.handleErrorResponse(resp, respRequestID)
	}

	if response == nil {
		return nil
	}

	if resp.StatusCode == http.StatusNoContent || resp.ContentLength == 0 {
		setEmpty(response)

		return nil
	}

	bodyBytes, err := c.readBody(resp.Body)
	if err != nil {
		return err
	}

	if len(bytes.TrimSpace(bodyBytes)) == 0 {
		setEmpty(response)

		return nil
	}

	if err := json.Unmarshal(bodyBytes, response); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}

	if c.responseValidator != nil {
		if err := c.responseValidator.Validate(response); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
		}
	}

	return nil
}

func (c *Client) readBody(body io.Reader) ([]byte, error) {
	if c.maxResponseSize > 0 {
		body = io.LimitReader(body, c.maxResponseSize+1)
	}

	bodyBytes, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}

	if c.maxResponseSize > 0 && int64(len(bodyBytes)) > c.maxResponseSize {
		return nil, ErrResponseTooLarge
	}

	return bodyBytes, nil
}

func (c *Client) handleErrorResponse(resp *http.Response, requestID string) error {
	bodyBytes, err := c.readBody(resp.Body)
	if err != nil {
		return NewServiceError(resp.StatusCode, "", "", requestID)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(bodyBytes, &errResp); err == nil && errResp.Message != "" {
		return NewServiceError(resp.StatusCode, errResp.Message, errResp.Internal, requestID)
	}

	return NewServiceError(resp.StatusCode, "", "", requestID)
}

// setEmpty resets the target to the empty value of its shape: an empty map
// for map and untyped targets, the zero value for everything else.
// isAbsent reports whether body means "no payload". Typed nils count, so a
// nil *T, map or slice sends nothing instead of "null".
func isAbsent(body any) bool {
	if body == nil {
		return true
	}

	v := reflect.ValueOf(body)

	switch v.Kind() { //nolint:exhaustive
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

func setEmpty(response any) {
	rv := reflect.ValueOf(response)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return
	}

	elem := rv.Elem()

	switch {
	case elem.Kind() == reflect.Map:
		elem.Set(reflect.MakeMap(elem.Type()))
	case elem.Kind() == reflect.Interface && elem.Type().NumMethod() == 0:
		elem.Set(reflect.ValueOf(map[string]any{}))
	default:
		elem.SetZero()
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) buildURL(path string, query map[string]string) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	fullURL := c.baseURL + path

	if len(query) == 0 {
		return fullURL
	}

	params := url.Values{}
	for k, v := range query {
		params.Add(k, v)
	}

	separator := "?"
	if strings.Contains(path, "?") {
		separator = "&"
	}

	return fullURL + separator + params.Encode()
}
