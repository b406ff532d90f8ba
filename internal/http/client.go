// Package http implements the transport layer: authenticated request
// construction, JSON and raw-byte execution, and translation of API error
// responses into typed errors.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/myrtus0x0/triage/internal/auth"
	"github.com/myrtus0x0/triage/pkg/triage"
)

// Logger receives transport debug output.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request describes one API call. A descriptor is constructed fresh per
// call and never reused. Body is JSON-serialized when set; RawBody is sent
// verbatim with ContentType.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Headers     map[string]string
	Body        interface{}
	RawBody     []byte
	ContentType string
}

// Response is the decoded result of one API call.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client performs authenticated HTTP requests against the API. There is no
// client-level timeout: deadlines are inherited from the underlying HTTP
// client (known limitation, matching the service's reference clients), and
// cancellation runs through the request context.
type Client struct {
	baseURL      string
	tokenManager auth.TokenManager
	httpClient   *retryablehttp.Client
	userAgent    string
	logger       Logger
	debug        bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the debug logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the client identification header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig enables transport retries. The default is zero retries:
// exactly one attempt per call.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithHTTPClient replaces the underlying standard HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient = httpClient
	}
}

// NewClient creates a transport for the given endpoint. Trailing slashes on
// baseURL are stripped once here; request paths must be absolute and are
// concatenated without further normalization.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	// Hand the final response back even on statuses retryablehttp considers
	// retryable (5xx, 429); the error body must stay readable for decoding.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		tokenManager: tokenManager,
		httpClient:   retryClient,
		userAgent:    fmt.Sprintf("Triage Go Client/%s Go/%s", triage.Version, runtime.Version()),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do performs a JSON API call. A non-2xx response is decoded as the API's
// `{error, message}` shape and returned as a *triage.ServerError alongside
// the response.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	resp, err := c.perform(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		serverErr := &triage.ServerError{Status: resp.StatusCode}

		err = json.Unmarshal(resp.Body, serverErr)
		if err != nil {
			return resp, fmt.Errorf("decoding error response (status %d): %w", resp.StatusCode, err)
		}

		return resp, serverErr
	}

	return resp, nil
}

// DoRaw performs a raw-byte API call. Raw endpoints are not guaranteed to
// return JSON error bodies, so a non-2xx status is surfaced as a transport
// error without any decode attempt.
func (c *Client) DoRaw(ctx context.Context, req *Request) (*Response, error) {
	resp, err := c.perform(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp, fmt.Errorf("%w: %d", triage.ErrUnexpectedStatus, resp.StatusCode)
	}

	return resp, nil
}

// Get performs a GET request with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// PostRaw performs a POST request with a pre-encoded body, used for
// multipart uploads. The response is still decoded with JSON semantics.
func (c *Client) PostRaw(ctx context.Context, path string, body []byte, contentType string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method:      http.MethodPost,
		Path:        path,
		RawBody:     body,
		ContentType: contentType,
	})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// GetRaw performs a GET request for raw bytes.
func (c *Client) GetRaw(ctx context.Context, path string) (*Response, error) {
	return c.DoRaw(ctx, &Request{Method: http.MethodGet, Path: path})
}

// GetStream performs a GET request and hands the undrained response body to
// the caller, who owns closing it. Used for line-delimited streams.
func (c *Client) GetStream(ctx context.Context, path string) (io.ReadCloser, error) {
	httpReq, err := c.buildRequest(ctx, &Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_ = resp.Body.Close()

		return nil, fmt.Errorf("%w: %d", triage.ErrUnexpectedStatus, resp.StatusCode)
	}

	return resp.Body, nil
}

// perform executes the request and drains the response body.
func (c *Client) perform(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    httpReq.URL.String(),
		})
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": resp.StatusCode,
			"size":   len(body),
		})
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}

// buildRequest assembles the HTTP request: URL, body encoding, and the
// authentication and identification headers. No other headers are implicit.
func (c *Client) buildRequest(ctx context.Context, req *Request) (*retryablehttp.Request, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		separator := "?"
		if strings.Contains(req.Path, "?") {
			separator = "&"
		}

		fullURL += separator + req.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)

	switch {
	case req.RawBody != nil:
		body = bytes.NewReader(req.RawBody)
		contentType = req.ContentType
	case req.Body != nil:
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting token: %w", err)
		}

		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	httpReq.Header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}
