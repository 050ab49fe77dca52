package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/kanka-client/internal/constants"
	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
	"github.com/hashicorp/go-retryablehttp"
)

// TokenManager supplies the bearer token for each request.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
}

// StaticTokenManager returns a fixed token.
type StaticTokenManager string

// GetToken implements TokenManager.
func (s StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	return string(s), nil
}

// Request describes one API call. Path is relative to the client base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is encoded as JSON.
	Body interface{}
	// RawBody is sent as is with ContentType, taking precedence over Body.
	RawBody     []byte
	ContentType string
	Headers     map[string]string
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client issues authenticated requests against one base URL.
type Client struct {
	baseURL        string
	httpClient     *retryablehttp.Client
	tokenManager   TokenManager
	logger         kanka.Logger
	debug          bool
	userAgent      string
	rateLimitRetry bool
	interceptors   *kanka.InterceptorChain
	timeout        time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger kanka.Logger) Option {
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

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithRetryConfig sets how often and how long a rate limited request is retried.
func WithRetryConfig(retryMax int, retryWaitMin, retryWaitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		if retryWaitMin > 0 {
			c.httpClient.RetryWaitMin = retryWaitMin
		}

		if retryWaitMax > 0 {
			c.httpClient.RetryWaitMax = retryWaitMax
		}
	}
}

// WithRateLimitRetry turns the 429 retry on or off.
func WithRateLimitRetry(enabled bool) Option {
	return func(c *Client) {
		c.rateLimitRetry = enabled
	}
}

// WithTimeout bounds one call to Do, including rate limit retries and the
// waits between them.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithInterceptors runs the chain around every request.
func WithInterceptors(chain *kanka.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a new HTTP client. Only 429 responses are retried.
func NewClient(baseURL string, tokenManager TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRateLimitRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.Logger = nil
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		httpClient:     retryClient,
		tokenManager:   tokenManager,
		userAgent:      constants.DefaultUserAgent,
		rateLimitRetry: true,
		timeout:        constants.DefaultHTTPTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	retryClient.CheckRetry = client.checkRetry
	retryClient.Backoff = rateLimitBackoff

	if client.logger != nil && client.debug {
		retryClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

// BaseURL returns the URL every request path is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do executes a request. For status codes >= 400 the response is returned
// together with a *kanka.APIError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, contentType, err := c.encodeBody(req)
	if err != nil {
		return nil, err
	}

	intercepted := &kanka.Request{
		Method:  req.Method,
		Path:    req.Path,
		Headers: make(http.Header),
		Body:    body,
	}

	intercepted.Headers.Set("Accept", "application/json")
	intercepted.Headers.Set("User-Agent", c.userAgent)

	if contentType != "" {
		intercepted.Headers.Set("Content-Type", contentType)
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting token: %w", err)
		}

		intercepted.Headers.Set("Authorization", "Bearer "+token)
	}

	for key, value := range req.Headers {
		intercepted.Headers.Set(key, value)
	}

	if c.interceptors != nil {
		err = c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
		if err != nil {
			return nil, err
		}
	}

	fullURL := c.buildURL(req.Path, req.Query)

	var rawBody interface{}
	if intercepted.Body != nil {
		rawBody = intercepted.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header = intercepted.Headers

	if c.logger != nil && c.debug {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if httpResp != nil {
			_ = httpResp.Body.Close()
		}

		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if c.logger != nil && c.debug {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": resp.StatusCode,
			"size":   len(respBody),
		})
	}

	var apiErr error
	if resp.StatusCode >= http.StatusBadRequest {
		apiErr = kanka.NewAPIError(resp.StatusCode, req.Method, req.Path, respBody,
			ParseRetryAfter(resp.Headers.Get("Retry-After")))
	}

	if c.interceptors != nil {
		err = c.interceptors.ExecuteResponseInterceptors(ctx, intercepted, &kanka.Response{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       resp.Body,
			Error:      apiErr,
		})
		if err != nil {
			return resp, err
		}
	}

	if apiErr != nil {
		return resp, apiErr
	}

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// PostRaw performs a POST request with a pre-encoded body such as a multipart form.
func (c *Client) PostRaw(ctx context.Context, path string, body []byte, contentType string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, RawBody: body, ContentType: contentType})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// DeleteWithQuery performs a DELETE request with query parameters.
func (c *Client) DeleteWithQuery(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path, Query: query})
}

func (c *Client) encodeBody(req *Request) ([]byte, string, error) {
	if req.RawBody != nil {
		contentType := req.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		return req.RawBody, contentType, nil
	}

	if req.Body == nil {
		return nil, "", nil
	}

	data, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", fmt.Errorf("marshaling request body: %w", err)
	}

	return data, "application/json", nil
}

func (c *Client) buildURL(path string, query url.Values) string {
	fullURL := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	return fullURL
}

func (c *Client) checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil || resp == nil {
		return false, err
	}

	return c.rateLimitRetry && resp.StatusCode == http.StatusTooManyRequests, nil
}

func rateLimitBackoff(minWait, maxWait time.Duration, attemptNum int, resp *http.Response) time.Duration {
	if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
		wait := ParseRetryAfter(resp.Header.Get("Retry-After"))
		if wait > maxWait {
			return maxWait
		}

		if wait > 0 {
			return wait
		}
	}

	return retryablehttp.DefaultBackoff(minWait, maxWait, attemptNum, nil)
}

// ParseRetryAfter reads a Retry-After header given in seconds or as an HTTP date.
func ParseRetryAfter(value string) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0
		}

		return time.Duration(seconds) * time.Second
	}

	if at, err := http.ParseTime(value); err == nil {
		if wait := time.Until(at); wait > 0 {
			return wait
		}
	}

	return 0
}

// leveledLogger adapts kanka.Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger kanka.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, toFields(keysAndValues))
}

func toFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return fields
}

var _ retryablehttp.LeveledLogger = (*leveledLogger)(nil)
