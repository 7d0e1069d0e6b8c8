package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	nethttp "net/http"
	"net/url"
	"time"

	"github.com/piresc/fleetmap/internal/pkg/circuitbreaker"
	"github.com/piresc/fleetmap/internal/pkg/logger"
	nrpkg "github.com/piresc/fleetmap/internal/pkg/newrelic"
	"github.com/piresc/fleetmap/internal/pkg/retry"
)

const (
	// DefaultTimeout for HTTP requests
	DefaultTimeout = 10 * time.Second
	// APIKeyHeader is the header name for API key
	APIKeyHeader = "X-API-Key"
)

// HTTPError is returned for responses with a 4xx or 5xx status
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error: %d %s", e.StatusCode, e.Status)
}

// IsStatus reports whether err carries the given HTTP status code
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == code
}

type bearerKey struct{}

// WithBearerToken attaches the viewer's token to outgoing requests made with ctx
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerKey{}, token)
}

// APIKeyClient is a JSON client with API key authentication, retries and
// a circuit breaker per upstream host
type APIKeyClient struct {
	client   *nethttp.Client
	apiKey   string
	baseURL  string
	retrier  *retry.Retrier
	breakers *circuitbreaker.Manager
}

// NewAPIKeyClient creates a new HTTP client with API key authentication
func NewAPIKeyClient(baseURL, apiKey string, timeout time.Duration) *APIKeyClient {
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	retryCfg := retry.DefaultConfig()
	retryCfg.Retryable = isTransient

	breakerCfg := circuitbreaker.DefaultConfig("")
	breakerCfg.IsFailure = isTransient

	return &APIKeyClient{
		client:   &nethttp.Client{Timeout: timeout},
		apiKey:   apiKey,
		baseURL:  baseURL,
		retrier:  retry.New(retryCfg),
		breakers: circuitbreaker.NewManager(breakerCfg),
	}
}

// isTransient treats transport failures and 5xx as worth retrying; 4xx is final
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500
	}
	return !errors.Is(err, context.Canceled)
}

// GetJSON performs a GET request and decodes the JSON response into result
func (c *APIKeyClient) GetJSON(ctx context.Context, endpoint string, result interface{}) error {
	target := c.baseURL + endpoint
	host := "unknown"
	if u, err := url.Parse(target); err == nil && u.Host != "" {
		host = u.Host
	}

	return c.breakers.Get(host).Execute(ctx, func(ctx context.Context) error {
		return c.retrier.Execute(ctx, func(ctx context.Context) error {
			return c.get(ctx, target, result)
		})
	})
}

func (c *APIKeyClient) get(ctx context.Context, target string, result interface{}) error {
	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}
	if token, ok := ctx.Value(bearerKey{}).(string); ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := nrpkg.InstrumentHTTPRequest(ctx, req, func() (*nethttp.Response, error) {
		return c.client.Do(req)
	})
	if err != nil {
		logger.Warn("HTTP request failed",
			logger.String("url", target),
			logger.Err(err))
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &HTTPError{StatusCode: resp.StatusCode, Status: nethttp.StatusText(resp.StatusCode)}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
