package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/laneflow/laneflow/pkg/cache"
	"github.com/laneflow/laneflow/pkg/httputil"
	"github.com/laneflow/laneflow/pkg/observability"
)

// Client provides shared HTTP functionality for all platform API
// clients. It handles response caching, retry of cached fetches, and
// common request headers.
type Client struct {
	http      *http.Client
	cache     cache.Cache
	keys      cache.Keyer
	namespace string
	ttl       time.Duration
	headers   map[string]string
}

// NewClient creates a Client with the given cache backend and default
// headers. The namespace keeps one platform's cached responses apart
// from another's on a shared backend. Headers are applied to every
// request made through this client; pass nil if none are needed.
// A nil backend disables caching.
func NewClient(backend cache.Cache, namespace string, cacheTTL time.Duration, headers map[string]string) *Client {
	if backend == nil {
		backend = cache.NewNullCache()
	}
	return &Client{
		http:      NewHTTPClient(),
		cache:     backend,
		keys:      cache.NewDefaultKeyer(),
		namespace: namespace,
		ttl:       cacheTTL,
		headers:   headers,
	}
}

// Cached retrieves a value from cache or executes fetch and caches the
// result. If refresh is true the cache is bypassed and fetch always
// runs. The fetch function should populate v; on success v is stored
// under the client's namespace with the client's TTL. Fetches are
// retried with backoff when they fail with a retryable error.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	ck := c.keys.HTTPKey(c.namespace, key)

	if !refresh {
		if data, ok, _ := c.cache.Get(ctx, ck); ok {
			if err := json.Unmarshal(data, v); err == nil {
				observability.Cache().OnCacheHit(ctx, c.namespace)
				return nil
			}
			// Undecodable entry: fall through and fetch fresh.
		}
	}
	observability.Cache().OnCacheMiss(ctx, c.namespace)

	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}

	if data, err := json.Marshal(v); err == nil {
		_ = c.cache.Set(ctx, ck, data, c.ttl)
		observability.Cache().OnCacheSet(ctx, c.namespace, len(data))
	}
	return nil
}

// Get performs an HTTP GET and JSON-decodes the response into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged
// over the client defaults. Request headers win on conflicts.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	body, err := c.doRequest(ctx, http.MethodGet, url, nil, headers)
	if err != nil {
		return err
	}
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

// GetText performs an HTTP GET and returns the response body as a
// string, for non-JSON endpoints.
func (c *Client) GetText(ctx context.Context, url string) (string, error) {
	body, err := c.doRequest(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return "", err
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	return string(data), err
}

// Post sends payload as a JSON body and decodes the response into v.
// Pass nil for v to discard the response. Writes are not retried; see
// the httputil package doc for the reasoning.
func (c *Client) Post(ctx context.Context, url string, payload, v any) error {
	return c.write(ctx, http.MethodPost, url, payload, v)
}

// Put sends payload as a JSON body via PUT and decodes the response
// into v. Pass nil for v to discard the response.
func (c *Client) Put(ctx context.Context, url string, payload, v any) error {
	return c.write(ctx, http.MethodPut, url, payload, v)
}

// Patch sends payload as a JSON body via PATCH and decodes the
// response into v. Pass nil for v to discard the response.
func (c *Client) Patch(ctx context.Context, url string, payload, v any) error {
	return c.write(ctx, http.MethodPatch, url, payload, v)
}

// Delete performs an HTTP DELETE, discarding any response body.
func (c *Client) Delete(ctx context.Context, url string) error {
	body, err := c.doRequest(ctx, http.MethodDelete, url, nil, nil)
	if err != nil {
		return err
	}
	return body.Close()
}

func (c *Client) write(ctx context.Context, method, url string, payload, v any) error {
	body, err := c.doRequest(ctx, method, url, payload, nil)
	if err != nil {
		return err
	}
	defer body.Close()
	if v == nil {
		return nil
	}
	return json.NewDecoder(body).Decode(v)
}

func (c *Client) doRequest(ctx context.Context, method, url string, payload any, headers map[string]string) (io.ReadCloser, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, method, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, method, req.URL.Host, req.URL.Path, err)
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	hooks.OnResponse(ctx, method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrUnauthorized, code)
	case code == http.StatusTooManyRequests:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrRateLimited, code)}
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
