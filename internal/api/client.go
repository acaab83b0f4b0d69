package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/sineways/anymoment-cli/internal/tokenstore"
)

const (
	// authHeader carries the bearer token. The service expects its own
	// header name rather than the standard Authorization scheme.
	authHeader = "x-auth-token"

	defaultTimeout = 30 * time.Second
)

// Client issues authenticated requests against one AnyMoment host.
// It is safe for concurrent use; concurrent token refreshes are deduplicated.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      tokenstore.Store

	// token, when set, overrides the store for the lifetime of the client.
	// Login and Refresh update it so retried requests see the fresh value.
	token string

	refreshGroup singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (e.g. for tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets an explicit token, bypassing the store for reads.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout bounds every HTTP round-trip.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New creates a Client for baseURL. Tokens are resolved from and persisted
// to store; a nil store yields an unauthenticated client.
func New(baseURL string, store tokenstore.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		store:      store,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized host this client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// currentToken resolves the token for outgoing requests: the explicit
// override if set, otherwise whatever usable token the store holds.
func (c *Client) currentToken(ctx context.Context) (string, error) {
	if c.token != "" {
		return c.token, nil
	}
	if c.store == nil {
		return "", nil
	}
	return c.store.Get(ctx, c.baseURL)
}

// setToken records a freshly issued token, writing through to the store.
func (c *Client) setToken(ctx context.Context, token string) error {
	c.token = token
	if c.store == nil {
		return nil
	}
	return c.store.Save(ctx, c.baseURL, token)
}

// Login exchanges credentials for a bearer token and persists it for this
// host. Nothing is saved unless the service answers 200.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", fmt.Errorf("encoding credentials: %w", err)
	}

	resp, body, err := c.send(ctx, http.MethodPost, "/auth/token", nil, payload, "")
	if err != nil {
		return "", transportError(err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", newStatusError(resp.StatusCode, body)
	}

	token := unquote(body)
	if err := c.setToken(ctx, token); err != nil {
		return "", err
	}
	return token, nil
}

// Refresh extends the current token via the token-extension endpoint,
// persisting and returning the replacement. The store is left untouched on
// failure so a still-cached token remains available. Concurrent refreshes
// for the same host collapse into one call.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	v, err, _ := c.refreshGroup.Do(c.baseURL, func() (any, error) {
		return c.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) refresh(ctx context.Context) (string, error) {
	token, err := c.currentToken(ctx)
	if err != nil {
		return "", err
	}
	if token == "" {
		// Nothing to extend.
		return "", &Error{
			Kind:       KindAuthentication,
			StatusCode: http.StatusUnauthorized,
			Detail:     "no token available to refresh",
		}
	}

	resp, body, err := c.send(ctx, http.MethodGet, "/auth/token/extend", nil, nil, token)
	if err != nil {
		return "", transportError(err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", newStatusError(resp.StatusCode, body)
	}

	newToken := unquote(body)
	if err := c.setToken(ctx, newToken); err != nil {
		return "", err
	}
	return newToken, nil
}

// Do performs one logical authenticated call: resolve token, send, and on a
// 401 refresh and retry exactly once. The final outcome is what is reported;
// a second 401 surfaces as an authentication error with no further retry.
// Responses with status 200 or 201 return the raw body.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
	}

	token, err := c.currentToken(ctx)
	if err != nil {
		return nil, err
	}

	resp, data, err := c.send(ctx, method, path, query, payload, token)
	if err != nil {
		return nil, transportError(err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		newToken, refreshErr := c.Refresh(ctx)
		if refreshErr != nil {
			// Refresh failed; the original 401 is the reported outcome.
			slog.DebugContext(ctx, "token refresh failed", "host", c.baseURL, "error", refreshErr)
			return handleResponse(resp.StatusCode, data)
		}

		slog.DebugContext(ctx, "token refreshed, retrying request", "method", method, "path", path)
		resp, data, err = c.send(ctx, method, path, query, payload, newToken)
		if err != nil {
			return nil, transportError(err)
		}
	}

	return handleResponse(resp.StatusCode, data)
}

// send issues a single HTTP request and reads the full response body.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte, token string) (*http.Response, []byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(authHeader, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	return resp, data, nil
}

func handleResponse(status int, body []byte) ([]byte, error) {
	if status == http.StatusOK || status == http.StatusCreated {
		return body, nil
	}
	return nil, newStatusError(status, body)
}

// unquote strips the quotes around the service's token responses, which are
// JSON string literals.
func unquote(body []byte) string {
	return strings.Trim(strings.TrimSpace(string(body)), `"`)
}
