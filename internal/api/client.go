// Package api implements the HTTP client for the adlens backend: JSON
// round-trips with bearer auth, automatic single-flight token refresh on
// 401, and loading-signal integration for global progress UI.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/adlens/adlens/internal/domain"
	"github.com/adlens/adlens/internal/loading"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "adlens/1.0"
)

// Client performs authenticated JSON calls against the backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     domain.TokenStore
	signal     *loading.Signal
	logger     *slog.Logger

	// refresh collapses concurrent 401-triggered refreshes into one call;
	// every waiter observes the same outcome.
	refresh singleflight.Group

	onSessionExpired func()
}

// NewClient creates a new backend API client.
func NewClient(baseURL string, tokens domain.TokenStore, signal *loading.Signal, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if signal == nil {
		signal = loading.NewSignal()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		tokens: tokens,
		signal: signal,
		logger: logger,
	}
}

// OnSessionExpired registers the hook fired when a refresh fails and the
// session is terminated. The TUI uses it to drop back to the login view.
func (c *Client) OnSessionExpired(fn func()) {
	c.onSessionExpired = fn
}

// Get performs a GET request and decodes the JSON response into dest.
func (c *Client) Get(ctx context.Context, path string, query url.Values, dest any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, dest)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, dest any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, dest)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, dest any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, dest)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do runs one logical API call: serialize, attach auth, execute, and on a
// 401 from a non-auth endpoint refresh the token pair and retry exactly
// once. The loading signal covers the whole span including the retry.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dest any) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = data
	}

	c.signal.Start()
	defer c.signal.Stop()

	access, _ := c.tokens.Tokens()
	respBody, err := c.roundTrip(ctx, method, path, query, payload, access)

	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized && !isAuthPath(path) {
		if refreshErr := c.refreshTokens(ctx); refreshErr != nil {
			return refreshErr
		}
		access, _ = c.tokens.Tokens()
		respBody, err = c.roundTrip(ctx, method, path, query, payload, access)
	}
	if err != nil {
		return err
	}

	if dest == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, dest); err != nil {
		c.logger.Error("response parse failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// roundTrip performs a single HTTP exchange and returns the response body,
// or an *Error for non-2xx statuses.
func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, payload []byte, access string) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	c.logger.Debug("api request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("api request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseError(resp.StatusCode, body)
		if resp.StatusCode != http.StatusUnauthorized {
			c.logger.Error("api request error", "method", method, "path", path, "status", resp.StatusCode)
		}
		return nil, apiErr
	}

	return body, nil
}

// refreshTokens exchanges the stored refresh token for a new pair. All
// concurrent callers share one underlying call. Any failure terminates the
// session: tokens are cleared, the expiry hook fires, and callers get
// domain.ErrSessionExpired.
func (c *Client) refreshTokens(ctx context.Context) error {
	_, err, _ := c.refresh.Do("refresh", func() (any, error) {
		_, refreshTok := c.tokens.Tokens()
		if refreshTok == "" {
			return nil, errors.New("no refresh token")
		}

		body, err := c.roundTrip(ctx, http.MethodPost, "/auth/refresh", nil,
			mustMarshal(refreshRequest{RefreshToken: refreshTok}), "")
		if err != nil {
			return nil, err
		}

		var pair domain.TokenPair
		if err := json.Unmarshal(body, &pair); err != nil {
			return nil, fmt.Errorf("decode refresh response: %w", err)
		}
		if err := c.tokens.Save(pair.AccessToken, pair.RefreshToken); err != nil {
			return nil, fmt.Errorf("persist tokens: %w", err)
		}
		c.logger.Info("access token refreshed")
		return pair, nil
	})
	if err != nil {
		c.logger.Warn("token refresh failed, terminating session", "error", err)
		if clearErr := c.tokens.Clear(); clearErr != nil {
			c.logger.Error("failed to clear tokens", "error", clearErr)
		}
		if c.onSessionExpired != nil {
			c.onSessionExpired()
		}
		return fmt.Errorf("%w: %v", domain.ErrSessionExpired, err)
	}
	return nil
}

// isAuthPath reports whether the path belongs to the auth endpoints, which
// never trigger the refresh-and-retry flow.
func isAuthPath(path string) bool {
	return strings.HasPrefix(path, "/auth/")
}

func mustMarshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err) // only used for fixed request shapes
	}
	return data
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
