package amigo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amigo-ai/amigo-sdk-go/headers"
)

// Client provides high-level helpers for interacting with the Amigo API.
type Client struct {
	baseURL    string
	orgID      string
	httpClient *http.Client
	tokens     *tokenSource
	telemetry  TelemetryHooks
	userAgent  string
	retry      RetryConfig

	// Grouped resource clients.
	Organization  *OrganizationClient
	Services      *ServicesClient
	Conversations *ConversationsClient
	Users         *UsersClient
	Roles         *RolesClient
}

// NewClient validates the configuration and returns a ready-to-use Client.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	retry := defaultRetryConfig()
	if cfg.Retry != nil {
		retry = cfg.Retry.normalized()
	}
	client := &Client{
		baseURL:    normalized,
		orgID:      cfg.OrganizationID,
		httpClient: httpClient,
		telemetry:  cfg.Telemetry,
		userAgent:  ua,
		retry:      retry,
	}
	client.tokens = newTokenSource(cfg, normalized, httpClient, ua)
	client.Organization = &OrganizationClient{client: client}
	client.Services = &ServicesClient{client: client}
	client.Conversations = &ConversationsClient{client: client}
	client.Users = &UsersClient{client: client}
	client.Roles = &RolesClient{client: client}
	return client, nil
}

// NewClientFromEnv builds a Client from the AMIGO_* environment variables.
// Non-zero fields of override take precedence over the environment.
func NewClientFromEnv(override ...Config) (*Client, error) {
	cfg := ConfigFromEnv()
	if len(override) > 0 {
		cfg = mergeConfig(cfg, override[0])
	}
	return NewClient(cfg)
}

func mergeConfig(base, override Config) Config {
	if override.APIKey != "" {
		base.APIKey = override.APIKey
	}
	if override.APIKeyID != "" {
		base.APIKeyID = override.APIKeyID
	}
	if override.UserID != "" {
		base.UserID = override.UserID
	}
	if override.OrganizationID != "" {
		base.OrganizationID = override.OrganizationID
	}
	if override.BaseURL != "" {
		base.BaseURL = override.BaseURL
	}
	if override.HTTPClient != nil {
		base.HTTPClient = override.HTTPClient
	}
	if override.UserAgent != "" {
		base.UserAgent = override.UserAgent
	}
	if override.Retry != nil {
		base.Retry = override.Retry
	}
	base.Telemetry = override.Telemetry
	return base
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	injectTraceparent(ctx, req)
	return req, nil
}

// send runs the retry loop around a single logical request. The request-id
// header is stable across attempts so the server can de-duplicate retries.
// On a 401 the cached token is dropped and the request replayed once.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	if req.Header.Get(headers.RequestID) == "" {
		req.Header.Set(headers.RequestID, uuid.NewString())
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	var refreshed bool
	for attempt := 1; ; attempt++ {
		resp, err := c.attempt(req)
		if err != nil {
			if attempt < c.retry.MaxAttempts && isIdempotent(req.Method) {
				if werr := sleepContext(req.Context(), c.retry.backoffDelay(attempt+1)); werr != nil {
					return nil, werr
				}
				continue
			}
			return nil, err
		}
		if resp.StatusCode == http.StatusUnauthorized && !refreshed {
			refreshed = true
			drainAndClose(resp.Body)
			c.tokens.Invalidate()
			attempt-- // the auth replay does not consume a retry attempt
			continue
		}
		if attempt < c.retry.MaxAttempts && c.retry.shouldRetry(req.Method, resp.StatusCode, resp.Header) {
			delay := c.retry.retryDelay(attempt+1, resp.Header)
			drainAndClose(resp.Body)
			if werr := sleepContext(req.Context(), delay); werr != nil {
				return nil, werr
			}
			continue
		}
		if resp.StatusCode >= 400 {
			//nolint:errcheck // best-effort cleanup on return
			defer func() { _ = resp.Body.Close() }()
			return nil, decodeAPIError(resp)
		}
		return resp, nil
	}
}

// attempt clones the request (replaying the body via GetBody), attaches the
// bearer token, and performs a single round trip.
func (c *Client) attempt(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	cloned := req.Clone(ctx)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		cloned.Body = body
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	cloned.Header.Set("Authorization", "Bearer "+token)
	if c.telemetry.OnHTTPRequest != nil {
		c.telemetry.OnHTTPRequest(ctx, cloned)
	}
	c.telemetry.log(ctx, LogLevelInfo, "http_request", map[string]any{
		"method": cloned.Method,
		"url":    cloned.URL.String(),
	})
	start := time.Now()
	resp, err := c.httpClient.Do(cloned)
	if c.telemetry.OnHTTPResponse != nil {
		c.telemetry.OnHTTPResponse(ctx, cloned, resp, err, time.Since(start))
	}
	c.telemetry.metric(ctx, "sdk_http_request_latency_ms", float64(time.Since(start).Milliseconds()), map[string]string{
		"path": cloned.URL.Path,
	})
	if err != nil {
		return nil, fmt.Errorf("amigo: request failed: %w", err)
	}
	return resp, nil
}

// decodeJSON drains and closes the body after decoding into v.
func decodeJSON(resp *http.Response, v any) error {
	//nolint:errcheck // best-effort cleanup on return
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("amigo: decode response: %w", err)
	}
	return nil
}

func (c *Client) buildURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// orgPath prefixes a resource path with the /v1/{organization_id} scope.
func (c *Client) orgPath(format string, args ...any) string {
	return "/v1/" + c.orgID + fmt.Sprintf(format, args...)
}

func appendQuery(path string, values url.Values) string {
	if len(values) == 0 {
		return path
	}
	return path + "?" + values.Encode()
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4<<10))
	_ = body.Close()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
