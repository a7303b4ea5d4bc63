package amigo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/amigo-ai/amigo-sdk-go/headers"
)

// tokenRefreshSkew is how long before expiry a cached token is refreshed.
const tokenRefreshSkew = 5 * time.Minute

// tokenSource exchanges the configured API key for a short-lived bearer
// token and caches it until shortly before expiry. It is safe for
// concurrent use.
type tokenSource struct {
	apiKey     string
	apiKeyID   string
	userID     string
	orgID      string
	baseURL    string
	httpClient *http.Client
	userAgent  string

	mu    sync.Mutex
	token *UserSignInWithAPIKeyResponse
	now   func() time.Time
}

func newTokenSource(cfg Config, baseURL string, httpClient *http.Client, userAgent string) *tokenSource {
	return &tokenSource{
		apiKey:     cfg.APIKey,
		apiKeyID:   cfg.APIKeyID,
		userID:     cfg.UserID,
		orgID:      cfg.OrganizationID,
		baseURL:    baseURL,
		httpClient: httpClient,
		userAgent:  userAgent,
		now:        time.Now,
	}
}

// Token returns a valid bearer token, signing in when the cache is empty
// or within tokenRefreshSkew of expiry.
func (ts *tokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.token != nil && ts.now().Before(ts.token.ExpiresAt.Add(-tokenRefreshSkew)) {
		return ts.token.IDToken, nil
	}
	token, err := ts.signIn(ctx)
	if err != nil {
		return "", authenticationError(err)
	}
	ts.token = token
	return token.IDToken, nil
}

// Invalidate drops the cached token so the next Token call signs in again.
func (ts *tokenSource) Invalidate() {
	ts.mu.Lock()
	ts.token = nil
	ts.mu.Unlock()
}

func (ts *tokenSource) signIn(ctx context.Context) (*UserSignInWithAPIKeyResponse, error) {
	url := fmt.Sprintf("%s/v1/%s/user/signin_with_api_key", ts.baseURL, ts.orgID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(headers.APIKey, ts.apiKey)
	req.Header.Set(headers.APIKeyID, ts.apiKeyID)
	req.Header.Set(headers.UserID, ts.userID)
	req.Header.Set("Accept", "application/json")
	if ts.userAgent != "" {
		req.Header.Set("User-Agent", ts.userAgent)
	}
	resp, err := ts.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	//nolint:errcheck // best-effort cleanup on return
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 400 {
		return nil, decodeAPIError(resp)
	}
	var token UserSignInWithAPIKeyResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("invalid sign-in response: %w", err)
	}
	if token.IDToken == "" {
		return nil, fmt.Errorf("sign-in response missing id_token")
	}
	return &token, nil
}
