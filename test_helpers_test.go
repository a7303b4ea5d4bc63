package amigo

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amigo-ai/amigo-sdk-go/headers"
	"github.com/amigo-ai/amigo-sdk-go/testutil"
)

const (
	testOrgID  = "org-test"
	testAPIKey = "test-api-key"
)

// newTestServer wires a stub sign-in endpoint in front of handler so the
// SDK's token exchange succeeds against the same server.
func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/"+testOrgID+"/user/signin_with_api_key", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("sign-in used %s, want POST", r.Method)
		}
		if got := r.Header.Get(headers.APIKey); got != testAPIKey {
			t.Errorf("sign-in x-api-key = %q, want %q", got, testAPIKey)
		}
		testutil.WriteSignInResponse(w, "test-token", time.Now().Add(time.Hour))
	})
	mux.HandleFunc("/", handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient(Config{
		APIKey:         testAPIKey,
		APIKeyID:       "test-api-key-id",
		UserID:         "user-1",
		OrganizationID: testOrgID,
		BaseURL:        srv.URL,
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}
