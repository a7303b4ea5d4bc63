package amigo

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

func TestParseRetryAfter(t *testing.T) {
	cases := []struct {
		value string
		want  time.Duration
		ok    bool
	}{
		{"1.5", 1500 * time.Millisecond, true},
		{"0", 0, true},
		{"-3", 0, true},
		{"", 0, false},
		{"not-a-number", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseRetryAfter(tc.value)
		if ok != tc.ok || got != tc.want {
			t.Errorf("parseRetryAfter(%q) = (%v, %v), want (%v, %v)", tc.value, got, ok, tc.want, tc.ok)
		}
	}

	// HTTP-date in the future yields a non-negative delay.
	future := time.Now().Add(2 * time.Second).UTC().Format(http.TimeFormat)
	got, ok := parseRetryAfter(future)
	if !ok || got < 0 || got > 3*time.Second {
		t.Errorf("parseRetryAfter(future date) = (%v, %v)", got, ok)
	}

	// Past HTTP-date clamps to zero.
	past := time.Now().Add(-10 * time.Second).UTC().Format(http.TimeFormat)
	got, ok = parseRetryAfter(past)
	if !ok || got != 0 {
		t.Errorf("parseRetryAfter(past date) = (%v, %v), want (0, true)", got, ok)
	}
}

func TestShouldRetryPolicy(t *testing.T) {
	cfg := defaultRetryConfig()
	withHeader := http.Header{"Retry-After": []string{"1"}}

	cases := []struct {
		method string
		status int
		header http.Header
		want   bool
	}{
		{http.MethodGet, 500, http.Header{}, true},
		{http.MethodGet, 503, http.Header{}, true},
		{http.MethodGet, 418, http.Header{}, false},
		{http.MethodPost, 500, http.Header{}, false},
		{http.MethodPost, 429, http.Header{}, false},
		{http.MethodPost, 429, withHeader, true},
		{http.MethodDelete, 502, http.Header{}, true},
	}
	for _, tc := range cases {
		if got := cfg.shouldRetry(tc.method, tc.status, tc.header); got != tc.want {
			t.Errorf("shouldRetry(%s, %d) = %v, want %v", tc.method, tc.status, got, tc.want)
		}
	}

	optIn := RetryConfig{MaxAttempts: 3, RetryPost: true}.normalized()
	if !optIn.shouldRetry(http.MethodPost, 500, http.Header{}) {
		t.Error("RetryPost should make POST 500 retryable")
	}
}

func TestBackoffDelayBounds(t *testing.T) {
	cfg := defaultRetryConfig()
	if d := cfg.backoffDelay(1); d != 0 {
		t.Fatalf("first attempt should have no delay, got %v", d)
	}
	for attempt := 2; attempt <= 10; attempt++ {
		d := cfg.backoffDelay(attempt)
		if d < 0 || d > cfg.MaxBackoff {
			t.Fatalf("attempt %d delay %v outside [0, %v]", attempt, d, cfg.MaxBackoff)
		}
	}
}

func TestRetryDelayPrefersRetryAfter(t *testing.T) {
	cfg := defaultRetryConfig()
	h := http.Header{"Retry-After": []string{"60"}}
	if d := cfg.retryDelay(2, h); d != cfg.MaxBackoff {
		t.Fatalf("Retry-After should clamp to MaxBackoff, got %v", d)
	}
	h = http.Header{"Retry-After": []string{"0.1"}}
	if d := cfg.retryDelay(2, h); d != 100*time.Millisecond {
		t.Fatalf("Retry-After not honored, got %v", d)
	}
}

func TestGetRetriedUntilSuccess(t *testing.T) {
	var calls atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"services": []any{}})
	})
	client := newTestClient(t, srv)
	client.retry.BaseBackoff = time.Millisecond
	if _, err := client.Services.List(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestRetriesExhaustedReturnsLastError(t *testing.T) {
	var calls atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	client := newTestClient(t, srv)
	client.retry.BaseBackoff = time.Millisecond
	_, err := client.Services.List(context.Background())
	if !IsServerError(err) {
		t.Fatalf("expected server error, got %v", err)
	}
	if got := calls.Load(); got != int32(client.retry.MaxAttempts) {
		t.Fatalf("expected %d attempts, got %d", client.retry.MaxAttempts, got)
	}
}

func TestPostNotRetriedOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	client := newTestClient(t, srv)
	err := client.Conversations.Finish(context.Background(), "conv-1")
	if !IsServerError(err) {
		t.Fatalf("expected server error, got %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("POST should not retry on 500, got %d attempts", got)
	}
}

func TestPostRetriedOn429WithRetryAfter(t *testing.T) {
	var calls atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	client := newTestClient(t, srv)
	if err := client.Conversations.Finish(context.Background(), "conv-1"); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected retry after 429, got %d attempts", got)
	}
}
