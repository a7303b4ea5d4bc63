package amigo

import (
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"time"
)

// RetryConfig controls exponential backoff and attempt counts.
type RetryConfig struct {
	MaxAttempts int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
	// RetryPost opts non-idempotent POST requests into the retry policy.
	// Without it, a POST is only retried on 429 with a Retry-After header.
	RetryPost bool
}

func defaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseBackoff: 300 * time.Millisecond,
		MaxBackoff:  5 * time.Second,
		RetryPost:   false,
	}
}

func (r RetryConfig) normalized() RetryConfig {
	cfg := r
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 300 * time.Millisecond
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 5 * time.Second
	}
	return cfg
}

var retryableStatuses = map[int]struct{}{
	http.StatusRequestTimeout:      {},
	http.StatusTooEarly:            {},
	http.StatusTooManyRequests:     {},
	http.StatusInternalServerError: {},
	http.StatusBadGateway:          {},
	http.StatusServiceUnavailable:  {},
	http.StatusGatewayTimeout:      {},
}

func isIdempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}

// shouldRetry applies the status and method policy for a failed attempt.
func (r RetryConfig) shouldRetry(method string, status int, header http.Header) bool {
	if _, ok := retryableStatuses[status]; !ok {
		return false
	}
	if isIdempotent(method) {
		return true
	}
	if r.RetryPost {
		return true
	}
	// A 429 with an explicit Retry-After is safe to replay even for POST:
	// the server rejected the request before acting on it.
	return status == http.StatusTooManyRequests && header.Get("Retry-After") != ""
}

// parseRetryAfter handles both delta-seconds and HTTP-date forms. Negative
// or past values clamp to zero; unparseable values report !ok.
func parseRetryAfter(value string) (time.Duration, bool) {
	if value == "" {
		return 0, false
	}
	if secs, err := strconv.ParseFloat(value, 64); err == nil {
		if secs < 0 {
			return 0, true
		}
		return time.Duration(secs * float64(time.Second)), true
	}
	when, err := http.ParseTime(value)
	if err != nil {
		return 0, false
	}
	until := time.Until(when)
	if until < 0 {
		return 0, true
	}
	return until, true
}

// retryDelay prefers the server-provided Retry-After over local backoff,
// clamped to MaxBackoff either way.
func (r RetryConfig) retryDelay(attempt int, header http.Header) time.Duration {
	if d, ok := parseRetryAfter(header.Get("Retry-After")); ok {
		if d > r.MaxBackoff {
			d = r.MaxBackoff
		}
		return d
	}
	return r.backoffDelay(attempt)
}

func (r RetryConfig) backoffDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}
	exp := attempt - 2
	base := float64(r.BaseBackoff) * math.Pow(2, float64(exp))
	cap := float64(r.MaxBackoff)
	if base > cap {
		base = cap
	}
	// jitter 0.5x..1.5x
	jitter := 0.5 + rand.Float64()
	d := time.Duration(base * jitter)
	if d > r.MaxBackoff {
		d = r.MaxBackoff
	}
	return d
}
