package amigo

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
)

const defaultBaseURL = "https://api.amigo.ai"
const defaultUserAgent = "amigo-sdk-go/" + Version

// Config wires credentials, base URL, and telemetry for the API client.
//
// Every field except BaseURL, HTTPClient, UserAgent, Telemetry, and Retry is
// required. The zero values fall back to the AMIGO_* environment variables
// when the client is built with NewClientFromEnv.
type Config struct {
	// APIKey and APIKeyID authenticate the key exchange.
	APIKey   string
	APIKeyID string
	// UserID is the user the API key signs in on behalf of.
	UserID string
	// OrganizationID scopes every API path (/v1/{organization_id}/...).
	OrganizationID string
	// BaseURL defaults to https://api.amigo.ai.
	BaseURL string

	HTTPClient *http.Client
	Telemetry  TelemetryHooks
	UserAgent  string
	// Retry overrides the default retry policy when non-nil.
	Retry *RetryConfig
}

// ConfigFromEnv builds a Config from the AMIGO_API_KEY, AMIGO_API_KEY_ID,
// AMIGO_USER_ID, AMIGO_ORGANIZATION_ID, and AMIGO_BASE_URL environment
// variables.
func ConfigFromEnv() Config {
	return Config{
		APIKey:         os.Getenv("AMIGO_API_KEY"),
		APIKeyID:       os.Getenv("AMIGO_API_KEY_ID"),
		UserID:         os.Getenv("AMIGO_USER_ID"),
		OrganizationID: os.Getenv("AMIGO_ORGANIZATION_ID"),
		BaseURL:        os.Getenv("AMIGO_BASE_URL"),
	}
}

func (c Config) validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return errors.New("amigo: api key required (AMIGO_API_KEY)")
	}
	if strings.TrimSpace(c.APIKeyID) == "" {
		return errors.New("amigo: api key id required (AMIGO_API_KEY_ID)")
	}
	if strings.TrimSpace(c.UserID) == "" {
		return errors.New("amigo: user id required (AMIGO_USER_ID)")
	}
	if strings.TrimSpace(c.OrganizationID) == "" {
		return errors.New("amigo: organization id required (AMIGO_ORGANIZATION_ID)")
	}
	return nil
}

func normalizeBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("amigo: base URL required")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("amigo: invalid base URL: %w", err)
	}
	if u.Scheme == "" {
		return "", errors.New("amigo: base URL missing scheme (http/https)")
	}
	if u.Host == "" {
		return "", errors.New("amigo: base URL missing host")
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	return strings.TrimSuffix(u.String(), "/"), nil
}
