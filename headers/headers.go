// Package headers defines HTTP header constants used by the Amigo API.
// This is the single source of truth for header names used in API requests/responses.
package headers

const (
	// APIKey carries the API key for the sign-in endpoint.
	APIKey = "x-api-key" //nolint:gosec // This is a header name, not a credential

	// APIKeyID identifies which API key is being presented.
	APIKeyID = "x-api-key-id"

	// UserID is the user the API key signs in on behalf of.
	UserID = "x-user-id"

	// RequestID is the header for request correlation / idempotency.
	// The SDK reuses the same value across retries of one logical request.
	RequestID = "X-Amigo-Request-Id"
)
