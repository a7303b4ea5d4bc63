package amigo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/amigo-ai/amigo-sdk-go/headers"
)

// Error codes derived from HTTP status, used when the response body does
// not carry a more specific code.
const (
	ErrorCodeBadRequest         = "bad_request"
	ErrorCodeAuthentication     = "authentication"
	ErrorCodePermissionDenied   = "permission_denied"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeConflict           = "conflict"
	ErrorCodeValidation         = "validation"
	ErrorCodeRateLimited        = "rate_limited"
	ErrorCodeServerError        = "server_error"
	ErrorCodeServiceUnavailable = "service_unavailable"
)

// APIError captures structured Amigo API error metadata.
type APIError struct {
	Status    int
	Code      string
	Message   string
	RequestID string
	Fields    []FieldError
	// Body holds the raw response body for callers that need more detail.
	Body []byte

	cause error
}

// FieldError represents a validation failure for a single field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	code := e.Code
	if code == "" {
		code = "unknown"
	}
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", e.Status)
	}
	s := fmt.Sprintf("amigo: %s: %s", code, msg)
	if e.Status > 0 {
		s = fmt.Sprintf("amigo: %s: %s (HTTP %d)", code, msg, e.Status)
	}
	if e.cause != nil {
		s += ": " + e.cause.Error()
	}
	return s
}

// Unwrap exposes the underlying cause, if any (for example the sign-in
// response behind an authentication error).
func (e *APIError) Unwrap() error { return e.cause }

// authenticationError wraps any API-key exchange failure, HTTP or
// transport, so IsAuthentication matches it regardless of the cause.
func authenticationError(cause error) *APIError {
	return &APIError{
		Status:  http.StatusUnauthorized,
		Code:    ErrorCodeAuthentication,
		Message: "api key exchange failed",
		cause:   cause,
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrorCodeBadRequest
	case http.StatusUnauthorized:
		return ErrorCodeAuthentication
	case http.StatusForbidden:
		return ErrorCodePermissionDenied
	case http.StatusNotFound:
		return ErrorCodeNotFound
	case http.StatusConflict:
		return ErrorCodeConflict
	case http.StatusUnprocessableEntity:
		return ErrorCodeValidation
	case http.StatusTooManyRequests:
		return ErrorCodeRateLimited
	case http.StatusServiceUnavailable:
		return ErrorCodeServiceUnavailable
	default:
		if status >= 500 {
			return ErrorCodeServerError
		}
		return ErrorCodeBadRequest
	}
}

// decodeAPIError maps a non-2xx response to an *APIError. It understands
// both the {"error": {...}} envelope and the plain {"detail": ...} shape
// used by validation failures. The body is read but not closed.
func decodeAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	apiErr := &APIError{
		Status:    resp.StatusCode,
		Code:      codeForStatus(resp.StatusCode),
		RequestID: resp.Header.Get(headers.RequestID),
		Body:      data,
	}
	if len(data) == 0 {
		apiErr.Message = resp.Status
		return apiErr
	}

	var envelope struct {
		Error struct {
			Code    string       `json:"code"`
			Message string       `json:"message"`
			Fields  []FieldError `json:"fields"`
		} `json:"error"`
		Detail    json.RawMessage `json:"detail"`
		RequestID string          `json:"request_id"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		apiErr.Message = strings.TrimSpace(string(data))
		return apiErr
	}
	if envelope.Error.Code != "" {
		apiErr.Code = envelope.Error.Code
	}
	apiErr.Message = envelope.Error.Message
	apiErr.Fields = envelope.Error.Fields
	if envelope.RequestID != "" {
		apiErr.RequestID = envelope.RequestID
	}
	if apiErr.Message == "" && len(envelope.Detail) > 0 {
		apiErr.Message, apiErr.Fields = parseDetail(envelope.Detail)
		if len(apiErr.Fields) > 0 {
			apiErr.Code = ErrorCodeValidation
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = resp.Status
	}
	return apiErr
}

// parseDetail handles the two "detail" shapes: a plain string, or a list
// of {loc, msg} validation entries.
func parseDetail(raw json.RawMessage) (string, []FieldError) {
	var msg string
	if err := json.Unmarshal(raw, &msg); err == nil {
		return msg, nil
	}
	var entries []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &entries); err != nil || len(entries) == 0 {
		return "", nil
	}
	fields := make([]FieldError, 0, len(entries))
	for _, entry := range entries {
		var parts []string
		for _, loc := range entry.Loc {
			parts = append(parts, fmt.Sprint(loc))
		}
		fields = append(fields, FieldError{
			Field:   strings.Join(parts, "."),
			Message: entry.Msg,
		})
	}
	return "request validation failed", fields
}

func statusIs(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// IsAuthentication reports whether err is a 401 from the API (including a
// failed API-key exchange).
func IsAuthentication(err error) bool { return statusIs(err, http.StatusUnauthorized) }

// IsPermissionDenied reports whether err is a 403 from the API.
func IsPermissionDenied(err error) bool { return statusIs(err, http.StatusForbidden) }

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool { return statusIs(err, http.StatusNotFound) }

// IsConflict reports whether err is a 409 from the API. Finish-conversation
// races surface this way while the service converges.
func IsConflict(err error) bool { return statusIs(err, http.StatusConflict) }

// IsRateLimited reports whether err is a 429 from the API.
func IsRateLimited(err error) bool { return statusIs(err, http.StatusTooManyRequests) }

// IsValidation reports whether err is a 400/422 carrying field errors.
func IsValidation(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == ErrorCodeValidation || apiErr.Status == http.StatusUnprocessableEntity
}

// IsServerError reports whether err is a 5xx from the API.
func IsServerError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status >= 500
}
