package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError represents an error returned by the API
type APIError struct {
	StatusCode int         `json:"-"`
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API error [%s]: %s (status: %d)", e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("API error: %s (status: %d)", e.Message, e.StatusCode)
}

// IsNotFound returns true if the error is a 404 not found error
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized returns true if the error is a 401 unauthorized error
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsForbidden returns true if the error is a 403 forbidden error
func (e *APIError) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

// IsValidationError returns true if the error is a 400 validation error
func (e *APIError) IsValidationError() bool {
	return e.StatusCode == http.StatusBadRequest
}

// IsRateLimited returns true if the error is a 429 error
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsServerError returns true if the error is a 5xx server error
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// parseAPIError understands both the enveloped error
// {"success":false,"error":{"code":...,"message":...}} and the flat
// {"error":"...","details":"..."} shape used by legacy and recommendation routes.
func parseAPIError(status int, body []byte) error {
	var raw struct {
		Error   json.RawMessage `json:"error"`
		Details interface{}     `json:"details,omitempty"`
	}
	if err := json.Unmarshal(body, &raw); err != nil || len(raw.Error) == 0 {
		return &APIError{StatusCode: status, Message: strings.TrimSpace(string(body))}
	}

	apiErr := &APIError{StatusCode: status}

	var msg string
	if err := json.Unmarshal(raw.Error, &msg); err == nil {
		apiErr.Message = msg
		apiErr.Details = raw.Details
		return apiErr
	}

	if err := json.Unmarshal(raw.Error, apiErr); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return apiErr
}
