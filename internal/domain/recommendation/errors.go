package recommendation

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies recommendation failures
type ErrorKind string

const (
	ErrInvalidPayload       ErrorKind = "invalid_payload"
	ErrInvalidBudget        ErrorKind = "invalid_budget"
	ErrProcedureUnavailable ErrorKind = "procedure_unavailable"
	ErrProcedureFailed      ErrorKind = "procedure_failed"
	ErrMalformedResult      ErrorKind = "malformed_result"
)

// Error is a recommendation pipeline failure. Detail carries diagnostics
// such as trimmed stderr or the raw malformed output.
type Error struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

// NewError creates an Error of the given kind
func NewError(kind ErrorKind, detail string, err error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Message()
	}
	return fmt.Sprintf("%s: %s", e.Message(), e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// ClientError reports whether the failure was caused by the request
func (e *Error) ClientError() bool {
	return e.Kind == ErrInvalidPayload || e.Kind == ErrInvalidBudget
}

// StatusCode maps the kind to an HTTP status
func (e *Error) StatusCode() int {
	if e.ClientError() {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Message is the client-facing reason or marker
func (e *Error) Message() string {
	switch e.Kind {
	case ErrInvalidPayload:
		return "Invalid input data. Expected a JSON object."
	case ErrInvalidBudget:
		return "Invalid or missing budget. Budget must be a positive number."
	case ErrProcedureUnavailable:
		return "Process execution error"
	case ErrProcedureFailed:
		return "Failed to execute recommendation model"
	case ErrMalformedResult:
		return "Invalid output from recommendation model"
	default:
		return "Recommendation failed"
	}
}

// Sentinels for errors.Is
var (
	ErrPayload     = &Error{Kind: ErrInvalidPayload}
	ErrBudget      = &Error{Kind: ErrInvalidBudget}
	ErrUnavailable = &Error{Kind: ErrProcedureUnavailable}
	ErrFailed      = &Error{Kind: ErrProcedureFailed}
	ErrMalformed   = &Error{Kind: ErrMalformedResult}
)
