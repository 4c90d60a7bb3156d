package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// HasCode reports whether err is, or wraps, an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// --- Engine selection ---

// NoEngineAvailable is returned when no registered engine supports the language.
func NoEngineAvailable(language, sector string) *AppError {
	return &AppError{
		Code:       ErrCodeNoEngineAvailable,
		Message:    fmt.Sprintf("No transcription engine supports language %q.", language),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"language": language, "sector": sector},
	}
}

// UnknownEngine is returned when an explicit engine override is not registered.
func UnknownEngine(id string) *AppError {
	return &AppError{
		Code:       ErrCodeUnknownEngine,
		Message:    fmt.Sprintf("Engine %q is not registered.", id),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"engine": id},
	}
}

// NoProviderClient is returned when an engine is registered but nothing can call it.
func NoProviderClient(engine, provider string) *AppError {
	return &AppError{
		Code:       ErrCodeNoProviderClient,
		Message:    fmt.Sprintf("Engine %q has no configured %s client.", engine, provider),
		HTTPStatus: http.StatusServiceUnavailable,
		Details:    map[string]any{"engine": engine, "provider": provider},
	}
}

// --- Provider failures ---

// ProviderFailure wraps an error returned by a remote transcription provider.
func ProviderFailure(provider string, cause error) *AppError {
	return &AppError{
		Code:       ErrCodeProviderFailure,
		Message:    fmt.Sprintf("The %s transcription provider failed.", provider),
		HTTPStatus: http.StatusBadGateway, Retryable: true,
		Details: map[string]any{"provider": provider}, Cause: cause,
	}
}

// PollTimeout is returned when a submitted job does not finish within its polling budget.
func PollTimeout(provider, jobID string, attempts int) *AppError {
	return &AppError{
		Code:       ErrCodePollTimeout,
		Message:    fmt.Sprintf("The %s job did not complete in time.", provider),
		HTTPStatus: http.StatusGatewayTimeout,
		Details:    map[string]any{"provider": provider, "job_id": jobID, "attempts": attempts},
	}
}

// JobFailed is returned when a provider reports a terminal error state for a job.
func JobFailed(provider, jobID, reason string) *AppError {
	return &AppError{
		Code:       ErrCodeJobFailed,
		Message:    fmt.Sprintf("The %s job failed: %s", provider, reason),
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"provider": provider, "job_id": jobID},
	}
}

// InvalidSegment is returned for a segment whose end precedes its start.
func InvalidSegment(index int, start, end float64) *AppError {
	return &AppError{
		Code:       ErrCodeInvalidSegment,
		Message:    fmt.Sprintf("Segment %d ends (%.3fs) before it starts (%.3fs).", index, end, start),
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"index": index, "start": start, "end": end},
	}
}

// --- Common Error Constructors ---

// ServiceUnavailable creates a new AppError for a service that is temporarily unavailable.
func ServiceUnavailable(service string) *AppError {
	return &AppError{
		Code: ErrCodeServiceUnavailable, Message: fmt.Sprintf("The %s is temporarily unavailable. Please try again.", service),
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
		Details: map[string]any{"service": service},
	}
}

// ConnectionFailed creates a new AppError for a failed connection to a service.
func ConnectionFailed(service string) *AppError {
	return &AppError{
		Code: ErrCodeConnectionFailed, Message: fmt.Sprintf("Unable to connect to %s.", service),
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
		Details: map[string]any{"service": service},
	}
}

// Timeout creates a new AppError for a request that timed out.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "The request took too long. Please try again.",
		HTTPStatus: http.StatusGatewayTimeout, Retryable: true,
		Details: map[string]any{"operation": operation},
	}
}

// RateLimited creates a new AppError for too many requests.
func RateLimited() *AppError {
	return &AppError{
		Code: ErrCodeRateLimited, Message: "Too many requests. Please wait a moment and try again.",
		HTTPStatus: http.StatusTooManyRequests, Retryable: true,
	}
}

// Unauthorized creates a new AppError for rejected provider credentials.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Authentication required."
	}
	return &AppError{
		Code: ErrCodeUnauthorized, Message: reason,
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound, Retryable: false, Details: details,
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false, Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// MissingField creates a new AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"field": field},
	}
}

// Internal creates a new AppError for an internal server error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}

// ExternalServiceError creates a new AppError for an error from an auxiliary service.
func ExternalServiceError(service string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeExternalService, Message: fmt.Sprintf("The %s service encountered an error.", service),
		HTTPStatus: http.StatusBadGateway, Retryable: true,
		Details: map[string]any{"service": service}, Cause: cause,
	}
}
