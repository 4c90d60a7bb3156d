package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Connection/Availability errors (retryable)
const (
	// ErrCodeServiceUnavailable indicates the service is temporarily unavailable.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeConnectionFailed indicates a failed connection to a provider.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeRateLimited indicates the provider rate limited the caller.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
)

// Engine selection errors
const (
	// ErrCodeNoEngineAvailable indicates no registered engine supports the requested language.
	ErrCodeNoEngineAvailable ErrorCode = "NO_ENGINE_AVAILABLE"
	// ErrCodeUnknownEngine indicates an explicit engine override that is not registered.
	ErrCodeUnknownEngine ErrorCode = "UNKNOWN_ENGINE"
	// ErrCodeNoProviderClient indicates the engine has no client bound to it.
	ErrCodeNoProviderClient ErrorCode = "NO_PROVIDER_CLIENT"
)

// Provider errors
const (
	// ErrCodeProviderFailure indicates a transcription provider returned an error.
	ErrCodeProviderFailure ErrorCode = "PROVIDER_FAILURE"
	// ErrCodePollTimeout indicates an asynchronous job never reached a terminal state.
	ErrCodePollTimeout ErrorCode = "POLL_TIMEOUT"
	// ErrCodeJobFailed indicates an asynchronous job reached the error state.
	ErrCodeJobFailed ErrorCode = "JOB_FAILED"
	// ErrCodeInvalidSegment indicates a provider returned a segment ending before it starts.
	ErrCodeInvalidSegment ErrorCode = "INVALID_SEGMENT"
	// ErrCodeUnauthorized indicates the provider rejected our credentials.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeExternalService indicates an error from a non-transcription dependency (LLM, cache, storage).
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeServiceUnavailable: true,
	ErrCodeConnectionFailed:   true,
	ErrCodeTimeout:            true,
	ErrCodeRateLimited:        true,
	ErrCodeProviderFailure:    true,
	ErrCodeExternalService:    true,
	ErrCodePollTimeout:        false,
	ErrCodeInternal:           false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
