package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeNotFound, "not found", http.StatusNotFound)
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}
	if err.Retryable {
		t.Error("NOT_FOUND should not be retryable")
	}
}

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeProviderFailure, "upstream down", http.StatusBadGateway)
	if !err.Retryable {
		t.Error("PROVIDER_FAILURE should be retryable")
	}
}

func TestNoEngineAvailable(t *testing.T) {
	err := NoEngineAvailable("tlh", "medical")
	if err.Code != ErrCodeNoEngineAvailable {
		t.Errorf("expected NO_ENGINE_AVAILABLE, got %s", err.Code)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", err.HTTPStatus)
	}
	if err.Details["language"] != "tlh" || err.Details["sector"] != "medical" {
		t.Errorf("unexpected details: %v", err.Details)
	}
	if err.Retryable {
		t.Error("NoEngineAvailable should not be retryable")
	}
}

func TestPollTimeout(t *testing.T) {
	err := PollTimeout("assemblyai", "job-1", 5)
	if err.Code != ErrCodePollTimeout {
		t.Errorf("expected POLL_TIMEOUT, got %s", err.Code)
	}
	if err.Details["attempts"] != 5 {
		t.Errorf("expected attempts=5, got %v", err.Details["attempts"])
	}
	if err.Retryable {
		t.Error("a stuck job should not be retried automatically")
	}
}

func TestProviderFailure_Unwrap(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := ProviderFailure("deepgram", cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if !strings.Contains(err.Error(), "connection reset") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
}

func TestInvalidSegment(t *testing.T) {
	err := InvalidSegment(2, 4.5, 3.0)
	if err.Code != ErrCodeInvalidSegment {
		t.Errorf("expected INVALID_SEGMENT, got %s", err.Code)
	}
	if err.Details["index"] != 2 {
		t.Errorf("expected index=2, got %v", err.Details["index"])
	}
}

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("select: %w", NoEngineAvailable("xx", "general"))
	if !HasCode(wrapped, ErrCodeNoEngineAvailable) {
		t.Error("expected HasCode to see through wrapping")
	}
	if HasCode(wrapped, ErrCodeTimeout) {
		t.Error("expected HasCode to reject a different code")
	}
	if HasCode(fmt.Errorf("plain"), ErrCodeInternal) {
		t.Error("expected HasCode false for a plain error")
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{Code: ErrCodeInternal}
	err.WithDetail("k", "v")
	if err.Details["k"] != "v" {
		t.Errorf("expected k=v, got %v", err.Details["k"])
	}
}

func TestAppError_Error_Format(t *testing.T) {
	err := New(ErrCodeInvalidInput, "bad", http.StatusBadRequest)
	if err.Error() != "INVALID_INPUT: bad" {
		t.Errorf("unexpected format: %q", err.Error())
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name      string
		err       *AppError
		code      ErrorCode
		status    int
		retryable bool
	}{
		{"UnknownEngine", UnknownEngine("x"), ErrCodeUnknownEngine, http.StatusBadRequest, false},
		{"NoProviderClient", NoProviderClient("deepgram", "deepgram"), ErrCodeNoProviderClient, http.StatusServiceUnavailable, false},
		{"JobFailed", JobFailed("assemblyai", "j", "bad audio"), ErrCodeJobFailed, http.StatusBadGateway, false},
		{"ServiceUnavailable", ServiceUnavailable("svc"), ErrCodeServiceUnavailable, http.StatusServiceUnavailable, true},
		{"ConnectionFailed", ConnectionFailed("svc"), ErrCodeConnectionFailed, http.StatusServiceUnavailable, true},
		{"Timeout", Timeout("op"), ErrCodeTimeout, http.StatusGatewayTimeout, true},
		{"RateLimited", RateLimited(), ErrCodeRateLimited, http.StatusTooManyRequests, true},
		{"Unauthorized", Unauthorized(""), ErrCodeUnauthorized, http.StatusUnauthorized, false},
		{"NotFound", NotFound("engine", "x"), ErrCodeNotFound, http.StatusNotFound, false},
		{"InvalidInput", InvalidInput("language", "empty"), ErrCodeInvalidInput, http.StatusBadRequest, false},
		{"MissingField", MissingField("file"), ErrCodeMissingField, http.StatusBadRequest, false},
		{"ExternalServiceError", ExternalServiceError("llm", nil), ErrCodeExternalService, http.StatusBadGateway, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.HTTPStatus != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, tt.err.HTTPStatus)
			}
			if tt.err.Retryable != tt.retryable {
				t.Errorf("expected retryable=%v, got %v", tt.retryable, tt.err.Retryable)
			}
		})
	}
}

func TestAppError_ToResponse_Success(t *testing.T) {
	err := UnknownEngine("nope")
	resp := err.ToResponse()
	if resp.Error.Code != ErrCodeUnknownEngine {
		t.Errorf("expected UNKNOWN_ENGINE, got %s", resp.Error.Code)
	}
	if resp.Error.Details["engine"] != "nope" {
		t.Errorf("expected engine detail, got %v", resp.Error.Details)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}
	orig := NotFound("engine", "1")
	if Wrap(fmt.Errorf("outer: %w", orig)) != orig {
		t.Error("Wrap should unwrap to the original AppError")
	}
	plain := fmt.Errorf("something broke")
	got := Wrap(plain)
	if got.Code != ErrCodeInternal || got.Cause != plain {
		t.Errorf("expected internal error wrapping cause, got %+v", got)
	}
}
