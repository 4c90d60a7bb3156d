package httpclient

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	apperrors "github.com/traduckxion/transcribe/errors"
)

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		status    int
		wantNil   bool
		code      ErrorCode
		retryable bool
	}{
		{200, true, 0, false},
		{204, true, 0, false},
		{400, false, ErrCodeValidation, false},
		{401, false, ErrCodeAuth, false},
		{403, false, ErrCodeAuth, false},
		{404, false, ErrCodeNotFound, false},
		{429, false, ErrCodeRateLimit, true},
		{500, false, ErrCodeServer, true},
		{503, false, ErrCodeServer, true},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.status), func(t *testing.T) {
			err := ClassifyStatusCode(tt.status, nil)
			if tt.wantNil {
				if err != nil {
					t.Fatalf("expected nil, got %v", err)
				}
				return
			}
			if err.Code != tt.code || err.Retryable != tt.retryable {
				t.Errorf("got code=%s retryable=%v", err.Code, err.Retryable)
			}
		})
	}
}

func TestClassifyStatusCode_BodyExcerpt(t *testing.T) {
	err := ClassifyStatusCode(400, []byte(`{"error":"unsupported language"}`))
	if !strings.Contains(err.Error(), "unsupported language") {
		t.Errorf("message should carry the body, got %q", err.Error())
	}
	long := ClassifyStatusCode(500, []byte(strings.Repeat("x", 500)))
	if len(long.Message) != 203 {
		t.Errorf("expected truncated message, got %d chars", len(long.Message))
	}
	empty := ClassifyStatusCode(502, nil)
	if empty.Message != "Bad Gateway" {
		t.Errorf("expected status text, got %q", empty.Message)
	}
}

func TestToAppError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		code      apperrors.ErrorCode
		retryable bool
	}{
		{"auth", ClassifyStatusCode(401, nil), apperrors.ErrCodeUnauthorized, false},
		{"rate limit", ClassifyStatusCode(429, nil), apperrors.ErrCodeRateLimited, true},
		{"server", ClassifyStatusCode(500, nil), apperrors.ErrCodeProviderFailure, true},
		{"bad request", ClassifyStatusCode(400, nil), apperrors.ErrCodeProviderFailure, false},
		{"timeout", NewTimeoutError(errors.New("deadline")), apperrors.ErrCodeTimeout, true},
		{"connection", NewConnectionError(errors.New("refused")), apperrors.ErrCodeProviderFailure, true},
		{"plain", errors.New("decode"), apperrors.ErrCodeProviderFailure, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := ToAppError("deepgram", tt.err)
			appErr, ok := apperrors.AsAppError(mapped)
			if !ok {
				t.Fatalf("expected AppError, got %T", mapped)
			}
			if appErr.Code != tt.code || appErr.Retryable != tt.retryable {
				t.Errorf("got %s retryable=%v", appErr.Code, appErr.Retryable)
			}
			if !errors.Is(mapped, tt.err) {
				t.Error("mapped error should wrap the original")
			}
		})
	}

	if ToAppError("x", nil) != nil {
		t.Error("nil should stay nil")
	}
	orig := apperrors.JobFailed("assemblyai", "j1", "bad audio")
	if ToAppError("assemblyai", orig) != error(orig) {
		t.Error("AppErrors should pass through")
	}
}
