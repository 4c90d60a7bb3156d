package validation

import (
	"strings"
	"testing"

	"github.com/traduckxion/transcribe/errors"
)

type features struct {
	Summary bool `json:"summary"`
}

type request struct {
	Language  string   `json:"language" validate:"required,langcode"`
	Sector    string   `json:"sector" validate:"omitempty,oneof=general medical legal"`
	Threshold float64  `json:"threshold" validate:"gte=0,lte=1"`
	Engine    string   `json:"engine" validate:"max=8"`
	Features  features `json:"features"`
	Nested    *struct {
		GroupSize int `json:"group_size" validate:"gt=0"`
	} `json:"nested"`
}

func fieldsOf(t *testing.T, err error) []FieldError {
	t.Helper()
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Fatalf("code = %s", appErr.Code)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok {
		t.Fatalf("details fields = %T", appErr.Details["fields"])
	}
	return fields
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		in        request
		wantField string
		wantMsg   string
	}{
		{"valid", request{Language: "fr", Sector: "medical", Threshold: 0.7}, "", ""},
		{"region code", request{Language: "en-US"}, "", ""},
		{"missing language", request{}, "language", "is required"},
		{"bad language", request{Language: "French"}, "language", "language code"},
		{"bad sector", request{Language: "fr", Sector: "sports"}, "sector", "must be one of: general medical legal"},
		{"threshold range", request{Language: "fr", Threshold: 1.5}, "threshold", "must be 1 or less"},
		{"engine length", request{Language: "fr", Engine: "much-too-long"}, "engine", "at most 8 characters"},
		{"nested path", request{Language: "fr", Nested: &struct {
			GroupSize int `json:"group_size" validate:"gt=0"`
		}{}}, "nested.group_size", "greater than 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			fields := fieldsOf(t, err)
			if len(fields) != 1 {
				t.Fatalf("expected 1 field error, got %v", fields)
			}
			if fields[0].Field != tt.wantField || !strings.Contains(fields[0].Message, tt.wantMsg) {
				t.Errorf("got %+v, want field %q containing %q", fields[0], tt.wantField, tt.wantMsg)
			}
		})
	}
}

func TestValidator_Collects(t *testing.T) {
	err := New().
		Required("text", "  ").
		OneOf("sector", "sports", []string{"medical", "legal"}).
		LanguageCode("language", "FR").
		MaxLength("engine", "deepgram", 20).
		Custom(false, "threshold", "must be between 0 and 1").
		Validate()

	fields := fieldsOf(t, err)
	if len(fields) != 4 {
		t.Fatalf("expected 4 errors, got %v", fields)
	}
	if !strings.Contains(err.Error(), "text: is required") {
		t.Errorf("message should list fields, got %q", err.Error())
	}
}

func TestValidator_Empty(t *testing.T) {
	if err := New().Required("text", "ok").OneOf("sector", "", []string{"medical"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	for in, want := range map[string]string{"GroupSize": "group_size", "Text": "text", "engineID": "engine_i_d"} {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsLanguageCode(t *testing.T) {
	for _, ok := range []string{"fr", "en", "pt-BR", "zh-Hans", "yue"} {
		if !IsLanguageCode(ok) {
			t.Errorf("%q should be valid", ok)
		}
	}
	for _, bad := range []string{"", "f", "FR", "french", "en_US"} {
		if IsLanguageCode(bad) {
			t.Errorf("%q should be invalid", bad)
		}
	}
}
