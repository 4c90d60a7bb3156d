package pyannote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/traduckxion/transcribe/errors"
	"github.com/traduckxion/transcribe/transcription"
)

func TestDiarize(t *testing.T) {
	var gotFields map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/diarize" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
		}
		gotFields = map[string]string{
			"language":     r.FormValue("language"),
			"max_speakers": r.FormValue("max_speakers"),
		}
		if _, _, err := r.FormFile("audio"); err != nil {
			t.Errorf("audio part: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"num_speakers": 2,
			"segments": []map[string]any{
				{"speaker_id": "SPEAKER_00", "start_time": 0.0, "end_time": 2.5},
				{"speaker_id": "SPEAKER_01", "start_time": 2.5, "end_time": 4.0},
			},
		})
	}))
	defer srv.Close()

	c, err := New(Config{URL: srv.URL, MaxSpeakers: 2})
	if err != nil {
		t.Fatal(err)
	}
	turns, err := c.Diarize(context.Background(), transcription.Audio{Data: []byte("RIFF")}, "fr")
	if err != nil {
		t.Fatal(err)
	}
	if len(turns) != 2 || turns[1].Speaker != "SPEAKER_01" || turns[1].End != 4.0 {
		t.Errorf("turns = %+v", turns)
	}
	if gotFields["language"] != "fr" || gotFields["max_speakers"] != "2" {
		t.Errorf("fields = %v", gotFields)
	}
}

func TestDiarizeErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode errors.ErrorCode
	}{
		{"sidecar error field", http.StatusOK, `{"error":"model not loaded"}`, errors.ErrCodeProviderFailure},
		{"server error", http.StatusInternalServerError, `boom`, errors.ErrCodeProviderFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c, _ := New(Config{URL: srv.URL})
			_, err := c.Diarize(context.Background(), transcription.Audio{Data: []byte("x")}, "")
			if !errors.HasCode(err, tt.wantCode) {
				t.Errorf("err = %v, want %s", err, tt.wantCode)
			}
		})
	}

	c, _ := New(Config{URL: "http://127.0.0.1:1"})
	if _, err := c.Diarize(context.Background(), transcription.Audio{}, ""); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty audio: err = %v", err)
	}
}
