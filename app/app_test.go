package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/traduckxion/transcribe/augment"
	"github.com/traduckxion/transcribe/logger"
	"github.com/traduckxion/transcribe/transcription"
)

type fakeClient struct {
	available bool
	raw       *transcription.RawTranscript
}

func (f *fakeClient) Name() string                     { return transcription.ProviderDeepgram }
func (f *fakeClient) IsAvailable(context.Context) bool { return f.available }

func (f *fakeClient) Transcribe(context.Context, transcription.Audio, transcription.Request) (*transcription.RawTranscript, error) {
	return f.raw, nil
}

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"OPENAI_API_KEY", "DEEPGRAM_API_KEY", "ASSEMBLYAI_API_KEY"} {
		t.Setenv(k, "")
	}
}

func newTestApp(t *testing.T, cfg *Config, client *fakeClient) *App {
	t.Helper()
	clearProviderEnv(t)
	a, err := New(context.Background(), cfg, WithLogger(logger.Nop()), WithClient(transcription.ProviderDeepgram, client))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = a.Close(context.Background()) })
	return a
}

func TestApplyDefaults(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("DEEPGRAM_API_KEY", "dg-test")

	cfg := &Config{LLM: LLMConfig{}}
	cfg.LLM.Dialect = "openai"
	cfg.ApplyDefaults()

	if cfg.Name != ServiceName || cfg.Environment != "development" {
		t.Errorf("service = %q/%q", cfg.Name, cfg.Environment)
	}
	if cfg.Providers.OpenAI.APIKey != "sk-test" || cfg.Providers.Deepgram.APIKey != "dg-test" {
		t.Errorf("provider keys = %+v", cfg.Providers)
	}
	if cfg.LLM.APIKey != "sk-test" || cfg.LLM.BaseURL == "" || cfg.LLM.Model == "" {
		t.Errorf("llm = %+v", cfg.LLM.Config)
	}
	if cfg.Cache.Driver != CacheMemory || cfg.Transcription.Fallback != "none" {
		t.Errorf("cache = %q fallback = %q", cfg.Cache.Driver, cfg.Transcription.Fallback)
	}
	if cfg.Transcription.CorrectionThreshold != transcription.DefaultCorrectionThreshold {
		t.Errorf("threshold = %v", cfg.Transcription.CorrectionThreshold)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	clearProviderEnv(t)
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"fallback", func(c *Config) { c.Transcription.Fallback = "retry" }},
		{"threshold", func(c *Config) { c.Transcription.CorrectionThreshold = 1.5 }},
		{"cache driver", func(c *Config) { c.Cache.Driver = "memcached" }},
		{"dialect", func(c *Config) { c.LLM.Dialect = "bard" }},
		{"llm base url", func(c *Config) { c.LLM.Dialect = "ollama" }},
		{"environment", func(c *Config) { c.Environment = "qa" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			tt.modify(cfg)
			cfg.ApplyDefaults()
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	clearProviderEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yml := `
name: traduckxion
environment: staging
logging:
  level: warn
server:
  port: 9090
transcription:
  fallback: simulate
  normalize:
    group_size: 5
  dictionaries:
    media:
      fr: [montage, sous-titrage]
providers:
  deepgram:
    api_key: from-file
cache:
  driver: none
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TRADUCKXION_SERVER_PORT", "9191")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Environment != "staging" || cfg.Logging.Level != "warn" {
		t.Errorf("service = %+v", cfg.ServiceConfig)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("port = %d, want env override 9191", cfg.Server.Port)
	}
	if cfg.Transcription.Fallback != "simulate" || cfg.Transcription.Normalize.GroupSize != 5 {
		t.Errorf("transcription = %+v", cfg.Transcription)
	}
	if got := cfg.Transcription.Dictionaries.Terms(transcription.SectorMedia, "fr"); len(got) != 2 {
		t.Errorf("media terms = %v", got)
	}
	if cfg.Providers.Deepgram.APIKey != "from-file" || cfg.Cache.Driver != CacheNone {
		t.Errorf("providers = %+v cache = %q", cfg.Providers.Deepgram, cfg.Cache.Driver)
	}
}

func TestServerRoutes(t *testing.T) {
	cfg := &Config{}
	cfg.Observability.Metrics = true
	a := newTestApp(t, cfg, &fakeClient{available: true})

	ts := httptest.NewServer(a.Server().Handler())
	defer ts.Close()

	tests := []struct {
		method, path, body string
		wantCode           int
		wantIn             string
	}{
		{http.MethodGet, "/health", "", http.StatusOK, `"status":"up"`},
		{http.MethodGet, "/ready", "", http.StatusOK, `"ready"`},
		{http.MethodGet, "/api/v1/engines", "", http.StatusOK, `"whisper-v3"`},
		{http.MethodPost, "/api/v1/engines/select", `{"language":"fr","sector":"legal"}`, http.StatusOK, `"legal-ai"`},
		{http.MethodGet, "/metrics", "", http.StatusOK, "# HELP"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, ts.URL+tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != tt.wantCode {
				t.Fatalf("code = %d, want %d: %s", resp.StatusCode, tt.wantCode, body)
			}
			if !strings.Contains(string(body), tt.wantIn) {
				t.Errorf("body %s does not contain %s", body, tt.wantIn)
			}
			if resp.Header.Get("X-Request-Id") == "" {
				t.Error("missing X-Request-Id")
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	a := newTestApp(t, &Config{}, &fakeClient{available: false})

	byName := map[string]string{}
	for _, h := range a.HealthCheck(context.Background()) {
		byName[h.Name] = string(h.Status)
	}
	if byName["provider:deepgram"] != "degraded" || byName["providers"] != "up" {
		t.Errorf("health = %v", byName)
	}
}

func TestRateLimitedAPI(t *testing.T) {
	cfg := &Config{}
	cfg.Server.RateLimit = 1
	a := newTestApp(t, cfg, &fakeClient{available: true})
	h := a.Server().Handler()

	codes := make([]int, 0, 2)
	for range 2 {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/sectors", http.NoBody))
		codes = append(codes, rr.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}
}

func TestTranscribeWithLLMAndRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)

	var chatCalls atomic.Int32
	llmServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/chat" {
			chatCalls.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model":   "qwen2.5",
			"message": map[string]string{"role": "assistant", "content": " bonjour le monde "},
		})
	}))
	defer llmServer.Close()

	cfg := &Config{}
	cfg.LLM.Dialect = "ollama"
	cfg.LLM.BaseURL = llmServer.URL
	cfg.LLM.Model = "qwen2.5"
	cfg.Cache.Driver = CacheRedis
	cfg.Cache.Redis.Addr = mr.Addr()

	a := newTestApp(t, cfg, &fakeClient{available: true, raw: &transcription.RawTranscript{
		Text:     "hello world",
		Segments: []transcription.Segment{{Start: 0, End: 1, Text: "hello world", Confidence: 0.9}},
	}})

	opts := transcription.Options{
		Language:       "en",
		TargetLanguage: "fr",
		Features:       transcription.Features{Summary: true, Translation: true},
	}
	res, err := a.Service.Transcribe(context.Background(), transcription.Audio{Data: []byte("x")}, opts)
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if res.Translation != "bonjour le monde" || res.Summary != "bonjour le monde" {
		t.Errorf("translation = %q summary = %q", res.Translation, res.Summary)
	}
	if !mr.Exists("traduckxion:" + augment.CacheKey("hello world", "fr")) {
		t.Errorf("translation not cached; keys = %v", mr.Keys())
	}

	opts.Features.Summary = false
	if _, err := a.Service.Transcribe(context.Background(), transcription.Audio{Data: []byte("x")}, opts); err != nil {
		t.Fatal(err)
	}
	if chatCalls.Load() != 2 {
		t.Errorf("chat calls = %d, want 2 (second translation served from cache)", chatCalls.Load())
	}
}

func TestTranscribeWithPyannote(t *testing.T) {
	sidecar := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"num_speakers":2,"segments":[
			{"speaker_id":"SPEAKER_00","start_time":0,"end_time":1.1},
			{"speaker_id":"SPEAKER_01","start_time":1.1,"end_time":3}]}`)
	}))
	defer sidecar.Close()

	cfg := &Config{}
	cfg.Providers.Pyannote.Enabled = true
	cfg.Providers.Pyannote.URL = sidecar.URL

	a := newTestApp(t, cfg, &fakeClient{available: true, raw: &transcription.RawTranscript{
		Text: "bonjour docteur merci",
		Segments: []transcription.Segment{
			{Start: 0, End: 1, Text: "bonjour docteur", Confidence: 0.9},
			{Start: 1.2, End: 2.8, Text: "merci", Confidence: 0.9},
		},
	}})

	res, err := a.Service.Transcribe(context.Background(), transcription.Audio{Data: []byte("x")}, transcription.Options{
		Language: "fr",
		Features: transcription.Features{Diarization: true},
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if got := []string{res.Segments[0].Speaker, res.Segments[1].Speaker}; got[0] != "SPEAKER_00" || got[1] != "SPEAKER_01" {
		t.Errorf("speakers = %v", got)
	}

	found := false
	for _, h := range a.HealthCheck(context.Background()) {
		if h.Name == "diarization:pyannote" {
			found = string(h.Status) == "up"
		}
	}
	if !found {
		t.Error("pyannote probe missing or not up")
	}
}
