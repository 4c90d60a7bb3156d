package transcription

import (
	"context"
	stderrors "errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/traduckxion/transcribe/errors"
	"github.com/traduckxion/transcribe/logger"
	"github.com/traduckxion/transcribe/provider"
)

type fakeClient struct {
	name    string
	raw     *RawTranscript
	err     error
	calls   atomic.Int32
	lastReq Request
}

func (f *fakeClient) Name() string                     { return f.name }
func (f *fakeClient) IsAvailable(context.Context) bool { return true }

func (f *fakeClient) Transcribe(_ context.Context, _ Audio, req Request) (*RawTranscript, error) {
	f.calls.Add(1)
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.raw, nil
}

type fakeSummarizer struct {
	summary string
	err     error
}

func (f fakeSummarizer) Summarize(context.Context, string, string) (string, error) {
	return f.summary, f.err
}

type fakeTranslator struct {
	err   error
	calls atomic.Int32
}

func (f *fakeTranslator) Translate(_ context.Context, text, _, to string, _ Sector) (string, error) {
	f.calls.Add(1)
	if f.err != nil {
		return "", f.err
	}
	return "[" + to + "] " + text, nil
}

func newTestService(t *testing.T, clients map[string]Client, opts ...Option) *Service {
	t.Helper()
	reg := NewClientRegistry()
	for kind, c := range clients {
		reg.Set(kind, c)
	}
	opts = append([]Option{WithLogger(logger.Nop())}, opts...)
	return NewService(DefaultCatalog(), reg, opts...)
}

var testAudio = Audio{Data: []byte("RIFF"), FileName: "sample.wav", ContentType: "audio/wav"}

func TestService_Transcribe_Success(t *testing.T) {
	dg := &fakeClient{name: "deepgram", raw: &RawTranscript{Words: makeWords(12)}}
	svc := newTestService(t, map[string]Client{ProviderDeepgram: dg})

	result, err := svc.Transcribe(context.Background(), testAudio, Options{Language: "en"})
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if result.Simulated {
		t.Error("expected a real result")
	}
	if result.ID == "" {
		t.Error("expected a result id")
	}
	if len(result.Segments) != 2 {
		t.Errorf("expected 2 segments, got %d", len(result.Segments))
	}
	if result.Metadata.Engine != "Deepgram Nova" || result.Metadata.Language != "en" {
		t.Errorf("unexpected metadata: %+v", result.Metadata)
	}
	if dg.lastReq.Model != "nova-2" {
		t.Errorf("expected engine model nova-2, got %q", dg.lastReq.Model)
	}
	if result.Metadata.ProcessingTime < 0 {
		t.Errorf("negative processing time %v", result.Metadata.ProcessingTime)
	}
}

func TestService_Transcribe_SectorCorrection(t *testing.T) {
	aai := &fakeClient{name: "assemblyai", raw: &RawTranscript{
		Text:     "Le diagnostik est posé.",
		Segments: []Segment{{Start: 0, End: 2, Text: "Le diagnostik est posé.", Confidence: 0.8}},
	}}
	svc := newTestService(t, map[string]Client{ProviderAssemblyAI: aai})

	result, err := svc.Transcribe(context.Background(), testAudio, Options{Language: "fr", Sector: SectorMedical})
	if err != nil {
		t.Fatal(err)
	}
	if result.Metadata.EngineID != "medical-ai" {
		t.Errorf("expected medical-ai, got %q", result.Metadata.EngineID)
	}
	if result.Text != "Le diagnostic est posé." || result.Segments[0].Text != "Le diagnostic est posé." {
		t.Errorf("correction not applied: %q / %q", result.Text, result.Segments[0].Text)
	}
	if len(result.Corrections) != 1 {
		t.Errorf("expected 1 correction, got %d", len(result.Corrections))
	}
	if len(aai.lastReq.Vocabulary) == 0 || aai.lastReq.Vocabulary[0] != "diagnostic" {
		t.Errorf("expected medical vocabulary to be passed, got %v", aai.lastReq.Vocabulary)
	}
	if aai.lastReq.Sector != SectorMedical {
		t.Errorf("expected sector medical, got %q", aai.lastReq.Sector)
	}
}

func TestService_Transcribe_ProviderFailure(t *testing.T) {
	netErr := stderrors.New("dial tcp: connection refused")

	t.Run("no fallback returns typed error", func(t *testing.T) {
		svc := newTestService(t, map[string]Client{ProviderDeepgram: &fakeClient{name: "deepgram", err: netErr}})
		_, err := svc.Transcribe(context.Background(), testAudio, Options{Language: "en"})
		if !errors.HasCode(err, errors.ErrCodeProviderFailure) {
			t.Fatalf("expected PROVIDER_FAILURE, got %v", err)
		}
		if !stderrors.Is(err, netErr) {
			t.Error("expected the provider error as cause")
		}
	})

	t.Run("simulate fallback", func(t *testing.T) {
		svc := newTestService(t, map[string]Client{ProviderDeepgram: &fakeClient{name: "deepgram", err: netErr}})
		result, err := svc.Transcribe(context.Background(), testAudio, Options{
			Language:       "en",
			Fallback:       FallbackSimulate,
			Features:       Features{Summary: true, Translation: true},
			TargetLanguage: "fr",
		})
		if err != nil {
			t.Fatalf("expected simulated result, got %v", err)
		}
		if !result.Simulated || result.Text != SimulationMarker {
			t.Errorf("expected simulated marker, got %+v", result)
		}
		if result.Metadata.Engine != "Deepgram Nova" {
			t.Errorf("expected selected engine name, got %q", result.Metadata.Engine)
		}
		if !strings.Contains(result.FallbackReason, "connection refused") {
			t.Errorf("unexpected fallback reason %q", result.FallbackReason)
		}
		if result.Summary != SummaryUnavailable || result.Translation != TranslationUnavailable {
			t.Errorf("expected placeholders, got %q / %q", result.Summary, result.Translation)
		}
	})

	t.Run("request overrides service default", func(t *testing.T) {
		svc := newTestService(t, map[string]Client{ProviderDeepgram: &fakeClient{name: "deepgram", err: netErr}},
			WithFallback(FallbackSimulate))
		_, err := svc.Transcribe(context.Background(), testAudio, Options{Language: "en", Fallback: FallbackNone})
		if err == nil {
			t.Fatal("expected error when the request disables the fallback")
		}
		result, err := svc.Transcribe(context.Background(), testAudio, Options{Language: "en"})
		if err != nil || !result.Simulated {
			t.Fatalf("expected service default to simulate, got %v", err)
		}
	})
}

func TestService_Transcribe_CancelledIsNotSimulated(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "client reports cancellation", err: context.Canceled},
		{name: "client fails after caller left", err: stderrors.New("read: connection reset")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, map[string]Client{ProviderDeepgram: &fakeClient{name: "deepgram", err: tt.err}},
				WithFallback(FallbackSimulate))
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			result, err := svc.Transcribe(ctx, testAudio, Options{Language: "en"})
			if err == nil {
				t.Fatalf("expected an error for a cancelled request, got simulated=%v", result != nil && result.Simulated)
			}
			if result != nil {
				t.Errorf("expected no result, got %+v", result)
			}
		})
	}
}

func TestService_Transcribe_InvalidSegmentFallsBack(t *testing.T) {
	bad := &fakeClient{name: "deepgram", raw: &RawTranscript{Segments: []Segment{{Start: 3, End: 1}}}}
	svc := newTestService(t, map[string]Client{ProviderDeepgram: bad})

	_, err := svc.Transcribe(context.Background(), testAudio, Options{Language: "en"})
	if !errors.HasCode(err, errors.ErrCodeInvalidSegment) {
		t.Fatalf("expected INVALID_SEGMENT, got %v", err)
	}
	result, err := svc.Transcribe(context.Background(), testAudio, Options{Language: "en", Fallback: FallbackSimulate})
	if err != nil || !result.Simulated {
		t.Fatalf("expected simulated result, got %v", err)
	}
}

func TestService_Transcribe_MissingClient(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Transcribe(context.Background(), testAudio, Options{Language: "en"})
	if !errors.HasCode(err, errors.ErrCodeNoProviderClient) {
		t.Fatalf("expected NO_PROVIDER_CLIENT, got %v", err)
	}

	result, err := svc.Transcribe(context.Background(), testAudio, Options{Language: "en", Fallback: FallbackSimulate})
	if err != nil {
		t.Fatal(err)
	}
	if !result.Simulated {
		t.Error("expected simulated result")
	}
}

func TestService_Transcribe_SelectionErrorsAreNotMasked(t *testing.T) {
	svc := newTestService(t, nil, WithFallback(FallbackSimulate))

	tests := []struct {
		name string
		opts Options
		code errors.ErrorCode
	}{
		{"unsupported language", Options{Language: "xx"}, errors.ErrCodeNoEngineAvailable},
		{"unknown engine", Options{Language: "en", Engine: "nope"}, errors.ErrCodeUnknownEngine},
		{"missing language", Options{}, errors.ErrCodeInvalidInput},
		{"bad sector", Options{Language: "en", Sector: "sports"}, errors.ErrCodeInvalidInput},
		{"bad fallback", Options{Language: "en", Fallback: "retry"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Transcribe(context.Background(), testAudio, tt.opts)
			if !errors.HasCode(err, tt.code) {
				t.Errorf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestService_Transcribe_ExplicitEngine(t *testing.T) {
	openai := &fakeClient{name: "openai", raw: &RawTranscript{Text: "hello world"}}
	svc := newTestService(t, map[string]Client{ProviderOpenAI: openai})

	result, err := svc.Transcribe(context.Background(), testAudio, Options{Language: "en", Engine: "whisper-v3"})
	if err != nil {
		t.Fatal(err)
	}
	if result.Metadata.EngineID != "whisper-v3" {
		t.Errorf("expected whisper-v3, got %q", result.Metadata.EngineID)
	}
	if openai.lastReq.Model != "whisper-1" {
		t.Errorf("expected model whisper-1, got %q", openai.lastReq.Model)
	}
}

func TestService_Transcribe_Augment(t *testing.T) {
	raw := &RawTranscript{Text: "bonjour tout le monde"}

	t.Run("summary and translation", func(t *testing.T) {
		tr := &fakeTranslator{}
		svc := newTestService(t, map[string]Client{ProviderDeepgram: &fakeClient{name: "deepgram", raw: raw}},
			WithSummarizer(fakeSummarizer{summary: "salutations"}), WithTranslator(tr))
		result, err := svc.Transcribe(context.Background(), testAudio, Options{
			Language:       "fr",
			TargetLanguage: "en",
			Features:       Features{Summary: true, Translation: true},
		})
		if err != nil {
			t.Fatal(err)
		}
		if result.Summary != "salutations" {
			t.Errorf("summary = %q", result.Summary)
		}
		if result.Translation != "[en] bonjour tout le monde" {
			t.Errorf("translation = %q", result.Translation)
		}
	})

	t.Run("failures leave placeholders", func(t *testing.T) {
		svc := newTestService(t, map[string]Client{ProviderDeepgram: &fakeClient{name: "deepgram", raw: raw}},
			WithSummarizer(fakeSummarizer{err: stderrors.New("llm down")}),
			WithTranslator(&fakeTranslator{err: stderrors.New("llm down")}))
		result, err := svc.Transcribe(context.Background(), testAudio, Options{
			Language:       "fr",
			TargetLanguage: "en",
			Features:       Features{Summary: true, Translation: true},
		})
		if err != nil {
			t.Fatalf("augmentation failure must not fail the request: %v", err)
		}
		if result.Summary != SummaryUnavailable || result.Translation != TranslationUnavailable {
			t.Errorf("expected placeholders, got %q / %q", result.Summary, result.Translation)
		}
	})

	t.Run("same language copies text", func(t *testing.T) {
		tr := &fakeTranslator{}
		svc := newTestService(t, map[string]Client{ProviderDeepgram: &fakeClient{name: "deepgram", raw: raw}},
			WithTranslator(tr))
		result, err := svc.Transcribe(context.Background(), testAudio, Options{
			Language:       "fr",
			TargetLanguage: "fr",
			Features:       Features{Translation: true},
		})
		if err != nil {
			t.Fatal(err)
		}
		if result.Translation != raw.Text {
			t.Errorf("translation = %q", result.Translation)
		}
		if tr.calls.Load() != 0 {
			t.Error("translator must not be called for the source language")
		}
	})

	t.Run("provider summary is kept", func(t *testing.T) {
		withSummary := &RawTranscript{Text: "texte", Summary: "résumé fourni"}
		svc := newTestService(t, map[string]Client{ProviderDeepgram: &fakeClient{name: "deepgram", raw: withSummary}},
			WithSummarizer(fakeSummarizer{summary: "autre"}))
		result, err := svc.Transcribe(context.Background(), testAudio, Options{Language: "fr", Features: Features{Summary: true}})
		if err != nil {
			t.Fatal(err)
		}
		if result.Summary != "résumé fourni" {
			t.Errorf("summary = %q", result.Summary)
		}
	})
}

func TestService_ClientMiddleware(t *testing.T) {
	var seen atomic.Int32
	count := func(inner provider.RequestResponse[Call, *RawTranscript]) provider.RequestResponse[Call, *RawTranscript] {
		return provider.Func(inner.Name(), inner.IsAvailable, func(ctx context.Context, c Call) (*RawTranscript, error) {
			seen.Add(1)
			if c.Audio.FileName != "sample.wav" {
				t.Errorf("unexpected audio %q", c.Audio.FileName)
			}
			return inner.Execute(ctx, c)
		})
	}
	dg := &fakeClient{name: "deepgram", raw: &RawTranscript{Text: "ok"}}
	svc := newTestService(t, map[string]Client{ProviderDeepgram: dg}, WithClientMiddleware(count))

	if _, err := svc.Transcribe(context.Background(), testAudio, Options{Language: "en"}); err != nil {
		t.Fatal(err)
	}
	if seen.Load() != 1 || dg.calls.Load() != 1 {
		t.Errorf("middleware calls = %d, client calls = %d", seen.Load(), dg.calls.Load())
	}
}
