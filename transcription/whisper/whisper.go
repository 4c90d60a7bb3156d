// Package whisper is a transcription.Client for a self-hosted
// faster-whisper HTTP sidecar.
package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/traduckxion/transcribe/errors"
	"github.com/traduckxion/transcribe/httpclient"
	"github.com/traduckxion/transcribe/provider"
	"github.com/traduckxion/transcribe/transcription"
	"github.com/traduckxion/transcribe/util"
)

const (
	// ProviderName is the registered name for the Whisper sidecar client.
	ProviderName = transcription.ProviderWhisper

	defaultWhisperURL     = "http://localhost:8387"
	defaultWhisperModel   = "base"
	defaultWhisperTimeout = 120 * time.Second
)

// Config holds configuration for the Whisper sidecar.
type Config struct {
	URL         string        `mapstructure:"url"`
	Model       string        `mapstructure:"model"`
	Device      string        `mapstructure:"device"`
	ComputeType string        `mapstructure:"compute_type"`
	Timeout     time.Duration `mapstructure:"timeout"`

	TLS *httpclient.TLSConfig `mapstructure:"tls"`
}

// ApplyDefaults fills zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.URL == "" {
		c.URL = defaultWhisperURL
	}
	if c.Model == "" {
		c.Model = defaultWhisperModel
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultWhisperTimeout
	}
}

// Client posts audio to the sidecar's /transcribe endpoint.
type Client struct {
	cfg  Config
	http *httpclient.Adapter
	rr   provider.RequestResponse[transcription.Call, *transcription.RawTranscript]
}

var _ transcription.Client = (*Client)(nil)

// New creates a Whisper sidecar client.
func New(cfg Config, opts ...httpclient.Option) (*Client, error) {
	cfg.ApplyDefaults()
	adapter, err := httpclient.New(httpclient.Config{
		Name:       ProviderName,
		BaseURL:    cfg.URL,
		Timeout:    cfg.Timeout,
		HealthPath: "/health",
		TLS:        cfg.TLS,
	}, opts...)
	if err != nil {
		return nil, err
	}
	c := &Client{cfg: cfg, http: adapter}
	c.rr = provider.Adapt(provider.RequestResponse[httpclient.Request, *httpclient.Response](adapter),
		ProviderName, c.buildRequest, decodeResponse)
	return c, nil
}

// Name returns the provider name.
func (c *Client) Name() string { return ProviderName }

// IsAvailable probes the sidecar's /health endpoint.
func (c *Client) IsAvailable(ctx context.Context) bool {
	return c.rr.IsAvailable(ctx)
}

// Transcribe uploads the audio as multipart form data.
func (c *Client) Transcribe(ctx context.Context, audio transcription.Audio, req transcription.Request) (*transcription.RawTranscript, error) {
	raw, err := c.rr.Execute(ctx, transcription.Call{Audio: audio, Request: req})
	if err != nil {
		return nil, httpclient.ToAppError(ProviderName, err)
	}
	return raw, nil
}

func (c *Client) buildRequest(_ context.Context, call transcription.Call) (httpclient.Request, error) {
	audio, req := call.Audio, call.Request
	if len(audio.Data) == 0 {
		return httpclient.Request{}, errors.InvalidInput("file", "audio is empty")
	}

	fileName := audio.FileName
	if fileName == "" {
		fileName = "audio.wav"
	}
	form := &httpclient.MultipartBody{
		Fields: map[string]string{"model": util.Coalesce(req.Model, c.cfg.Model)},
		Files: []httpclient.FileField{{
			FieldName:   "audio",
			FileName:    fileName,
			ContentType: audio.ContentType,
			Data:        audio.Data,
		}},
	}
	if req.Language != "" {
		form.Fields["language"] = req.Language
	}
	if c.cfg.Device != "" {
		form.Fields["device"] = c.cfg.Device
	}
	if c.cfg.ComputeType != "" {
		form.Fields["compute_type"] = c.cfg.ComputeType
	}
	if len(req.Vocabulary) > 0 {
		form.Fields["initial_prompt"] = strings.Join(req.Vocabulary, ", ")
	}
	if req.Features.Timestamps {
		form.Fields["word_timestamps"] = "true"
	}
	return httpclient.Request{Method: http.MethodPost, Path: "/transcribe", Body: form}, nil
}

func decodeResponse(resp *httpclient.Response) (*transcription.RawTranscript, error) {
	var body whisperResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("whisper: decode response: %w", err)
	}
	return toRawTranscript(&body), nil
}

// Close releases idle connections.
func (c *Client) Close(ctx context.Context) error {
	return c.http.Close(ctx)
}

// --- sidecar response types ---

type whisperResponse struct {
	Text     string           `json:"text"`
	Segments []whisperSegment `json:"segments"`
	Language string           `json:"language"`
	Duration float64          `json:"duration"`
}

type whisperSegment struct {
	Text         string        `json:"text"`
	Start        float64       `json:"start"`
	End          float64       `json:"end"`
	AvgLogProb   float64       `json:"avg_logprob"`
	NoSpeechProb float64       `json:"no_speech_prob"`
	Words        []whisperWord `json:"words"`
}

type whisperWord struct {
	Word        string  `json:"word"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Probability float64 `json:"probability"`
}

func toRawTranscript(resp *whisperResponse) *transcription.RawTranscript {
	raw := &transcription.RawTranscript{
		Text:     strings.TrimSpace(resp.Text),
		Language: resp.Language,
		Duration: resp.Duration,
		Segments: make([]transcription.Segment, len(resp.Segments)),
	}
	for i, seg := range resp.Segments {
		s := transcription.Segment{
			Start:      seg.Start,
			End:        seg.End,
			Text:       strings.TrimSpace(seg.Text),
			Confidence: transcription.ScoreSegment(seg.AvgLogProb, seg.NoSpeechProb),
		}
		for _, w := range seg.Words {
			s.Words = append(s.Words, transcription.Word{
				Text:       strings.TrimSpace(w.Word),
				Start:      w.Start,
				End:        w.End,
				Confidence: w.Probability,
			})
		}
		raw.Segments[i] = s
	}
	return raw
}
