// Package pyannote calls a pyannote diarization sidecar over HTTP.
package pyannote

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/traduckxion/transcribe/errors"
	"github.com/traduckxion/transcribe/httpclient"
	"github.com/traduckxion/transcribe/transcription"
)

const (
	// ProviderName is the registered name of the pyannote sidecar.
	ProviderName = "pyannote"

	defaultURL     = "http://localhost:8388"
	defaultTimeout = 300 * time.Second
)

// Config holds the sidecar settings.
type Config struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
	// MinSpeakers and MaxSpeakers bound detection; 0 lets the model decide.
	MinSpeakers int `mapstructure:"min_speakers"`
	MaxSpeakers int `mapstructure:"max_speakers"`

	TLS *httpclient.TLSConfig `mapstructure:"tls"`
}

// ApplyDefaults fills zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.URL == "" {
		c.URL = defaultURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Client posts audio to the sidecar's /diarize endpoint.
type Client struct {
	cfg  Config
	http *httpclient.Adapter
}

var _ transcription.Diarizer = (*Client)(nil)

// New creates a pyannote client.
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
	return &Client{cfg: cfg, http: adapter}, nil
}

// Name returns the provider name.
func (c *Client) Name() string { return ProviderName }

// IsAvailable probes the sidecar's /health endpoint.
func (c *Client) IsAvailable(ctx context.Context) bool { return c.http.IsAvailable(ctx) }

// Close releases idle connections.
func (c *Client) Close(ctx context.Context) error { return c.http.Close(ctx) }

// Diarize uploads the audio and returns the speaker turns.
func (c *Client) Diarize(ctx context.Context, audio transcription.Audio, language string) ([]transcription.SpeakerTurn, error) {
	if len(audio.Data) == 0 {
		return nil, errors.InvalidInput("file", "audio is empty")
	}
	fileName := audio.FileName
	if fileName == "" {
		fileName = "audio.wav"
	}

	form := &httpclient.MultipartBody{
		Fields: map[string]string{},
		Files: []httpclient.FileField{{
			FieldName:   "audio",
			FileName:    fileName,
			ContentType: audio.ContentType,
			Data:        audio.Data,
		}},
	}
	if c.cfg.MinSpeakers > 0 {
		form.Fields["min_speakers"] = strconv.Itoa(c.cfg.MinSpeakers)
	}
	if c.cfg.MaxSpeakers > 0 {
		form.Fields["max_speakers"] = strconv.Itoa(c.cfg.MaxSpeakers)
	}
	if language != "" {
		form.Fields["language"] = language
	}

	resp, err := httpclient.Post[pyannoteResponse](ctx, c.http, "/diarize", form)
	if err != nil {
		return nil, httpclient.ToAppError(ProviderName, err)
	}
	if resp.Data.Error != "" {
		return nil, errors.ProviderFailure(ProviderName, fmt.Errorf("diarization: %s", resp.Data.Error))
	}
	return toTurns(resp.Data.Segments), nil
}

// --- sidecar response types ---

type pyannoteResponse struct {
	Segments    []pyannoteSegment `json:"segments"`
	NumSpeakers int               `json:"num_speakers"`
	Error       string            `json:"error,omitempty"`
}

type pyannoteSegment struct {
	SpeakerID string  `json:"speaker_id"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

func toTurns(segments []pyannoteSegment) []transcription.SpeakerTurn {
	turns := make([]transcription.SpeakerTurn, len(segments))
	for i, s := range segments {
		turns[i] = transcription.SpeakerTurn{Speaker: s.SpeakerID, Start: s.StartTime, End: s.EndTime}
	}
	return turns
}
