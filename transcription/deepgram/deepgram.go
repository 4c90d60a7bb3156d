// Package deepgram is a transcription.Client for the Deepgram prerecorded
// listen API.
package deepgram

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/traduckxion/transcribe/errors"
	"github.com/traduckxion/transcribe/httpclient"
	"github.com/traduckxion/transcribe/transcription"
)

const (
	// ProviderName is the registered name for the Deepgram client.
	ProviderName = transcription.ProviderDeepgram

	defaultBaseURL = "https://api.deepgram.com"
	defaultModel   = "nova-2"
	defaultTimeout = 5 * time.Minute
	listenPath     = "/v1/listen"
	maxKeywords    = 100
)

// Config holds the Deepgram client settings.
type Config struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
	// SmartFormat enables Deepgram's number and date formatting.
	SmartFormat bool `mapstructure:"smart_format"`
}

// ApplyDefaults fills zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Client calls Deepgram over the shared HTTP adapter.
type Client struct {
	cfg  Config
	http *httpclient.Adapter
}

var _ transcription.Client = (*Client)(nil)

// New creates a Deepgram client.
func New(cfg Config, opts ...httpclient.Option) (*Client, error) {
	cfg.ApplyDefaults()
	if cfg.APIKey == "" {
		return nil, errors.MissingField("providers.deepgram.api_key")
	}
	adapter, err := httpclient.New(httpclient.Config{
		Name:    ProviderName,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Auth:    httpclient.SchemeAuth("Token", cfg.APIKey),
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{cfg: cfg, http: adapter}, nil
}

// Name returns the provider name.
func (c *Client) Name() string { return ProviderName }

// IsAvailable reports whether an API key is configured. Deepgram has no
// unauthenticated health endpoint.
func (c *Client) IsAvailable(context.Context) bool { return c.cfg.APIKey != "" }

// Transcribe posts the audio bytes to /v1/listen and maps the first channel's
// best alternative.
func (c *Client) Transcribe(ctx context.Context, audio transcription.Audio, req transcription.Request) (*transcription.RawTranscript, error) {
	if len(audio.Data) == 0 {
		return nil, errors.InvalidInput("file", "audio is empty")
	}

	contentType := audio.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := httpclient.Post[listenResponse](ctx, c.http, listenPath, audio.Data,
		httpclient.WithHeader("Content-Type", contentType),
		httpclient.WithQuery(c.query(req)),
	)
	if err != nil {
		return nil, httpclient.ToAppError(ProviderName, err)
	}
	return toRawTranscript(&resp.Data, req.Language), nil
}

func (c *Client) query(req transcription.Request) map[string]string {
	model := c.cfg.Model
	if req.Model != "" {
		model = req.Model
	}
	q := map[string]string{
		"model":      model,
		"punctuate":  strconv.FormatBool(req.Features.Punctuation),
		"diarize":    strconv.FormatBool(req.Features.Diarization),
		"utterances": strconv.FormatBool(req.Features.Diarization),
	}
	if req.Language != "" {
		q["language"] = req.Language
	}
	if c.cfg.SmartFormat {
		q["smart_format"] = "true"
	}
	if n := min(len(req.Vocabulary), maxKeywords); n > 0 {
		q["keywords"] = strings.Join(req.Vocabulary[:n], ",")
	}
	return q
}

// Close releases idle connections.
func (c *Client) Close(ctx context.Context) error {
	return c.http.Close(ctx)
}

// --- Deepgram API response types ---

type listenResponse struct {
	Metadata struct {
		Duration float64 `json:"duration"`
	} `json:"metadata"`
	Results struct {
		Channels []struct {
			DetectedLanguage string        `json:"detected_language"`
			Alternatives     []alternative `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

type alternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
	Words      []word  `json:"words"`
}

type word struct {
	Word           string  `json:"word"`
	PunctuatedWord string  `json:"punctuated_word"`
	Start          float64 `json:"start"`
	End            float64 `json:"end"`
	Confidence     float64 `json:"confidence"`
	Speaker        *int    `json:"speaker"`
}

func toRawTranscript(resp *listenResponse, language string) *transcription.RawTranscript {
	raw := &transcription.RawTranscript{
		Language: language,
		Duration: resp.Metadata.Duration,
	}
	if len(resp.Results.Channels) == 0 {
		return raw
	}
	channel := resp.Results.Channels[0]
	if channel.DetectedLanguage != "" {
		raw.Language = channel.DetectedLanguage
	}
	if len(channel.Alternatives) == 0 {
		return raw
	}

	best := channel.Alternatives[0]
	raw.Text = best.Transcript
	raw.Words = make([]transcription.Word, len(best.Words))
	for i, w := range best.Words {
		text := w.PunctuatedWord
		if text == "" {
			text = w.Word
		}
		raw.Words[i] = transcription.Word{
			Text:       text,
			Start:      w.Start,
			End:        w.End,
			Confidence: w.Confidence,
		}
		if w.Speaker != nil {
			raw.Words[i].Speaker = "Speaker " + strconv.Itoa(*w.Speaker+1)
		}
	}
	return raw
}
