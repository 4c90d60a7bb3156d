package transcription

import (
	"context"

	"github.com/traduckxion/transcribe/provider"
)

// Provider kinds that serve engines.
const (
	ProviderOpenAI     = "openai"
	ProviderDeepgram   = "deepgram"
	ProviderAssemblyAI = "assemblyai"
	ProviderWhisper    = "whisper"
)

// Audio is the media handed to a provider.
type Audio struct {
	Data        []byte
	FileName    string
	ContentType string
}

// Request carries the per-call settings a provider client needs.
type Request struct {
	Language string
	// Model overrides the client's default model when set.
	Model    string
	Features Features
	Sector   Sector
	// Vocabulary holds sector terms to boost, for providers that support it.
	Vocabulary []string
}

// RawTranscript is a provider response mapped onto common fields but not yet
// standardized: it may carry words only, segments only, or both.
type RawTranscript struct {
	Text     string
	Words    []Word
	Segments []Segment
	Summary  string
	Language string
	Duration float64
}

// Client is a speech-to-text backend.
type Client interface {
	provider.Provider
	Transcribe(ctx context.Context, audio Audio, req Request) (*RawTranscript, error)
}

// AsyncClient is a backend with a submit-then-poll job protocol. Its
// Transcribe runs the whole cycle; Submit and Await expose the steps.
type AsyncClient interface {
	Client
	Submit(ctx context.Context, audio Audio, req Request) (jobID string, err error)
	Await(ctx context.Context, jobID string) (*RawTranscript, error)
}

// Call is the input of a Client viewed as a provider.RequestResponse.
type Call struct {
	Audio   Audio
	Request Request
}

// AsRequestResponse exposes a Client to the provider middleware.
func AsRequestResponse(c Client) provider.RequestResponse[Call, *RawTranscript] {
	return provider.Func(c.Name(), c.IsAvailable, func(ctx context.Context, call Call) (*RawTranscript, error) {
		return c.Transcribe(ctx, call.Audio, call.Request)
	})
}

// NewClientRegistry returns an empty registry of provider clients keyed by provider kind.
func NewClientRegistry() *provider.Registry[Client] {
	return provider.NewRegistry[Client]()
}
