package transcription

import (
	"strings"

	"github.com/google/uuid"
)

// FallbackPolicy decides what happens when the provider call fails.
type FallbackPolicy string

const (
	// FallbackNone returns the provider error to the caller.
	FallbackNone FallbackPolicy = "none"
	// FallbackSimulate returns a placeholder result flagged Simulated.
	FallbackSimulate FallbackPolicy = "simulate"
)

// ParseFallbackPolicy accepts "none", "simulate" or an empty string (none).
func ParseFallbackPolicy(s string) (FallbackPolicy, bool) {
	switch FallbackPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", FallbackNone:
		return FallbackNone, true
	case FallbackSimulate:
		return FallbackSimulate, true
	}
	return FallbackNone, false
}

// SimulationMarker is the text of a simulated result.
const SimulationMarker = "[simulated transcription]"

// simulatedSegmentEnd is the fixed end time of the single simulated segment.
const simulatedSegmentEnd = 5.0

// Simulate builds the placeholder result for engine after a provider failure.
func Simulate(engine Engine, lang string, cause error) *Result {
	reason := "provider unavailable"
	if cause != nil {
		reason = cause.Error()
	}
	return &Result{
		ID:   uuid.NewString(),
		Text: SimulationMarker,
		Segments: []Segment{{
			ID:    "1",
			Start: 0,
			End:   simulatedSegmentEnd,
			Text:  SimulationMarker,
		}},
		Metadata: Metadata{
			Duration:  simulatedSegmentEnd,
			WordCount: len(strings.Fields(SimulationMarker)),
			Accuracy:  engine.Accuracy,
			Engine:    engine.Name,
			EngineID:  engine.ID,
			Language:  lang,
		},
		Simulated:      true,
		FallbackReason: reason,
	}
}
