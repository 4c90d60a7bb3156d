package transcription

import (
	"slices"
	"strconv"
	"strings"

	"github.com/traduckxion/transcribe/errors"
)

// NormalizeConfig tunes Standardize.
type NormalizeConfig struct {
	// GroupSize is the number of words per synthesized segment.
	GroupSize int `mapstructure:"group_size"`
	// DefaultConfidence is used when a provider omits word confidences.
	DefaultConfidence float64 `mapstructure:"default_confidence"`
}

// DefaultNormalizeConfig returns GroupSize 10 and DefaultConfidence 0.9.
func DefaultNormalizeConfig() NormalizeConfig {
	return NormalizeConfig{GroupSize: 10, DefaultConfidence: 0.9}
}

func (c *NormalizeConfig) applyDefaults() {
	d := DefaultNormalizeConfig()
	if c.GroupSize <= 0 {
		c.GroupSize = d.GroupSize
	}
	if c.DefaultConfidence <= 0 || c.DefaultConfidence > 1 {
		c.DefaultConfidence = d.DefaultConfidence
	}
}

// Standardize maps a raw provider transcript onto a Result for engine.
// Words without segments are grouped into segments of cfg.GroupSize.
// Segments are sorted by start and any segment ending before it starts is
// rejected with INVALID_SEGMENT.
func Standardize(raw *RawTranscript, engine Engine, cfg NormalizeConfig) (*Result, error) {
	cfg.applyDefaults()
	if raw == nil {
		raw = &RawTranscript{}
	}

	segments := slices.Clone(raw.Segments)
	if len(segments) == 0 && len(raw.Words) > 0 {
		segments = GroupWords(raw.Words, cfg.GroupSize, cfg.DefaultConfidence)
	}

	slices.SortStableFunc(segments, func(a, b Segment) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		}
		return 0
	})
	for i := range segments {
		if segments[i].End < segments[i].Start {
			return nil, errors.InvalidSegment(i, segments[i].Start, segments[i].End)
		}
		if segments[i].ID == "" {
			segments[i].ID = strconv.Itoa(i + 1)
		}
	}

	text := strings.TrimSpace(raw.Text)
	if text == "" {
		text = joinSegmentText(segments)
	}

	var duration float64
	if n := len(segments); n > 0 {
		duration = segments[n-1].End
	} else if raw.Duration > 0 {
		duration = raw.Duration
	}

	return &Result{
		Text:     text,
		Segments: segments,
		Summary:  raw.Summary,
		Metadata: Metadata{
			Duration:  duration,
			WordCount: len(strings.Fields(text)),
			Accuracy:  engine.Accuracy,
			Engine:    engine.Name,
			EngineID:  engine.ID,
			Language:  raw.Language,
		},
	}, nil
}

// GroupWords packs consecutive words into segments of groupSize words.
// Segment confidence is the mean word confidence, or defaultConfidence when
// no word in the group carries one. The speaker of the first word is kept.
func GroupWords(words []Word, groupSize int, defaultConfidence float64) []Segment {
	if groupSize <= 0 {
		groupSize = DefaultNormalizeConfig().GroupSize
	}
	segments := make([]Segment, 0, (len(words)+groupSize-1)/groupSize)
	for chunk := range slices.Chunk(words, groupSize) {
		texts := make([]string, len(chunk))
		var sum float64
		var scored int
		for i, w := range chunk {
			texts[i] = strings.TrimSpace(w.Text)
			if w.Confidence > 0 {
				sum += w.Confidence
				scored++
			}
		}
		confidence := defaultConfidence
		if scored > 0 {
			confidence = sum / float64(scored)
		}
		segments = append(segments, Segment{
			ID:         strconv.Itoa(len(segments) + 1),
			Start:      chunk[0].Start,
			End:        chunk[len(chunk)-1].End,
			Text:       strings.Join(texts, " "),
			Speaker:    chunk[0].Speaker,
			Confidence: confidence,
			Words:      slices.Clone(chunk),
		})
	}
	return segments
}

func joinSegmentText(segments []Segment) string {
	texts := make([]string, 0, len(segments))
	for _, s := range segments {
		if t := strings.TrimSpace(s.Text); t != "" {
			texts = append(texts, t)
		}
	}
	return strings.Join(texts, " ")
}
