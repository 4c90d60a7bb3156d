package transcription

import (
	"context"
	"slices"
)

// SpeakerTurn is a time range attributed to one speaker.
type SpeakerTurn struct {
	Speaker string  `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

// Diarizer labels speakers for providers that do not report them.
type Diarizer interface {
	Diarize(ctx context.Context, audio Audio, language string) ([]SpeakerTurn, error)
}

// HasSpeakers reports whether any segment carries a speaker label.
func HasSpeakers(segments []Segment) bool {
	return slices.ContainsFunc(segments, func(s Segment) bool { return s.Speaker != "" })
}

// AssignSpeakers labels each segment, and its words, with the speaker whose
// turns overlap it the most. Segments no turn overlaps keep their label.
// It returns the number of segments labeled.
func AssignSpeakers(segments []Segment, turns []SpeakerTurn) int {
	labeled := 0
	for i := range segments {
		seg := &segments[i]
		if speaker := dominantSpeaker(seg.Start, seg.End, turns); speaker != "" {
			seg.Speaker = speaker
			labeled++
		}
		for j := range seg.Words {
			w := &seg.Words[j]
			if speaker := dominantSpeaker(w.Start, w.End, turns); speaker != "" {
				w.Speaker = speaker
			}
		}
	}
	return labeled
}

func dominantSpeaker(start, end float64, turns []SpeakerTurn) string {
	overlap := make(map[string]float64)
	best, bestOverlap := "", 0.0
	for _, t := range turns {
		d := min(end, t.End) - max(start, t.Start)
		if d <= 0 {
			continue
		}
		overlap[t.Speaker] += d
		if overlap[t.Speaker] > bestOverlap {
			best, bestOverlap = t.Speaker, overlap[t.Speaker]
		}
	}
	return best
}
