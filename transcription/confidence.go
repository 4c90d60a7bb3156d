package transcription

import "math"

// LowConfidenceThreshold marks words worth a manual check.
const LowConfidenceThreshold = 0.7

// SegmentConfidence is one segment's confidence as a percentage.
type SegmentConfidence struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Text       string  `json:"text"`
	Confidence int     `json:"confidence"`
}

// ConfidenceMetrics are the totals behind a ConfidenceReport.
type ConfidenceMetrics struct {
	AverageConfidence float64 `json:"average_confidence"`
	TotalSegments     int     `json:"total_segments"`
	TotalWords        int     `json:"total_words"`
	UncertainWords    int     `json:"uncertain_words"`
}

// ConfidenceSummary describes how reliable a result is.
type ConfidenceSummary struct {
	// Overall is the mean segment confidence, 0 to 100.
	Overall            int                 `json:"overall"`
	Segments           []SegmentConfidence `json:"segments"`
	LowConfidenceWords []Word              `json:"low_confidence_words"`
	Metrics            ConfidenceMetrics   `json:"metrics"`
}

// ConfidenceReport summarizes segment and word confidences of r. Words
// without a confidence are not counted as uncertain.
func ConfidenceReport(r *Result) ConfidenceSummary {
	report := ConfidenceSummary{
		Segments:           make([]SegmentConfidence, 0, len(r.Segments)),
		LowConfidenceWords: []Word{},
	}
	var total float64
	for _, s := range r.Segments {
		total += s.Confidence
		report.Segments = append(report.Segments, SegmentConfidence{
			Start:      s.Start,
			End:        s.End,
			Text:       s.Text,
			Confidence: percent(s.Confidence),
		})
		for _, w := range s.Words {
			report.Metrics.TotalWords++
			if w.Confidence > 0 && w.Confidence < LowConfidenceThreshold {
				report.LowConfidenceWords = append(report.LowConfidenceWords, w)
			}
		}
	}

	report.Metrics.TotalSegments = len(r.Segments)
	report.Metrics.UncertainWords = len(report.LowConfidenceWords)
	if n := len(r.Segments); n > 0 {
		avg := total / float64(n)
		report.Overall = percent(avg)
		report.Metrics.AverageConfidence = avg
	}
	return report
}

func percent(v float64) int {
	return int(math.Round(v * 100))
}

// missingLogProbConfidence stands in for segments without avg_logprob.
const missingLogProbConfidence = 0.5

// ScoreSegment derives a 0..1 confidence from Whisper segment scores:
// exp(avg_logprob) scaled by the speech probability.
func ScoreSegment(avgLogProb, noSpeechProb float64) float64 {
	p := missingLogProbConfidence
	if avgLogProb != 0 {
		p = math.Exp(avgLogProb)
	}
	return p * (1 - noSpeechProb)
}
