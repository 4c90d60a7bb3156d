package transcription

import (
	"math"
	"slices"
	"strings"
	"testing"
)

func TestConfidenceReport(t *testing.T) {
	r := &Result{Segments: []Segment{
		{Start: 0, End: 1, Text: "a b", Confidence: 0.9, Words: []Word{
			{Text: "a", Confidence: 0.95},
			{Text: "b", Confidence: 0.5},
		}},
		{Start: 1, End: 2, Text: "c", Confidence: 0.7, Words: []Word{
			{Text: "c"},
		}},
	}}

	report := ConfidenceReport(r)
	if report.Overall != 80 {
		t.Errorf("overall = %d, want 80", report.Overall)
	}
	if len(report.Segments) != 2 || report.Segments[0].Confidence != 90 || report.Segments[1].Confidence != 70 {
		t.Errorf("unexpected segments %+v", report.Segments)
	}
	if len(report.LowConfidenceWords) != 1 || report.LowConfidenceWords[0].Text != "b" {
		t.Errorf("unexpected low-confidence words %+v", report.LowConfidenceWords)
	}
	if report.Metrics.TotalWords != 3 || report.Metrics.UncertainWords != 1 || report.Metrics.TotalSegments != 2 {
		t.Errorf("unexpected metrics %+v", report.Metrics)
	}
}

func TestConfidenceReport_Empty(t *testing.T) {
	report := ConfidenceReport(&Result{})
	if report.Overall != 0 || report.Segments == nil || report.LowConfidenceWords == nil {
		t.Errorf("unexpected report %+v", report)
	}
}

func TestQualityCheck(t *testing.T) {
	text := "Le patient pèse 72 kg et a reçu 500 mg. Écrire à dr.martin@hopital.fr ou voir https://www.hopital.fr/suivi pour 20 % de remise."

	report := QualityCheck(text)
	if !report.HasIssues {
		t.Fatal("expected issues")
	}

	byType := map[string]QualityIssue{}
	for _, issue := range report.Issues {
		byType[issue.Type] = issue
	}
	for _, want := range []string{IssueNumbers, IssueUnits, IssueEmails, IssueURLs} {
		if _, ok := byType[want]; !ok {
			t.Errorf("missing %q issue in %+v", want, report.Issues)
		}
	}
	if got := byType[IssueUnits].Samples; !slices.Contains(got, "72 kg") || !slices.Contains(got, "%") {
		t.Errorf("unexpected unit samples %v", got)
	}
	if got := byType[IssueEmails].Samples; len(got) != 1 || got[0] != "dr.martin@hopital.fr" {
		t.Errorf("unexpected email samples %v", got)
	}
	if _, ok := byType[IssuePunctuation]; ok {
		t.Error("punctuated text must not be flagged")
	}
	if !slices.Contains(report.Suggestions, ManualReviewSuggestion) {
		t.Errorf("expected manual review suggestion, got %v", report.Suggestions)
	}
}

func TestQualityCheck_MissingPunctuation(t *testing.T) {
	text := strings.Repeat("sans ponctuation ", 10)
	report := QualityCheck(text)

	if len(report.Issues) != 1 || report.Issues[0].Type != IssuePunctuation {
		t.Fatalf("expected only a punctuation issue, got %+v", report.Issues)
	}
	if report.Stats.TotalWords != 20 || report.Stats.TotalSentences != 1 || report.Stats.AvgWordsPerSentence != 20 {
		t.Errorf("unexpected stats %+v", report.Stats)
	}
	if slices.Contains(report.Suggestions, ManualReviewSuggestion) {
		t.Error("manual review needs more than two issue types")
	}
}

func TestQualityCheck_Clean(t *testing.T) {
	report := QualityCheck("Bonjour. Tout va bien.")
	if report.HasIssues || len(report.Suggestions) != 0 {
		t.Errorf("expected a clean report, got %+v", report)
	}
	if report.Stats.TotalSentences != 2 || report.Stats.AvgWordsPerSentence != 2 {
		t.Errorf("unexpected stats %+v", report.Stats)
	}
}

func TestScoreSegment(t *testing.T) {
	tests := []struct {
		name         string
		avgLogProb   float64
		noSpeechProb float64
		want         float64
	}{
		{"missing log prob", 0, 0.5, 0.25},
		{"missing log prob with speech", 0, 0.2, 0.4},
		{"log prob only", math.Log(0.8), 0, 0.8},
		{"silence", math.Log(0.9), 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreSegment(tt.avgLogProb, tt.noSpeechProb); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ScoreSegment(%v, %v) = %v, want %v", tt.avgLogProb, tt.noSpeechProb, got, tt.want)
			}
		})
	}
}
