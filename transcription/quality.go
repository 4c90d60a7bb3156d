package transcription

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Issue types reported by QualityCheck.
const (
	IssueNumbers     = "numbers"
	IssueUnits       = "units"
	IssueEmails      = "emails"
	IssueURLs        = "urls"
	IssuePunctuation = "punctuation"
)

// ManualReviewSuggestion is added when more than two issue types are found.
const ManualReviewSuggestion = "Considérer une révision manuelle complète du document"

var (
	numberPattern   = regexp.MustCompile(`\d+[.,]?\d*`)
	unitPattern     = regexp.MustCompile(`(?i)\d+(?:[.,]\d+)?\s?(?:km|cm|mm|kg|mg|ml|m|g|l)\b|[€$£%]`)
	emailPattern    = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	urlPattern      = regexp.MustCompile(`https?://(?:www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b[-a-zA-Z0-9()@:%_+.~#?&/=]*`)
	sentencePattern = regexp.MustCompile(`[.!?]`)
)

// QualityIssue is one class of content worth a manual check.
type QualityIssue struct {
	Type       string   `json:"type"`
	Count      int      `json:"count,omitempty"`
	Samples    []string `json:"samples,omitempty"`
	Suggestion string   `json:"suggestion"`
}

// QualityStats are word and sentence counts of the checked text.
type QualityStats struct {
	TotalWords          int `json:"total_words"`
	TotalSentences      int `json:"total_sentences"`
	AvgWordsPerSentence int `json:"avg_words_per_sentence"`
}

// QualityReport is the result of QualityCheck.
type QualityReport struct {
	HasIssues   bool           `json:"has_issues"`
	Issues      []QualityIssue `json:"issues"`
	Suggestions []string       `json:"suggestions"`
	Stats       QualityStats   `json:"stats"`
}

type qualityRule struct {
	kind       string
	pattern    *regexp.Regexp
	samples    int
	suggestion string
}

var qualityRules = []qualityRule{
	{IssueNumbers, numberPattern, 5, "Vérifier l'exactitude des nombres transcrits"},
	{IssueUnits, unitPattern, 5, "Contrôler la cohérence des unités de mesure"},
	{IssueEmails, emailPattern, 3, "Vérifier le format des adresses email"},
	{IssueURLs, urlPattern, 3, "Vérifier la validité des URLs"},
}

// QualityCheck flags content in a transcript that speech recognition often
// gets wrong: numbers, units, emails, URLs and missing punctuation.
func QualityCheck(text string) QualityReport {
	report := QualityReport{Issues: []QualityIssue{}, Suggestions: []string{}}

	for _, rule := range qualityRules {
		matches := rule.pattern.FindAllString(text, -1)
		if len(matches) == 0 {
			continue
		}
		samples := matches[:min(rule.samples, len(matches))]
		for i := range samples {
			samples[i] = strings.TrimSpace(samples[i])
		}
		report.Issues = append(report.Issues, QualityIssue{
			Type:       rule.kind,
			Count:      len(matches),
			Samples:    samples,
			Suggestion: rule.suggestion,
		})
	}

	var sentences int
	for _, s := range sentencePattern.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	if sentences < 2 && utf8.RuneCountInString(text) > 100 {
		report.Issues = append(report.Issues, QualityIssue{
			Type:       IssuePunctuation,
			Suggestion: "La ponctuation semble manquante ou incorrecte",
		})
	}

	words := len(strings.Fields(text))
	report.Stats = QualityStats{TotalWords: words, TotalSentences: sentences}
	if sentences > 0 {
		report.Stats.AvgWordsPerSentence = int(math.Round(float64(words) / float64(sentences)))
	}

	seen := make(map[string]struct{}, len(report.Issues)+1)
	add := func(s string) {
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		report.Suggestions = append(report.Suggestions, s)
	}
	for _, issue := range report.Issues {
		add(issue.Suggestion)
	}
	if len(report.Issues) > 2 {
		add(ManualReviewSuggestion)
	}
	report.HasIssues = len(report.Issues) > 0
	return report
}
