package transcription

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultCorrectionThreshold is the similarity a token must exceed to be replaced.
const DefaultCorrectionThreshold = 0.7

// Corrector replaces near-miss spellings of sector glossary terms.
type Corrector struct {
	dictionaries SectorDictionary
	// Threshold is exclusive: a token is replaced only when its similarity
	// to a term is strictly greater.
	Threshold float64
}

// NewCorrector creates a Corrector over the given glossaries.
func NewCorrector(dictionaries SectorDictionary, threshold float64) *Corrector {
	if threshold <= 0 || threshold >= 1 {
		threshold = DefaultCorrectionThreshold
	}
	return &Corrector{dictionaries: dictionaries.Clone(), Threshold: threshold}
}

// Similarity returns 1 - levenshtein(a, b) / max(len(a), len(b)) over
// lowercased runes, rounded to 9 decimals so boundary values compare exactly.
func Similarity(a, b string) float64 {
	a, b = fold(a), fold(b)
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	d := fuzzy.LevenshteinDistance(a, b)
	return math.Round((1-float64(d)/float64(longest))*1e9) / 1e9
}

func fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

type token struct {
	text  string
	start int // byte offset
}

// tokenize splits text into runs of letters, digits, marks and underscores.
func tokenize(text string) []token {
	var tokens []token
	start := -1
	for i, r := range text {
		inWord := unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '_'
		switch {
		case inWord && start < 0:
			start = i
		case !inWord && start >= 0:
			tokens = append(tokens, token{text: text[start:i], start: start})
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, token{text: text[start:], start: start})
	}
	return tokens
}

// stem is the term without its last two runes, lowercased.
func stem(term string) string {
	runes := []rune(fold(term))
	return string(runes[:len(runes)-2])
}

// Apply corrects text using the glossary for sector and language. Terms
// shorter than three runes are ignored. A token is a candidate for a term
// when it starts with the term's stem, case-insensitively; among the terms
// above the threshold the most similar wins, the earlier term on ties.
// Applying the result again changes nothing.
func (c *Corrector) Apply(text string, sector Sector, lang string) (string, []Correction) {
	terms := c.dictionaries.Terms(sector, lang)
	if len(terms) == 0 || text == "" {
		return text, nil
	}

	type candidate struct {
		term string
		stem string
	}
	candidates := make([]candidate, 0, len(terms))
	for _, t := range terms {
		if utf8.RuneCountInString(t) < 3 {
			continue
		}
		candidates = append(candidates, candidate{term: t, stem: stem(t)})
	}

	var (
		b           strings.Builder
		corrections []Correction
		last        int
	)
	for _, tok := range tokenize(text) {
		folded := fold(tok.text)
		best, bestScore := "", 0.0
		for _, cand := range candidates {
			if !strings.HasPrefix(folded, cand.stem) {
				continue
			}
			score := Similarity(tok.text, cand.term)
			if score > c.Threshold && score > bestScore {
				best, bestScore = cand.term, score
			}
		}
		if best == "" || tok.text == best {
			continue
		}
		b.WriteString(text[last:tok.start])
		b.WriteString(best)
		last = tok.start + len(tok.text)
		corrections = append(corrections, Correction{
			Original:   tok.text,
			Term:       best,
			Similarity: bestScore,
			Offset:     tok.start,
		})
	}
	if len(corrections) == 0 {
		return text, nil
	}
	b.WriteString(text[last:])
	return b.String(), corrections
}

// ApplyResult corrects the result text and every segment text in place and
// records the corrections made to the full text.
func (c *Corrector) ApplyResult(r *Result, sector Sector, lang string) {
	r.Text, r.Corrections = c.Apply(r.Text, sector, lang)
	for i := range r.Segments {
		r.Segments[i].Text, _ = c.Apply(r.Segments[i].Text, sector, lang)
	}
}
