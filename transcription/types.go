package transcription

import (
	"slices"
)

// Sector is a domain vertical used to pick specialized engines and glossaries.
type Sector string

const (
	SectorGeneral   Sector = "general"
	SectorMedical   Sector = "medical"
	SectorLegal     Sector = "legal"
	SectorEducation Sector = "education"
	SectorBusiness  Sector = "business"
	SectorMedia     Sector = "media"
)

// OrGeneral returns the sector, or SectorGeneral when empty.
func (s Sector) OrGeneral() Sector {
	if s == "" {
		return SectorGeneral
	}
	return s
}

// Engine describes one speech-to-text engine and the provider that serves it.
type Engine struct {
	ID             string   `json:"id" mapstructure:"id"`
	Name           string   `json:"name" mapstructure:"name"`
	Description    string   `json:"description,omitempty" mapstructure:"description"`
	Languages      []string `json:"languages" mapstructure:"languages"`
	Accuracy       float64  `json:"accuracy" mapstructure:"accuracy"`
	Speed          float64  `json:"speed" mapstructure:"speed"`
	CostPerMinute  float64  `json:"cost_per_minute" mapstructure:"cost_per_minute"`
	Specialization []Sector `json:"specialization,omitempty" mapstructure:"specialization"`
	// Provider is the client kind that serves this engine (openai, deepgram, assemblyai, whisper).
	Provider string `json:"provider" mapstructure:"provider"`
	// Model is passed to the provider when set.
	Model string `json:"model,omitempty" mapstructure:"model"`
}

// Supports reports whether the engine handles the language code.
func (e Engine) Supports(language string) bool {
	return slices.Contains(e.Languages, language)
}

// SpecializedFor reports whether the engine lists the sector in its specialization.
func (e Engine) SpecializedFor(sector Sector) bool {
	return slices.Contains(e.Specialization, sector)
}

// Score ranks engines: accuracy weighted by the inverse of the speed factor.
func (e Engine) Score() float64 {
	return e.Accuracy * (1 / e.Speed)
}

// Features toggles optional processing for a request.
type Features struct {
	Diarization bool `json:"diarization"`
	Punctuation bool `json:"punctuation"`
	Timestamps  bool `json:"timestamps"`
	Summary     bool `json:"summary"`
	Translation bool `json:"translation"`
}

// Options configures a single transcription request.
type Options struct {
	Language       string         `json:"language" validate:"required,langcode"`
	Sector         Sector         `json:"sector,omitempty" validate:"omitempty,oneof=general medical legal education business media"`
	Engine         string         `json:"engine,omitempty" validate:"omitempty,max=64"`
	TargetLanguage string         `json:"target_language,omitempty" validate:"omitempty,langcode"`
	Features       Features       `json:"features"`
	Fallback       FallbackPolicy `json:"fallback,omitempty" validate:"omitempty,oneof=none simulate"`
}

// Word is a single timed token as reported by a provider.
type Word struct {
	Text       string  `json:"text"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence,omitempty"`
	Speaker    string  `json:"speaker,omitempty"`
}

// Segment is a timed span of transcript text.
type Segment struct {
	ID         string  `json:"id"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Text       string  `json:"text"`
	Speaker    string  `json:"speaker,omitempty"`
	Confidence float64 `json:"confidence"`
	Words      []Word  `json:"words,omitempty"`
}

// Metadata summarizes a result.
type Metadata struct {
	Duration       float64 `json:"duration"`
	WordCount      int     `json:"word_count"`
	Accuracy       float64 `json:"accuracy"`
	Engine         string  `json:"engine"`
	EngineID       string  `json:"engine_id"`
	Language       string  `json:"language,omitempty"`
	ProcessingTime float64 `json:"processing_time"`
}

// Correction records one glossary substitution.
type Correction struct {
	Original   string  `json:"original"`
	Term       string  `json:"term"`
	Similarity float64 `json:"similarity"`
	Offset     int     `json:"offset"`
}

// Result is the normalized output of a transcription request.
type Result struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Segments    []Segment `json:"segments"`
	Summary     string    `json:"summary,omitempty"`
	Translation string    `json:"translation,omitempty"`
	Metadata    Metadata  `json:"metadata"`
	// Simulated is true when the provider failed and the fallback policy
	// produced a placeholder result.
	Simulated      bool         `json:"simulated"`
	FallbackReason string       `json:"fallback_reason,omitempty"`
	Corrections    []Correction `json:"corrections,omitempty"`
}
