package transcription

import (
	"fmt"
	"slices"
	"sort"

	"github.com/traduckxion/transcribe/errors"
)

// Catalog is the read-only set of registered engines and sector glossaries.
type Catalog struct {
	engines      []Engine
	byID         map[string]int
	dictionaries SectorDictionary
}

// NewCatalog validates engines and builds a Catalog. Registration order is
// kept and breaks ranking ties.
func NewCatalog(engines []Engine, dictionaries SectorDictionary) (*Catalog, error) {
	c := &Catalog{
		engines:      make([]Engine, 0, len(engines)),
		byID:         make(map[string]int, len(engines)),
		dictionaries: dictionaries.Clone(),
	}
	for _, e := range engines {
		if err := validateEngine(e); err != nil {
			return nil, err
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, errors.InvalidInput("engines", fmt.Sprintf("duplicate engine id %q", e.ID))
		}
		c.byID[e.ID] = len(c.engines)
		c.engines = append(c.engines, cloneEngine(e))
	}
	return c, nil
}

func validateEngine(e Engine) error {
	switch {
	case e.ID == "":
		return errors.MissingField("engine.id")
	case len(e.Languages) == 0:
		return errors.InvalidInput("engine.languages", fmt.Sprintf("engine %q supports no language", e.ID))
	case e.Speed <= 0:
		return errors.InvalidInput("engine.speed", fmt.Sprintf("engine %q speed must be positive", e.ID))
	case e.Accuracy < 0 || e.Accuracy > 100:
		return errors.InvalidInput("engine.accuracy", fmt.Sprintf("engine %q accuracy must be within 0..100", e.ID))
	case e.Provider == "":
		return errors.MissingField("engine.provider")
	}
	return nil
}

func cloneEngine(e Engine) Engine {
	e.Languages = slices.Clone(e.Languages)
	e.Specialization = slices.Clone(e.Specialization)
	return e
}

// DefaultEngines returns the built-in engine table.
func DefaultEngines() []Engine {
	return []Engine{
		{
			ID:             "whisper-v3",
			Name:           "Whisper V3",
			Description:    "OpenAI Whisper - Excellent pour multi-langues",
			Languages:      []string{"fr", "en", "es", "it", "de", "pt", "ru", "ja", "zh"},
			Accuracy:       95,
			Speed:          0.5,
			CostPerMinute:  0.006,
			Specialization: []Sector{SectorGeneral, SectorEducation},
			Provider:       ProviderOpenAI,
			Model:          "whisper-1",
		},
		{
			ID:             "deepgram",
			Name:           "Deepgram Nova",
			Description:    "Ultra-rapide, excellent pour l'anglais",
			Languages:      []string{"en", "es", "fr", "de"},
			Accuracy:       97,
			Speed:          0.1,
			CostPerMinute:  0.0125,
			Specialization: []Sector{SectorBusiness, SectorGeneral},
			Provider:       ProviderDeepgram,
			Model:          "nova-2",
		},
		{
			ID:             "medical-ai",
			Name:           "MedicalAI Pro",
			Description:    "Spécialisé médical avec terminologie",
			Languages:      []string{"en", "fr"},
			Accuracy:       99,
			Speed:          0.8,
			CostPerMinute:  0.05,
			Specialization: []Sector{SectorMedical},
			Provider:       ProviderAssemblyAI,
		},
		{
			ID:             "legal-ai",
			Name:           "LegalTranscribe",
			Description:    "Optimisé pour le juridique",
			Languages:      []string{"en", "fr"},
			Accuracy:       98,
			Speed:          0.7,
			CostPerMinute:  0.04,
			Specialization: []Sector{SectorLegal},
			Provider:       ProviderAssemblyAI,
		},
	}
}

// DefaultCatalog returns the built-in engines and dictionaries.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultEngines(), DefaultDictionaries())
	if err != nil {
		panic(fmt.Sprintf("transcription: invalid built-in catalog: %v", err))
	}
	return c
}

// Engines returns a copy of the engines in registration order.
func (c *Catalog) Engines() []Engine {
	out := make([]Engine, len(c.engines))
	for i, e := range c.engines {
		out[i] = cloneEngine(e)
	}
	return out
}

// Engine looks up an engine by id.
func (c *Catalog) Engine(id string) (Engine, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Engine{}, false
	}
	return cloneEngine(c.engines[i]), true
}

// SectorDictionaries returns a deep copy of the glossaries.
func (c *Catalog) SectorDictionaries() SectorDictionary {
	return c.dictionaries.Clone()
}

// Terms returns the glossary for a sector and language, or nil.
func (c *Catalog) Terms(sector Sector, language string) []string {
	return slices.Clone(c.dictionaries.Terms(sector, language))
}

// Languages returns the sorted union of supported language codes.
func (c *Catalog) Languages() []string {
	seen := map[string]struct{}{}
	for _, e := range c.engines {
		for _, l := range e.Languages {
			seen[l] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Sectors returns every known sector, sorted, including those with only
// engine specializations or only glossaries.
func (c *Catalog) Sectors() []Sector {
	seen := map[Sector]struct{}{SectorGeneral: {}}
	for _, e := range c.engines {
		for _, s := range e.Specialization {
			seen[s] = struct{}{}
		}
	}
	for s := range c.dictionaries {
		seen[s] = struct{}{}
	}
	out := make([]Sector, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}
