package transcription

import "maps"

// SectorDictionary maps sector -> language -> canonical terms.
type SectorDictionary map[Sector]map[string][]string

// Terms returns the canonical terms for a sector and language.
func (d SectorDictionary) Terms(sector Sector, language string) []string {
	return d[sector][language]
}

// Clone returns a deep copy.
func (d SectorDictionary) Clone() SectorDictionary {
	out := make(SectorDictionary, len(d))
	for sector, byLang := range d {
		inner := make(map[string][]string, len(byLang))
		for lang, terms := range byLang {
			inner[lang] = append([]string(nil), terms...)
		}
		out[sector] = inner
	}
	return out
}

// Merge returns a copy of d with the sectors and languages of other replacing its own.
func (d SectorDictionary) Merge(other SectorDictionary) SectorDictionary {
	out := d.Clone()
	for sector, byLang := range other.Clone() {
		if out[sector] == nil {
			out[sector] = map[string][]string{}
		}
		maps.Copy(out[sector], byLang)
	}
	return out
}

// DefaultDictionaries returns the built-in glossaries.
func DefaultDictionaries() SectorDictionary {
	return SectorDictionary{
		SectorMedical: {
			"fr": {"diagnostic", "symptôme", "pathologie", "traitement", "posologie", "anamnèse", "pronostic"},
			"en": {"diagnosis", "symptom", "pathology", "treatment", "dosage", "anamnesis", "prognosis"},
		},
		SectorLegal: {
			"fr": {"juridiction", "procédure", "plaidoirie", "jurisprudence", "contentieux", "requête", "arrêt"},
			"en": {"jurisdiction", "procedure", "pleading", "jurisprudence", "litigation", "motion", "judgment"},
		},
		SectorBusiness: {
			"fr": {"ROI", "KPI", "benchmark", "stakeholder", "roadmap", "revenue", "EBITDA"},
			"en": {"ROI", "KPI", "benchmark", "stakeholder", "roadmap", "revenue", "EBITDA"},
		},
		SectorEducation: {
			"fr": {"pédagogie", "curriculum", "évaluation", "compétence", "didactique", "syllabus"},
			"en": {"pedagogy", "curriculum", "assessment", "competency", "didactics", "syllabus"},
		},
	}
}
