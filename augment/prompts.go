package augment

import "github.com/traduckxion/transcribe/transcription"

const (
	defaultTranslatorPrompt = "Vous êtes un traducteur professionnel expert."
	summarizerPrompt        = "Vous êtes un assistant qui résume fidèlement des transcriptions audio. Répondez uniquement par le résumé, sans introduction."
)

var sectorPrompts = map[transcription.Sector]string{
	transcription.SectorMedical:   "Vous êtes un traducteur médical expert. Traduisez en conservant la terminologie médicale précise.",
	transcription.SectorLegal:     "Vous êtes un traducteur juridique expert. Traduisez en conservant la précision juridique.",
	transcription.SectorBusiness:  "Vous êtes un traducteur business expert. Adaptez le ton professionnel.",
	transcription.SectorEducation: "Vous êtes un traducteur pédagogique. Traduisez de manière claire et accessible.",
	transcription.SectorMedia:     "Vous êtes un traducteur média. Conservez le style et le ton appropriés.",
}

var languageNames = map[string]string{
	"fr": "français",
	"en": "anglais",
	"es": "espagnol",
	"de": "allemand",
	"it": "italien",
	"pt": "portugais",
	"nl": "néerlandais",
}

// SystemPrompt returns the translator system prompt for a sector.
func SystemPrompt(sector transcription.Sector) string {
	if p, ok := sectorPrompts[sector]; ok {
		return p
	}
	return defaultTranslatorPrompt
}

func languageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}
