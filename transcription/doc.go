// Package transcription selects a speech-to-text engine for a request,
// dispatches audio to the provider that serves it and standardizes the
// response.
//
// A Catalog holds the registered engines and sector glossaries. Provider
// clients live in a provider.Registry keyed by provider kind; the
// subpackages openai, deepgram, assemblyai and whisper implement Client.
//
// # Pipeline
//
//	catalog := transcription.DefaultCatalog()
//	clients := transcription.NewClientRegistry()
//	clients.Set(transcription.ProviderOpenAI, openaiClient)
//
//	svc := transcription.NewService(catalog, clients,
//		transcription.WithFallback(transcription.FallbackNone),
//	)
//	result, err := svc.Transcribe(ctx, audio, transcription.Options{
//		Language: "fr",
//		Sector:   transcription.SectorMedical,
//	})
//
// Results are standardized into timed segments, corrected against the
// sector glossary and optionally summarized and translated. Provider
// failures are returned as typed errors unless the request opts into
// FallbackSimulate, in which case a placeholder result flagged Simulated
// is returned.
package transcription
