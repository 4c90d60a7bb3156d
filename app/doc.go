// Package app wires the transcription service from configuration: provider
// clients, the engine catalog, LLM post-steps with their translation cache,
// media storage, observability and the HTTP server. It also owns the
// process lifecycle for the CLI commands.
package app
