// Package api exposes the transcription service over HTTP.
//
// Routes are mounted on a gin router group (normally /api/v1):
//
//	GET  /engines             list engines
//	GET  /engines/:id         one engine
//	POST /engines/select      best engine for a language and sector
//	GET  /sectors             sectors, languages and glossaries
//	POST /transcriptions      transcribe an upload or a stored object
//	POST /corrections         apply sector glossary corrections to text
//	POST /quality             quality report for text
//
// Errors use the errors.ErrorResponse envelope with the AppError status.
package api
