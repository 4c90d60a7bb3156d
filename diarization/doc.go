// Package diarization holds speaker diarization backends. A backend
// implements transcription.Diarizer and is wired with
// transcription.WithDiarizer; the service uses it only when a request asks
// for diarization and the speech-to-text provider returned no speakers.
package diarization
