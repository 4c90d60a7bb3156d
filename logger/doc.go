// Package logger wraps zerolog with a small map-based field API, a global
// logger and per-component levels.
//
//	log := logger.Get("transcription")
//	log.Info("transcription complete", logger.Fields("engine", "deepgram", "words", 412))
package logger
