// Package storage provides the object storage that media files are read
// from when a transcription names a storage key instead of an upload.
//
// # Backends
//
//   - storage/local: local filesystem, for development and tests
//   - storage/s3: Amazon S3 and S3-compatible services (MinIO)
//
// Backends register a factory from init; import the ones you need:
//
//	import _ "github.com/traduckxion/transcribe/storage/s3"
//
//	store, err := storage.New(storage.Config{Provider: "s3", Bucket: "audio"}, log)
//	audio, err := storage.LoadAudio(ctx, store, "calls/2024-01-03.mp3", cfg.MaxBytes())
package storage
