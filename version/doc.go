// Package version reports the build of the traduckxion binary.
//
// Release builds stamp the version at link time:
//
//	go build -ldflags "-X github.com/traduckxion/transcribe/version.Version=1.4.0" ./cmd/traduckxion
//
// Commit and build time fall back to the VCS settings the Go toolchain
// embeds.
package version
