// Package util holds the small helpers shared by configuration and
// logging code: byte-size parsing, secret masking and zero-value
// coalescing.
package util
