// Command traduckxion transcribes audio with the best engine for a language
// and sector, and serves the same pipeline over HTTP.
//
//	traduckxion serve
//	traduckxion engines [--json]
//	traduckxion select --language fr --sector medical
//	traduckxion transcribe interview.mp3 --language fr --sector legal --format srt
//	traduckxion correct --sector medical --language fr "le diagnostik est posé"
package main
