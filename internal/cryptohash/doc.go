// Package cryptohash computes whole-file digests used for the binary
// integrity check that precedes perceptual analysis.
//
// Files are streamed in fixed 4 KiB blocks so arbitrarily large media can be
// hashed with constant memory, and cancellation is honoured between blocks.
package cryptohash
