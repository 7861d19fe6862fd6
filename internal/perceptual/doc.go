// Package perceptual maps a decoded frame to a 64-bit perceptual hash.
//
// Four algorithms are supported: phash (DCT), ahash (mean), dhash
// (gradient), and whash (Haar wavelet). The first three come from
// goimagehash; the wavelet hash is computed here. Visually similar frames
// produce hashes with a small Hamming distance, which is what the alignment
// and similarity stages rely on.
package perceptual
