// Package token models the fixed-width fingerprints compared by TrustFrame.
//
// A Token wraps the big-endian bytes of a hash together with its declared bit
// width. Tokens are parsed from hexadecimal once at ingestion and are
// comparable with ==, which lets the alignment engine use them as map keys
// without resurrecting string comparisons.
//
// Sequence and Element describe the ordered (frame number, token) pairs a
// fingerprint source produces for one media file.
package token
