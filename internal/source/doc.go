// Package source turns inputs into fingerprint sequences.
//
// A Source is probed first, which reports how many frames will be
// fingerprinted, and then fingerprinted against that plan. Splitting the two
// steps lets callers size a shared progress bar before any decoding starts.
// Video decodes a media file through ffprobe and ffmpeg; SequenceFile reads a
// previously written fingerprint file.
package source
