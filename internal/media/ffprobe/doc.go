// Package ffprobe runs ffprobe and reduces its JSON output to the few
// properties the analyzer reports: frame count, frame rate, duration,
// geometry, codec, and container size.
package ffprobe
