// Package config loads, normalizes, and validates TrustFrame configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the TRUSTFRAME_FFMPEG and TRUSTFRAME_FFPROBE
// environment fallbacks. Command-line flags are applied on top of a loaded
// Config by the CLI, which then calls Validate again.
package config
