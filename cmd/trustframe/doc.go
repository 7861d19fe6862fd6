// Package main hosts the TrustFrame CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once per invocation, builds
// the stderr logger, and hands work to the internal packages: analysis for
// full comparisons, source for fingerprint files, cryptohash for digests, and
// deps for tool discovery. Reports are rendered here as go-pretty tables or
// encoded as JSON or YAML, so stdout only ever carries the requested output.
package main
