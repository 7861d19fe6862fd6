// Package logging assembles the structured slog loggers used by TrustFrame.
//
// It owns the console and JSON handlers, maps level names, tees records to an
// optional JSON log file, and exposes context helpers so analysis code tags
// every record with its report id and stage. Console output goes to stderr so
// reports on stdout stay machine readable. NewNop serves tests and wiring code
// that cannot fail.
package logging
