// Package analysis runs a full reference/evidence comparison.
//
// An Analyzer digests both files, fingerprints both inputs concurrently,
// aligns the two sequences, and scores each operation. The result is a
// Report carrying everything the CLI renders, tagged with a unique id that
// also appears as correlation_id on every log record of the run.
package analysis
