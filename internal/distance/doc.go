// Package distance grades how far apart two fingerprints are.
//
// Compute counts the differing bits between two equal-width tokens (the
// Hamming distance) and turns it into a similarity percentage. The function
// is pure and symmetric; width mismatches are reported as
// ErrIncompatibleTokens so callers can degrade a single comparison instead of
// aborting a whole analysis.
package distance
