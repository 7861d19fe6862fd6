// Package similarity turns an alignment into per-frame similarity scores and
// aggregate statistics.
//
// Matches score 100, insertions and deletions score 0, and substitutions
// take the Hamming similarity of the two hashes. A substitution whose hashes
// cannot be compared is marked unavailable and excluded from the averages
// rather than failing the analysis.
package similarity
