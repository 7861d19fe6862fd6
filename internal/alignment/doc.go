// Package alignment reconstructs how one fingerprint sequence was derived
// from another.
//
// Align computes a minimum-cost edit script (Levenshtein distance with unit
// costs) between a reference and an evidence sequence and replays the cost
// table to produce one Operation per aligned position: Match, Substitution,
// Deletion, or Insertion, in chronological order.
//
// Algorithm outline:
//  1. Allocate an (n+1)x(m+1) table. Column 0 holds i deletions, row 0
//     holds j insertions.
//  2. For each cell, equal tokens copy the diagonal (free match); otherwise
//     the cell is 1 + min(up, left, diagonal).
//  3. Backtrack from (n,m). Ties resolve in a fixed order: match, then
//     substitution, then deletion, then insertion. Several alignments can
//     share the optimal cost, so this order is part of the output contract.
//  4. Reverse the collected operations.
//
// Complexity: O(n·m) time and memory for Align. EditDistance keeps two rows
// only and is O(min(n,m)) memory, but cannot reconstruct the alignment.
//
// Summarize tallies an alignment into Statistics.
package alignment
