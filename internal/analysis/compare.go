package analysis

import (
	"trustframe/internal/alignment"
	"trustframe/internal/similarity"
	"trustframe/internal/token"
)

// CompareSequences aligns ref against ev and scores the result.
func CompareSequences(ref, ev token.Sequence, thresholds similarity.Thresholds) Comparison {
	result := alignment.Align(ref, ev)
	stats := alignment.Summarize(result.Operations)
	summary := similarity.Aggregate(result.Operations, thresholds)

	ops := make([]ScoredOperation, len(result.Operations))
	for i, op := range result.Operations {
		ops[i] = ScoredOperation{Operation: op, Score: summary.Scores[i]}
	}
	return Comparison{
		FramesAnalyzed:  max(len(ref), len(ev)),
		IdenticalFrames: stats.Matches,
		EditDistance:    result.EditDistance,
		Statistics:      stats,
		Similarity:      summary,
		Operations:      ops,
	}
}
