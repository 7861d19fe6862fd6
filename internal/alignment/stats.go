package alignment

// Statistics tallies an alignment by operation kind.
type Statistics struct {
	Matches         int `json:"matches" yaml:"matches"`
	Substitutions   int `json:"substitutions" yaml:"substitutions"`
	Insertions      int `json:"insertions" yaml:"insertions"`
	Deletions       int `json:"deletions" yaml:"deletions"`
	TotalOperations int `json:"total_operations" yaml:"total_operations"`
}

// Summarize counts each operation kind in ops.
func Summarize(ops []Operation) Statistics {
	stats := Statistics{TotalOperations: len(ops)}
	for _, op := range ops {
		switch op.Kind {
		case Match:
			stats.Matches++
		case Substitution:
			stats.Substitutions++
		case Insertion:
			stats.Insertions++
		case Deletion:
			stats.Deletions++
		}
	}
	return stats
}

// Modifications returns the number of non-match operations, which equals the
// edit distance of the alignment that produced the statistics.
func (s Statistics) Modifications() int {
	return s.Substitutions + s.Insertions + s.Deletions
}
