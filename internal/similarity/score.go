package similarity

import (
	"trustframe/internal/alignment"
	"trustframe/internal/distance"
)

// Score is the similarity assigned to one alignment operation.
type Score struct {
	Value     float64          `json:"value" yaml:"value"`
	Available bool             `json:"available" yaml:"available"`
	Distance  *distance.Result `json:"distance,omitempty" yaml:"distance,omitempty"`
	Err       string           `json:"error,omitempty" yaml:"error,omitempty"`
}

// ScoreOperation grades a single operation.
func ScoreOperation(op alignment.Operation) Score {
	switch op.Kind {
	case alignment.Match:
		return Score{Value: 100, Available: true}
	case alignment.Substitution:
		res, err := distance.Compute(op.RefToken, op.EvToken)
		if err != nil {
			return Score{Err: err.Error()}
		}
		return Score{Value: res.SimilarityPercentage, Available: true, Distance: &res}
	default:
		return Score{Value: 0, Available: true}
	}
}
