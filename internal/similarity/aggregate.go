package similarity

import (
	"errors"
	"fmt"

	"trustframe/internal/alignment"
)

// Bucket groups scores by threshold.
type Bucket int

const (
	Low Bucket = iota
	Medium
	High
)

func (b Bucket) String() string {
	switch b {
	case High:
		return "high"
	case Medium:
		return "medium"
	default:
		return "low"
	}
}

// Thresholds are the lower bounds of the high and medium buckets, in percent.
type Thresholds struct {
	High   float64 `json:"high" yaml:"high"`
	Medium float64 `json:"medium" yaml:"medium"`
}

// DefaultThresholds returns the 80/50 split used by the report.
func DefaultThresholds() Thresholds {
	return Thresholds{High: 80, Medium: 50}
}

// Validate checks 0 <= medium <= high <= 100.
func (t Thresholds) Validate() error {
	if t.Medium < 0 || t.High > 100 {
		return errors.New("similarity thresholds must be within 0..100")
	}
	if t.Medium > t.High {
		return fmt.Errorf("medium threshold %.2f exceeds high threshold %.2f", t.Medium, t.High)
	}
	return nil
}

// Bucket classifies a score.
func (t Thresholds) Bucket(value float64) Bucket {
	switch {
	case value >= t.High:
		return High
	case value >= t.Medium:
		return Medium
	default:
		return Low
	}
}

// Summary aggregates the defined scores of an alignment.
type Summary struct {
	Scores            []Score    `json:"-" yaml:"-"`
	Scored            int        `json:"scored" yaml:"scored"`
	Unavailable       int        `json:"unavailable" yaml:"unavailable"`
	Mean              float64    `json:"mean" yaml:"mean"`
	Min               float64    `json:"min" yaml:"min"`
	Max               float64    `json:"max" yaml:"max"`
	SubstitutionCount int        `json:"substitution_count" yaml:"substitution_count"`
	SubstitutionMean  float64    `json:"substitution_mean" yaml:"substitution_mean"`
	HighCount         int        `json:"high" yaml:"high"`
	MediumCount       int        `json:"medium" yaml:"medium"`
	LowCount          int        `json:"low" yaml:"low"`
	Thresholds        Thresholds `json:"thresholds" yaml:"thresholds"`
}

// HasSubstitutionScores reports whether any substitution produced a score.
func (s Summary) HasSubstitutionScores() bool {
	return s.SubstitutionCount > 0
}

// Aggregate scores every operation and summarizes the available scores.
// Scores[i] corresponds to ops[i].
func Aggregate(ops []alignment.Operation, thresholds Thresholds) Summary {
	summary := Summary{
		Scores:     make([]Score, len(ops)),
		Thresholds: thresholds,
	}
	var total, subTotal float64
	for i, op := range ops {
		score := ScoreOperation(op)
		summary.Scores[i] = score
		if !score.Available {
			summary.Unavailable++
			continue
		}
		if summary.Scored == 0 || score.Value < summary.Min {
			summary.Min = score.Value
		}
		if summary.Scored == 0 || score.Value > summary.Max {
			summary.Max = score.Value
		}
		summary.Scored++
		total += score.Value
		if op.Kind == alignment.Substitution {
			summary.SubstitutionCount++
			subTotal += score.Value
		}
		switch thresholds.Bucket(score.Value) {
		case High:
			summary.HighCount++
		case Medium:
			summary.MediumCount++
		default:
			summary.LowCount++
		}
	}
	if summary.Scored > 0 {
		summary.Mean = total / float64(summary.Scored)
	}
	if summary.SubstitutionCount > 0 {
		summary.SubstitutionMean = subTotal / float64(summary.SubstitutionCount)
	}
	return summary
}
