package distance

import (
	"errors"
	"fmt"

	"trustframe/internal/token"
)

// ErrIncompatibleTokens reports tokens that cannot be compared bit for bit.
var ErrIncompatibleTokens = errors.New("incompatible tokens")

// Result captures the graded dissimilarity between two tokens.
type Result struct {
	BitDistance          int     `json:"bit_distance" yaml:"bit_distance"`
	BitWidth             int     `json:"bit_width" yaml:"bit_width"`
	SimilarityPercentage float64 `json:"similarity_percentage" yaml:"similarity_percentage"`
}

// Compute returns popcount(a XOR b) and the matching similarity percentage.
func Compute(a, b token.Token) (Result, error) {
	if a.IsZero() || b.IsZero() {
		return Result{}, fmt.Errorf("%w: empty token", ErrIncompatibleTokens)
	}
	if a.Width() != b.Width() {
		return Result{}, fmt.Errorf("%w: width %d vs %d", ErrIncompatibleTokens, a.Width(), b.Width())
	}
	width := a.Width()
	diff := a.DifferingBits(b)
	return Result{
		BitDistance:          diff,
		BitWidth:             width,
		SimilarityPercentage: 100 * float64(width-diff) / float64(width),
	}, nil
}

// ComputeHex parses both hashes and compares them. Parse failures wrap
// token.ErrInvalidToken; differing lengths wrap ErrIncompatibleTokens.
func ComputeHex(a, b string) (Result, error) {
	ta, err := token.ParseHex(a)
	if err != nil {
		return Result{}, fmt.Errorf("first hash: %w", err)
	}
	tb, err := token.ParseHex(b)
	if err != nil {
		return Result{}, fmt.Errorf("second hash: %w", err)
	}
	return Compute(ta, tb)
}
