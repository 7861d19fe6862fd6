package token

import "fmt"

// Element is one fingerprinted frame. Frame is the 1-based position in the
// original frame stream, not the extraction index.
type Element struct {
	Frame int   `json:"frame" yaml:"frame"`
	Token Token `json:"hash" yaml:"hash"`
}

// Sequence is an ordered list of elements in temporal order.
type Sequence []Element

// Validate checks that frame numbers are positive and strictly increasing and
// that every element carries a token.
func (s Sequence) Validate() error {
	prev := 0
	for i, el := range s {
		if el.Frame <= 0 {
			return fmt.Errorf("element %d: frame number %d must be positive", i, el.Frame)
		}
		if el.Frame <= prev {
			return fmt.Errorf("element %d: frame number %d not after %d", i, el.Frame, prev)
		}
		if el.Token.IsZero() {
			return fmt.Errorf("element %d (frame %d): %w: missing hash", i, el.Frame, ErrInvalidToken)
		}
		prev = el.Frame
	}
	return nil
}

// Tokens returns the tokens of s in order.
func (s Sequence) Tokens() []Token {
	out := make([]Token, len(s))
	for i, el := range s {
		out[i] = el.Token
	}
	return out
}

// FromTokens numbers tokens 1..n. Handy for tests and for plain hash lists.
func FromTokens(tokens ...Token) Sequence {
	seq := make(Sequence, len(tokens))
	for i, t := range tokens {
		seq[i] = Element{Frame: i + 1, Token: t}
	}
	return seq
}
