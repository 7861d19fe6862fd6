package alignment

import (
	"fmt"
	"strings"

	"trustframe/internal/token"
)

// Kind identifies one alignment operation.
type Kind int

const (
	Match Kind = iota
	Substitution
	Deletion
	Insertion
)

var kindNames = [...]string{
	Match:        "match",
	Substitution: "substitution",
	Deletion:     "deletion",
	Insertion:    "insertion",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps a lowercase operation name back to its Kind.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown operation %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Operation is one step of an alignment. Deletions carry only the reference
// side and insertions only the evidence side; the absent side has frame 0 and
// a zero token.
type Operation struct {
	Kind     Kind        `json:"type" yaml:"type"`
	RefFrame int         `json:"ref_frame,omitempty" yaml:"ref_frame,omitempty"`
	EvFrame  int         `json:"ev_frame,omitempty" yaml:"ev_frame,omitempty"`
	RefToken token.Token `json:"ref_hash,omitzero" yaml:"ref_hash,omitempty"`
	EvToken  token.Token `json:"ev_hash,omitzero" yaml:"ev_hash,omitempty"`
}

// HasRef reports whether the operation consumes a reference element.
func (o Operation) HasRef() bool {
	return o.Kind != Insertion
}

// HasEv reports whether the operation consumes an evidence element.
func (o Operation) HasEv() bool {
	return o.Kind != Deletion
}

// Result is the outcome of Align.
type Result struct {
	Operations   []Operation `json:"operations" yaml:"operations"`
	EditDistance int         `json:"edit_distance" yaml:"edit_distance"`
}
