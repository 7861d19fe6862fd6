package source

import (
	"context"

	"trustframe/internal/media/ffprobe"
	"trustframe/internal/token"
)

// Plan describes the frames a Source will fingerprint.
type Plan struct {
	Info    *ffprobe.Info
	Indices []int // 0-based stream positions; nil means every frame
	Total   int   // frames available in the source, 0 when unknown
	Sampled bool
}

// Count returns the number of frames the plan will produce, or -1 when that
// is not known up front.
func (p Plan) Count() int {
	if p.Indices != nil {
		return len(p.Indices)
	}
	if p.Total > 0 {
		return p.Total
	}
	return -1
}

// Fingerprints is a fingerprinted input.
type Fingerprints struct {
	Path      string         `json:"path" yaml:"path"`
	Algorithm string         `json:"algorithm,omitempty" yaml:"algorithm,omitempty"`
	Info      *ffprobe.Info  `json:"info,omitempty" yaml:"info,omitempty"`
	Sampled   bool           `json:"sampled" yaml:"sampled"`
	Sequence  token.Sequence `json:"-" yaml:"-"`
}

// Source yields a fingerprint sequence. onFrame, when non-nil, is called
// once per fingerprinted frame and must be safe for concurrent use.
type Source interface {
	Name() string
	Probe(ctx context.Context) (Plan, error)
	Fingerprint(ctx context.Context, plan Plan, onFrame func()) (Fingerprints, error)
}
