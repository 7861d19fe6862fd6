package analysis

import (
	"time"

	"trustframe/internal/alignment"
	"trustframe/internal/cryptohash"
	"trustframe/internal/media/ffprobe"
	"trustframe/internal/similarity"
)

// Report is the complete outcome of one comparison.
type Report struct {
	ID             string            `json:"id" yaml:"id"`
	CreatedAt      time.Time         `json:"created_at" yaml:"created_at"`
	ElapsedSeconds float64           `json:"elapsed_seconds" yaml:"elapsed_seconds"`
	Reference      InputReport       `json:"reference" yaml:"reference"`
	Evidence       InputReport       `json:"evidence" yaml:"evidence"`
	Crypto         *CryptoComparison `json:"crypto,omitempty" yaml:"crypto,omitempty"`
	Comparison     `yaml:",inline"`
}

// InputReport describes one side of the comparison.
type InputReport struct {
	Path      string             `json:"path" yaml:"path"`
	Algorithm string             `json:"perceptual_algorithm,omitempty" yaml:"perceptual_algorithm,omitempty"`
	Digest    *cryptohash.Digest `json:"digest,omitempty" yaml:"digest,omitempty"`
	Info      *ffprobe.Info      `json:"video,omitempty" yaml:"video,omitempty"`
	Sampled   bool               `json:"sampled" yaml:"sampled"`
	Frames    int                `json:"frames" yaml:"frames"`
}

// CryptoComparison reports whether the two files are byte-identical.
type CryptoComparison struct {
	Algorithm cryptohash.Algorithm `json:"algorithm" yaml:"algorithm"`
	Match     bool                 `json:"match" yaml:"match"`
}

// Comparison is the sequence portion of a report.
type Comparison struct {
	FramesAnalyzed  int                  `json:"frames_analyzed" yaml:"frames_analyzed"`
	IdenticalFrames int                  `json:"identical_frames" yaml:"identical_frames"`
	EditDistance    int                  `json:"edit_distance" yaml:"edit_distance"`
	Statistics      alignment.Statistics `json:"statistics" yaml:"statistics"`
	Similarity      similarity.Summary   `json:"similarity" yaml:"similarity"`
	Operations      []ScoredOperation    `json:"operations" yaml:"operations"`
}

// ScoredOperation pairs an alignment step with its similarity.
type ScoredOperation struct {
	alignment.Operation `yaml:",inline"`
	Score               similarity.Score `json:"score" yaml:"score"`
}
