package source

import (
	"context"
	"fmt"

	"trustframe/internal/media/ffprobe"
	"trustframe/internal/media/frames"
	"trustframe/internal/perceptual"
	"trustframe/internal/token"
)

// Video fingerprints a media file frame by frame.
type Video struct {
	Path      string
	Algorithm perceptual.Algorithm
	MaxFrames int // 0 analyzes every frame
	FFprobe   string
	Extractor frames.Extractor
}

// Name returns the file path.
func (v *Video) Name() string {
	return v.Path
}

// Probe reads stream metadata and selects the frames to fingerprint. When
// the container does not report a frame count and MaxFrames is set, the
// first MaxFrames frames are used.
func (v *Video) Probe(ctx context.Context) (Plan, error) {
	probe, err := ffprobe.Inspect(ctx, v.FFprobe, v.Path)
	if err != nil {
		return Plan{}, err
	}
	info, err := ffprobe.VideoInfo(probe)
	if err != nil {
		return Plan{}, fmt.Errorf("%s: %w", v.Path, err)
	}

	plan := Plan{Info: &info, Total: info.TotalFrames}
	switch {
	case info.TotalFrames > 0:
		plan.Indices = frames.SampleIndices(info.TotalFrames, v.MaxFrames)
		plan.Sampled = v.MaxFrames > 0 && v.MaxFrames < info.TotalFrames
	case v.MaxFrames > 0:
		plan.Indices = frames.SampleIndices(v.MaxFrames, 0)
		plan.Sampled = true
	}
	return plan, nil
}

// Fingerprint decodes the planned frames and hashes each one.
func (v *Video) Fingerprint(ctx context.Context, plan Plan, onFrame func()) (Fingerprints, error) {
	capacity := max(plan.Count(), 0)
	seq := make(token.Sequence, 0, capacity)
	_, err := v.Extractor.Extract(ctx, v.Path, plan.Indices, func(f frames.Frame) error {
		hash, err := perceptual.Hash(v.Algorithm, f.Image)
		if err != nil {
			return fmt.Errorf("frame %d: %w", f.Number, err)
		}
		seq = append(seq, token.Element{Frame: f.Number, Token: hash})
		if onFrame != nil {
			onFrame()
		}
		return nil
	})
	if err != nil {
		return Fingerprints{}, fmt.Errorf("fingerprint %s: %w", v.Path, err)
	}
	return Fingerprints{
		Path:      v.Path,
		Algorithm: string(v.Algorithm),
		Info:      plan.Info,
		Sampled:   plan.Sampled,
		Sequence:  seq,
	}, nil
}
