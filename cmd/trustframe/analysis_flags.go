package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"trustframe/internal/config"
	"trustframe/internal/cryptohash"
	"trustframe/internal/deps"
	"trustframe/internal/media/frames"
	"trustframe/internal/perceptual"
	"trustframe/internal/source"
)

// analysisFlags are the per-run overrides shared by analyze, fingerprint,
// and align. Unset flags fall back to the loaded configuration.
type analysisFlags struct {
	cryptoAlgorithm     string
	perceptualAlgorithm string
	maxFrames           int
	detailRows          int
	format              string
	noProgress          bool
}

type analysisSettings struct {
	Crypto     cryptohash.Algorithm
	Perceptual perceptual.Algorithm
	MaxFrames  int
	DetailRows int
	Format     outputFormat
}

func (f *analysisFlags) registerCrypto(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.cryptoAlgorithm, "crypto-algorithm", "", "File digest algorithm ("+choices(cryptohash.Algorithms())+")")
}

func (f *analysisFlags) registerPerceptual(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.perceptualAlgorithm, "perceptual-algorithm", "", "Frame hash algorithm ("+choices(perceptual.Algorithms())+")")
	cmd.Flags().IntVar(&f.maxFrames, "max-frames", 0, "Frames to sample from each video (0 analyzes every frame)")
	cmd.Flags().BoolVar(&f.noProgress, "no-progress", false, "Disable progress bars")
}

func (f *analysisFlags) registerReport(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.detailRows, "detail-rows", 0, "Alignment operations listed in the text report")
	cmd.Flags().StringVar(&f.format, "format", "", "Output format (text, json, yaml)")
}

func (f *analysisFlags) resolve(cmd *cobra.Command, cfg *config.Config) (analysisSettings, error) {
	settings := analysisSettings{
		Crypto:     cfg.CryptoAlgorithm(),
		Perceptual: cfg.PerceptualAlgorithm(),
		MaxFrames:  cfg.Analysis.MaxFrames,
		DetailRows: cfg.Analysis.DetailRows,
	}
	if value := strings.TrimSpace(f.cryptoAlgorithm); value != "" {
		alg, err := cryptohash.ParseAlgorithm(value)
		if err != nil {
			return analysisSettings{}, fmt.Errorf("--crypto-algorithm: %w", err)
		}
		settings.Crypto = alg
	}
	if value := strings.TrimSpace(f.perceptualAlgorithm); value != "" {
		alg, err := perceptual.ParseAlgorithm(value)
		if err != nil {
			return analysisSettings{}, fmt.Errorf("--perceptual-algorithm: %w", err)
		}
		settings.Perceptual = alg
	}
	if flagChanged(cmd, "max-frames") {
		if f.maxFrames < 0 {
			return analysisSettings{}, errors.New("--max-frames must be 0 (all frames) or positive")
		}
		settings.MaxFrames = f.maxFrames
	}
	if flagChanged(cmd, "detail-rows") {
		if f.detailRows < 0 {
			return analysisSettings{}, errors.New("--detail-rows must be 0 or positive")
		}
		settings.DetailRows = f.detailRows
	}
	format, err := resolveFormat(f.format, cfg.Output.Format)
	if err != nil {
		return analysisSettings{}, fmt.Errorf("--format: %w", err)
	}
	settings.Format = format
	return settings, nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	flag := cmd.Flags().Lookup(name)
	return flag != nil && flag.Changed
}

// requireFile rejects missing paths and directories before any tool runs.
func requireFile(label, path string) (string, error) {
	expanded, err := config.ExpandPath(strings.TrimSpace(path))
	if err != nil {
		return "", fmt.Errorf("%s: %w", label, err)
	}
	info, err := os.Stat(expanded)
	if err != nil {
		return "", fmt.Errorf("%s: %w", label, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s: %s is a directory", label, expanded)
	}
	return expanded, nil
}

// mediaTools confirms ffmpeg and ffprobe are runnable and returns the
// commands to use.
func mediaTools(ctx context.Context, cfg *config.Config) (ffmpeg, ffprobe string, err error) {
	requirements := deps.MediaRequirements(cfg.FFmpegBinary(), cfg.FFprobeBinary())
	for i := range requirements {
		requirements[i].VersionArgs = nil
	}
	statuses := deps.CheckBinaries(ctx, requirements)
	if err := deps.Missing(statuses); err != nil {
		return "", "", fmt.Errorf("%w (run `trustframe doctor` for details)", err)
	}
	return requirements[0].Command, requirements[1].Command, nil
}

func newVideoSource(path string, settings analysisSettings, cfg *config.Config, ffmpeg, ffprobe string) *source.Video {
	return &source.Video{
		Path:      path,
		Algorithm: settings.Perceptual,
		MaxFrames: settings.MaxFrames,
		FFprobe:   ffprobe,
		Extractor: frames.Extractor{
			Binary: ffmpeg,
			Width:  cfg.Analysis.FrameWidth,
			Height: cfg.Analysis.FrameHeight,
		},
	}
}

func choices[T ~string](values []T) string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}
