package config

import (
	"errors"
	"fmt"

	"trustframe/internal/cryptohash"
	"trustframe/internal/perceptual"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateThresholds(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateAnalysis() error {
	if _, err := cryptohash.ParseAlgorithm(c.Analysis.CryptoAlgorithm); err != nil {
		return fmt.Errorf("analysis.crypto_algorithm: %w", err)
	}
	if _, err := perceptual.ParseAlgorithm(c.Analysis.PerceptualAlgorithm); err != nil {
		return fmt.Errorf("analysis.perceptual_algorithm: %w", err)
	}
	if c.Analysis.MaxFrames < 0 {
		return errors.New("analysis.max_frames must be 0 (all frames) or positive")
	}
	if c.Analysis.FrameWidth < minFrameSize || c.Analysis.FrameWidth > maxFrameSize {
		return fmt.Errorf("analysis.frame_width must be between %d and %d", minFrameSize, maxFrameSize)
	}
	if c.Analysis.FrameHeight < minFrameSize || c.Analysis.FrameHeight > maxFrameSize {
		return fmt.Errorf("analysis.frame_height must be between %d and %d", minFrameSize, maxFrameSize)
	}
	if c.Analysis.DetailRows < 0 {
		return errors.New("analysis.detail_rows must be 0 or positive")
	}
	return nil
}

func (c *Config) validateThresholds() error {
	if err := c.SimilarityThresholds().Validate(); err != nil {
		return fmt.Errorf("thresholds: %w", err)
	}
	return nil
}

func (c *Config) validateOutput() error {
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("output.format: unsupported value %q (want text, json, or yaml)", c.Output.Format)
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("output.color: unsupported value %q (want auto, always, or never)", c.Output.Color)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
