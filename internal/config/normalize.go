package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeAnalysis()
	c.normalizeTools()
	c.normalizeOutput()
	return c.normalizeLogging()
}

func (c *Config) normalizeAnalysis() {
	c.Analysis.CryptoAlgorithm = strings.ToLower(strings.TrimSpace(c.Analysis.CryptoAlgorithm))
	if c.Analysis.CryptoAlgorithm == "" {
		c.Analysis.CryptoAlgorithm = defaultCryptoAlgorithm
	}
	c.Analysis.PerceptualAlgorithm = strings.ToLower(strings.TrimSpace(c.Analysis.PerceptualAlgorithm))
	if c.Analysis.PerceptualAlgorithm == "" {
		c.Analysis.PerceptualAlgorithm = defaultPerceptualAlgorithm
	}
	if c.Analysis.FrameWidth == 0 {
		c.Analysis.FrameWidth = defaultFrameSize
	}
	if c.Analysis.FrameHeight == 0 {
		c.Analysis.FrameHeight = defaultFrameSize
	}
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = toolValue(c.Tools.FFmpeg, "TRUSTFRAME_FFMPEG", defaultFFmpeg)
	c.Tools.FFprobe = toolValue(c.Tools.FFprobe, "TRUSTFRAME_FFPROBE", defaultFFprobe)
}

// toolValue prefers the configured value, then the environment, then the
// bare executable name resolved through PATH.
func toolValue(configured, envKey, fallback string) string {
	if value := strings.TrimSpace(configured); value != "" {
		return value
	}
	if value, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func (c *Config) normalizeOutput() {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = defaultOutputFormat
	}
	c.Output.Color = strings.ToLower(strings.TrimSpace(c.Output.Color))
	if c.Output.Color == "" {
		c.Output.Color = defaultOutputColor
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Level == "warning" {
		c.Logging.Level = "warn"
	}
	if strings.TrimSpace(c.Logging.File) != "" {
		expanded, err := ExpandPath(strings.TrimSpace(c.Logging.File))
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	return nil
}
