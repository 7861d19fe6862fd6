package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"trustframe/internal/cryptohash"
	"trustframe/internal/fileutil"
	"trustframe/internal/perceptual"
	"trustframe/internal/similarity"
)

//go:embed sample_config.toml
var sampleConfig string

// Analysis controls hashing, sampling, and report detail.
type Analysis struct {
	CryptoAlgorithm     string `toml:"crypto_algorithm"`
	PerceptualAlgorithm string `toml:"perceptual_algorithm"`
	MaxFrames           int    `toml:"max_frames"`   // 0 analyzes every frame
	FrameWidth          int    `toml:"frame_width"`  // decode width before hashing
	FrameHeight         int    `toml:"frame_height"` // decode height before hashing
	DetailRows          int    `toml:"detail_rows"`
}

// Thresholds are the similarity bucket boundaries in percent.
type Thresholds struct {
	High   float64 `toml:"high"`
	Medium float64 `toml:"medium"`
}

// Tools names the external executables.
type Tools struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

// Output controls report rendering.
type Output struct {
	Format string `toml:"format"` // text, json, or yaml
	Color  string `toml:"color"`  // auto, always, or never
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"` // optional JSON log file written alongside stderr
}

// Config encapsulates all configuration values for TrustFrame.
type Config struct {
	Analysis   Analysis   `toml:"analysis"`
	Thresholds Thresholds `toml:"thresholds"`
	Tools      Tools      `toml:"tools"`
	Output     Output     `toml:"output"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. An explicit path
// that does not exist yields defaults with exists=false. Without a path the
// user config is tried first, then trustframe.toml in the working directory.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return nil, "", false, fmt.Errorf("parse config: %s", strict.String())
			}
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := ExpandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// FFmpegBinary returns the ffmpeg executable used for frame decoding.
func (c *Config) FFmpegBinary() string {
	if c == nil || strings.TrimSpace(c.Tools.FFmpeg) == "" {
		return defaultFFmpeg
	}
	return c.Tools.FFmpeg
}

// FFprobeBinary returns the ffprobe executable used for stream inspection.
func (c *Config) FFprobeBinary() string {
	if c == nil || strings.TrimSpace(c.Tools.FFprobe) == "" {
		return defaultFFprobe
	}
	return c.Tools.FFprobe
}

// CryptoAlgorithm returns the configured file digest.
func (c *Config) CryptoAlgorithm() cryptohash.Algorithm {
	alg, err := cryptohash.ParseAlgorithm(c.Analysis.CryptoAlgorithm)
	if err != nil {
		return cryptohash.SHA256
	}
	return alg
}

// PerceptualAlgorithm returns the configured frame hash.
func (c *Config) PerceptualAlgorithm() perceptual.Algorithm {
	alg, err := perceptual.ParseAlgorithm(c.Analysis.PerceptualAlgorithm)
	if err != nil {
		return perceptual.PHash
	}
	return alg
}

// SimilarityThresholds converts the [thresholds] section.
func (c *Config) SimilarityThresholds() similarity.Thresholds {
	return similarity.Thresholds{High: c.Thresholds.High, Medium: c.Thresholds.Medium}
}

// ExpandPath resolves a leading ~ and returns an absolute, cleaned path.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ErrSampleExists is returned by WriteSample when the target is present and
// overwrite is false.
var ErrSampleExists = errors.New("config file already exists")

// WriteSample writes the commented sample configuration to path, or to the
// default location when path is empty, and returns the resolved target.
func WriteSample(path string, overwrite bool) (string, error) {
	target, err := DefaultConfigPath()
	if path = strings.TrimSpace(path); path != "" {
		target, err = ExpandPath(path)
	}
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}

	if !overwrite {
		if _, err := os.Stat(target); err == nil {
			return target, fmt.Errorf("%w at %s (use --overwrite to replace it)", ErrSampleExists, target)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return target, fmt.Errorf("check config path: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return target, fmt.Errorf("create config directory: %w", err)
	}
	err = fileutil.WriteAtomic(target, 0o644, func(w io.Writer) error {
		_, err := io.WriteString(w, sampleConfig)
		return err
	})
	if err != nil {
		return target, fmt.Errorf("write sample config: %w", err)
	}
	return target, nil
}

// Encode renders c as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf strings.Builder
	encoder := toml.NewEncoder(&buf)
	encoder.SetIndentTables(false)
	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return []byte(buf.String()), nil
}
