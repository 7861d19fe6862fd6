package config

const (
	defaultConfigPath          = "~/.config/trustframe/config.toml"
	projectConfigName          = "trustframe.toml"
	defaultCryptoAlgorithm     = "sha256"
	defaultPerceptualAlgorithm = "phash"
	defaultFrameSize           = 128
	defaultDetailRows          = 10
	defaultHighThreshold       = 80
	defaultMediumThreshold     = 50
	defaultFFmpeg              = "ffmpeg"
	defaultFFprobe             = "ffprobe"
	defaultOutputFormat        = "text"
	defaultOutputColor         = "auto"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"

	minFrameSize = 8
	maxFrameSize = 4096
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Analysis: Analysis{
			CryptoAlgorithm:     defaultCryptoAlgorithm,
			PerceptualAlgorithm: defaultPerceptualAlgorithm,
			FrameWidth:          defaultFrameSize,
			FrameHeight:         defaultFrameSize,
			DetailRows:          defaultDetailRows,
		},
		Thresholds: Thresholds{
			High:   defaultHighThreshold,
			Medium: defaultMediumThreshold,
		},
		Output: Output{
			Format: defaultOutputFormat,
			Color:  defaultOutputColor,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
