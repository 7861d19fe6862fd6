package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// ErrNoVideoStream reports a container without a video stream.
var ErrNoVideoStream = errors.New("no video stream")

// probeEntries limits ffprobe output to the fields VideoInfo reads.
const probeEntries = "stream=codec_type,codec_name,width,height,nb_frames,duration,r_frame_rate,avg_frame_rate:format=duration,size"

// Result is the decoded ffprobe payload.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream holds the per-stream fields used for frame accounting.
type Stream struct {
	CodecName    string `json:"codec_name"`
	CodecType    string `json:"codec_type"`
	Duration     string `json:"duration"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	NBFrames     string `json:"nb_frames"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
}

// Format holds container duration and size. ffprobe reports both as strings.
type Format struct {
	Duration string `json:"duration"`
	Size     string `json:"size"`
}

// Inspect runs binary (ffprobe when empty) against path and decodes its JSON.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	if binary = strings.TrimSpace(binary); binary == "" {
		binary = "ffprobe"
	}
	if strings.TrimSpace(path) == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	args := []string{"-v", "error", "-hide_banner", "-show_entries", probeEntries, "-of", "json", "--", path}
	output, err := exec.CommandContext(ctx, binary, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			stderr := strings.TrimSpace(string(exitErr.Stderr))
			return Result{}, fmt.Errorf("ffprobe inspect %s: %w: %s", path, err, stderr)
		}
		return Result{}, fmt.Errorf("ffprobe inspect %s: %w", path, err)
	}
	return Parse(output)
}

// Parse decodes an ffprobe JSON payload.
func Parse(payload []byte) (Result, error) {
	var result Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// PrimaryVideo returns the first video stream.
func (r Result) PrimaryVideo() (Stream, bool) {
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "video") {
			return stream, true
		}
	}
	return Stream{}, false
}

// DurationSeconds is the container duration; NaN when the field is malformed.
func (r Result) DurationSeconds() float64 {
	return parseFloat(r.Format.Duration)
}

// SizeBytes is the container size, 0 when missing or malformed.
func (r Result) SizeBytes() int64 {
	size := parseFloat(r.Format.Size)
	if math.IsNaN(size) || size < 0 {
		return 0
	}
	return int64(size)
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return math.NaN()
	}
	return parsed
}

// parseRate reads ffprobe's "num/den" frame rates. Unknown rates ("0/0") are 0.
func parseRate(value string) float64 {
	num, den, found := strings.Cut(strings.TrimSpace(value), "/")
	if !found {
		v := parseFloat(num)
		if math.IsNaN(v) || v < 0 {
			return 0
		}
		return v
	}
	n, errN := strconv.ParseFloat(num, 64)
	d, errD := strconv.ParseFloat(den, 64)
	if errN != nil || errD != nil || d == 0 || n < 0 {
		return 0
	}
	return n / d
}
