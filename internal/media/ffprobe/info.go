package ffprobe

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Info summarizes the primary video stream.
type Info struct {
	TotalFrames     int     `json:"total_frames" yaml:"total_frames"`
	FPS             float64 `json:"fps" yaml:"fps"`
	DurationSeconds float64 `json:"duration_seconds" yaml:"duration_seconds"`
	Width           int     `json:"width" yaml:"width"`
	Height          int     `json:"height" yaml:"height"`
	Codec           string  `json:"codec" yaml:"codec"`
	SizeBytes       int64   `json:"size_bytes" yaml:"size_bytes"`
}

// VideoInfo derives frame count, frame rate, and duration from r. The frame
// count comes from nb_frames when the container records it and is otherwise
// estimated from duration and frame rate.
func VideoInfo(r Result) (Info, error) {
	stream, ok := r.PrimaryVideo()
	if !ok {
		return Info{}, fmt.Errorf("video info: %w", ErrNoVideoStream)
	}
	fps := parseRate(stream.AvgFrameRate)
	if fps == 0 {
		fps = parseRate(stream.RFrameRate)
	}

	duration := parseFloat(stream.Duration)
	if duration == 0 || math.IsNaN(duration) {
		duration = r.DurationSeconds()
	}
	if math.IsNaN(duration) || duration < 0 {
		duration = 0
	}

	frames := 0
	if n, err := strconv.Atoi(strings.TrimSpace(stream.NBFrames)); err == nil && n > 0 {
		frames = n
	} else if fps > 0 && duration > 0 {
		frames = int(math.Round(duration * fps))
	}

	info := Info{
		TotalFrames: frames,
		FPS:         fps,
		Width:       stream.Width,
		Height:      stream.Height,
		Codec:       stream.CodecName,
		SizeBytes:   r.SizeBytes(),
	}
	if fps > 0 && frames > 0 {
		info.DurationSeconds = float64(frames) / fps
	} else {
		info.DurationSeconds = duration
	}
	return info, nil
}
