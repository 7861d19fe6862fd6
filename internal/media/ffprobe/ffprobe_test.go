package ffprobe

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

const samplePayload = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video", "width": 1920, "height": 1080,
     "r_frame_rate": "30000/1001", "avg_frame_rate": "30000/1001", "nb_frames": "300", "duration": "10.010000"},
    {"index": 1, "codec_name": "aac", "codec_type": "audio"}
  ],
  "format": {"duration": "10.010000", "size": "1000"}
}`

func TestResultHelpers(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		duration float64
		size     int64
	}{
		{name: "valid", format: Format{Duration: "123.45", Size: "1000"}, duration: 123.45, size: 1000},
		{name: "missing", format: Format{}, duration: 0, size: 0},
		{name: "negative size", format: Format{Duration: "1", Size: "-1"}, duration: 1, size: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Result{Format: tc.format}
			if got := result.DurationSeconds(); got != tc.duration {
				t.Fatalf("DurationSeconds = %v, want %v", got, tc.duration)
			}
			if got := result.SizeBytes(); got != tc.size {
				t.Fatalf("SizeBytes = %d, want %d", got, tc.size)
			}
		})
	}
}

func TestDurationMalformed(t *testing.T) {
	result := Result{Format: Format{Duration: "bad"}}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected NaN, got %v", result.DurationSeconds())
	}
}

func TestParseRate(t *testing.T) {
	tests := map[string]float64{
		"25/1": 25,
		"0/0":  0,
		"30":   30,
		"x/1":  0,
		"-1/1": 0,
		"":     0,
		"50/2": 25,
	}
	for in, want := range tests {
		if got := parseRate(in); got != want {
			t.Fatalf("parseRate(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestVideoInfoFromNBFrames(t *testing.T) {
	result, err := Parse([]byte(samplePayload))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	info, err := VideoInfo(result)
	if err != nil {
		t.Fatalf("VideoInfo: %v", err)
	}
	if info.TotalFrames != 300 {
		t.Fatalf("TotalFrames = %d, want 300", info.TotalFrames)
	}
	if math.Abs(info.FPS-29.97002997) > 1e-6 {
		t.Fatalf("FPS = %v", info.FPS)
	}
	if math.Abs(info.DurationSeconds-10.01) > 1e-9 {
		t.Fatalf("DurationSeconds = %v", info.DurationSeconds)
	}
	if info.Width != 1920 || info.Height != 1080 || info.Codec != "h264" {
		t.Fatalf("unexpected geometry %+v", info)
	}
}

func TestVideoInfoEstimatesFrames(t *testing.T) {
	result := Result{
		Streams: []Stream{{CodecType: "video", RFrameRate: "25/1", AvgFrameRate: "0/0"}},
		Format:  Format{Duration: "4.0"},
	}
	info, err := VideoInfo(result)
	if err != nil {
		t.Fatalf("VideoInfo: %v", err)
	}
	if info.TotalFrames != 100 || info.FPS != 25 || info.DurationSeconds != 4 {
		t.Fatalf("unexpected info %+v", info)
	}
}

func TestVideoInfoZeroRate(t *testing.T) {
	result := Result{Streams: []Stream{{CodecType: "video", RFrameRate: "0/0"}}}
	info, err := VideoInfo(result)
	if err != nil {
		t.Fatalf("VideoInfo: %v", err)
	}
	if info.TotalFrames != 0 || info.DurationSeconds != 0 {
		t.Fatalf("unexpected info %+v", info)
	}
}

func TestVideoInfoWithoutVideo(t *testing.T) {
	_, err := VideoInfo(Result{Streams: []Stream{{CodecType: "audio"}}})
	if !errors.Is(err, ErrNoVideoStream) {
		t.Fatalf("expected ErrNoVideoStream, got %v", err)
	}
}

func TestInspectUsesBinary(t *testing.T) {
	dir := t.TempDir()
	payloadPath := filepath.Join(dir, "payload.json")
	if err := os.WriteFile(payloadPath, []byte(samplePayload), 0o644); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	stub := filepath.Join(dir, "ffprobe")
	script := "#!/bin/sh\ncat " + payloadPath + "\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	result, err := Inspect(context.Background(), stub, "clip.mp4")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if _, ok := result.PrimaryVideo(); !ok || result.SizeBytes() != 1000 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestInspectReportsFailure(t *testing.T) {
	stub := filepath.Join(t.TempDir(), "ffprobe")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\necho 'clip.mp4: Invalid data' >&2\nexit 1\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	if _, err := Inspect(context.Background(), stub, "clip.mp4"); err == nil {
		t.Fatal("expected error from failing ffprobe")
	}
	if _, err := Inspect(context.Background(), stub, "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
