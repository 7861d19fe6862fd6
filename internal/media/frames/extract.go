package frames

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// Frame is one decoded frame.
type Frame struct {
	Number int // 1-based position in the source stream
	Index  int // 1-based position among extracted frames
	Image  *image.RGBA
}

// Extractor runs ffmpeg to decode frames at Width x Height.
type Extractor struct {
	Binary string
	Width  int
	Height int
}

// Extract decodes path and calls fn for each frame whose 0-based position is
// listed in indices (ascending). A nil indices slice keeps every frame. It
// returns the number of frames delivered. A stream that ends before the last
// wanted position ends extraction without error.
func (e Extractor) Extract(ctx context.Context, path string, indices []int, fn func(Frame) error) (int, error) {
	if e.Width <= 0 || e.Height <= 0 {
		return 0, fmt.Errorf("extract frames: invalid size %dx%d", e.Width, e.Height)
	}
	if strings.TrimSpace(path) == "" {
		return 0, errors.New("extract frames: empty path")
	}
	if indices != nil && len(indices) == 0 {
		return 0, nil
	}
	binary := strings.TrimSpace(e.Binary)
	if binary == "" {
		binary = "ffmpeg"
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	cmd := exec.CommandContext(runCtx, binary, e.args(path)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return 0, fmt.Errorf("extract frames: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("extract frames: start %s: %w", binary, err)
	}

	delivered, stoppedEarly, readErr := e.read(bufio.NewReaderSize(stdout, 1<<20), indices, fn)
	if stoppedEarly || readErr != nil {
		cancel()
	}
	waitErr := cmd.Wait()

	if readErr != nil {
		return delivered, readErr
	}
	if err := ctx.Err(); err != nil {
		return delivered, err
	}
	if waitErr != nil && !stoppedEarly {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return delivered, fmt.Errorf("extract frames: %s: %w: %s", binary, waitErr, detail)
		}
		return delivered, fmt.Errorf("extract frames: %s: %w", binary, waitErr)
	}
	return delivered, nil
}

func (e Extractor) args(path string) []string {
	scale := "scale=" + strconv.Itoa(e.Width) + ":" + strconv.Itoa(e.Height) + ":flags=area"
	return []string{
		"-nostdin", "-hide_banner", "-v", "error",
		"-i", path,
		"-map", "0:v:0",
		"-fps_mode", "passthrough",
		"-vf", scale,
		"-pix_fmt", "rgb24",
		"-f", "rawvideo",
		"pipe:1",
	}
}

// read consumes fixed-size RGB24 records. stoppedEarly reports that every
// wanted frame was delivered before the stream ended.
func (e Extractor) read(r io.Reader, indices []int, fn func(Frame) error) (delivered int, stoppedEarly bool, err error) {
	frameSize := e.Width * e.Height * 3
	buf := make([]byte, frameSize)
	next := 0
	for position := 0; ; position++ {
		if indices != nil && next >= len(indices) {
			return delivered, true, nil
		}
		if _, err := io.ReadFull(r, buf); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return delivered, false, nil
			}
			return delivered, false, fmt.Errorf("extract frames: read: %w", err)
		}
		if indices != nil && indices[next] != position {
			continue
		}
		next++
		delivered++
		frame := Frame{
			Number: position + 1,
			Index:  delivered,
			Image:  rgbImage(buf, e.Width, e.Height),
		}
		if err := fn(frame); err != nil {
			return delivered, false, err
		}
	}
}

func rgbImage(rgb []byte, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, j := 0, 0; i+2 < len(rgb); i, j = i+3, j+4 {
		img.Pix[j] = rgb[i]
		img.Pix[j+1] = rgb[i+1]
		img.Pix[j+2] = rgb[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}
