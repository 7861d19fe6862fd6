// Package progress builds the terminal progress bars shown while files are
// hashed and frames are extracted. A nil writer yields a silent bar so callers
// never branch on whether progress is wanted.
package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

const throttle = 65 * time.Millisecond

// Bytes returns a byte-counting bar for streams of known size.
func Bytes(w io.Writer, size int64, description string) *progressbar.ProgressBar {
	if w == nil {
		return progressbar.DefaultSilent(size, description)
	}
	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(throttle),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// Count returns a bar that counts discrete units such as frames.
func Count(w io.Writer, total int64, description string) *progressbar.ProgressBar {
	if w == nil {
		return progressbar.DefaultSilent(total, description)
	}
	return progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(throttle),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("frames"),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
		progressbar.OptionSetRenderBlankState(true),
	)
}
