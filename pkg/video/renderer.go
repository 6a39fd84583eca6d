// Package video renders a still-image video from a cover image and an
// audio track by shelling out to ffmpeg.
package video

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

// RenderError reports a non-zero ffmpeg exit. Rendering is not retried;
// a failed render aborts the run before anything is uploaded.
type RenderError struct {
	Err    error
	Output string
}

func (e *RenderError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("ffmpeg render: %v: %s", e.Err, e.Output)
	}
	return fmt.Sprintf("ffmpeg render: %v", e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Option configures the ffmpeg renderer.
type Option func(*FFmpeg)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(f *FFmpeg) {
		if binary != "" {
			f.binary = binary
		}
	}
}

// FFmpeg wraps the ffmpeg command-line encoder.
type FFmpeg struct {
	binary string
}

// NewFFmpeg constructs a renderer using defaults.
func NewFFmpeg(opts ...Option) *FFmpeg {
	f := &FFmpeg{binary: "ffmpeg"}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Render loops the still image over the audio track and encodes an mp4:
// h264 tuned for static content, aac audio at 192k, yuv420p for broad
// player compatibility, moov atom up front for progressive playback, and
// output truncated to the shorter input.
func (f *FFmpeg) Render(ctx context.Context, imagePath, audioPath, outputPath string) error {
	args := []string{
		"-y",
		"-loop", "1",
		"-i", imagePath,
		"-i", audioPath,
		"-c:v", "libx264",
		"-tune", "stillimage",
		"-c:a", "aac",
		"-b:a", "192k",
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		"-shortest",
		outputPath,
	}
	cmd := commandContext(ctx, f.binary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return &RenderError{Err: err, Output: strings.TrimSpace(string(output))}
	}
	return nil
}
