package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Job is a single cut handed to ffmpeg. Start and End are seconds with
// millisecond precision ("12.345"); an empty value leaves that bound open.
type Job struct {
	Input  string
	Output string
	Start  string
	End    string
}

// FFmpeg cuts segments by running one ffmpeg child process per job.
type FFmpeg struct {
	// Binary is the ffmpeg executable; "ffmpeg" when empty.
	Binary string
	// StreamCopy copies streams instead of re-encoding (-c copy).
	StreamCopy bool
	// Output receives ffmpeg's stdout and stderr; os.Stdout when nil.
	Output io.Writer
}

// Args builds the ffmpeg command line for job.
func (f *FFmpeg) Args(job Job) []string {
	args := []string{"-hide_banner", "-y", "-i", job.Input}
	if job.Start != "" {
		args = append(args, "-ss", job.Start)
	}
	if job.End != "" {
		args = append(args, "-to", job.End)
	}
	if f.StreamCopy {
		args = append(args, "-c", "copy")
	}
	return append(args, job.Output)
}

// Cut runs ffmpeg for job and blocks until it exits. ffmpeg's output is passed
// through to f.Output so failures are visible to the user.
func (f *FFmpeg) Cut(ctx context.Context, job Job) error {
	binary := f.Binary
	if binary == "" {
		binary = "ffmpeg"
	}
	out := f.Output
	if out == nil {
		out = os.Stdout
	}

	cmd := exec.CommandContext(ctx, binary, f.Args(job)...)
	cmd.Stdout = out
	cmd.Stderr = out

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	return nil
}
