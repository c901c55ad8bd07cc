package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFFmpeg_Args(t *testing.T) {
	tests := []struct {
		name string
		copy bool
		job  Job
		want []string
	}{
		{
			name: "closed range with stream copy",
			copy: true,
			job:  Job{Input: "in.mp4", Output: "in_1.mp4", Start: "1.000", End: "5.000"},
			want: []string{"-hide_banner", "-y", "-i", "in.mp4", "-ss", "1.000", "-to", "5.000", "-c", "copy", "in_1.mp4"},
		},
		{
			name: "open end re-encoded",
			job:  Job{Input: "in.mp4", Output: "in_3.mp4", Start: "5.000"},
			want: []string{"-hide_banner", "-y", "-i", "in.mp4", "-ss", "5.000", "in_3.mp4"},
		},
		{
			name: "open start",
			job:  Job{Input: "a.mp3", Output: "a_1.mp3", End: "0.250"},
			want: []string{"-hide_banner", "-y", "-i", "a.mp3", "-to", "0.250", "a_1.mp3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &FFmpeg{StreamCopy: tt.copy}
			assert.Equal(t, tt.want, f.Args(tt.job))
		})
	}
}

func TestFFmpeg_CutMissingBinary(t *testing.T) {
	var out bytes.Buffer
	f := &FFmpeg{Binary: "clark-no-such-ffmpeg", Output: &out}

	err := f.Cut(context.Background(), Job{Input: "in.mp4", Output: "out.mp4"})

	assert.ErrorContains(t, err, "ffmpeg failed")
}
