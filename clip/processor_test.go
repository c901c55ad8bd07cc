package clip

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/clark/pkg/export"
	"github.com/user/clark/pkg/segment"
)

// fakeTranscoder writes a small file per job, failing the calls listed in fail.
type fakeTranscoder struct {
	jobs []export.Job
	fail map[int]bool
}

func (f *fakeTranscoder) Cut(ctx context.Context, job export.Job) error {
	call := len(f.jobs)
	f.jobs = append(f.jobs, job)
	if f.fail[call] {
		return errors.New("boom")
	}
	return os.WriteFile(job.Output, []byte("segment"), 0644)
}

func TestProcessor_RunSplit(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "match.mp4")
	require.NoError(t, os.WriteFile(media, []byte("media"), 0644))

	ranges, err := segment.Plan([]int64{5000, 1000}, segment.ModeSplit)
	require.NoError(t, err)

	tc := &fakeTranscoder{}
	p := &Processor{Transcoder: tc}
	results, err := p.Run(context.Background(), media, ranges)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, []export.Job{
		{Input: media, Output: filepath.Join(dir, "match_1.mp4"), Start: "0.000", End: "1.000"},
		{Input: media, Output: filepath.Join(dir, "match_2.mp4"), Start: "1.000", End: "5.000"},
		{Input: media, Output: filepath.Join(dir, "match_3.mp4"), Start: "5.000", End: ""},
	}, tc.jobs)

	for _, res := range results {
		assert.NoError(t, res.Err)
		assert.Equal(t, int64(len("segment")), res.Size)
	}
}

func TestProcessor_FailureDoesNotStopLaterSegments(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "song.mp3")
	out := filepath.Join(dir, "out")

	ranges, err := segment.Plan([]int64{1000, 2000}, segment.ModeSplit)
	require.NoError(t, err)

	tc := &fakeTranscoder{fail: map[int]bool{1: true}}
	p := &Processor{Transcoder: tc, OutputDir: out}
	results, err := p.Run(context.Background(), media, ranges)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "segment 1.000-2.000")
	require.Len(t, results, 3)
	require.Len(t, tc.jobs, 3)

	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)

	// The failed segment never created its file, so its name is taken by the next one.
	assert.Equal(t, filepath.Join(out, "song_1.mp3"), results[0].Output)
	assert.Equal(t, filepath.Join(out, "song_2.mp3"), results[1].Output)
	assert.Equal(t, filepath.Join(out, "song_2.mp3"), results[2].Output)
}

func TestProcessor_NoRanges(t *testing.T) {
	out := filepath.Join(t.TempDir(), "never")
	tc := &fakeTranscoder{}
	p := &Processor{Transcoder: tc, OutputDir: out}

	results, err := p.Run(context.Background(), "clip.mp4", nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, tc.jobs)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

type deadlineTranscoder struct {
	deadline time.Time
	ok       bool
}

func (d *deadlineTranscoder) Cut(ctx context.Context, job export.Job) error {
	d.deadline, d.ok = ctx.Deadline()
	return os.WriteFile(job.Output, nil, 0644)
}

func TestProcessor_Timeout(t *testing.T) {
	dir := t.TempDir()
	tc := &deadlineTranscoder{}
	p := &Processor{Transcoder: tc, OutputDir: dir, Timeout: time.Minute}

	_, err := p.Run(context.Background(), "clip.mp4", []segment.Range{{Start: 0, End: 1000}})
	require.NoError(t, err)
	assert.True(t, tc.ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), tc.deadline, 5*time.Second)
}
