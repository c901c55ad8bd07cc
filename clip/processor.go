package clip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/user/clark/pkg/export"
	"github.com/user/clark/pkg/segment"
)

// Transcoder cuts one segment and blocks until it is written.
type Transcoder interface {
	Cut(ctx context.Context, job export.Job) error
}

// Result is the outcome of cutting one range.
type Result struct {
	Range  segment.Range
	Output string
	Size   int64
	Err    error
}

// Processor exports planned ranges one at a time.
type Processor struct {
	Transcoder Transcoder
	// OutputDir overrides the folder segments are written to.
	OutputDir string
	// Timeout bounds each transcoder run; zero means no limit.
	Timeout time.Duration
	Logger  *slog.Logger
}

// Run cuts ranges from mediaPath in order. A failed segment does not stop the
// ones after it; every failure is returned joined once all ranges ran.
func (p *Processor) Run(ctx context.Context, mediaPath string, ranges []segment.Range) ([]Result, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	dir := OutputDir(mediaPath, p.OutputDir)
	if len(ranges) > 0 {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	results := make([]Result, 0, len(ranges))
	var errs []error
	for _, r := range ranges {
		res := p.processRange(ctx, logger, dir, mediaPath, r)
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("segment %s: %w", r, res.Err))
		}
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}

// processRange handles the full lifecycle of cutting a single range.
func (p *Processor) processRange(ctx context.Context, logger *slog.Logger, dir, mediaPath string, r segment.Range) Result {
	res := Result{Range: r}

	// Resolved per segment so names already taken, including by this run, are skipped.
	outPath, err := NextOutputPath(dir, mediaPath)
	if err != nil {
		res.Err = err
		return res
	}
	res.Output = outPath

	runCtx := ctx
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	started := time.Now()
	job := export.Job{
		Input:  mediaPath,
		Output: outPath,
		Start:  r.StartSeconds(),
		End:    r.EndSeconds(),
	}
	if err := p.Transcoder.Cut(runCtx, job); err != nil {
		logger.Error("segment export failed", "range", r.String(), "output", outPath, "error", err)
		res.Err = err
		return res
	}

	// Stat the output file for filesize
	info, err := os.Stat(outPath)
	if err != nil {
		res.Err = fmt.Errorf("stat output: %w", err)
		return res
	}
	res.Size = info.Size()

	logger.Info("segment exported", "range", r.String(), "output", outPath,
		"bytes", res.Size, "elapsed", time.Since(started))
	return res
}
