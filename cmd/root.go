package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/user/clark/clip"
	"github.com/user/clark/config"
	"github.com/user/clark/db"
	"github.com/user/clark/deps"
	"github.com/user/clark/logging"
	"github.com/user/clark/mpv"
	"github.com/user/clark/pkg/export"
	"github.com/user/clark/pkg/segment"
	"github.com/user/clark/playback"
	"github.com/user/clark/tui"
	"github.com/user/clark/tui/styles"
)

var Version = "0.2.0"

var rootFlags struct {
	trim        bool
	split       bool
	startPaused bool
	startMuted  bool
}

var rootCmd = &cobra.Command{
	Use:   "clark <filepath>",
	Short: "Mark timestamps on media playing in mpv",
	Long: `clark opens a media file in mpv and lets you mark timestamps from the
terminal while it plays. On quit the marks are printed to stdout, one per line
in milliseconds, and can be used to cut the file with ffmpeg.

Keys:
  space        toggle pause
  j / l        seek -15s / +15s
  left/right   seek -5s / +5s
  , / .        step one frame back / forward
  down/up      speed -0.2 / +0.2
  - / +        volume -5 / +5
  0-9          seek to 0%, 10%, ... 90%
  )            seek to the final second
  m            mark the current position
  M            delete the selected mark
  J / L        seek to the previous / next mark and pause
  q / esc      quit`,
	Version:       Version,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runClark,
}

func init() {
	rootCmd.Flags().BoolVar(&rootFlags.trim, "trim", false, "keep only the part between exactly 2 marks")
	rootCmd.Flags().BoolVar(&rootFlags.split, "split", false, "cut the file at every mark")
	rootCmd.Flags().BoolVar(&rootFlags.startPaused, "start-paused", false, "start playback paused")
	rootCmd.Flags().BoolVar(&rootFlags.startMuted, "start-muted", false, "start playback muted")
	rootCmd.MarkFlagsMutuallyExclusive("trim", "split")
}

// invalidPathError is reported before anything else runs.
type invalidPathError struct {
	path string
}

func (e *invalidPathError) Error() string {
	return fmt.Sprintf("'%s' is not a valid filepath.", e.path)
}

// validateMediaPath returns the absolute path of an existing regular file.
func validateMediaPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", &invalidPathError{path: path}
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	return absPath, nil
}

func exportMode() segment.Mode {
	switch {
	case rootFlags.trim:
		return segment.ModeTrim
	case rootFlags.split:
		return segment.ModeSplit
	default:
		return segment.ModeNone
	}
}

func runClark(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]
	absPath, err := validateMediaPath(mediaPath)
	if err != nil {
		return err
	}
	mode := exportMode()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, closeLog := logging.Open(cfg.LogLevel, cfg.LogFile)
	defer closeLog()
	logger.Info("starting session", "path", logging.SanitizePath(absPath), "mode", mode.String())

	// Checked up front; the export only runs once the UI has closed.
	if mode != segment.ModeNone {
		if err := deps.CheckFfmpeg(cfg.FfmpegPath); err != nil {
			return err
		}
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("clark needs an interactive terminal")
	}
	// Keep stdout clean for marks when it is redirected.
	var opts []tea.ProgramOption
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		opts = append(opts, tea.WithOutput(os.Stderr))
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	session, err := mpv.Start(ctx, absPath, mpv.LaunchOptions{
		Binary:      cfg.MpvPath,
		SocketPath:  mpv.SocketPath(cfg.SocketDir),
		StartPaused: rootFlags.startPaused,
		StartMuted:  rootFlags.startMuted,
	}, logging.WithComponent(logger, "mpv"))
	if errors.Is(err, mpv.ErrFileNotLoaded) {
		return fmt.Errorf("could not open '%s'", mediaPath)
	}
	if err != nil {
		return err
	}
	defer session.Close()

	updates := make(chan playback.Update, 16)
	go playback.NewFeed(logging.WithComponent(logger, "playback")).Run(ctx, session.Client.Events(), updates)
	if err := session.Observe(); err != nil {
		return fmt.Errorf("failed to observe mpv: %w", err)
	}

	result, uiErr := tui.Run(session.Client, updates, logging.WithComponent(logger, "tui"), opts...)
	cancel()
	session.Close()
	if err := printMarks(cmd.OutOrStdout(), result, uiErr); err != nil {
		return err
	}

	ranges, planErr := segment.Plan(result.Sorted, mode)
	var results []clip.Result
	var exportErr error
	if planErr == nil && len(ranges) > 0 {
		processor := &clip.Processor{
			Transcoder: &export.FFmpeg{
				Binary:     cfg.FfmpegPath,
				StreamCopy: cfg.StreamCopy,
				Output:     cmd.OutOrStdout(),
			},
			OutputDir: cfg.OutputDir,
			Timeout:   cfg.ExportTimeout,
			Logger:    logging.WithComponent(logger, "export"),
		}
		results, exportErr = processor.Run(cmd.Context(), absPath, ranges)
		reportExports(cmd.ErrOrStderr(), results)
	}

	if cfg.History {
		recordHistory(cfg.HistoryDB, absPath, mode, result, results, logging.WithComponent(logger, "history"))
	}

	return errors.Join(planErr, exportErr)
}

// printMarks writes the sorted marks, one per line. Marks made before a UI
// failure are still printed; the failure is returned afterwards.
func printMarks(w io.Writer, result tui.Result, uiErr error) error {
	for _, m := range result.Sorted {
		fmt.Fprintln(w, m)
	}
	if uiErr != nil {
		return fmt.Errorf("terminal UI failed: %w", uiErr)
	}
	return nil
}

// reportExports prints one line per segment with its size or failure.
func reportExports(w io.Writer, results []clip.Result) {
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%s %s: %v\n", styles.Warning.Render("✗"), r.Range, r.Err)
			continue
		}
		fmt.Fprintf(w, "%s %s -> %s (%s)\n", styles.Success.Render("✓"), r.Range, r.Output, humanize.Bytes(uint64(r.Size)))
	}

	written := lo.Filter(results, func(r clip.Result, _ int) bool { return r.Err == nil })
	total := lo.SumBy(written, func(r clip.Result) int64 { return r.Size })
	fmt.Fprintf(w, "%d of %d segments written, %s\n", len(written), len(results), humanize.Bytes(uint64(total)))
}

// recordHistory stores the session. History is best effort and never fails the run.
func recordHistory(dbPath, mediaPath string, mode segment.Mode, result tui.Result, results []clip.Result, logger *slog.Logger) {
	database, err := db.Open(dbPath)
	if err != nil {
		logger.Warn("failed to open history database", "error", err)
		return
	}
	defer database.Close()

	exports := lo.Map(results, func(r clip.Result, _ int) db.SessionExport {
		return historyExport(r)
	})
	id, err := db.InsertSession(database, db.Session{
		MediaPath:  mediaPath,
		Mode:       mode.String(),
		DurationMs: result.DurationMs,
	}, result.Marks, exports)
	if err != nil {
		logger.Warn("failed to record session", "error", err)
		return
	}
	logger.Info("session recorded", "id", id, "marks", len(result.Marks), "exports", len(exports))
}

func historyExport(r clip.Result) db.SessionExport {
	e := db.SessionExport{
		OutputPath: r.Output,
		StartMs:    r.Range.Start,
		Filesize:   r.Size,
	}
	if !r.Range.ToEnd {
		e.EndMs.Int64 = r.Range.End
		e.EndMs.Valid = true
	}
	if r.Err != nil {
		e.Error = r.Err.Error()
	}
	return e
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
