package mpv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"
)

// Observed property names.
const (
	PropPlaybackTime = "playback-time"
	PropDuration     = "duration"
	PropPause        = "pause"
)

const (
	connectInterval = 100 * time.Millisecond
	connectAttempts = 50 // Wait up to 5 seconds
	loadTimeout     = 5 * time.Second
)

// quitTimeout is how long Close waits for mpv to exit before killing it.
var quitTimeout = 2 * time.Second

// ErrFileNotLoaded is returned when mpv exits or gives up before the file plays.
var ErrFileNotLoaded = errors.New("mpv: file could not be opened")

// Session is a running mpv process together with its IPC client.
type Session struct {
	Client *Client

	cmd        *exec.Cmd
	socketPath string
	logger     *slog.Logger
	exited     chan struct{}
	closeOnce  sync.Once
}

// Start launches mpv for mediaPath, connects to its socket and waits until the
// file is loaded. Nothing touches the terminal here, so callers can report a
// failure before the UI starts.
func Start(ctx context.Context, mediaPath string, opts LaunchOptions, logger *slog.Logger) (*Session, error) {
	cmd, err := LaunchMpv(mediaPath, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to launch mpv: %w", err)
	}
	return attach(ctx, cmd, opts.SocketPath, logger)
}

// attach takes over a started mpv process listening on socketPath and waits
// for it to load its file. The process is stopped if that fails.
func attach(ctx context.Context, cmd *exec.Cmd, socketPath string, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Session{
		Client:     NewClient(socketPath, logger),
		cmd:        cmd,
		socketPath: socketPath,
		logger:     logger,
		exited:     make(chan struct{}),
	}
	go func() {
		err := cmd.Wait()
		logger.Debug("mpv exited", "error", err)
		close(s.exited)
	}()

	if err := s.connect(ctx); err != nil {
		s.Close()
		return nil, err
	}
	if err := s.waitLoaded(ctx); err != nil {
		s.Close()
		return nil, err
	}

	logger.Info("mpv session started", "socket", socketPath, "pid", cmd.Process.Pid)
	return s, nil
}

// connect retries the socket until mpv has created it.
func (s *Session) connect(ctx context.Context) error {
	ticker := time.NewTicker(connectInterval)
	defer ticker.Stop()

	var connectErr error
	for i := 0; i < connectAttempts; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.exited:
			return ErrFileNotLoaded
		case <-ticker.C:
		}
		connectErr = s.Client.Connect()
		if connectErr == nil {
			return nil
		}
	}
	return fmt.Errorf("failed to connect to mpv: %w", connectErr)
}

// waitLoaded polls the duration property until mpv has opened the file.
// A file without a known duration is accepted once loadTimeout passes.
func (s *Session) waitLoaded(ctx context.Context) error {
	ticker := time.NewTicker(connectInterval)
	defer ticker.Stop()
	deadline := time.NewTimer(loadTimeout)
	defer deadline.Stop()

	for {
		if _, err := s.Client.GetDuration(); err == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.exited:
			return ErrFileNotLoaded
		case ev, ok := <-s.Client.Events():
			if !ok {
				return ErrFileNotLoaded
			}
			if ev.Name == "end-file" && ev.Reason == "error" {
				return fmt.Errorf("%w: %s", ErrFileNotLoaded, ev.FileError)
			}
		case <-deadline.C:
			s.logger.Warn("mpv did not report a duration, continuing")
			return nil
		case <-ticker.C:
		}
	}
}

// Observe subscribes to the properties the playback feed consumes.
func (s *Session) Observe() error {
	for id, name := range []string{PropPlaybackTime, PropDuration, PropPause} {
		if err := s.Client.ObserveProperty(id+1, name); err != nil {
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}
	return nil
}

// Close asks mpv to quit, kills it if it lingers, and removes the socket.
// It is safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if s.Client.IsConnected() {
			// Nobody may be reading events any more; keep the reader
			// unblocked so the quit reply can arrive.
			go func() {
				for range s.Client.Events() {
				}
			}()
			if err := s.Client.Quit(); err != nil {
				s.logger.Debug("mpv quit command failed", "error", err)
			}
		}

		select {
		case <-s.exited:
		case <-time.After(quitTimeout):
			s.logger.Warn("mpv did not exit, killing it")
			if s.cmd.Process != nil {
				_ = s.cmd.Process.Kill()
			}
			<-s.exited
		}

		_ = s.Client.Close()
		if err := os.Remove(s.socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("failed to remove mpv socket", "path", s.socketPath, "error", err)
		}
	})
}
