package mpv

import (
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/user/clark/deps"
)

// LaunchOptions controls how mpv is started.
type LaunchOptions struct {
	// Binary is the mpv executable; "mpv" when empty.
	Binary string
	// SocketPath is the IPC socket mpv listens on.
	SocketPath string
	// StartPaused starts playback paused.
	StartPaused bool
	// StartMuted starts playback muted.
	StartMuted bool
}

// SocketPath returns a fresh socket path inside dir, so concurrent sessions
// never share an IPC server.
func SocketPath(dir string) string {
	return filepath.Join(dir, "clark-mpv-"+uuid.NewString()+".sock")
}

// launchArgs builds the mpv command line. The media file loops and mpv is
// kept off the terminal, which belongs to the TUI.
func launchArgs(mediaPath string, opts LaunchOptions) []string {
	args := []string{
		"--input-ipc-server=" + opts.SocketPath,
		"--no-terminal",
		"--loop-file=inf",
	}
	if opts.StartPaused {
		args = append(args, "--pause")
	}
	if opts.StartMuted {
		args = append(args, "--mute=yes")
	}
	return append(args, "--", mediaPath)
}

// LaunchMpv starts mpv with the specified media file and IPC socket enabled.
// It checks that mpv is installed first and returns an error with install link if not.
// Returns the *exec.Cmd for the running process which can be used for cleanup.
func LaunchMpv(mediaPath string, opts LaunchOptions) (*exec.Cmd, error) {
	if opts.Binary == "" {
		opts.Binary = "mpv"
	}
	if err := deps.CheckMpv(opts.Binary); err != nil {
		return nil, err
	}

	cmd := exec.Command(opts.Binary, launchArgs(mediaPath, opts)...)

	// Start the process (non-blocking)
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return cmd, nil
}
