package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFiles_Defaults(t *testing.T) {
	cfg, err := LoadFiles(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "mpv", cfg.MpvPath)
	assert.Equal(t, "ffmpeg", cfg.FfmpegPath)
	assert.Equal(t, os.TempDir(), cfg.SocketDir)
	assert.Empty(t, cfg.OutputDir)
	assert.Zero(t, cfg.ExportTimeout)
	assert.True(t, cfg.StreamCopy)
	assert.True(t, cfg.History)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "clark.log", filepath.Base(cfg.LogFile))
	assert.Equal(t, "clark.db", filepath.Base(cfg.HistoryDB))
}

func TestLoadFiles_LastWins(t *testing.T) {
	dir := t.TempDir()
	user := writeConfig(t, dir, "user.toml", `
mpv_path = "/opt/mpv/bin/mpv"
output_dir = "/exports"
stream_copy = false
log_level = "debug"
`)
	local := writeConfig(t, dir, "local.toml", `
output_dir = "/local/exports"
export_timeout = "90s"
history = false
`)

	cfg, err := LoadFiles(user, local)
	require.NoError(t, err)

	assert.Equal(t, "/opt/mpv/bin/mpv", cfg.MpvPath)
	assert.Equal(t, "/local/exports", cfg.OutputDir)
	assert.Equal(t, 90*time.Second, cfg.ExportTimeout)
	assert.False(t, cfg.StreamCopy)
	assert.False(t, cfg.History)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "ffmpeg", cfg.FfmpegPath)
}

func TestLoadFiles_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}
	path := writeConfig(t, t.TempDir(), "config.toml", `output_dir = "~/clips"`)

	cfg, err := LoadFiles(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "clips"), cfg.OutputDir)
}

func TestLoadFiles_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed toml", body: `mpv_path = `},
		{name: "negative timeout", body: `export_timeout = "-5s"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "config.toml", tt.body)
			_, err := LoadFiles(path)
			assert.Error(t, err)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "tilde expands to home", input: "~/clips", expected: filepath.Join(home, "clips")},
		{name: "absolute path unchanged", input: "/srv/clips", expected: "/srv/clips"},
		{name: "relative path unchanged", input: "clips/out", expected: "clips/out"},
		{name: "empty string unchanged", input: "", expected: ""},
		{name: "tilde only", input: "~", expected: home},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandPath(tt.input))
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join("clark", "config.toml"), filepath.Join(filepath.Base(filepath.Dir(paths[0])), filepath.Base(paths[0])))
	assert.Equal(t, "clark.toml", paths[1])
}
