package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level     string
		debugSeen bool
		infoSeen  bool
		warnSeen  bool
	}{
		{level: "debug", debugSeen: true, infoSeen: true, warnSeen: true},
		{level: "info", infoSeen: true, warnSeen: true},
		{level: "WARNING", warnSeen: true},
		{level: "error"},
		{level: "bogus", infoSeen: true, warnSeen: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(tt.level, &buf)

			logger.Debug("d")
			logger.Info("i")
			logger.Warn("w")

			out := buf.String()
			assert.Equal(t, tt.debugSeen, strings.Contains(out, `"msg":"d"`))
			assert.Equal(t, tt.infoSeen, strings.Contains(out, `"msg":"i"`))
			assert.Equal(t, tt.warnSeen, strings.Contains(out, `"msg":"w"`))
		})
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	WithComponent(NewLogger("info", &buf), "mpv").Info("connected")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "mpv", line["component"])
	assert.Equal(t, "connected", line["msg"])
}

func TestOpen_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "clark.log")

	logger, closeFn := Open("info", path)
	logger.Info("first")
	require.NoError(t, closeFn())

	logger, closeFn = Open("info", path)
	logger.Info("second")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"first"`)
	assert.Contains(t, string(data), `"msg":"second"`)
}

func TestOpen_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	logger, closeFn := Open("info", filepath.Join(blocker, "clark.log"))
	require.NotNil(t, logger)
	logger.Info("dropped")
	assert.NoError(t, closeFn())
}

func TestSanitizePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	assert.Equal(t, "~/videos/match.mp4", SanitizePath(filepath.Join(home, "videos", "match.mp4")))
	assert.Equal(t, "/srv/match.mp4", SanitizePath("/srv/match.mp4"))
}
