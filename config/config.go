package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "clark"

type Config struct {
	MpvPath    string `koanf:"mpv_path"`
	FfmpegPath string `koanf:"ffmpeg_path"`
	SocketDir  string `koanf:"socket_dir"` // where the mpv IPC socket is created
	OutputDir  string `koanf:"output_dir"` // empty means next to the input file

	ExportTimeout time.Duration `koanf:"export_timeout"` // per segment, 0 = no limit
	StreamCopy    bool          `koanf:"stream_copy"`    // pass -c copy to ffmpeg

	LogLevel string `koanf:"log_level"` // "debug", "info", "warn" or "error"
	LogFile  string `koanf:"log_file"`

	History   bool   `koanf:"history"` // record finished sessions
	HistoryDB string `koanf:"history_db"`
}

// Default returns the configuration used when no config file sets a key.
func Default() *Config {
	return &Config{
		MpvPath:    "mpv",
		FfmpegPath: "ffmpeg",
		SocketDir:  os.TempDir(),
		StreamCopy: true,
		LogLevel:   "info",
		LogFile:    filepath.Join(xdg.StateHome, appName, appName+".log"),
		History:    true,
		HistoryDB:  filepath.Join(xdg.DataHome, appName, appName+".db"),
	}
}

// Load reads the user and local config files over the defaults.
func Load() (*Config, error) {
	return LoadFiles(getConfigPaths()...)
}

// LoadFiles merges the given TOML files over the defaults, last wins.
// Missing files are skipped.
func LoadFiles(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config %s: %w", path, err)
			}
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.SocketDir = expandPath(cfg.SocketDir)
	cfg.OutputDir = expandPath(cfg.OutputDir)
	cfg.LogFile = expandPath(cfg.LogFile)
	cfg.HistoryDB = expandPath(cfg.HistoryDB)

	if cfg.ExportTimeout < 0 {
		return nil, fmt.Errorf("export_timeout must not be negative, got %s", cfg.ExportTimeout)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/clark/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./clark.toml (pwd, highest priority)
		appName + ".toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
