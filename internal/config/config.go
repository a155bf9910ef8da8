package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	ServerURL string `koanf:"server_url"` // e.g., "http://localhost:5000"

	// Log settings
	Log LogConfig `koanf:"log"`

	// Playback settings
	Playback PlaybackConfig `koanf:"playback"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `koanf:"level"`  // "debug", "info", "warn", "error" (default: "info")
	Format string `koanf:"format"` // "console" or "json" (default: "console")
	File   string `koanf:"file"`   // optional log file path; empty logs to stderr
}

// PlaybackConfig holds playback configuration.
type PlaybackConfig struct {
	DefaultVolume   *float64 `koanf:"default_volume"`    // 0.0-1.0, used when no saved volume exists
	RestoreQueue    *bool    `koanf:"restore_queue"`     // restore queue from the previous session (default: true)
	StreamTimeoutMS int      `koanf:"stream_timeout_ms"` // per-fetch timeout for stream downloads (default: 60000)
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	return finalize(k)
}

// LoadFrom reads exactly one config file, skipping the default search
// paths. The file must exist.
func LoadFrom(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, err
	}
	return finalize(k)
}

func finalize(k *koanf.Koanf) (*Config, error) {
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// SOUNDCLONE_SERVER overrides the file value
	if env := os.Getenv("SOUNDCLONE_SERVER"); env != "" {
		cfg.ServerURL = env
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = "http://localhost:5000"
	}
	cfg.ServerURL = strings.TrimSuffix(cfg.ServerURL, "/")

	// Expand ~ in log file path
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/soundclone/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "soundclone", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetLogConfig returns the log configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log

	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		cfg.Level = "info"
	}
	if cfg.Format != "json" {
		cfg.Format = "console"
	}

	return cfg
}

// GetPlaybackConfig returns the playback configuration with defaults applied.
func (c *Config) GetPlaybackConfig() PlaybackConfig {
	cfg := c.Playback

	if cfg.DefaultVolume == nil || *cfg.DefaultVolume < 0 || *cfg.DefaultVolume > 1 {
		v := 1.0
		cfg.DefaultVolume = &v
	}
	if cfg.RestoreQueue == nil {
		b := true
		cfg.RestoreQueue = &b
	}
	if cfg.StreamTimeoutMS <= 0 {
		cfg.StreamTimeoutMS = 60000
	}

	return cfg
}
