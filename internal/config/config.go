package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything ticktock reads from config.toml.
type Config struct {
	Storage StorageConfig
	Log     LogConfig
	UI      UIConfig
}

// StorageConfig selects the durable backend for the state store.
type StorageConfig struct {
	Backend string // dir, sqlite or memory
	Path    string // data directory, or database file for sqlite
}

// LogConfig controls the log file. The TUI owns the terminal, so logs never
// go to stdout or stderr.
type LogConfig struct {
	Level  string
	File   string
	Format string // text or json
}

// UIConfig holds dashboard defaults.
type UIConfig struct {
	Theme string
	Tick  time.Duration
}

const (
	defaultConfigPath = "~/.config/ticktock/config.toml"
	defaultDataDir    = "~/.local/share/ticktock"
	defaultLogFile    = "~/.local/state/ticktock/ticktock.log"
	defaultBackend    = "dir"
	defaultLogLevel   = "info"
	defaultLogFormat  = "text"
	defaultTheme      = "Nightfox"
	defaultTick       = time.Second
	sqliteFileName    = "ticktock.db"

	// EnvLogLevel overrides [log] level.
	EnvLogLevel = "TICKTOCK_LOG_LEVEL"
)

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	cfg := Config{
		Storage: StorageConfig{Backend: defaultBackend},
		Log: LogConfig{
			Level:  defaultLogLevel,
			File:   mustExpand(defaultLogFile),
			Format: defaultLogFormat,
		},
		UI: UIConfig{Theme: defaultTheme, Tick: defaultTick},
	}
	cfg.Storage.Path = defaultStoragePath(cfg.Storage.Backend)
	cfg.applyEnv()
	return cfg
}

// Load locates and parses config.toml, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Storage struct {
			Backend string `toml:"backend"`
			Path    string `toml:"path"`
		} `toml:"storage"`
		Log struct {
			Level  string `toml:"level"`
			File   string `toml:"file"`
			Format string `toml:"format"`
		} `toml:"log"`
		UI struct {
			Theme       string `toml:"theme"`
			TickSeconds int    `toml:"tick_seconds"`
		} `toml:"ui"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	if v := strings.ToLower(strings.TrimSpace(raw.Storage.Backend)); v != "" {
		cfg.Storage.Backend = v
	}
	if v := strings.TrimSpace(raw.Storage.Path); v != "" {
		cfg.Storage.Path = mustExpand(v)
	} else {
		cfg.Storage.Path = defaultStoragePath(cfg.Storage.Backend)
	}
	if v := strings.TrimSpace(raw.Log.Level); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(raw.Log.File); v != "" {
		cfg.Log.File = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.Log.Format)); v != "" {
		cfg.Log.Format = v
	}
	if v := strings.TrimSpace(raw.UI.Theme); v != "" {
		cfg.UI.Theme = v
	}
	if raw.UI.TickSeconds > 0 {
		cfg.UI.Tick = time.Duration(raw.UI.TickSeconds) * time.Second
	}
	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
}

func defaultStoragePath(backend string) string {
	dir := dataDir()
	if backend == "sqlite" {
		return filepath.Join(dir, sqliteFileName)
	}
	return dir
}

// dataDir honours XDG_DATA_HOME before falling back to ~/.local/share.
func dataDir() string {
	if base := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); base != "" {
		return mustExpand(filepath.Join(base, "ticktock"))
	}
	return mustExpand(defaultDataDir)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
