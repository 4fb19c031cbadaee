package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/pinboard/internal/board"
	"github.com/alexanderramin/pinboard/internal/snap"
	"gopkg.in/yaml.v3"
)

// Config holds the user-level settings of the pinboard CLI.
type Config struct {
	DBPath       string  `yaml:"db_path"`
	BoardSize    float64 `yaml:"board_size"`
	GridSize     int     `yaml:"grid_size"`
	SnapEnabled  bool    `yaml:"snap_enabled"`
	UndoCapacity int     `yaml:"undo_capacity"`
	// LogLevel is one of debug, info, warn, error. Empty disables logging.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the defaults for a user whose home is home.
func DefaultConfig(home string) Config {
	b := board.DefaultConfig()
	return Config{
		DBPath:       filepath.Join(home, ".pinboard", "pinboard.db"),
		BoardSize:    b.BoardSize,
		GridSize:     b.GridSize,
		SnapEnabled:  b.SnapEnabled,
		UndoCapacity: b.UndoCapacity,
	}
}

// Load reads ~/.pinboard/config.yaml (or $PINBOARD_CONFIG) over the
// defaults, then applies PINBOARD_* environment overrides.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	path := os.Getenv("PINBOARD_CONFIG")
	if path == "" {
		path = filepath.Join(home, ".pinboard", "config.yaml")
	}
	return LoadFrom(path, home, os.Getenv)
}

// LoadFrom is Load with the file, home directory and environment supplied.
// A missing file is not an error.
func LoadFrom(path, home string, getenv func(string) string) (Config, error) {
	cfg := DefaultConfig(home)

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}
	cfg.DBPath = expandHome(cfg.DBPath, home)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("PINBOARD_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := getenv("PINBOARD_BOARD_SIZE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("PINBOARD_BOARD_SIZE: %w", err)
		}
		cfg.BoardSize = f
	}
	if v := getenv("PINBOARD_GRID_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PINBOARD_GRID_SIZE: %w", err)
		}
		cfg.GridSize = n
	}
	if v := getenv("PINBOARD_SNAP"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("PINBOARD_SNAP: %w", err)
		}
		cfg.SnapEnabled = b
	}
	if v := getenv("PINBOARD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return nil
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(home, rest)
	}
	return path
}

func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if c.BoardSize <= 0 {
		return fmt.Errorf("board_size must be positive, got %g", c.BoardSize)
	}
	if !snap.ValidGridSize(c.GridSize) {
		return fmt.Errorf("grid_size must be one of %v, got %d", snap.GridSizes, c.GridSize)
	}
	if c.UndoCapacity <= 0 {
		return fmt.Errorf("undo_capacity must be positive, got %d", c.UndoCapacity)
	}
	if _, _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel. ok is false when logging is off.
func (c Config) Level() (level slog.Level, ok bool, err error) {
	if c.LogLevel == "" {
		return 0, false, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, false, fmt.Errorf("log_level: %w", err)
	}
	return level, true, nil
}

// Board returns the session settings.
func (c Config) Board() board.Config {
	b := board.DefaultConfig()
	b.BoardSize = c.BoardSize
	b.GridSize = c.GridSize
	b.SnapEnabled = c.SnapEnabled
	b.UndoCapacity = c.UndoCapacity
	return b
}
