// Package config resolves garden settings from defaults, an optional YAML
// file, a .env file and environment variables, in that order of precedence
// (later wins).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/iremince/garden-project/internal/domain"
	"github.com/iremince/garden-project/internal/layout"
	"github.com/iremince/garden-project/internal/store"
	"github.com/iremince/garden-project/internal/unlock"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Environment variables read by Load.
const (
	EnvConfigPath    = "GARDEN_CONFIG"
	EnvDBPath        = "GARDEN_DB"
	EnvBackend       = "GARDEN_STORE"
	EnvFileDir       = "GARDEN_DIR"
	EnvStorageKey    = "GARDEN_STORAGE_KEY"
	EnvLogLevel      = "GARDEN_LOG_LEVEL"
	EnvLogCalls      = "GARDEN_LOG_CALLS"
	EnvUnlockMinutes = "GARDEN_UNLOCK_MINUTES"
	EnvWeather       = "GARDEN_WEATHER"
)

type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Unlock  UnlockConfig  `yaml:"unlock"`
	Weather WeatherConfig `yaml:"weather"`
	// Slots replaces the built-in grid when non-empty.
	Slots []SlotConfig `yaml:"slots"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"`
	DBPath  string `yaml:"db_path"`
	Dir     string `yaml:"dir"`
	Key     string `yaml:"key"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Calls logs every core use case (plant, reset, load) to stderr.
	Calls bool `yaml:"calls"`
}

type UnlockConfig struct {
	ThresholdMinutes int `yaml:"threshold_minutes"`
}

type WeatherConfig struct {
	Enabled bool `yaml:"enabled"`
}

// SlotConfig is one soil bed as written in YAML: min and max are [x, y, z].
type SlotConfig struct {
	ID  string    `yaml:"id"`
	Min []float64 `yaml:"min"`
	Max []float64 `yaml:"max"`
}

// Default returns the configuration used when nothing is set. Paths live
// under ~/.garden, falling back to the working directory without a home.
func Default() Config {
	base := ".garden"
	if home, err := os.UserHomeDir(); err == nil {
		base = filepath.Join(home, ".garden")
	}
	return Config{
		Storage: StorageConfig{
			Backend: BackendSQLite,
			DBPath:  filepath.Join(base, "garden.db"),
			Dir:     filepath.Join(base, "data"),
			Key:     store.DefaultKey,
		},
		Log:     LogConfig{Level: "warn"},
		Unlock:  UnlockConfig{ThresholdMinutes: unlock.DefaultThresholdMinutes},
		Weather: WeatherConfig{Enabled: true},
	}
}

// LoadDotEnv reads KEY=VALUE pairs from the given files (".env" when none)
// into the environment without overriding variables already set. Missing
// files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// Load builds the configuration. path names a YAML file; when empty,
// GARDEN_CONFIG is consulted. A missing explicit file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvBackend); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv(EnvFileDir); v != "" {
		cfg.Storage.Dir = v
	}
	if v := os.Getenv(EnvStorageKey); v != "" {
		cfg.Storage.Key = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvLogCalls); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvLogCalls, err)
		}
		cfg.Log.Calls = b
	}
	if v := os.Getenv(EnvUnlockMinutes); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvUnlockMinutes, err)
		}
		cfg.Unlock.ThresholdMinutes = n
	}
	if v := os.Getenv(EnvWeather); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvWeather, err)
		}
		cfg.Weather.Enabled = b
	}
	return nil
}

// Validate checks the configuration for values the garden cannot run with.
func (c Config) Validate() error {
	var errs []error
	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.DBPath == "" {
			errs = append(errs, errors.New("storage.db_path is required for the sqlite backend"))
		}
	case BackendFile:
		if c.Storage.Dir == "" {
			errs = append(errs, errors.New("storage.dir is required for the file backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.backend %q is not one of sqlite, file", c.Storage.Backend))
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		errs = append(errs, errors.New("storage.key must not be empty"))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.Unlock.ThresholdMinutes <= 0 {
		errs = append(errs, fmt.Errorf("unlock.threshold_minutes must be positive, got %d", c.Unlock.ThresholdMinutes))
	}
	if _, err := c.Layout(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// LogLevel parses Log.Level.
func (c Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return lvl, fmt.Errorf("log.level %q: want debug, info, warn or error", c.Log.Level)
	}
	return lvl, nil
}

// Layout builds the slot geometry: the configured slots, or the default grid.
func (c Config) Layout() (*layout.Layout, error) {
	if len(c.Slots) == 0 {
		return layout.Default(), nil
	}
	slots := make([]layout.Slot, 0, len(c.Slots))
	for i, s := range c.Slots {
		lo, err := position(s.Min)
		if err != nil {
			return nil, fmt.Errorf("slots[%d].min: %w", i, err)
		}
		hi, err := position(s.Max)
		if err != nil {
			return nil, fmt.Errorf("slots[%d].max: %w", i, err)
		}
		slots = append(slots, layout.Slot{ID: s.ID, Box: layout.Box{Min: lo, Max: hi}})
	}
	l, err := layout.New(slots)
	if err != nil {
		return nil, fmt.Errorf("slots: %w", err)
	}
	return l, nil
}

func position(v []float64) (domain.Position, error) {
	if len(v) != 3 {
		return domain.Position{}, fmt.Errorf("want [x, y, z], got %d values", len(v))
	}
	return domain.Position{X: v[0], Y: v[1], Z: v[2]}, nil
}
