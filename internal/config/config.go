package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/treykane/cli-gearing/internal/gearing"
	"github.com/treykane/cli-gearing/internal/logging"
)

const (
	configDirName  = ".cli-gearing"
	configFileName = "config.json"
)

// Theme preferences.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

var ErrNotConfigured = errors.New("cli-gearing is not configured")

var log = logging.New("config")

// Config stores user-defined settings. Calculator inputs are not part of it;
// those live in the key/value store.
type Config struct {
	// StorePath overrides the key/value store location. Empty selects the
	// user data directory.
	StorePath string `json:"store_path,omitempty"`
	// RolloutUnit is mm, cm or in.
	RolloutUnit string `json:"rollout_unit"`
	// Theme is the initial theme when none was persisted: auto, light or dark.
	Theme string `json:"theme"`
	// LogToFile sends logs to a rotating file while the UI is running.
	LogToFile bool `json:"log_to_file"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		RolloutUnit: string(gearing.UnitMillimetre),
		Theme:       ThemeAuto,
		LogToFile:   true,
	}
}

// ConfigPath returns the configuration file path.
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// Exists reports whether the config file exists.
func Exists() (bool, error) {
	path, err := ConfigPath()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat config path: %w", err)
}

// Load reads and validates the saved configuration. A missing file returns
// Default() together with ErrNotConfigured.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Default(), err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), ErrNotConfigured
		}
		return Default(), fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Default(), err
	}

	log.Debug("loaded config", "path", path)
	return cfg, nil
}

// Save writes configuration to disk.
func Save(cfg Config) error {
	if err := cfg.normalize(); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	log.Info("saved config", "path", path)
	return nil
}

// Unit returns the parsed rollout unit.
func (c Config) Unit() gearing.Unit {
	u, err := gearing.ParseUnit(c.RolloutUnit)
	if err != nil {
		return gearing.UnitMillimetre
	}
	return u
}

func (c *Config) normalize() error {
	u, err := gearing.ParseUnit(c.RolloutUnit)
	if err != nil {
		return fmt.Errorf("invalid rollout_unit: %w", err)
	}
	c.RolloutUnit = string(u)

	switch theme := strings.ToLower(strings.TrimSpace(c.Theme)); theme {
	case "":
		c.Theme = ThemeAuto
	case ThemeAuto, ThemeLight, ThemeDark:
		c.Theme = theme
	default:
		return fmt.Errorf("invalid theme %q (want auto, light or dark)", c.Theme)
	}

	if strings.TrimSpace(c.StorePath) == "" {
		c.StorePath = ""
		return nil
	}
	p, err := NormalizePath(c.StorePath)
	if err != nil {
		return fmt.Errorf("invalid store_path: %w", err)
	}
	c.StorePath = p
	return nil
}

// NormalizePath expands and normalizes a filesystem path.
func NormalizePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is required")
	}

	expanded, err := expandHome(trimmed)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}

	return filepath.Clean(abs), nil
}

func expandHome(path string) (string, error) {
	if path == "~" {
		return os.UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
	}
	return path, nil
}
