// Package config loads the user's settings document: built-in
// defaults, overlaid by an optional JSON settings file, overlaid by
// OSARAI_* environment variables. The file is validated against a
// JSON schema before anything is unmarshalled, so a malformed file
// fails with a message naming the offending constraint instead of a
// half-applied config.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ayane/osarai/internal/srs"
)

// Config is the full settings document: the scheduling knobs the
// engine consumes plus the app-level fields around them.
type Config struct {
	Settings srs.Settings
	// DBPath overrides the default database location when non-empty.
	DBPath string
	// DefaultCategories seeds workbook imports that carry sheets with
	// no recognizable name. Purely advisory.
	DefaultCategories []string
}

// fileDoc is the JSON shape of the settings file. Every field is
// optional; absent fields keep their defaults.
type fileDoc struct {
	DailyNewItemsLimit *int     `json:"daily_new_items_limit"`
	DailyReviewLimit   *int     `json:"daily_review_limit"`
	EaseBonus          *float64 `json:"ease_bonus"`
	IntervalMultiplier *float64 `json:"interval_multiplier"`
	LapseNewInterval   *float64 `json:"lapse_new_interval"`
	RequiredAccuracy   *float64 `json:"required_accuracy"`
	DBPath             *string  `json:"db_path"`
	DefaultCategories  []string `json:"default_categories"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Settings: srs.DefaultSettings(),
		DefaultCategories: []string{
			"vocabulary", "kanji", "grammar", "reading", "listening",
		},
	}
}

// SettingsPath resolves the settings file location in priority order:
// 1. OSARAI_SETTINGS environment variable
// 2. $XDG_CONFIG_HOME/osarai/settings.json
// 3. ~/.config/osarai/settings.json
func SettingsPath() (string, error) {
	if p := os.Getenv("OSARAI_SETTINGS"); p != "" {
		return p, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, "osarai", "settings.json"), nil
}

// Load builds the effective configuration: defaults, then the
// settings file at the resolved path (a missing file is fine), then
// environment overrides, finishing with range validation.
func Load() (Config, error) {
	path, err := SettingsPath()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(path)
}

// LoadFrom is Load with an explicit settings file path.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// No settings file: defaults plus env.
	case err != nil:
		return Config{}, fmt.Errorf("read settings file: %w", err)
	default:
		if err := applyFile(&cfg, raw); err != nil {
			return Config{}, fmt.Errorf("settings file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Settings.Validate(); err != nil {
		return Config{}, fmt.Errorf("settings: %w", err)
	}
	return cfg, nil
}

// applyFile validates raw against the schema and overlays the decoded
// document onto cfg.
func applyFile(cfg *Config, raw []byte) error {
	if err := validateSettings(raw); err != nil {
		return err
	}

	var doc fileDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	if doc.DailyNewItemsLimit != nil {
		cfg.Settings.DailyNewItemsLimit = *doc.DailyNewItemsLimit
	}
	if doc.DailyReviewLimit != nil {
		cfg.Settings.DailyReviewLimit = *doc.DailyReviewLimit
	}
	if doc.EaseBonus != nil {
		cfg.Settings.EaseBonus = *doc.EaseBonus
	}
	if doc.IntervalMultiplier != nil {
		cfg.Settings.IntervalMultiplier = *doc.IntervalMultiplier
	}
	if doc.LapseNewInterval != nil {
		cfg.Settings.LapseNewInterval = *doc.LapseNewInterval
	}
	if doc.RequiredAccuracy != nil {
		cfg.Settings.RequiredAccuracy = *doc.RequiredAccuracy
	}
	if doc.DBPath != nil {
		cfg.DBPath = *doc.DBPath
	}
	if doc.DefaultCategories != nil {
		cfg.DefaultCategories = doc.DefaultCategories
	}
	return nil
}

// applyEnv overlays OSARAI_* variables onto cfg. A variable that is
// set but unparsable is an error, not a silent fallback.
func applyEnv(cfg *Config) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"OSARAI_DAILY_NEW_ITEMS_LIMIT", &cfg.Settings.DailyNewItemsLimit},
		{"OSARAI_DAILY_REVIEW_LIMIT", &cfg.Settings.DailyReviewLimit},
	}
	for _, v := range ints {
		raw := os.Getenv(v.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", v.key, err)
		}
		*v.dst = n
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"OSARAI_EASE_BONUS", &cfg.Settings.EaseBonus},
		{"OSARAI_INTERVAL_MULTIPLIER", &cfg.Settings.IntervalMultiplier},
		{"OSARAI_LAPSE_NEW_INTERVAL", &cfg.Settings.LapseNewInterval},
		{"OSARAI_REQUIRED_ACCURACY", &cfg.Settings.RequiredAccuracy},
	}
	for _, v := range floats {
		raw := os.Getenv(v.key)
		if raw == "" {
			continue
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", v.key, err)
		}
		*v.dst = f
	}

	return nil
}
