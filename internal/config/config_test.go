package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearEnv blanks every OSARAI_* override for the duration of a test.
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"OSARAI_SETTINGS",
		"OSARAI_DAILY_NEW_ITEMS_LIMIT",
		"OSARAI_DAILY_REVIEW_LIMIT",
		"OSARAI_EASE_BONUS",
		"OSARAI_INTERVAL_MULTIPLIER",
		"OSARAI_LAPSE_NEW_INTERVAL",
		"OSARAI_REQUIRED_ACCURACY",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write settings file: %v", err)
	}
	return path
}

func TestLoadFromMissingFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	want := Default()
	if cfg.Settings != want.Settings {
		t.Errorf("settings = %+v, want defaults %+v", cfg.Settings, want.Settings)
	}
	if len(cfg.DefaultCategories) != len(want.DefaultCategories) {
		t.Errorf("default categories = %v, want %v", cfg.DefaultCategories, want.DefaultCategories)
	}
}

func TestLoadFromFileOverlay(t *testing.T) {
	clearEnv(t)
	path := writeSettings(t, `{
		"daily_review_limit": 40,
		"ease_bonus": 0.1,
		"db_path": "/tmp/osarai-test.db",
		"default_categories": ["vocabulary", "kanji"]
	}`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.Settings.DailyReviewLimit != 40 {
		t.Errorf("daily review limit = %d, want 40", cfg.Settings.DailyReviewLimit)
	}
	if cfg.Settings.EaseBonus != 0.1 {
		t.Errorf("ease bonus = %g, want 0.1", cfg.Settings.EaseBonus)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Settings.DailyNewItemsLimit != Default().Settings.DailyNewItemsLimit {
		t.Errorf("daily new items limit = %d, want default", cfg.Settings.DailyNewItemsLimit)
	}
	if cfg.DBPath != "/tmp/osarai-test.db" {
		t.Errorf("db path = %q", cfg.DBPath)
	}
	if len(cfg.DefaultCategories) != 2 {
		t.Errorf("default categories = %v, want two entries", cfg.DefaultCategories)
	}
}

func TestLoadFromRejectsBadFiles(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `{daily_review_limit: 40}`},
		{"unknown field", `{"daily_reviews": 40}`},
		{"out of range", `{"ease_bonus": 0.5}`},
		{"wrong type", `{"daily_review_limit": "forty"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSettings(t, tt.body)
			if _, err := LoadFrom(path); err == nil {
				t.Errorf("LoadFrom accepted %s", tt.body)
			}
		})
	}
}

func TestLoadFromEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeSettings(t, `{"daily_review_limit": 40}`)
	t.Setenv("OSARAI_DAILY_REVIEW_LIMIT", "15")
	t.Setenv("OSARAI_LAPSE_NEW_INTERVAL", "0.25")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Settings.DailyReviewLimit != 15 {
		t.Errorf("daily review limit = %d, want env value 15", cfg.Settings.DailyReviewLimit)
	}
	if cfg.Settings.LapseNewInterval != 0.25 {
		t.Errorf("lapse new interval = %g, want 0.25", cfg.Settings.LapseNewInterval)
	}
}

func TestLoadFromBadEnvValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("OSARAI_DAILY_REVIEW_LIMIT", "many")

	_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected error for unparsable env override")
	}
	if !strings.Contains(err.Error(), "OSARAI_DAILY_REVIEW_LIMIT") {
		t.Errorf("error %q does not name the variable", err)
	}
}

func TestLoadFromEnvOutOfRange(t *testing.T) {
	clearEnv(t)
	t.Setenv("OSARAI_EASE_BONUS", "0.9")

	if _, err := LoadFrom(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected validation error for out-of-range ease bonus")
	}
}
