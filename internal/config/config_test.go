package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv unsets every MoodFlow variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvDataDir, EnvDBFile, EnvSettingsFile, EnvLogLevel, EnvRecentLimit} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))

	if cfg.DataDir != "." {
		t.Errorf("DataDir = %q, want .", cfg.DataDir)
	}
	if cfg.DBFile != "moodflow.db" {
		t.Errorf("DBFile = %q, want moodflow.db", cfg.DBFile)
	}
	if cfg.SettingsFile != "settings.json" {
		t.Errorf("SettingsFile = %q, want settings.json", cfg.SettingsFile)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.RecentLimit != 20 {
		t.Errorf("RecentLimit = %d, want 20", cfg.RecentLimit)
	}
	if cfg.DBPath() != "moodflow.db" || cfg.SettingsPath() != "settings.json" {
		t.Errorf("paths = %q, %q", cfg.DBPath(), cfg.SettingsPath())
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv(EnvDataDir, dir)
	t.Setenv(EnvDBFile, "journal.db")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvRecentLimit, "5")

	cfg := Load(filepath.Join(dir, "missing.env"))
	if cfg.DBPath() != filepath.Join(dir, "journal.db") {
		t.Errorf("DBPath = %q", cfg.DBPath())
	}
	if cfg.SettingsPath() != filepath.Join(dir, "settings.json") {
		t.Errorf("SettingsPath = %q", cfg.SettingsPath())
	}
	if cfg.LogLevel != "debug" || cfg.RecentLimit != 5 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "MOODFLOW_DB_FILE=fromfile.db\nMOODFLOW_LOG_LEVEL=warn\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvLogLevel, "error")

	cfg := Load(envFile)
	if cfg.DBFile != "fromfile.db" {
		t.Errorf("DBFile = %q, want value from .env", cfg.DBFile)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q, environment should win over .env", cfg.LogLevel)
	}
}

func TestLoad_InvalidRecentLimit(t *testing.T) {
	clearEnv(t)
	for _, v := range []string{"abc", "0", "-3"} {
		t.Setenv(EnvRecentLimit, v)
		if got := Load(filepath.Join(t.TempDir(), "none.env")).RecentLimit; got != 20 {
			t.Errorf("RecentLimit for %q = %d, want 20", v, got)
		}
	}
}

func TestSettingsPath_Absolute(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "elsewhere.json")
	cfg := &Config{DataDir: "data", SettingsFile: abs}
	if cfg.SettingsPath() != abs {
		t.Errorf("SettingsPath = %q, want %q", cfg.SettingsPath(), abs)
	}
}

func TestDBPath_Absolute(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "elsewhere.db")
	cfg := &Config{DataDir: "data", DBFile: abs}
	if cfg.DBPath() != abs {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath(), abs)
	}
}
