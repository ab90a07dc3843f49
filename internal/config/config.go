// Package config resolves where MoodFlow keeps its files and how it logs.
// Values come from the environment, optionally seeded by a .env file.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvDataDir      = "MOODFLOW_DATA_DIR"
	EnvDBFile       = "MOODFLOW_DB_FILE"
	EnvSettingsFile = "MOODFLOW_SETTINGS_FILE"
	EnvLogLevel     = "MOODFLOW_LOG_LEVEL"
	EnvRecentLimit  = "MOODFLOW_RECENT_LIMIT"
)

// Config holds runtime configuration.
type Config struct {
	DataDir      string
	DBFile       string
	SettingsFile string
	LogLevel     string
	RecentLimit  int
}

// Load reads configuration from the environment. The given .env files are
// loaded first (default: .env in the working directory); variables that
// are already set win over file values. A missing .env file is not an error.
func Load(envFiles ...string) *Config {
	_ = godotenv.Load(envFiles...)

	return &Config{
		DataDir:      getEnv(EnvDataDir, "."),
		DBFile:       getEnv(EnvDBFile, "moodflow.db"),
		SettingsFile: getEnv(EnvSettingsFile, "settings.json"),
		LogLevel:     getEnv(EnvLogLevel, "info"),
		RecentLimit:  getEnvInt(EnvRecentLimit, 20),
	}
}

// DBPath returns the entry database location. An absolute DBFile is used
// as is.
func (c *Config) DBPath() string {
	if filepath.IsAbs(c.DBFile) {
		return c.DBFile
	}
	return filepath.Join(c.DataDir, c.DBFile)
}

// SettingsPath returns the settings document location. An absolute
// SettingsFile is used as is.
func (c *Config) SettingsPath() string {
	if filepath.IsAbs(c.SettingsFile) {
		return c.SettingsFile
	}
	return filepath.Join(c.DataDir, c.SettingsFile)
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return defaultVal
}
