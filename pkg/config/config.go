// Package config reads sortrid settings from the environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvDictDir   = "SORTRID_DICT_DIR"
	EnvPresetDir = "SORTRID_PRESET_DIR"
	EnvLogLevel  = "LOG_LEVEL"
)

// Config holds application configuration
type Config struct {
	DictDir   string
	PresetDir string
	LogLevel  string
}

// Load reads a .env file from the working directory, if any, then the
// environment. Unset directories default to dictionaries/ and presets/
// beside the executable.
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv(baseDir())
}

// FromEnv reads configuration from environment variables with defaults under base.
func FromEnv(base string) *Config {
	return &Config{
		DictDir:   getEnv(EnvDictDir, filepath.Join(base, "dictionaries")),
		PresetDir: getEnv(EnvPresetDir, filepath.Join(base, "presets")),
		LogLevel:  getEnv(EnvLogLevel, "info"),
	}
}

func baseDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
