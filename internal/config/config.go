// Package config handles the configuration directory, environment settings
// and the persisted session credential.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "taskflow"

	// SessionFile is the persisted session credential filename.
	SessionFile = "session.json"

	// DefaultBaseURL is the API base URL when none is configured.
	DefaultBaseURL = "http://localhost:8000"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the TaskFlow API base URL.
	BaseURL string

	// LogFile, when set, enables JSON file logging with rotation.
	LogFile string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a Config with the default or specified config directory.
// Environment is read from the process environment, optionally seeded
// from a .env file in the working directory.
func New(configDir string) (*Config, error) {
	// Missing .env is fine; the process environment still applies.
	_ = godotenv.Load()

	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:     dir,
		BaseURL: getEnv("TASKFLOW_API_URL", DefaultBaseURL),
		LogFile: getEnv("TASKFLOW_LOG_FILE", ""),
	}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SessionPath returns the path to the persisted session file.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Dir, SessionFile)
}

// HasSession checks if a persisted session exists.
func (c *Config) HasSession() bool {
	_, err := os.Stat(c.SessionPath())
	return err == nil
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
