package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/config"
)

func TestNewDefaults(t *testing.T) {
	t.Setenv("TASKFLOW_API_URL", "")
	t.Setenv("TASKFLOW_LOG_FILE", "")

	cfg, err := config.New(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultBaseURL, cfg.BaseURL)
	assert.Empty(t, cfg.LogFile)
}

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("TASKFLOW_API_URL", "https://api.example.com")
	t.Setenv("TASKFLOW_LOG_FILE", "/tmp/taskflow.log")

	cfg, err := config.New(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, "/tmp/taskflow.log", cfg.LogFile)
}

func TestDefaultConfigDirUsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, filepath.Join("/custom/config", config.AppName), config.DefaultConfigDir())
}

func TestSessionRoundTrip(t *testing.T) {
	cfg := &config.Config{Dir: filepath.Join(t.TempDir(), "taskflow")}
	assert.False(t, cfg.HasSession())

	session := &config.Session{
		AccessToken: "tok",
		TokenType:   "bearer",
		UserID:      "u1",
		Email:       "a@b.c",
	}
	require.NoError(t, cfg.SaveSession(session))
	assert.True(t, cfg.HasSession())

	loaded, err := cfg.LoadSession()
	require.NoError(t, err)
	assert.Equal(t, session, loaded)

	require.NoError(t, cfg.ClearSession())
	assert.False(t, cfg.HasSession())

	// Clearing an already-clear session is not an error.
	require.NoError(t, cfg.ClearSession())
}

func TestSessionFileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}
	cfg := &config.Config{Dir: t.TempDir()}
	require.NoError(t, cfg.SaveSession(&config.Session{AccessToken: "tok"}))

	info, err := os.Stat(cfg.SessionPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadSessionRejectsEmptyToken(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	require.NoError(t, os.WriteFile(cfg.SessionPath(), []byte(`{"access_token":""}`), 0600))

	_, err := cfg.LoadSession()
	assert.Error(t, err)
}
