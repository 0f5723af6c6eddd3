package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Session is the persisted session credential. Written on login, removed on
// logout; every authenticated request carries its token.
type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
}

// LoadSession reads the persisted session.
func (c *Config) LoadSession() (*Session, error) {
	data, err := os.ReadFile(c.SessionPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid session file: %w", err)
	}
	if s.AccessToken == "" {
		return nil, fmt.Errorf("session file has no token")
	}
	return &s, nil
}

// SaveSession writes the session with mode 0600.
func (c *Config) SaveSession(s *Session) error {
	if err := c.EnsureDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.SessionPath(), data, 0600)
}

// ClearSession removes the persisted session. Missing file is not an error.
func (c *Config) ClearSession() error {
	err := os.Remove(c.SessionPath())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
