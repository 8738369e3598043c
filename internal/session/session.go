// Package session manages the persisted login credential and server
// address for the CLI. The credential is read once at startup, injected
// into the API client, and cleared on logout or when the server reports
// the token expired.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Credentials stores authentication state at ~/.config/tdo/auth.json.
type Credentials struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	ServerURL   string `json:"server_url"`
}

// Token implements apiclient.TokenSource.
func (c *Credentials) Token() string {
	if c == nil {
		return ""
	}
	return c.AccessToken
}

// Config holds non-credential settings at ~/.config/tdo/config.json.
type Config struct {
	ServerURL string `json:"server_url,omitempty"`
}

const defaultServerURL = "http://localhost:8080"

// configDir is overridable in tests.
var configDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	dir := filepath.Join(home, ".config", "tdo")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return dir, nil
}

// Load reads stored credentials. Returns nil (no error) when the user
// has never logged in.
func Load() (*Credentials, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, "auth.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// Save writes credentials with owner-only permissions.
func Save(creds *Credentials) error {
	dir, err := configDir()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "auth.json"), data, 0600)
}

// Clear removes the stored credential. Called on logout and on any 401.
func Clear() error {
	dir, err := configDir()
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(dir, "auth.json"))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// LoadConfig reads the non-credential config, returning zero values when
// the file is absent.
func LoadConfig() (*Config, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig writes the non-credential config.
func SaveConfig(cfg *Config) error {
	dir, err := configDir()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// ServerURL resolves the server address.
// Priority: TDO_SERVER_URL env > stored credential > config file > default.
func ServerURL(creds *Credentials) string {
	if v := os.Getenv("TDO_SERVER_URL"); v != "" {
		return v
	}
	if creds != nil && creds.ServerURL != "" {
		return creds.ServerURL
	}
	if cfg, err := LoadConfig(); err == nil && cfg.ServerURL != "" {
		return cfg.ServerURL
	}
	return defaultServerURL
}
