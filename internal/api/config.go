package api

import (
	"os"
	"time"
)

// TokenTTL is how long issued access tokens stay valid.
const TokenTTL = 30 * time.Minute

// Config holds the server configuration, loaded from environment variables.
type Config struct {
	ListenAddr      string
	DBPath          string
	JWTSecret       string
	ShutdownTimeout time.Duration
	AllowSignup     bool
	LogFormat       string // "json" (default) or "text"
	LogLevel        string // "debug", "info" (default), "warn", "error"
}

// LoadConfig reads configuration from environment variables with sensible defaults.
func LoadConfig() Config {
	cfg := Config{
		ListenAddr:      ":8080",
		DBPath:          "./data/tdo.db",
		ShutdownTimeout: 30 * time.Second,
		AllowSignup:     true,
		LogFormat:       "json",
		LogLevel:        "info",
	}

	if v := os.Getenv("TDO_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("TDO_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TDO_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("TDO_SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ShutdownTimeout = d
		}
	}
	if v := os.Getenv("TDO_ALLOW_SIGNUP"); v == "false" || v == "0" {
		cfg.AllowSignup = false
	}
	if v := os.Getenv("TDO_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TDO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg
}
