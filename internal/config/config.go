// Package config resolves application configuration from environment
// variables and flags through viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/mvicente/harmonydb/internal/constants"
)

// Config holds all application configuration
type Config struct {
	DBPath        string
	LogLevel      string
	LogFormat     string
	BusyTimeoutMs int
}

// Load resolves configuration with env variables (HARMONYDB_*)
// overriding defaults. Flags bound into viper by the CLI take
// precedence over both.
func Load() *Config {
	v := viper.GetViper()
	v.SetEnvPrefix("HARMONYDB")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("db_path", constants.DefaultDBPath)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("busy_timeout_ms", constants.DefaultBusyTimeoutMs)

	return &Config{
		DBPath:        v.GetString("db_path"),
		LogLevel:      v.GetString("log_level"),
		LogFormat:     v.GetString("log_format"),
		BusyTimeoutMs: v.GetInt("busy_timeout_ms"),
	}
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	if c.DBPath == "" {
		errors = append(errors, "DB_PATH cannot be empty")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of debug, info, warn, error, got: %s", c.LogLevel))
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be text or json, got: %s", c.LogFormat))
	}

	if c.BusyTimeoutMs < 0 {
		errors = append(errors, fmt.Sprintf("BUSY_TIMEOUT_MS cannot be negative, got: %d", c.BusyTimeoutMs))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}
