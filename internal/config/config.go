// Package config loads runtime configuration from environment variables
// (prefix SOUSCHEF_) and an optional config file, with sane defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the binary needs at startup.
type Config struct {
	Addr     string `mapstructure:"addr"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`

	// LLM credentials; empty endpoint disables all model-backed
	// collaborators (the core state machine does not need them).
	LLMEndpoint string `mapstructure:"llm_endpoint"`
	LLMAPIKey   string `mapstructure:"llm_api_key"`
	LLMModel    string `mapstructure:"llm_model"`

	// ArchivePath is the SQLite completed-session log; empty disables it.
	ArchivePath string `mapstructure:"archive_path"`

	// SessionTTL is how long an untouched session survives before the
	// reaper removes it; zero disables reaping.
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

// Load reads configuration. A souschef.yaml in the working directory is
// honored when present; environment variables override it.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("addr", ":8080")
	v.SetDefault("log_level", "normal")
	v.SetDefault("log_file", ".souschef/souschef.log")
	v.SetDefault("llm_endpoint", "")
	v.SetDefault("llm_api_key", "")
	v.SetDefault("llm_model", "")
	v.SetDefault("archive_path", ".souschef/archive.db")
	v.SetDefault("session_ttl", 0)

	v.SetEnvPrefix("SOUSCHEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("souschef")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
