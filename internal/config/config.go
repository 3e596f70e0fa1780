package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/spf13/viper"
)

var (
	ErrInvalidChunkSize = errors.New("chunk size must be between 4KB and 1GB")
	ErrInvalidLogLevel  = errors.New("log level must be one of debug, info, warn, error")
)

const (
	minChunkSize = 4 * datasize.KB
	maxChunkSize = 1 * datasize.GB
)

// Config holds all application configuration
type Config struct {
	Transfer TransferConfig `json:"transfer" mapstructure:"transfer"`
	Log      LogConfig      `json:"log" mapstructure:"log"`
}

// TransferConfig holds settings for the move loop
type TransferConfig struct {
	ChunkSize datasize.ByteSize `json:"chunk_size" mapstructure:"chunk_size"`
	Progress  bool              `json:"progress" mapstructure:"progress"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `json:"level" mapstructure:"level"`
	File  string `json:"file" mapstructure:"file"`
}

// NewDefaultConfig returns a configuration with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Transfer: TransferConfig{
			ChunkSize: 1 * datasize.MB, // 1 MiB
			Progress:  true,
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
	}
}

// Load builds a configuration from defaults overridden by whatever v holds
// (config file, SPARSEMV_* environment, bound flags).
func Load(v *viper.Viper) (*Config, error) {
	cfg := NewDefaultConfig()

	if raw := strings.TrimSpace(v.GetString("transfer.chunk_size")); raw != "" {
		var size datasize.ByteSize
		if err := size.UnmarshalText([]byte(raw)); err != nil {
			return nil, fmt.Errorf("failed to parse chunk size %q: %w", raw, err)
		}
		cfg.Transfer.ChunkSize = size
	}
	if v.IsSet("transfer.progress") {
		cfg.Transfer.Progress = v.GetBool("transfer.progress")
	}
	if level := v.GetString("log.level"); level != "" {
		cfg.Log.Level = strings.ToLower(level)
	}
	cfg.Log.File = v.GetString("log.file")

	return cfg, nil
}

// Validate ensures the configuration is valid
func (c *Config) Validate() error {
	if c.Transfer.ChunkSize < minChunkSize || c.Transfer.ChunkSize > maxChunkSize {
		return ErrInvalidChunkSize
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel converts the configured level name to a slog.Level
func (c *Config) SlogLevel() (slog.Level, error) {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, ErrInvalidLogLevel
}
