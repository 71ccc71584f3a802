// Package config loads tghtml settings from a YAML file with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/riverfjs/tghtml/internal/prompt"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Config is the root configuration.
type Config struct {
	// Workspace is the directory holding bootstrap files and memory.
	Workspace string `yaml:"workspace"`

	Prompt   PromptConfig   `yaml:"prompt"`
	History  HistoryConfig  `yaml:"history"`
	Telegram TelegramConfig `yaml:"telegram"`
	Log      LogConfig      `yaml:"log"`
}

// PromptConfig configures system prompt assembly.
type PromptConfig struct {
	Name string `yaml:"name"`

	// Template is an inline prompt template. TemplateFile, relative to the
	// workspace, is used when Template is empty.
	Template     string `yaml:"template"`
	TemplateFile string `yaml:"template_file"`

	Bootstrap  []prompt.Bootstrap `yaml:"bootstrap"`
	RecentDays int                `yaml:"recent_days"`

	// BufferSize is the capacity of the bounded prompt buffer.
	BufferSize int `yaml:"buffer_size"`
}

// HistoryConfig configures message history serialization.
type HistoryConfig struct {
	BufferSize int `yaml:"buffer_size"`
}

// TelegramConfig configures message splitting.
type TelegramConfig struct {
	MaxMessageLength int `yaml:"max_message_length"`
	Concurrency      int `yaml:"concurrency"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Load reads the configuration at path over the defaults. An empty path
// loads defaults only. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if dir := os.Getenv(EnvWorkspace); dir != "" {
		c.Workspace = dir
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Log.Level = level
	}
	if v := os.Getenv(EnvMaxMessageLength); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalid, EnvMaxMessageLength, v)
		}
		c.Telegram.MaxMessageLength = n
	}
	return nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Workspace == "" {
		return fmt.Errorf("%w: workspace is empty", ErrInvalid)
	}
	if c.Prompt.BufferSize <= 0 {
		return fmt.Errorf("%w: prompt.buffer_size must be positive, got %d", ErrInvalid, c.Prompt.BufferSize)
	}
	if c.Prompt.RecentDays < 0 {
		return fmt.Errorf("%w: prompt.recent_days must not be negative, got %d", ErrInvalid, c.Prompt.RecentDays)
	}
	for i, b := range c.Prompt.Bootstrap {
		if b.Path == "" {
			return fmt.Errorf("%w: prompt.bootstrap[%d] has no path", ErrInvalid, i)
		}
	}
	if c.History.BufferSize <= 0 {
		return fmt.Errorf("%w: history.buffer_size must be positive, got %d", ErrInvalid, c.History.BufferSize)
	}
	if n := c.Telegram.MaxMessageLength; n <= 0 || n > MaxTelegramMessageLength {
		return fmt.Errorf("%w: telegram.max_message_length must be in 1..%d, got %d",
			ErrInvalid, MaxTelegramMessageLength, n)
	}
	if c.Telegram.Concurrency <= 0 {
		return fmt.Errorf("%w: telegram.concurrency must be positive, got %d", ErrInvalid, c.Telegram.Concurrency)
	}
	if _, err := c.Log.ParseLevel(); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	return nil
}

// ParseLevel returns the configured zap level.
func (l LogConfig) ParseLevel() (zapcore.Level, error) {
	return zapcore.ParseLevel(l.Level)
}
