package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/riverfjs/tghtml/internal/prompt"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tghtml.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 4096, cfg.Telegram.MaxMessageLength)
	assert.Equal(t, prompt.DefaultBootstrap, cfg.Prompt.Bootstrap)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
workspace: /srv/mimi
prompt:
  name: Pico
  template_file: prompt.tmpl
  bootstrap:
    - path: SOUL.md
      heading: Soul
  recent_days: 5
telegram:
  max_message_length: 2000
log:
  level: debug
  development: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/mimi", cfg.Workspace)
	assert.Equal(t, "Pico", cfg.Prompt.Name)
	assert.Equal(t, "prompt.tmpl", cfg.Prompt.TemplateFile)
	assert.Equal(t, []prompt.Bootstrap{{Path: "SOUL.md", Heading: "Soul"}}, cfg.Prompt.Bootstrap)
	assert.Equal(t, 5, cfg.Prompt.RecentDays)
	assert.Equal(t, 2000, cfg.Telegram.MaxMessageLength)
	assert.True(t, cfg.Log.Development)

	// 未设置的字段保留默认值
	assert.Equal(t, DefaultBufferSize, cfg.Prompt.BufferSize)
	assert.Equal(t, DefaultConcurrency, cfg.Telegram.Concurrency)

	level, err := cfg.Log.ParseLevel()
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "workspace: /from/file\n")
	t.Setenv(EnvWorkspace, "/from/env")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvMaxMessageLength, "1024")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Workspace)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 1024, cfg.Telegram.MaxMessageLength)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "telegram: [1, 2"))
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalid)
	})

	t.Run("bad env number", func(t *testing.T) {
		t.Setenv(EnvMaxMessageLength, "lots")
		_, err := Load("")
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("invalid value", func(t *testing.T) {
		_, err := Load(writeConfig(t, "telegram:\n  max_message_length: 5000\n"))
		assert.ErrorIs(t, err, ErrInvalid)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty workspace", func(c *Config) { c.Workspace = "" }},
		{"zero prompt buffer", func(c *Config) { c.Prompt.BufferSize = 0 }},
		{"negative recent days", func(c *Config) { c.Prompt.RecentDays = -1 }},
		{"bootstrap without path", func(c *Config) { c.Prompt.Bootstrap = []prompt.Bootstrap{{Heading: "X"}} }},
		{"zero history buffer", func(c *Config) { c.History.BufferSize = 0 }},
		{"zero message length", func(c *Config) { c.Telegram.MaxMessageLength = 0 }},
		{"message length over limit", func(c *Config) { c.Telegram.MaxMessageLength = 4097 }},
		{"zero concurrency", func(c *Config) { c.Telegram.Concurrency = 0 }},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }},
	}

	require.NoError(t, Default().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}
