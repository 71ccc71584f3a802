package config

import (
	"github.com/riverfjs/tghtml/internal/prompt"
)

const (
	// DefaultBufferSize matches the prompt buffer of the device firmware.
	DefaultBufferSize = 16 * 1024

	// DefaultHistoryBufferSize bounds the serialized message history.
	DefaultHistoryBufferSize = 32 * 1024

	// MaxTelegramMessageLength is Telegram's hard limit for one message.
	MaxTelegramMessageLength = 4096

	DefaultConcurrency = 4
	DefaultLogLevel    = "info"
)

// Environment variables that override the file.
const (
	EnvWorkspace        = "TGHTML_WORKSPACE"
	EnvLogLevel         = "TGHTML_LOG_LEVEL"
	EnvMaxMessageLength = "TGHTML_MAX_MESSAGE_LENGTH"
)

// Default returns the configuration used before the file is applied.
func Default() *Config {
	bootstrap := make([]prompt.Bootstrap, len(prompt.DefaultBootstrap))
	copy(bootstrap, prompt.DefaultBootstrap)

	return &Config{
		Workspace: ".",
		Prompt: PromptConfig{
			Name:       prompt.DefaultName,
			Bootstrap:  bootstrap,
			RecentDays: prompt.DefaultRecentDays,
			BufferSize: DefaultBufferSize,
		},
		History: HistoryConfig{
			BufferSize: DefaultHistoryBufferSize,
		},
		Telegram: TelegramConfig{
			MaxMessageLength: MaxTelegramMessageLength,
			Concurrency:      DefaultConcurrency,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}
