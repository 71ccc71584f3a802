package tghtml

const (
	// DefaultMaxMessageLength is Telegram's limit for one text message.
	DefaultMaxMessageLength = 4096

	// DefaultConcurrency bounds how many pieces Telegramify converts at once.
	DefaultConcurrency = 4
)
