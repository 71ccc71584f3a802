package tghtml

import (
	"go.uber.org/zap"
)

// ConvertOptions holds options for Telegramify.
type ConvertOptions struct {
	MaxMessageLength int
	Concurrency      int
	Logger           *zap.Logger
}

// Option is a function that configures ConvertOptions.
type Option func(*ConvertOptions)

// WithMaxMessageLength sets the largest HTML length of one message.
// Values <= 0 fall back to DefaultMaxMessageLength.
func WithMaxMessageLength(n int) Option {
	return func(opts *ConvertOptions) {
		opts.MaxMessageLength = n
	}
}

// WithConcurrency sets how many pieces are converted in parallel.
func WithConcurrency(n int) Option {
	return func(opts *ConvertOptions) {
		opts.Concurrency = n
	}
}

// WithLogger sets the logger used for this call instead of the package Logger.
func WithLogger(logger *zap.Logger) Option {
	return func(opts *ConvertOptions) {
		opts.Logger = logger
	}
}

// defaultConvertOptions returns the default conversion options.
func defaultConvertOptions() *ConvertOptions {
	return &ConvertOptions{
		MaxMessageLength: DefaultMaxMessageLength,
		Concurrency:      DefaultConcurrency,
		Logger:           Logger,
	}
}

// applyOptions applies the given options to the default options.
func applyOptions(opts ...Option) *ConvertOptions {
	options := defaultConvertOptions()
	for _, opt := range opts {
		opt(options)
	}
	if options.MaxMessageLength <= 0 {
		options.MaxMessageLength = DefaultMaxMessageLength
	}
	if options.Concurrency <= 0 {
		options.Concurrency = DefaultConcurrency
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	return options
}
