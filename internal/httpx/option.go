package httpx

import "log/slog"

// Option configures a LoggingRoundTripper.
type Option func(*LoggingRoundTripper)

// WithLogFieldMaxLen truncates dumped requests and responses to n bytes.
func WithLogFieldMaxLen(n int) Option {
	return func(rt *LoggingRoundTripper) {
		rt.logFieldMaxLen = n
	}
}

// WithMasker sets the masker applied to dumped traffic.
func WithMasker(masker Masker) Option {
	return func(rt *LoggingRoundTripper) {
		rt.masker = masker
	}
}

// WithLogger sets the logger. Nil keeps the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(rt *LoggingRoundTripper) {
		if logger != nil {
			rt.logger = logger
		}
	}
}
