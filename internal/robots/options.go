package robots

import "github.com/custodia-labs/robots-cli/internal/core/domain"

// config holds the parse options shared by a Matcher.
type config struct {
	contentSignal bool
	maxLineLength int
}

func defaultConfig() config {
	return config{
		contentSignal: ContentSignalSupported,
		maxLineLength: domain.DefaultMaxLineLength,
	}
}

// Option configures a Matcher.
type Option func(*config)

// WithContentSignal enables or disables Content-Signal parsing. Enabling has
// no effect when the extension is not compiled in; a disabled content-signal
// line is treated as an unknown directive.
func WithContentSignal(enabled bool) Option {
	return func(c *config) {
		c.contentSignal = enabled && ContentSignalSupported
	}
}

// WithMaxLineLength sets the line length limit. Non-positive values keep
// the default.
func WithMaxLineLength(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxLineLength = n
		}
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
