package request

import (
	"fmt"

	"github.com/erraggy/paramprep/oaserrors"
	"github.com/erraggy/paramprep/param"
)

// DefaultMaxBodySize bounds the request body read by Prepare.
const DefaultMaxBodySize int64 = 10 << 20

// Option is a functional option for configuring request preparation.
type Option func(*config) error

type config struct {
	logger      param.Logger
	maxDepth    int
	maxBodySize int64
	strictQuery bool
}

func defaultConfig() *config {
	return &config{
		logger:      param.NopLogger{},
		maxBodySize: DefaultMaxBodySize,
	}
}

func newConfig(opts []Option) (*config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// contextOptions translates the configuration into per-location context options.
func (c *config) contextOptions() []param.ContextOption {
	return []param.ContextOption{param.WithLogger(c.logger), param.WithMaxDepth(c.maxDepth)}
}

// WithLogger sets the logger handed to every location's context.
func WithLogger(l param.Logger) Option {
	return func(c *config) error {
		if l == nil {
			return &oaserrors.ConfigError{Option: "WithLogger", Message: "logger cannot be nil"}
		}
		c.logger = l
		return nil
	}
}

// WithMaxDepth sets the nesting limit of every location's context.
func WithMaxDepth(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return &oaserrors.ConfigError{Option: "WithMaxDepth", Value: n, Message: "must be positive"}
		}
		c.maxDepth = n
		return nil
	}
}

// WithMaxBodySize sets the maximum request body size in bytes.
// Default: 10 MiB.
func WithMaxBodySize(n int64) Option {
	return func(c *config) error {
		if n <= 0 {
			return &oaserrors.ConfigError{Option: "WithMaxBodySize", Value: n, Message: fmt.Sprintf("must be positive, got %d", n)}
		}
		c.maxBodySize = n
		return nil
	}
}

// WithStrictQuery rejects query parameters that no definition declares.
func WithStrictQuery(strict bool) Option {
	return func(c *config) error {
		c.strictQuery = strict
		return nil
	}
}
