package gomap

import "go.uber.org/zap"

const defaultParserCacheSize = 256

type registryConfig struct {
	cacheSize int
	log       *zap.Logger
}

// RegistryOption configures a [Registry].
type RegistryOption func(*registryConfig)

// WithParserCacheSize bounds the number of synthesized parsers kept for
// reuse. Sizes below one are treated as one.
func WithParserCacheSize(n int) RegistryOption {
	return func(c *registryConfig) {
		if n < 1 {
			n = 1
		}
		c.cacheSize = n
	}
}

// WithLogger routes registration events to l.
func WithLogger(l *zap.Logger) RegistryOption {
	return func(c *registryConfig) { c.log = l }
}

func newRegistryConfig(opts []RegistryOption) *registryConfig {
	c := &registryConfig{cacheSize: defaultParserCacheSize, log: zap.NewNop()}
	for _, o := range opts {
		o(c)
	}
	return c
}
