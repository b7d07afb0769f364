package snapshot

import (
	"github.com/hupe1980/symtab"
	"github.com/hupe1980/symtab/codec"
)

type options struct {
	codec       string
	compression Compression
	level       int
	logger      *symtab.Logger
	resolver    []symtab.Option
}

// Option configures snapshot encoding and decoding.
type Option func(*options)

func defaultOptions() options {
	return options{
		codec:       codec.BinaryName,
		compression: None,
		logger:      symtab.NoopLogger(),
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithCodec selects the payload encoding by name: "binary" (default),
// "json", "go-json" or "jsoniter". Readers ignore it and use the name in the
// header.
func WithCodec(name string) Option {
	return func(o *options) {
		o.codec = name
	}
}

// WithCompression selects the payload compression. Default: None.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithCompressionLevel sets the compression level.
// For Zstd it is the zstd level (1-22); for LZ4 it selects high-compression
// mode with depth 1-9. 0 uses the algorithm default.
func WithCompressionLevel(level int) Option {
	return func(o *options) {
		o.level = max(0, min(level, 255))
	}
}

// WithLogger sets the logger for snapshot operations.
// If nil, logging is disabled.
func WithLogger(l *symtab.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = symtab.NoopLogger()
		}
		o.logger = l
	}
}

// WithResolverOptions passes options to the resolver built on decode,
// e.g. symtab.WithSymbolLimit or symtab.WithMetricsCollector.
func WithResolverOptions(opts ...symtab.Option) Option {
	return func(o *options) {
		o.resolver = append(o.resolver, opts...)
	}
}
