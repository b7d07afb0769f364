package symtab

type options struct {
	capacity int
	limit    Symbol
	logger   *Logger
	metrics  MetricsCollector
}

func defaultOptions() options {
	return options{
		limit:   MaxSymbol,
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
}

// Option configures a Builder, and the Builder that decoding uses internally.
type Option func(*options)

// WithCapacity pre-sizes the builder for n distinct strings.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithSymbolLimit caps the largest symbol the builder may assign.
//
// Interning a new string once the limit is reached fails with
// ErrSymbolOverflow. Zero keeps the default MaxSymbol.
func WithSymbolLimit(limit Symbol) Option {
	return func(o *options) {
		if limit == Empty {
			limit = MaxSymbol
		}
		o.limit = limit
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector. If nil is passed, metrics are disabled.
func WithMetricsCollector(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}
