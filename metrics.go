package symtab

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Only the freeze and decode steps are reported; GetOrIntern and lookups stay
// free of callbacks.
type MetricsCollector interface {
	// RecordBuild is called after each Build with the number of interned
	// strings, the arena size in bytes and the time taken.
	RecordBuild(symbols, arenaBytes int, duration time.Duration)

	// RecordDecode is called after each decode of an encoded table.
	// err is nil if successful.
	RecordDecode(entries int, duration time.Duration, err error)

	// RecordOverflow is called when interning fails because the symbol space is exhausted.
	RecordOverflow()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, int, time.Duration)   {}
func (NoopMetricsCollector) RecordDecode(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordOverflow()                        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// It is safe to share between builders used on different goroutines.
type BasicMetricsCollector struct {
	BuildCount       atomic.Int64
	SymbolsBuilt     atomic.Int64
	ArenaBytesBuilt  atomic.Int64
	BuildTotalNanos  atomic.Int64
	DecodeCount      atomic.Int64
	DecodeErrors     atomic.Int64
	DecodeTotalNanos atomic.Int64
	OverflowCount    atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(symbols, arenaBytes int, duration time.Duration) {
	b.BuildCount.Add(1)
	b.SymbolsBuilt.Add(int64(symbols))
	b.ArenaBytesBuilt.Add(int64(arenaBytes))
	b.BuildTotalNanos.Add(duration.Nanoseconds())
}

// RecordDecode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDecode(_ int, duration time.Duration, err error) {
	b.DecodeCount.Add(1)
	if err != nil {
		b.DecodeErrors.Add(1)
	}
	b.DecodeTotalNanos.Add(duration.Nanoseconds())
}

// RecordOverflow implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOverflow() {
	b.OverflowCount.Add(1)
}

// MetricsStats is a point-in-time copy of BasicMetricsCollector.
type MetricsStats struct {
	BuildCount      int64
	SymbolsBuilt    int64
	ArenaBytesBuilt int64
	AvgBuildNanos   int64
	DecodeCount     int64
	DecodeErrors    int64
	AvgDecodeNanos  int64
	OverflowCount   int64
}

// GetStats returns current metrics statistics.
func (b *BasicMetricsCollector) GetStats() MetricsStats {
	stats := MetricsStats{
		BuildCount:      b.BuildCount.Load(),
		SymbolsBuilt:    b.SymbolsBuilt.Load(),
		ArenaBytesBuilt: b.ArenaBytesBuilt.Load(),
		DecodeCount:     b.DecodeCount.Load(),
		DecodeErrors:    b.DecodeErrors.Load(),
		OverflowCount:   b.OverflowCount.Load(),
	}
	if stats.BuildCount > 0 {
		stats.AvgBuildNanos = b.BuildTotalNanos.Load() / stats.BuildCount
	}
	if stats.DecodeCount > 0 {
		stats.AvgDecodeNanos = b.DecodeTotalNanos.Load() / stats.DecodeCount
	}
	return stats
}
