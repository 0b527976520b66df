package stitchgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordBuild is called after a palette index is built.
	// entries is the palette size, err is nil if successful.
	RecordBuild(entries int, duration time.Duration, err error)

	// RecordReduce is called after colour reduction.
	// colors is the number of distinct colours kept.
	RecordReduce(colors int, duration time.Duration, err error)

	// RecordRecolor is called after each recolor job.
	// hits and misses are lookup cache counters; misses equal index traversals.
	RecordRecolor(pixels int, hits, misses int64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, time.Duration, error)                 {}
func (NoopMetricsCollector) RecordReduce(int, time.Duration, error)                {}
func (NoopMetricsCollector) RecordRecolor(int, int64, int64, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount        atomic.Int64
	BuildErrors       atomic.Int64
	BuildEntries      atomic.Int64
	ReduceCount       atomic.Int64
	ReduceErrors      atomic.Int64
	RecolorCount      atomic.Int64
	RecolorErrors     atomic.Int64
	RecolorPixels     atomic.Int64
	RecolorTotalNanos atomic.Int64
	CacheHits         atomic.Int64
	CacheMisses       atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(entries int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	if err != nil {
		b.BuildErrors.Add(1)
		return
	}
	b.BuildEntries.Add(int64(entries))
}

// RecordReduce implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReduce(colors int, duration time.Duration, err error) {
	b.ReduceCount.Add(1)
	if err != nil {
		b.ReduceErrors.Add(1)
	}
}

// RecordRecolor implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRecolor(pixels int, hits, misses int64, duration time.Duration, err error) {
	b.RecolorCount.Add(1)
	b.RecolorTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RecolorErrors.Add(1)
		return
	}
	b.RecolorPixels.Add(int64(pixels))
	b.CacheHits.Add(hits)
	b.CacheMisses.Add(misses)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:      b.BuildCount.Load(),
		BuildErrors:     b.BuildErrors.Load(),
		BuildEntries:    b.BuildEntries.Load(),
		ReduceCount:     b.ReduceCount.Load(),
		ReduceErrors:    b.ReduceErrors.Load(),
		RecolorCount:    b.RecolorCount.Load(),
		RecolorErrors:   b.RecolorErrors.Load(),
		RecolorPixels:   b.RecolorPixels.Load(),
		RecolorAvgNanos: b.getAvgRecolorNanos(),
		CacheHits:       b.CacheHits.Load(),
		CacheMisses:     b.CacheMisses.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgRecolorNanos() int64 {
	count := b.RecolorCount.Load()
	if count == 0 {
		return 0
	}
	return b.RecolorTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount      int64
	BuildErrors     int64
	BuildEntries    int64
	ReduceCount     int64
	ReduceErrors    int64
	RecolorCount    int64
	RecolorErrors   int64
	RecolorPixels   int64
	RecolorAvgNanos int64
	CacheHits       int64
	CacheMisses     int64
}
