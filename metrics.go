package tracktable

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordAssemble is called after each assembly run.
	// points is the number of stream points consumed, trajectories the
	// number emitted, duration the total time taken.
	RecordAssemble(points, trajectories int, duration time.Duration, err error)

	// RecordExtract is called after each feature-extraction run.
	RecordExtract(trajectories int, duration time.Duration, err error)

	// RecordQuery is called after each nearest-neighbor query.
	// k is the number of neighbors requested.
	RecordQuery(k int, duration time.Duration, err error)
}

var (
	_ MetricsCollector = NoopMetricsCollector{}
	_ MetricsCollector = (*BasicMetricsCollector)(nil)
)

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAssemble(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordExtract(int, time.Duration, error)      {}
func (NoopMetricsCollector) RecordQuery(int, time.Duration, error)        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AssembleCount      atomic.Int64
	AssembleErrors     atomic.Int64
	AssemblePoints     atomic.Int64
	AssembleEmitted    atomic.Int64
	AssembleTotalNanos atomic.Int64
	ExtractCount       atomic.Int64
	ExtractErrors      atomic.Int64
	ExtractTotalNanos  atomic.Int64
	QueryCount         atomic.Int64
	QueryErrors        atomic.Int64
	QueryTotalNanos    atomic.Int64
}

// RecordAssemble implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAssemble(points, trajectories int, duration time.Duration, err error) {
	b.AssembleCount.Add(1)
	b.AssemblePoints.Add(int64(points))
	b.AssembleEmitted.Add(int64(trajectories))
	b.AssembleTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.AssembleErrors.Add(1)
	}
}

// RecordExtract implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExtract(trajectories int, duration time.Duration, err error) {
	b.ExtractCount.Add(1)
	b.ExtractTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ExtractErrors.Add(1)
	}
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(k int, duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.QueryErrors.Add(1)
	}
}
