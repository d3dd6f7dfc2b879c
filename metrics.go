package pine

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    saveCounter   prometheus.Counter
//	    loadHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordSave(duration time.Duration, err error) {
//	    p.saveCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordSave is called after each save operation.
	// duration is the total time taken, err is nil if successful.
	RecordSave(duration time.Duration, err error)

	// RecordLoad is called after each load operation.
	// found is false when the id was unknown.
	RecordLoad(duration time.Duration, found bool, err error)

	// RecordDelete is called after each delete operation.
	RecordDelete(duration time.Duration, err error)

	// RecordClusterCreated is called whenever a save opens a new cluster.
	RecordClusterCreated()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSave(time.Duration, error)       {}
func (NoopMetricsCollector) RecordLoad(time.Duration, bool, error) {}
func (NoopMetricsCollector) RecordDelete(time.Duration, error)     {}
func (NoopMetricsCollector) RecordClusterCreated()                 {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SaveCount       atomic.Int64
	SaveErrors      atomic.Int64
	SaveTotalNanos  atomic.Int64
	LoadCount       atomic.Int64
	LoadMisses      atomic.Int64
	LoadErrors      atomic.Int64
	LoadTotalNanos  atomic.Int64
	DeleteCount     atomic.Int64
	DeleteErrors    atomic.Int64
	ClustersCreated atomic.Int64
}

// RecordSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSave(duration time.Duration, err error) {
	b.SaveCount.Add(1)
	b.SaveTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SaveErrors.Add(1)
	}
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(duration time.Duration, found bool, err error) {
	b.LoadCount.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	switch {
	case err != nil:
		b.LoadErrors.Add(1)
	case !found:
		b.LoadMisses.Add(1)
	}
}

// RecordDelete implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDelete(duration time.Duration, err error) {
	b.DeleteCount.Add(1)
	if err != nil {
		b.DeleteErrors.Add(1)
	}
}

// RecordClusterCreated implements MetricsCollector.
func (b *BasicMetricsCollector) RecordClusterCreated() {
	b.ClustersCreated.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SaveCount:       b.SaveCount.Load(),
		SaveErrors:      b.SaveErrors.Load(),
		SaveAvgNanos:    avgNanos(b.SaveTotalNanos.Load(), b.SaveCount.Load()),
		LoadCount:       b.LoadCount.Load(),
		LoadMisses:      b.LoadMisses.Load(),
		LoadErrors:      b.LoadErrors.Load(),
		LoadAvgNanos:    avgNanos(b.LoadTotalNanos.Load(), b.LoadCount.Load()),
		DeleteCount:     b.DeleteCount.Load(),
		DeleteErrors:    b.DeleteErrors.Load(),
		ClustersCreated: b.ClustersCreated.Load(),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SaveCount       int64
	SaveErrors      int64
	SaveAvgNanos    int64
	LoadCount       int64
	LoadMisses      int64
	LoadErrors      int64
	LoadAvgNanos    int64
	DeleteCount     int64
	DeleteErrors    int64
	ClustersCreated int64
}
