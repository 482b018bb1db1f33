package pathnode

import "sync/atomic"

// MetricsCollector defines an interface for collecting node-list metrics.
// Implement this interface to integrate with monitoring systems; package
// prom provides a Prometheus implementation.
//
// Calls happen on the search goroutine. A collector shared by concurrent
// searches must be safe for concurrent use.
type MetricsCollector interface {
	// RecordAllocate is called by CreateNewNode. reused is true when the
	// pending uncommitted node was handed out again.
	RecordAllocate(reused bool)

	// RecordChunkGrow is called after the arena allocated a chunk.
	RecordChunkGrow(chunks int)

	// RecordInsertOpen is called after a node entered the open set.
	RecordInsertOpen()

	// RecordInsertClosed is called after a node entered the closed set.
	RecordInsertClosed()

	// RecordPopOpen is called after a node left the open set.
	RecordPopOpen()

	// RecordReenqueue is called after an open node was queued again.
	RecordReenqueue()

	// RecordRelease is called once when the node list is closed.
	RecordRelease(stats Stats)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAllocate(bool) {}
func (NoopMetricsCollector) RecordChunkGrow(int) {}
func (NoopMetricsCollector) RecordInsertOpen()   {}
func (NoopMetricsCollector) RecordInsertClosed() {}
func (NoopMetricsCollector) RecordPopOpen()      {}
func (NoopMetricsCollector) RecordReenqueue()    {}
func (NoopMetricsCollector) RecordRelease(Stats) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and tests without external dependencies.
type BasicMetricsCollector struct {
	Allocations   atomic.Int64
	Reuses        atomic.Int64
	Chunks        atomic.Int64
	OpenInserts   atomic.Int64
	ClosedInserts atomic.Int64
	OpenPops      atomic.Int64
	Reenqueues    atomic.Int64
	Releases      atomic.Int64
	NodesReleased atomic.Int64
}

// RecordAllocate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAllocate(reused bool) {
	if reused {
		b.Reuses.Add(1)
		return
	}
	b.Allocations.Add(1)
}

// RecordChunkGrow implements MetricsCollector.
func (b *BasicMetricsCollector) RecordChunkGrow(int) {
	b.Chunks.Add(1)
}

// RecordInsertOpen implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsertOpen() {
	b.OpenInserts.Add(1)
}

// RecordInsertClosed implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsertClosed() {
	b.ClosedInserts.Add(1)
}

// RecordPopOpen implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPopOpen() {
	b.OpenPops.Add(1)
}

// RecordReenqueue implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReenqueue() {
	b.Reenqueues.Add(1)
}

// RecordRelease implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRelease(stats Stats) {
	b.Releases.Add(1)
	b.NodesReleased.Add(int64(stats.Total))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		Allocations:   b.Allocations.Load(),
		Reuses:        b.Reuses.Load(),
		Chunks:        b.Chunks.Load(),
		OpenInserts:   b.OpenInserts.Load(),
		ClosedInserts: b.ClosedInserts.Load(),
		OpenPops:      b.OpenPops.Load(),
		Reenqueues:    b.Reenqueues.Load(),
		Releases:      b.Releases.Load(),
		NodesReleased: b.NodesReleased.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	Allocations   int64
	Reuses        int64
	Chunks        int64
	OpenInserts   int64
	ClosedInserts int64
	OpenPops      int64
	Reenqueues    int64
	Releases      int64
	NodesReleased int64
}
