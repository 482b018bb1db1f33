// Package prom exports node-list metrics to Prometheus.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hupe1980/pathnode"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "pathnode"

// Collector implements pathnode.MetricsCollector with Prometheus counters
// and histograms. One Collector is meant to be shared by all searches of a
// process.
type Collector struct {
	allocations    *prometheus.CounterVec
	chunks         prometheus.Counter
	transitions    *prometheus.CounterVec
	releases       prometheus.Counter
	nodesPerSearch prometheus.Histogram
	bytesPerSearch prometheus.Histogram
}

var _ pathnode.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers its metrics with reg. A nil reg
// leaves the metrics unregistered.
func New(reg prometheus.Registerer, namespace string) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	factory := promauto.With(reg)

	return &Collector{
		allocations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "node_allocations_total",
				Help:      "Nodes handed out by CreateNewNode, by whether the pending node was reused",
			},
			[]string{"kind"},
		),
		chunks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "arena_chunks_total",
			Help:      "Arena chunks allocated",
		}),
		transitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "node_transitions_total",
				Help:      "Node state transitions by operation",
			},
			[]string{"op"},
		),
		releases: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_released_total",
			Help:      "Node lists closed",
		}),
		nodesPerSearch: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_nodes",
			Help:      "Nodes allocated per search",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 10),
		}),
		bytesPerSearch: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_reserved_bytes",
			Help:      "Node storage reserved per search",
			Buckets:   prometheus.ExponentialBuckets(64<<10, 4, 10),
		}),
	}
}

// RecordAllocate implements pathnode.MetricsCollector.
func (c *Collector) RecordAllocate(reused bool) {
	kind := "new"
	if reused {
		kind = "reused"
	}
	c.allocations.WithLabelValues(kind).Inc()
}

// RecordChunkGrow implements pathnode.MetricsCollector.
func (c *Collector) RecordChunkGrow(int) {
	c.chunks.Inc()
}

// RecordInsertOpen implements pathnode.MetricsCollector.
func (c *Collector) RecordInsertOpen() {
	c.transitions.WithLabelValues("insert_open").Inc()
}

// RecordInsertClosed implements pathnode.MetricsCollector.
func (c *Collector) RecordInsertClosed() {
	c.transitions.WithLabelValues("insert_closed").Inc()
}

// RecordPopOpen implements pathnode.MetricsCollector.
func (c *Collector) RecordPopOpen() {
	c.transitions.WithLabelValues("pop_open").Inc()
}

// RecordReenqueue implements pathnode.MetricsCollector.
func (c *Collector) RecordReenqueue() {
	c.transitions.WithLabelValues("reenqueue").Inc()
}

// RecordRelease implements pathnode.MetricsCollector.
func (c *Collector) RecordRelease(stats pathnode.Stats) {
	c.releases.Inc()
	c.nodesPerSearch.Observe(float64(stats.Total))
	c.bytesPerSearch.Observe(float64(stats.BytesReserved))
}
