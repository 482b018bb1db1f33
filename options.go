package pathnode

import (
	"log/slog"

	"github.com/hupe1980/pathnode/internal/arena"
	"github.com/hupe1980/pathnode/internal/hashtable"
	"github.com/hupe1980/pathnode/internal/queue"
	"github.com/hupe1980/pathnode/resource"
)

const (
	// DefaultChunkSize is the number of nodes per arena chunk.
	DefaultChunkSize = arena.DefaultChunkSize
	// DefaultQueueReserve is the initial capacity of the open queue.
	DefaultQueueReserve = queue.DefaultCapacity
	// DefaultIndexCapacity is the initial capacity of each membership index.
	DefaultIndexCapacity = hashtable.DefaultCapacity
)

type options struct {
	chunkSize        int
	maxChunks        int
	queueReserve     int
	indexCapacity    int
	controller       *resource.Controller
	metricsCollector MetricsCollector
	logger           *Logger
	trusted          bool
}

// Option configures a NodeList.
type Option func(*options)

// WithChunkSize sets how many nodes each arena chunk holds. The value is
// rounded up to a power of two. Non-positive values keep the default.
func WithChunkSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}

// WithMaxChunks caps the number of arena chunks. Growing past the cap makes
// CreateNewNode fail with ErrResourceExhausted.
func WithMaxChunks(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxChunks = n
		}
	}
}

// WithQueueReserve sets the initial capacity of the open queue. This is a
// performance hint only; the queue grows as needed.
func WithQueueReserve(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.queueReserve = n
		}
	}
}

// WithIndexCapacity sets the initial capacity of the open and closed indexes.
func WithIndexCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.indexCapacity = n
		}
	}
}

// WithResourceController makes the arena reserve every chunk from rc.
// A refused reservation surfaces as ErrResourceExhausted.
//
// Example:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 64 << 20})
//	nl := pathnode.New[Node, TileKey](pathnode.WithResourceController(rc))
//	defer nl.Close()
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := pathnode.NewJSONLogger(slog.LevelInfo)
//	nl := pathnode.New[Node, TileKey](pathnode.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithTrustedCaller skips the contract checks that cost an extra index
// lookup: the open/closed disjointness check on insert and the open-index
// check in ReenqueueOpenNode. Checks the data structures perform anyway
// remain, including duplicate keys, an empty queue, missing keys on removal
// and re-enqueueing a node that is still queued.
//
// Use it once a search loop is known to be correct; violations then corrupt
// the node list silently instead of panicking.
func WithTrustedCaller() Option {
	return func(o *options) {
		o.trusted = true
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		chunkSize:        DefaultChunkSize,
		queueReserve:     DefaultQueueReserve,
		indexCapacity:    DefaultIndexCapacity,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
