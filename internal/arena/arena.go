package arena

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"math/bits"
	"unsafe"

	"github.com/hupe1980/pathnode/internal/container"
	"github.com/hupe1980/pathnode/internal/conv"
)

// MemoryAcquirer reserves memory against an external budget.
// resource.Controller satisfies it.
type MemoryAcquirer interface {
	AcquireMemory(bytes int64) error
	ReleaseMemory(bytes int64)
}

var (
	// ErrMaxChunksExceeded is returned when the arena exceeds the maximum number of chunks.
	ErrMaxChunksExceeded = errors.New("arena: max chunks exceeded")
	// ErrAllocationFailed is returned when the memory budget refuses a new chunk.
	ErrAllocationFailed = errors.New("arena: allocation failed")
	// ErrFreed is returned when allocating from an arena after Free.
	ErrFreed = errors.New("arena: freed")
)

const (
	// DefaultChunkSize is the default number of items per chunk.
	DefaultChunkSize = 4096
	// MaxChunks limits the number of chunks of an arena.
	// With the default chunk size this is 2^28 nodes.
	MaxChunks = 65536
)

// Handle is a stable reference to an arena item.
// Handles are dense: the n-th allocation gets Handle n.
type Handle uint32

// NoHandle is the zero Handle. It is never issued.
const NoHandle Handle = 0

// Index returns the zero-based allocation index of h.
func (h Handle) Index() int { return int(h) - 1 }

// Stats describes arena usage.
type Stats struct {
	ChunkSize     int    // Items per chunk
	ItemBytes     int64  // Size of one item
	ActiveChunks  int    // Chunks currently held
	TotalAllocs   int    // Items handed out
	BytesReserved int64  // ActiveChunks * ChunkSize * ItemBytes
	Generation    uint32 // Incremented by Free
}

type config struct {
	acquirer  MemoryAcquirer
	maxChunks int
	onGrow    func(chunks int)
}

// Option configures an Arena.
type Option func(*config)

// WithMemoryAcquirer sets the memory budget the arena reserves chunks from.
func WithMemoryAcquirer(acquirer MemoryAcquirer) Option {
	return func(c *config) {
		c.acquirer = acquirer
	}
}

// WithMaxChunks caps the number of chunks. Values <= 0 keep the default.
func WithMaxChunks(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxChunks = n
		}
	}
}

// WithOnGrow registers a callback invoked after each new chunk with the new chunk count.
func WithOnGrow(fn func(chunks int)) Option {
	return func(c *config) {
		c.onGrow = fn
	}
}

// Arena is a typed chunked allocator.
type Arena[T any] struct {
	items      *container.Segmented[T]
	chunkSize  int
	itemBytes  int64
	chunkBytes int64
	maxChunks  int
	acquirer   MemoryAcquirer
	onGrow     func(chunks int)
	reserved   int64
	generation uint32
	freed      bool
}

// New creates an Arena with the given chunk size (in items).
// The chunk size is rounded up to the next power of two.
func New[T any](chunkSize int, opts ...Option) (*Arena[T], error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	chunkBits := uint(bits.Len(uint(chunkSize - 1))) //nolint:gosec // chunkSize > 0
	chunkSize = 1 << chunkBits

	cfg := config{maxChunks: MaxChunks}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	// Handles are uint32 and 0 is reserved.
	if limit := int(uint64(math.MaxUint32) >> chunkBits); cfg.maxChunks > limit {
		cfg.maxChunks = limit
	}

	var zero T
	itemBytes := int64(unsafe.Sizeof(zero))
	chunkBytes, err := conv.MulInt64(itemBytes, int64(chunkSize))
	if err != nil {
		return nil, err
	}

	return &Arena[T]{
		items:      container.NewSegmented[T](chunkBits),
		chunkSize:  chunkSize,
		itemBytes:  itemBytes,
		chunkBytes: chunkBytes,
		maxChunks:  cfg.maxChunks,
		acquirer:   cfg.acquirer,
		onGrow:     cfg.onGrow,
		generation: 1,
	}, nil
}

// Alloc returns a handle and a pointer to zeroed storage for one item.
func (a *Arena[T]) Alloc() (Handle, *T, error) {
	if a.freed {
		return NoHandle, nil, ErrFreed
	}
	if a.items.Full() {
		if err := a.grow(); err != nil {
			return NoHandle, nil, err
		}
	}
	i, item := a.items.Append()
	return Handle(i + 1), item, nil //nolint:gosec // bounded by maxChunks
}

func (a *Arena[T]) grow() error {
	chunks := a.items.Segments()
	if chunks >= a.maxChunks {
		return ErrMaxChunksExceeded
	}

	if a.acquirer != nil {
		if err := a.acquirer.AcquireMemory(a.chunkBytes); err != nil {
			return fmt.Errorf("%w: %w", ErrAllocationFailed, err)
		}
		a.reserved += a.chunkBytes
	}

	a.items.Grow()

	if a.onGrow != nil {
		a.onGrow(chunks + 1)
	}
	return nil
}

// Get returns the item for h. It panics if h was not issued by this arena.
func (a *Arena[T]) Get(h Handle) *T {
	if h == NoHandle || h.Index() >= a.items.Len() {
		panic(fmt.Sprintf("arena: invalid handle %d", h))
	}
	return a.items.At(h.Index())
}

// Valid reports whether h was issued by this arena.
func (a *Arena[T]) Valid(h Handle) bool {
	return h != NoHandle && h.Index() < a.items.Len()
}

// Len returns the number of items ever allocated.
func (a *Arena[T]) Len() int {
	return a.items.Len()
}

// Chunks returns the number of chunks currently held.
func (a *Arena[T]) Chunks() int {
	return a.items.Segments()
}

// ChunkSize returns the number of items per chunk.
func (a *Arena[T]) ChunkSize() int {
	return a.chunkSize
}

// All iterates over every allocated item in allocation order.
func (a *Arena[T]) All() iter.Seq2[Handle, *T] {
	return func(yield func(Handle, *T) bool) {
		n := a.items.Len()
		for i := 0; i < n; i++ {
			if !yield(Handle(i+1), a.items.At(i)) { //nolint:gosec // i < n <= MaxUint32
				return
			}
		}
	}
}

// Stats returns the current arena statistics.
func (a *Arena[T]) Stats() Stats {
	chunks := a.items.Segments()
	return Stats{
		ChunkSize:     a.chunkSize,
		ItemBytes:     a.itemBytes,
		ActiveChunks:  chunks,
		TotalAllocs:   a.items.Len(),
		BytesReserved: int64(chunks) * a.chunkBytes,
		Generation:    a.generation,
	}
}

// Free releases every chunk and returns the reserved budget.
// Pointers and handles issued earlier must not be used afterwards.
// Calling Free more than once is a no-op.
func (a *Arena[T]) Free() {
	if a.freed {
		return
	}
	a.freed = true
	a.generation++

	if a.acquirer != nil && a.reserved > 0 {
		a.acquirer.ReleaseMemory(a.reserved)
	}
	a.reserved = 0
	a.items.Release()
}

// Freed reports whether Free was called.
func (a *Arena[T]) Freed() bool {
	return a.freed
}

func (a *Arena[T]) String() string {
	stats := a.Stats()
	return fmt.Sprintf(
		"Arena{chunks: %d, chunk size: %d, items: %d, reserved: %.2f MB}",
		stats.ActiveChunks,
		stats.ChunkSize,
		stats.TotalAllocs,
		float64(stats.BytesReserved)/(1024*1024),
	)
}
