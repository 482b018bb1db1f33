package arena

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type node struct {
	key    uint64
	cost   int64
	parent Handle
}

type budget struct {
	limit    int64
	used     int64
	acquires int
	releases int
}

var errBudget = errors.New("budget exhausted")

func (b *budget) AcquireMemory(bytes int64) error {
	if b.limit > 0 && b.used+bytes > b.limit {
		return errBudget
	}
	b.used += bytes
	b.acquires++
	return nil
}

func (b *budget) ReleaseMemory(bytes int64) {
	b.used -= bytes
	b.releases++
}

func TestArena_New(t *testing.T) {
	t.Run("default chunk size", func(t *testing.T) {
		a, err := New[node](0)
		require.NoError(t, err)
		assert.Equal(t, DefaultChunkSize, a.ChunkSize())
		assert.Equal(t, 0, a.Len())
		assert.Equal(t, 0, a.Chunks())
	})

	t.Run("rounds up to power of two", func(t *testing.T) {
		a, err := New[node](1000)
		require.NoError(t, err)
		assert.Equal(t, 1024, a.ChunkSize())
	})
}

func TestArena_Alloc(t *testing.T) {
	a, err := New[node](4)
	require.NoError(t, err)

	h, n, err := a.Alloc()
	require.NoError(t, err)
	assert.Equal(t, Handle(1), h)
	assert.Equal(t, node{}, *n, "storage must be zeroed")
	assert.Same(t, n, a.Get(h))
	assert.Equal(t, 1, a.Chunks())
}

func TestArena_StableAcrossChunks(t *testing.T) {
	a, err := New[node](16)
	require.NoError(t, err)

	const count = 100
	ptrs := make(map[Handle]*node, count)
	for i := 0; i < count; i++ {
		h, n, err := a.Alloc()
		require.NoError(t, err)
		n.key = uint64(i)
		ptrs[h] = n
	}

	assert.Equal(t, count, a.Len())
	assert.Equal(t, 7, a.Chunks())

	for h, p := range ptrs {
		assert.Same(t, p, a.Get(h))
		assert.Equal(t, uint64(h.Index()), p.key)
	}
}

func TestArena_GetInvalid(t *testing.T) {
	a, err := New[node](4)
	require.NoError(t, err)

	assert.Panics(t, func() { a.Get(NoHandle) })
	assert.Panics(t, func() { a.Get(1) })
	assert.False(t, a.Valid(1))

	h, _, err := a.Alloc()
	require.NoError(t, err)
	assert.True(t, a.Valid(h))
	assert.Panics(t, func() { a.Get(h + 1) })
}

func TestArena_MaxChunks(t *testing.T) {
	a, err := New[node](2, WithMaxChunks(2))
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, _, err := a.Alloc()
		require.NoError(t, err)
	}
	_, _, err = a.Alloc()
	assert.ErrorIs(t, err, ErrMaxChunksExceeded)
	assert.Equal(t, 4, a.Len())
}

func TestArena_MemoryAcquirer(t *testing.T) {
	chunkBytes := int64(unsafe.Sizeof(node{})) * 4

	b := &budget{limit: 2 * chunkBytes}
	a, err := New[node](4, WithMemoryAcquirer(b))
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		_, _, err := a.Alloc()
		require.NoError(t, err)
	}
	assert.Equal(t, 2, b.acquires)
	assert.Equal(t, 2*chunkBytes, b.used)

	_, _, err = a.Alloc()
	assert.ErrorIs(t, err, ErrAllocationFailed)
	assert.ErrorIs(t, err, errBudget)
	assert.Equal(t, 8, a.Len(), "failed growth must not change the arena")

	a.Free()
	assert.Equal(t, int64(0), b.used)
	assert.Equal(t, 1, b.releases)

	a.Free()
	assert.Equal(t, 1, b.releases, "budget is returned exactly once")
}

func TestArena_Free(t *testing.T) {
	a, err := New[node](4)
	require.NoError(t, err)
	_, _, err = a.Alloc()
	require.NoError(t, err)

	gen := a.Stats().Generation
	a.Free()

	assert.True(t, a.Freed())
	assert.Equal(t, gen+1, a.Stats().Generation)
	assert.Equal(t, 0, a.Len())

	_, _, err = a.Alloc()
	assert.ErrorIs(t, err, ErrFreed)
}

func TestArena_OnGrow(t *testing.T) {
	var grown []int
	a, err := New[node](2, WithOnGrow(func(chunks int) { grown = append(grown, chunks) }))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, _, err := a.Alloc()
		require.NoError(t, err)
	}
	assert.Equal(t, []int{1, 2, 3}, grown)
}

func TestArena_All(t *testing.T) {
	a, err := New[node](2)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, n, err := a.Alloc()
		require.NoError(t, err)
		n.cost = int64(i)
	}

	var seen []Handle
	for h, n := range a.All() {
		assert.Equal(t, int64(h.Index()), n.cost)
		seen = append(seen, h)
	}
	assert.Equal(t, []Handle{1, 2, 3, 4, 5}, seen)

	count := 0
	for range a.All() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestArena_Stats(t *testing.T) {
	a, err := New[node](8)
	require.NoError(t, err)
	for i := 0; i < 9; i++ {
		_, _, err := a.Alloc()
		require.NoError(t, err)
	}

	stats := a.Stats()
	assert.Equal(t, 8, stats.ChunkSize)
	assert.Equal(t, 2, stats.ActiveChunks)
	assert.Equal(t, 9, stats.TotalAllocs)
	assert.Equal(t, 2*8*stats.ItemBytes, stats.BytesReserved)
	assert.Contains(t, a.String(), "chunks: 2")
}

func BenchmarkArena_Alloc(b *testing.B) {
	a, err := New[node](DefaultChunkSize)
	require.NoError(b, err)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := a.Alloc(); err != nil {
			b.Fatal(err)
		}
	}
}
