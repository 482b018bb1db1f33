package hashtable

import (
	"iter"

	"github.com/hupe1980/pathnode/internal/arena"
	"github.com/hupe1980/pathnode/internal/hash"
)

// Hashable is a key usable by Table.
type Hashable interface {
	comparable
	Hash() uint64
}

// DefaultCapacity is the initial number of slots.
const DefaultCapacity = 1024

// maxLoad is the load factor numerator over 4 (grow past 3/4 full).
const maxLoad = 3

type slot[K Hashable] struct {
	key    K
	hash   uint64
	handle arena.Handle // arena.NoHandle marks an empty slot
}

// Table is an open-addressing hash table from keys to arena handles.
type Table[K Hashable] struct {
	slots  []slot[K]
	mask   uint64
	count  int
	growAt int
}

// New creates a Table sized for at least capacity entries before growing.
func New[K Hashable](capacity int) *Table[K] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	size := 8
	for size*maxLoad/4 < capacity {
		size <<= 1
	}
	t := &Table[K]{}
	t.resize(size)
	return t
}

func (t *Table[K]) resize(size int) {
	old := t.slots
	t.slots = make([]slot[K], size)
	t.mask = uint64(size - 1) //nolint:gosec // size > 0
	t.growAt = size * maxLoad / 4
	t.count = 0
	for i := range old {
		if old[i].handle != arena.NoHandle {
			t.insert(old[i].key, old[i].hash, old[i].handle)
		}
	}
}

func (t *Table[K]) insert(key K, h uint64, handle arena.Handle) {
	i := h & t.mask
	for t.slots[i].handle != arena.NoHandle {
		i = (i + 1) & t.mask
	}
	t.slots[i] = slot[K]{key: key, hash: h, handle: handle}
	t.count++
}

// lookup returns the slot index holding key, or -1.
func (t *Table[K]) lookup(key K, h uint64) int {
	i := h & t.mask
	for {
		s := &t.slots[i]
		if s.handle == arena.NoHandle {
			return -1
		}
		if s.hash == h && s.key == key {
			return int(i) //nolint:gosec // i <= mask
		}
		i = (i + 1) & t.mask
	}
}

// Len returns the number of entries.
func (t *Table[K]) Len() int {
	return t.count
}

// Capacity returns the number of slots.
func (t *Table[K]) Capacity() int {
	return len(t.slots)
}

// Find returns the handle stored for key.
func (t *Table[K]) Find(key K) (arena.Handle, bool) {
	i := t.lookup(key, hash.Mix64(key.Hash()))
	if i < 0 {
		return arena.NoHandle, false
	}
	return t.slots[i].handle, true
}

// Contains reports whether key is present.
func (t *Table[K]) Contains(key K) bool {
	return t.lookup(key, hash.Mix64(key.Hash())) >= 0
}

// Push stores handle under key. It returns false, leaving the table
// unchanged, if key is already present or handle is arena.NoHandle.
func (t *Table[K]) Push(key K, handle arena.Handle) bool {
	if handle == arena.NoHandle {
		return false
	}
	h := hash.Mix64(key.Hash())
	if t.lookup(key, h) >= 0 {
		return false
	}
	if t.count+1 > t.growAt {
		t.resize(len(t.slots) << 1)
	}
	t.insert(key, h, handle)
	return true
}

// Pop removes key and returns its handle.
func (t *Table[K]) Pop(key K) (arena.Handle, bool) {
	i := t.lookup(key, hash.Mix64(key.Hash()))
	if i < 0 {
		return arena.NoHandle, false
	}
	handle := t.slots[i].handle
	t.deleteAt(uint64(i)) //nolint:gosec // i >= 0
	return handle, true
}

// deleteAt empties slot i and shifts later members of the probe run back so
// lookups never stop early at the hole.
func (t *Table[K]) deleteAt(i uint64) {
	j := i
	for {
		j = (j + 1) & t.mask
		s := t.slots[j]
		if s.handle == arena.NoHandle {
			break
		}
		home := s.hash & t.mask
		// Move s into the hole unless its home lies cyclically in (i, j].
		if (j > i && (home <= i || home > j)) || (j < i && home <= i && home > j) {
			t.slots[i] = s
			i = j
		}
	}
	t.slots[i] = slot[K]{}
	t.count--
}

// All iterates over all entries in slot order.
func (t *Table[K]) All() iter.Seq2[K, arena.Handle] {
	return func(yield func(K, arena.Handle) bool) {
		for i := range t.slots {
			if t.slots[i].handle == arena.NoHandle {
				continue
			}
			if !yield(t.slots[i].key, t.slots[i].handle) {
				return
			}
		}
	}
}

// Reset removes all entries, keeping the allocated slots.
func (t *Table[K]) Reset() {
	clear(t.slots)
	t.count = 0
}
