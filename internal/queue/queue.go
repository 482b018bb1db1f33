// Package queue implements the open-set priority queue of a node list.
package queue

import (
	"iter"
	"math"

	"github.com/hupe1980/pathnode/internal/arena"
	"github.com/hupe1980/pathnode/internal/container"
)

// DefaultCapacity is the default reserved capacity.
const DefaultCapacity = 2048

// positionBits sizes the segments of the handle -> slot map.
const positionBits = 12

type entry struct {
	estimate float64 // priority captured at Include time
	seq      uint64  // insertion sequence, breaks estimate ties
	handle   arena.Handle
}

// Heap is a binary min-heap of arena handles ordered by estimate.
//
// Ties are broken by insertion order: of two entries with equal estimates
// the one included first is shifted first. Every Include, including a
// re-include of a previously shifted handle, takes a fresh sequence number.
//
// A position map from handle to heap slot makes FindIndex O(1) and removal
// of an arbitrary entry O(log n). A handle can be queued at most once.
type Heap struct {
	items []entry
	pos   *container.Segmented[int32] // handle index -> slot+1, 0 when absent
	seq   uint64
}

// New creates a heap with the given reserved capacity. The capacity is only
// a hint; the heap grows without bound.
func New(capacity int) *Heap {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Heap{
		items: make([]entry, 0, capacity),
		pos:   container.NewSegmented[int32](positionBits),
	}
}

// Len returns the number of queued handles.
func (q *Heap) Len() int { return len(q.items) }

// IsEmpty reports whether the heap is empty.
func (q *Heap) IsEmpty() bool { return len(q.items) == 0 }

// Begin returns the minimum without removing it. It panics on an empty heap.
func (q *Heap) Begin() arena.Handle {
	if len(q.items) == 0 {
		panic("queue: Begin on empty heap")
	}
	return q.items[0].handle
}

// Shift removes and returns the minimum. It panics on an empty heap.
func (q *Heap) Shift() arena.Handle {
	if len(q.items) == 0 {
		panic("queue: Shift on empty heap")
	}
	return q.Remove(0)
}

// Include queues handle with the given estimate. It returns false, leaving
// the heap unchanged, if handle is already queued.
func (q *Heap) Include(handle arena.Handle, estimate float64) bool {
	if handle == arena.NoHandle || q.Contains(handle) {
		return false
	}
	q.seq++
	q.items = append(q.items, entry{estimate: estimate, seq: q.seq, handle: handle})
	i := len(q.items) - 1
	q.setPos(i)
	q.siftUp(i)
	return true
}

// FindIndex returns the heap slot of handle, or -1 if it is not queued.
func (q *Heap) FindIndex(handle arena.Handle) int {
	if handle == arena.NoHandle {
		return -1
	}
	p, ok := q.pos.Get(handle.Index())
	if !ok || p == 0 {
		return -1
	}
	return int(p) - 1
}

// Contains reports whether handle is queued.
func (q *Heap) Contains(handle arena.Handle) bool {
	return q.FindIndex(handle) >= 0
}

// Remove deletes the entry at slot i and returns its handle. The last entry
// takes its place and is sifted in whichever direction restores the order.
// It panics if i is out of range.
func (q *Heap) Remove(i int) arena.Handle {
	n := len(q.items)
	if i < 0 || i >= n {
		panic("queue: Remove index out of range")
	}
	removed := q.items[i].handle
	q.pos.Set(removed.Index(), 0)

	last := n - 1
	if i != last {
		q.items[i] = q.items[last]
		q.setPos(i)
	}
	q.items[last] = entry{}
	q.items = q.items[:last]

	if i < last {
		if i > 0 && q.less(i, (i-1)/2) {
			q.siftUp(i)
		} else {
			q.siftDown(i)
		}
	}
	return removed
}

// All iterates over queued handles in slot order (not priority order).
func (q *Heap) All() iter.Seq[arena.Handle] {
	return func(yield func(arena.Handle) bool) {
		for _, e := range q.items {
			if !yield(e.handle) {
				return
			}
		}
	}
}

// Reset empties the heap, keeping the reserved capacity.
func (q *Heap) Reset() {
	for _, e := range q.items {
		q.pos.Set(e.handle.Index(), 0)
	}
	clear(q.items)
	q.items = q.items[:0]
}

// less orders by estimate, then insertion sequence. NaN estimates sort after
// every number so the order stays total.
func (q *Heap) less(i, j int) bool {
	a, b := &q.items[i], &q.items[j]
	if an, bn := math.IsNaN(a.estimate), math.IsNaN(b.estimate); an || bn {
		if an != bn {
			return bn
		}
		return a.seq < b.seq
	}
	if a.estimate != b.estimate {
		return a.estimate < b.estimate
	}
	return a.seq < b.seq
}

func (q *Heap) swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.setPos(i)
	q.setPos(j)
}

func (q *Heap) setPos(i int) {
	q.pos.Set(q.items[i].handle.Index(), int32(i+1)) //nolint:gosec // heap size bounded by handle space
}

func (q *Heap) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !q.less(i, p) {
			return
		}
		q.swap(i, p)
		i = p
	}
}

func (q *Heap) siftDown(i int) {
	n := len(q.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		r := l + 1
		if r < n && q.less(r, l) {
			best = r
		}
		if !q.less(best, i) {
			return
		}
		q.swap(i, best)
		i = best
	}
}
