// Package container implements container data structures.
package container

// Segmented is an append-only array split into fixed-size segments.
//
// Segments are allocated on demand and never reallocated or moved, so a
// pointer obtained from At stays valid until Release. Growing the outer
// segment table only copies segment headers.
//
// Segmented is not safe for concurrent use.
type Segmented[T any] struct {
	segments [][]T
	bits     uint
	mask     int
	length   int
}

// NewSegmented creates an empty array whose segments hold 1<<segmentBits items.
func NewSegmented[T any](segmentBits uint) *Segmented[T] {
	return &Segmented[T]{
		bits: segmentBits,
		mask: (1 << segmentBits) - 1,
	}
}

// SegmentSize returns the number of items per segment.
func (s *Segmented[T]) SegmentSize() int { return 1 << s.bits }

// Segments returns the number of allocated segments.
func (s *Segmented[T]) Segments() int { return len(s.segments) }

// Len returns the number of items appended so far.
func (s *Segmented[T]) Len() int { return s.length }

// Cap returns the number of items the allocated segments can hold.
func (s *Segmented[T]) Cap() int { return len(s.segments) << s.bits }

// Full reports whether the next Append needs a new segment.
func (s *Segmented[T]) Full() bool { return s.length == s.Cap() }

// Grow allocates one more segment.
func (s *Segmented[T]) Grow() {
	s.segments = append(s.segments, make([]T, 1<<s.bits))
}

// Append reserves the next zero-valued item, growing by one segment when the
// current ones are exhausted. It returns the item's index and a stable pointer.
func (s *Segmented[T]) Append() (int, *T) {
	if s.Full() {
		s.Grow()
	}
	i := s.length
	s.length++
	return i, &s.segments[i>>s.bits][i&s.mask]
}

// At returns a stable pointer to item i. It panics if i is out of range.
func (s *Segmented[T]) At(i int) *T {
	if i < 0 || i >= s.length {
		panic("container: index out of range")
	}
	return &s.segments[i>>s.bits][i&s.mask]
}

// Get returns item i, or the zero value and false if i is out of range.
func (s *Segmented[T]) Get(i int) (T, bool) {
	if i < 0 || i >= s.length {
		var zero T
		return zero, false
	}
	return s.segments[i>>s.bits][i&s.mask], true
}

// Set stores v at index i, extending the array with zero values if needed.
func (s *Segmented[T]) Set(i int, v T) {
	if i < 0 {
		panic("container: negative index")
	}
	for i >= s.Cap() {
		s.Grow()
	}
	if i >= s.length {
		s.length = i + 1
	}
	s.segments[i>>s.bits][i&s.mask] = v
}

// Release drops every segment. Pointers obtained earlier keep their memory
// alive but no longer belong to the array.
func (s *Segmented[T]) Release() {
	clear(s.segments)
	s.segments = nil
	s.length = 0
}
