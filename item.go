package pathnode

import "github.com/hupe1980/pathnode/internal/arena"

// Key identifies a unique search state, e.g. a tile plus the direction it
// was entered from. Equal keys denote the same state.
//
// Hash need not be well distributed; the membership index mixes it.
type Key interface {
	comparable
	Hash() uint64
}

// Handle is a stable reference to a node of one NodeList. It stays valid
// until the NodeList is closed.
type Handle = arena.Handle

// NoHandle is the zero Handle. It never refers to a node.
const NoHandle = arena.NoHandle

// Slot carries the bookkeeping every node needs: its own handle and the
// parent back-reference used for path reconstruction. Node types embed it:
//
//	type Node struct {
//	    pathnode.Slot
//	    Key      TileKey
//	    Cost     float64
//	    Estimate float64
//	}
//
// A parent reference never implies ownership; all nodes belong to the arena.
type Slot struct {
	handle Handle
	parent Handle
}

// Handle returns the node's own handle.
func (s *Slot) Handle() Handle { return s.handle }

// Parent returns the predecessor's handle, or NoHandle for a start node.
func (s *Slot) Parent() Handle { return s.parent }

// HasParent reports whether a predecessor is set.
func (s *Slot) HasParent() bool { return s.parent != NoHandle }

// SetParent records the predecessor.
func (s *Slot) SetParent(parent Handle) { s.parent = parent }

func (s *Slot) slot() *Slot { return s }

// Item is the contract a node type must satisfy. It is written as a pointer
// constraint so that nodes live by value inside the arena:
//
//   - GetKey returns the search state. It must not change once the node was
//     inserted into the open or closed set.
//   - GetEstimate returns the total estimated cost (cost so far plus
//     heuristic), the priority of the open queue. NaN orders after every
//     number.
//   - The embedded Slot supplies the handle and parent fields.
type Item[T any, K Key] interface {
	*T
	GetKey() K
	GetEstimate() float64
	slot() *Slot
}
