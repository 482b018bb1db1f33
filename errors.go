package pathnode

import (
	"errors"
	"fmt"
)

var (
	// ErrResourceExhausted is returned when node storage cannot grow, either
	// because the memory budget refused a new chunk or the arena hit its
	// chunk limit. The search has no meaningful partial result at that point.
	ErrResourceExhausted = errors.New("node storage exhausted")

	// ErrClosed is returned when creating nodes on a closed NodeList.
	ErrClosed = errors.New("node list closed")
)

// Precondition violations. These are programming errors in the search loop;
// they are reported by panicking with a *PreconditionError wrapping one of
// these values.
var (
	// ErrOpenClosedConflict means a key would be open and closed at once.
	ErrOpenClosedConflict = errors.New("key is both open and closed")
	// ErrDuplicateKey means a key is already present in the target set.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrEmptyQueue means the open queue was empty where an entry was required.
	ErrEmptyQueue = errors.New("open queue is empty")
	// ErrKeyNotFound means a key required to be present was missing.
	ErrKeyNotFound = errors.New("key not found")
	// ErrNotQueued means an open node was expected in the queue but is not.
	ErrNotQueued = errors.New("node not queued")
	// ErrAlreadyQueued means a node is already in the open queue.
	ErrAlreadyQueued = errors.New("node already queued")
	// ErrInvalidHandle means a handle or node does not belong to this list.
	ErrInvalidHandle = errors.New("invalid node handle")
	// ErrParentCycle means the parent chain of a node loops.
	ErrParentCycle = errors.New("parent chain has a cycle")
)

// PreconditionError is the panic value raised when a caller breaks the
// node-list contract.
//
// The original violation can be accessed via errors.Unwrap.
type PreconditionError struct {
	Op  string
	Key any
	Err error
}

func (e *PreconditionError) Error() string {
	if e.Key != nil {
		return fmt.Sprintf("pathnode: %s(%v): %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("pathnode: %s: %v", e.Op, e.Err)
}

func (e *PreconditionError) Unwrap() error { return e.Err }
