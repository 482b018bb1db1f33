package pathnode

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hupe1980/pathnode/internal/arena"
	"github.com/hupe1980/pathnode/internal/hashtable"
	"github.com/hupe1980/pathnode/internal/queue"
)

// Stats describes a node list.
type Stats struct {
	Total         int   // nodes allocated
	Open          int   // nodes in the open set
	Closed        int   // nodes in the closed set
	Queued        int   // handles in the open queue
	Chunks        int   // arena chunks held
	ChunkSize     int   // nodes per chunk
	BytesReserved int64 // node storage reserved
	Uncommitted   bool  // a CreateNewNode result is pending
}

// NodeList manages the nodes of one search: an arena owning every node,
// open and closed membership indexes keyed by K, and a priority queue of
// open nodes ordered by GetEstimate.
//
// Every node is in exactly one state: uncommitted (the pending result of
// CreateNewNode), open, closed, or detached (popped and not re-inserted, or
// released with FoundBestNode). A key is never open and closed at once.
//
// A NodeList is not safe for concurrent use. Nodes stay valid until Close.
type NodeList[T any, K Key, P Item[T, K]] struct {
	id          uuid.UUID
	items       *arena.Arena[T]
	openNodes   *hashtable.Table[K]
	closedNodes *hashtable.Table[K]
	openQueue   *queue.Heap
	newNode     Handle

	opts   options
	logger *Logger
	closed bool
}

// New creates an empty NodeList.
//
// The type arguments are the node type and its key; the pointer type is
// inferred:
//
//	nl, err := pathnode.New[Node, TileKey]()
func New[T any, K Key, P Item[T, K]](optFns ...Option) (*NodeList[T, K, P], error) {
	opts := applyOptions(optFns)

	nl := &NodeList[T, K, P]{
		id:          uuid.New(),
		openNodes:   hashtable.New[K](opts.indexCapacity),
		closedNodes: hashtable.New[K](opts.indexCapacity),
		openQueue:   queue.New(opts.queueReserve),
		opts:        opts,
	}
	nl.logger = opts.logger.WithSearchID(nl.id)

	arenaOpts := []arena.Option{
		arena.WithMaxChunks(opts.maxChunks),
		arena.WithOnGrow(func(chunks int) {
			opts.metricsCollector.RecordChunkGrow(chunks)
			nl.logger.LogChunkGrow(context.Background(), chunks, nl.items.ChunkSize())
		}),
	}
	if opts.controller != nil {
		arenaOpts = append(arenaOpts, arena.WithMemoryAcquirer(opts.controller))
	}

	items, err := arena.New[T](opts.chunkSize, arenaOpts...)
	if err != nil {
		return nil, fmt.Errorf("create arena: %w", err)
	}
	nl.items = items

	return nl, nil
}

// ID returns the search ID attached to logs and dumps.
func (nl *NodeList[T, K, P]) ID() uuid.UUID { return nl.id }

// OpenCount returns the number of open nodes.
func (nl *NodeList[T, K, P]) OpenCount() int { return nl.openNodes.Len() }

// ClosedCount returns the number of closed nodes.
func (nl *NodeList[T, K, P]) ClosedCount() int { return nl.closedNodes.Len() }

// TotalCount returns the number of nodes ever allocated.
func (nl *NodeList[T, K, P]) TotalCount() int { return nl.items.Len() }

// HasUncommitted reports whether CreateNewNode has a pending node.
func (nl *NodeList[T, K, P]) HasUncommitted() bool { return nl.newNode != NoHandle }

// CreateNewNode returns the pending uncommitted node, allocating one if none
// is pending. Until the node is inserted or released with FoundBestNode,
// repeated calls return the same node with its fields as the caller left
// them, so a rejected candidate's storage is reused.
//
// A freshly allocated node is zeroed except for its handle.
// If node storage cannot grow, the error wraps ErrResourceExhausted.
func (nl *NodeList[T, K, P]) CreateNewNode() (P, error) {
	if nl.closed {
		return nil, ErrClosed
	}
	if nl.newNode != NoHandle {
		nl.opts.metricsCollector.RecordAllocate(true)
		return P(nl.items.Get(nl.newNode)), nil
	}

	h, item, err := nl.items.Alloc()
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrResourceExhausted, err)
		nl.logger.LogExhausted(context.Background(), nl.items.Len(), err)
		return nil, err
	}

	node := P(item)
	node.slot().handle = h
	nl.newNode = h
	nl.opts.metricsCollector.RecordAllocate(false)
	return node, nil
}

// FoundBestNode clears the uncommitted marker if node is the pending node.
// No index changes; the node stays allocated.
func (nl *NodeList[T, K, P]) FoundBestNode(node P) {
	h := nl.handleOf("FoundBestNode", node)
	if h == nl.newNode {
		nl.newNode = NoHandle
	}
}

// InsertOpenNode adds node to the open set and the open queue.
//
// It panics if the key is closed, if the key is already open, or if node is
// already queued.
func (nl *NodeList[T, K, P]) InsertOpenNode(node P) {
	const op = "InsertOpenNode"
	h := nl.handleOf(op, node)
	key := node.GetKey()

	if !nl.opts.trusted && nl.closedNodes.Contains(key) {
		nl.fail(op, key, ErrOpenClosedConflict)
	}
	if nl.openQueue.Contains(h) {
		nl.fail(op, key, ErrAlreadyQueued)
	}
	if !nl.openNodes.Push(key, h) {
		nl.fail(op, key, ErrDuplicateKey)
	}
	nl.openQueue.Include(h, node.GetEstimate())

	if h == nl.newNode {
		nl.newNode = NoHandle
	}
	nl.opts.metricsCollector.RecordInsertOpen()
}

// GetBestOpenNode returns the open node with the lowest estimate without
// removing it.
func (nl *NodeList[T, K, P]) GetBestOpenNode() (P, bool) {
	nl.checkUsable("GetBestOpenNode")
	if nl.openQueue.IsEmpty() {
		return nil, false
	}
	return P(nl.items.Get(nl.openQueue.Begin())), true
}

// PopBestOpenNode removes the open node with the lowest estimate from the
// queue and the open index. The caller is expected to close it or insert it
// as open again. An empty open set yields (nil, false).
func (nl *NodeList[T, K, P]) PopBestOpenNode() (P, bool) {
	const op = "PopBestOpenNode"
	nl.checkUsable(op)
	if nl.openQueue.IsEmpty() {
		return nil, false
	}

	h := nl.openQueue.Begin()
	node := P(nl.items.Get(h))
	key := node.GetKey()
	if got, ok := nl.openNodes.Find(key); !ok || got != h {
		nl.fail(op, key, ErrKeyNotFound)
	}

	nl.openQueue.Shift()
	nl.openNodes.Pop(key)
	nl.opts.metricsCollector.RecordPopOpen()
	return node, true
}

// DequeueBestOpenNode removes the best node from the open queue only. The
// node stays in the open index until PopAlreadyDequeuedOpenNode or
// ReenqueueOpenNode restores the pairing. It panics on an empty queue.
//
// The dequeued node is returned for convenience.
func (nl *NodeList[T, K, P]) DequeueBestOpenNode() P {
	const op = "DequeueBestOpenNode"
	nl.checkUsable(op)
	if nl.openQueue.IsEmpty() {
		nl.fail(op, nil, ErrEmptyQueue)
	}
	return P(nl.items.Get(nl.openQueue.Shift()))
}

// ReenqueueOpenNode queues an open node again, typically after its estimate
// changed. The node's open index entry must already exist.
//
// It panics if node is still queued, or, unless WithTrustedCaller is set, if
// its key is not open under this node.
func (nl *NodeList[T, K, P]) ReenqueueOpenNode(node P) {
	const op = "ReenqueueOpenNode"
	h := nl.handleOf(op, node)
	key := node.GetKey()

	if !nl.opts.trusted {
		if got, ok := nl.openNodes.Find(key); !ok || got != h {
			nl.fail(op, key, ErrKeyNotFound)
		}
	}
	if !nl.openQueue.Include(h, node.GetEstimate()) {
		nl.fail(op, key, ErrAlreadyQueued)
	}
	nl.opts.metricsCollector.RecordReenqueue()
}

// PopAlreadyDequeuedOpenNode removes key from the open index after its node
// left the queue through DequeueBestOpenNode.
//
// It panics if key is not open or its node is still queued.
func (nl *NodeList[T, K, P]) PopAlreadyDequeuedOpenNode(key K) P {
	const op = "PopAlreadyDequeuedOpenNode"
	nl.checkUsable(op)

	h, ok := nl.openNodes.Find(key)
	if !ok {
		nl.fail(op, key, ErrKeyNotFound)
	}
	if nl.openQueue.Contains(h) {
		nl.fail(op, key, ErrAlreadyQueued)
	}

	nl.openNodes.Pop(key)
	nl.opts.metricsCollector.RecordPopOpen()
	return P(nl.items.Get(h))
}

// FindOpenNode returns the open node with the given key.
func (nl *NodeList[T, K, P]) FindOpenNode(key K) (P, bool) {
	nl.checkUsable("FindOpenNode")
	h, ok := nl.openNodes.Find(key)
	if !ok {
		return nil, false
	}
	return P(nl.items.Get(h)), true
}

// FindClosedNode returns the closed node with the given key.
func (nl *NodeList[T, K, P]) FindClosedNode(key K) (P, bool) {
	nl.checkUsable("FindClosedNode")
	h, ok := nl.closedNodes.Find(key)
	if !ok {
		return nil, false
	}
	return P(nl.items.Get(h)), true
}

// PopOpenNode removes the open node with the given key from the open index
// and the queue, wherever it sits in the queue.
//
// It panics if key is not open or its node is not queued.
func (nl *NodeList[T, K, P]) PopOpenNode(key K) P {
	const op = "PopOpenNode"
	nl.checkUsable(op)

	h, ok := nl.openNodes.Find(key)
	if !ok {
		nl.fail(op, key, ErrKeyNotFound)
	}
	i := nl.openQueue.FindIndex(h)
	if i < 0 {
		nl.fail(op, key, ErrNotQueued)
	}

	nl.openNodes.Pop(key)
	nl.openQueue.Remove(i)
	nl.opts.metricsCollector.RecordPopOpen()
	return P(nl.items.Get(h))
}

// InsertClosedNode adds node to the closed set. Closing is terminal for the
// key. If node is the pending uncommitted node, the marker is cleared.
//
// It panics if the key is open or already closed.
func (nl *NodeList[T, K, P]) InsertClosedNode(node P) {
	const op = "InsertClosedNode"
	h := nl.handleOf(op, node)
	key := node.GetKey()

	if !nl.opts.trusted && nl.openNodes.Contains(key) {
		nl.fail(op, key, ErrOpenClosedConflict)
	}
	if !nl.closedNodes.Push(key, h) {
		nl.fail(op, key, ErrDuplicateKey)
	}

	if h == nl.newNode {
		nl.newNode = NoHandle
	}
	nl.opts.metricsCollector.RecordInsertClosed()
}

// Node resolves a handle, such as a parent reference, to its node.
// It panics if h was not issued by this list.
func (nl *NodeList[T, K, P]) Node(h Handle) P {
	nl.checkUsable("Node")
	if !nl.items.Valid(h) {
		nl.fail("Node", nil, ErrInvalidHandle)
	}
	return P(nl.items.Get(h))
}

// Stats returns the current counters.
func (nl *NodeList[T, K, P]) Stats() Stats {
	as := nl.items.Stats()
	return Stats{
		Total:         as.TotalAllocs,
		Open:          nl.openNodes.Len(),
		Closed:        nl.closedNodes.Len(),
		Queued:        nl.openQueue.Len(),
		Chunks:        as.ActiveChunks,
		ChunkSize:     as.ChunkSize,
		BytesReserved: as.BytesReserved,
		Uncommitted:   nl.newNode != NoHandle,
	}
}

// Close releases all nodes and returns their memory reservation to the
// resource controller. Nodes obtained earlier must not be used afterwards.
// Close is idempotent.
func (nl *NodeList[T, K, P]) Close() error {
	if nl == nil || nl.closed {
		return nil
	}

	stats := nl.Stats()
	nl.closed = true
	nl.newNode = NoHandle
	nl.openNodes.Reset()
	nl.closedNodes.Reset()
	nl.openQueue.Reset()
	nl.items.Free()

	nl.opts.metricsCollector.RecordRelease(stats)
	nl.logger.LogRelease(context.Background(), stats)
	return nil
}

// handleOf returns the handle of node after checking that node lives in
// this list's arena.
func (nl *NodeList[T, K, P]) handleOf(op string, node P) Handle {
	nl.checkUsable(op)
	if node == nil {
		nl.fail(op, nil, ErrInvalidHandle)
	}
	h := node.slot().handle
	if !nl.items.Valid(h) || nl.items.Get(h) != (*T)(node) {
		nl.fail(op, nil, ErrInvalidHandle)
	}
	return h
}

func (nl *NodeList[T, K, P]) checkUsable(op string) {
	if nl.closed {
		nl.fail(op, nil, ErrClosed)
	}
}

// fail logs and panics with a *PreconditionError.
func (nl *NodeList[T, K, P]) fail(op string, key any, err error) {
	perr := &PreconditionError{Op: op, Key: key, Err: err}
	nl.logger.LogPrecondition(context.Background(), perr)
	panic(perr)
}

// IsPrecondition reports whether v, typically a recovered panic value, is a
// node-list contract violation wrapping target.
func IsPrecondition(v any, target error) bool {
	err, ok := v.(error)
	if !ok {
		return false
	}
	var perr *PreconditionError
	return errors.As(err, &perr) && errors.Is(perr, target)
}
