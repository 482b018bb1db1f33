package pathnode

import (
	"context"
	"fmt"
	"io"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/pathnode/dump"
	"github.com/hupe1980/pathnode/internal/conv"
	"github.com/hupe1980/pathnode/resource"
)

// State is the membership class of a node.
type State = dump.State

// Node states.
const (
	StateDetached    = dump.StateDetached
	StateUncommitted = dump.StateUncommitted
	StateOpen        = dump.StateOpen
	StateClosed      = dump.StateClosed
)

// StateOf returns the current membership class of node. A node that was
// dequeued but is still in the open index counts as open.
func (nl *NodeList[T, K, P]) StateOf(node P) State {
	h := nl.handleOf("StateOf", node)
	key := node.GetKey()
	if got, ok := nl.openNodes.Find(key); ok && got == h {
		return StateOpen
	}
	if got, ok := nl.closedNodes.Find(key); ok && got == h {
		return StateClosed
	}
	if h == nl.newNode {
		return StateUncommitted
	}
	return StateDetached
}

// stateSets collects the handles of open and closed nodes.
func (nl *NodeList[T, K, P]) stateSets() (open, closed *roaring.Bitmap) {
	open, closed = roaring.New(), roaring.New()
	for _, h := range nl.openNodes.All() {
		open.Add(uint32(h))
	}
	for _, h := range nl.closedNodes.All() {
		closed.Add(uint32(h))
	}
	return open, closed
}

// Visit calls fn for every allocated node in allocation order until fn
// returns false. It is a read-only diagnostic walk; fn must not change keys
// or call mutating NodeList methods.
func (nl *NodeList[T, K, P]) Visit(fn func(node P, state State) bool) {
	nl.checkUsable("Visit")
	open, closed := nl.stateSets()
	for h, item := range nl.items.All() {
		state := StateDetached
		switch {
		case open.Contains(uint32(h)):
			state = StateOpen
		case closed.Contains(uint32(h)):
			state = StateClosed
		case h == nl.newNode:
			state = StateUncommitted
		}
		if !fn(P(item), state) {
			return
		}
	}
}

// Snapshot captures the node states. encode, if not nil, produces one
// record per node for debugging and visualization tools.
func (nl *NodeList[T, K, P]) Snapshot(encode func(P) ([]byte, error)) (*dump.Snapshot, error) {
	nl.checkUsable("Snapshot")

	s := dump.New(nl.id)
	s.Open, s.Closed = nl.stateSets()

	total, err := conv.IntToUint32(nl.items.Len())
	if err != nil {
		return nil, err
	}
	chunkSize, err := conv.IntToUint32(nl.items.ChunkSize())
	if err != nil {
		return nil, err
	}
	openCount, err := conv.Uint64ToUint32(s.Open.GetCardinality())
	if err != nil {
		return nil, err
	}
	closedCount, err := conv.Uint64ToUint32(s.Closed.GetCardinality())
	if err != nil {
		return nil, err
	}
	s.Total = total
	s.ChunkSize = chunkSize
	s.OpenCount = openCount
	s.ClosedCount = closedCount
	s.Uncommitted = uint32(nl.newNode)

	if encode != nil {
		s.Records = make([][]byte, 0, nl.items.Len())
		for h, item := range nl.items.All() {
			rec, err := encode(P(item))
			if err != nil {
				return nil, fmt.Errorf("encode node %d: %w", h, err)
			}
			s.Records = append(s.Records, rec)
		}
	}
	return s, nil
}

// WriteDump writes a diagnostic snapshot to w. Writes go through the IO
// limit of the resource controller, if one is configured. Search state is
// not modified.
func (nl *NodeList[T, K, P]) WriteDump(ctx context.Context, w io.Writer, encode func(P) ([]byte, error), opts ...dump.WriteOption) error {
	s, err := nl.Snapshot(encode)
	if err == nil {
		if rc := nl.opts.controller; rc != nil {
			w = resource.NewRateLimitedWriter(ctx, w, rc)
		}
		err = dump.Write(w, s, opts...)
	}
	nl.logger.LogDump(ctx, nl.items.Len(), err)
	return err
}
