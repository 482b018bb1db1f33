// Package pathnode manages the nodes of an A* style graph search.
//
// A NodeList owns every node of one search and tracks which of them are
// open (discovered, queued for expansion) and which are closed (expanded).
// It is the node-management layer of a pathfinder; cost functions, the
// graph model and the search loop itself belong to the caller.
//
// Internally a NodeList combines:
//   - a chunked arena that allocates nodes in bulk and never moves them
//   - two open-addressing hash indexes from key to node (open, closed)
//   - a binary min-heap of open nodes ordered by estimated total cost
//
// # Node Types
//
// A node type embeds Slot and exposes its key and estimate:
//
//	type TileKey struct{ X, Y int32 }
//
//	func (k TileKey) Hash() uint64 { return uint64(uint32(k.X))<<32 | uint64(uint32(k.Y)) }
//
//	type Node struct {
//	    pathnode.Slot
//	    Key      TileKey
//	    Cost     float64
//	    Estimate float64
//	}
//
//	func (n *Node) GetKey() TileKey        { return n.Key }
//	func (n *Node) GetEstimate() float64   { return n.Estimate }
//
// # Search Loop
//
//	nl, err := pathnode.New[Node, TileKey]()
//	if err != nil {
//	    return err
//	}
//	defer nl.Close()
//
//	start, _ := nl.CreateNewNode()
//	start.Key = from
//	start.Estimate = h(from)
//	nl.InsertOpenNode(start)
//
//	for {
//	    cur, ok := nl.PopBestOpenNode()
//	    if !ok {
//	        break // no path
//	    }
//	    nl.InsertClosedNode(cur)
//	    if cur.Key == to {
//	        return nl.Path(cur), nil
//	    }
//	    // expand cur: CreateNewNode, fill, FindClosedNode/FindOpenNode,
//	    // InsertOpenNode or PopOpenNode + InsertOpenNode for decrease-key
//	}
//
// CreateNewNode keeps returning the same node until it is inserted or
// released with FoundBestNode, so rejected candidates cost no allocation.
//
// # Contract Violations
//
// Breaking the node-list contract (a key both open and closed, a duplicate
// key, dequeuing from an empty queue, removing a key that is not open)
// panics with a *PreconditionError. WithTrustedCaller drops the checks that
// need extra index lookups. Absence is never an error: lookups and peeks
// return (nil, false).
//
// Running out of node storage, either through WithMaxChunks or a
// resource.Controller memory budget, makes CreateNewNode return an error
// wrapping ErrResourceExhausted.
//
// # Diagnostics
//
// Visit walks all nodes with their state. WriteDump writes a compressed
// snapshot readable with package dump. Package prom exports metrics.
package pathnode
