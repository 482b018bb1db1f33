package pathnode

import "slices"

// Parent returns the predecessor of node, if it has one.
func (nl *NodeList[T, K, P]) Parent(node P) (P, bool) {
	nl.handleOf("Parent", node)
	parent := node.slot().parent
	if parent == NoHandle {
		return nil, false
	}
	return nl.Node(parent), true
}

// Path follows parent references from node back to the start node and
// returns the nodes in start-to-node order.
//
// It panics with ErrParentCycle if the parent chain loops.
func (nl *NodeList[T, K, P]) Path(node P) []P {
	const op = "Path"
	nl.handleOf(op, node)

	var path []P
	for n := node; ; {
		path = append(path, n)
		if len(path) > nl.items.Len() {
			nl.fail(op, n.GetKey(), ErrParentCycle)
		}
		parent := n.slot().parent
		if parent == NoHandle {
			break
		}
		if !nl.items.Valid(parent) {
			nl.fail(op, n.GetKey(), ErrInvalidHandle)
		}
		n = P(nl.items.Get(parent))
	}

	slices.Reverse(path)
	return path
}
