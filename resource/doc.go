// Package resource limits the memory and IO used by node lists.
//
// A single Controller is typically shared by every search a pathfinder runs
// concurrently. Each node-list arena reserves one chunk of memory at a time
// from the controller and returns its whole reservation when the node list
// is closed, so the controller bounds the total node memory in flight.
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 256 << 20, // 256MB of search nodes
//	})
//
//	nl := pathnode.New[Node, Key](pathnode.WithResourceController(rc))
//	defer nl.Close()
//
// Diagnostic dumps can be throttled with IOLimitBytesPerSec and
// NewRateLimitedWriter.
//
// # Thread Safety
//
// All Controller methods are safe for concurrent use.
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully; they become no-ops.
package resource
